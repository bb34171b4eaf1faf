package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ms-You/poje-remind/apps/remind-service/internal/domain"
)

func TestPortfolioLikeService_Toggle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.signUp(t, "alice", "pw1")
	env.signUp(t, "bob", "pw2")
	id := env.newPortfolio(t, "alice")

	liked, err := env.likes.ToggleLike(ctx, "bob", id)
	require.NoError(t, err)
	assert.True(t, liked.LikeStatus)
	assert.Equal(t, int64(1), liked.LikeCount)

	unliked, err := env.likes.ToggleLike(ctx, "bob", id)
	require.NoError(t, err)
	assert.False(t, unliked.LikeStatus)
	assert.Equal(t, int64(0), unliked.LikeCount)

	assert.Equal(t, []domain.EventType{domain.EventPortfolioLiked, domain.EventPortfolioUnliked},
		filterEvents(env.publisher.types(), domain.EventPortfolioLiked, domain.EventPortfolioUnliked))

	_, err = env.likes.ToggleLike(ctx, "bob", 9999)
	assert.ErrorIs(t, err, domain.ErrPortfolioNotFound)
}

func TestPortfolioLikeService_ConcurrentMembersConverge(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.signUp(t, "alice", "pw1")
	env.signUp(t, "bob", "pw2")
	env.signUp(t, "carol", "pw3")
	id := env.newPortfolio(t, "alice")

	var wg sync.WaitGroup
	for _, member := range []string{"bob", "carol"} {
		wg.Add(1)
		go func(loginID string) {
			defer wg.Done()
			_, err := env.likes.ToggleLike(ctx, loginID, id)
			assert.NoError(t, err)
		}(member)
	}
	wg.Wait()

	count, err := fakeLikeRepo{env.store}.CountByPortfolio(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestPortfolioLikeService_GetLikedPortfolios(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.signUp(t, "alice", "pw1")
	env.signUp(t, "bob", "pw2")
	first := env.newPortfolio(t, "alice")
	second := env.newPortfolio(t, "alice")

	_, err := env.likes.ToggleLike(ctx, "bob", first)
	require.NoError(t, err)
	_, err = env.likes.ToggleLike(ctx, "bob", second)
	require.NoError(t, err)

	resp, err := env.likes.GetLikedPortfolios(ctx, "bob", 1)
	require.NoError(t, err)
	require.Len(t, resp.PortfolioAndMemberRespList, 2)
	assert.Equal(t, second, resp.PortfolioAndMemberRespList[0].PortfolioID)
	assert.Equal(t, int64(1), resp.PortfolioAndMemberRespList[0].LikeCount)
	assert.Equal(t, 2, resp.PagingUtil.TotalElements)

	none, err := env.likes.GetLikedPortfolios(ctx, "alice", 0)
	require.NoError(t, err)
	assert.Empty(t, none.PortfolioAndMemberRespList)
	assert.Equal(t, 1, none.PagingUtil.Page)
}

func filterEvents(all []domain.EventType, keep ...domain.EventType) []domain.EventType {
	var out []domain.EventType
	for _, ev := range all {
		for _, k := range keep {
			if ev == k {
				out = append(out, ev)
			}
		}
	}
	return out
}
