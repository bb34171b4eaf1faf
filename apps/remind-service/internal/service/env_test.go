package service

import (
	"context"
	"encoding/base64"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Ms-You/poje-remind/apps/remind-service/internal/dto"
	"github.com/Ms-You/poje-remind/apps/remind-service/internal/repository"
	"github.com/Ms-You/poje-remind/apps/remind-service/internal/security"
)

var testSecret = base64.StdEncoding.EncodeToString([]byte(strings.Repeat("remind-test-key-", 3)))

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// testEnv wires every service over one fake store
type testEnv struct {
	store     *fakeStore
	clock     *testClock
	tokens    *security.TokenProvider
	tokenRepo *repository.MemoryTokenStore
	publisher *recordingPublisher

	auth      AuthService
	members   MemberService
	jobs      JobService
	licenses  LicenseService
	portfolio PortfolioService
	awards    PortfolioAwardService
	skills    PortfolioSkillService
	likes     PortfolioLikeService
	projects  ProjectService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	clock := &testClock{now: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)}
	tokens, err := security.NewTokenProvider(security.TokenConfig{
		Secret:          testSecret,
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 7 * 24 * time.Hour,
		Now:             clock.Now,
	})
	require.NoError(t, err)

	store := newFakeStore()
	memberRepo := fakeMemberRepo{store}
	portfolioRepo := fakePortfolioRepo{store}
	projectRepo := fakeProjectRepo{store}
	awardRepo := fakePortfolioAwardRepo{store}
	likeRepo := fakeLikeRepo{store}
	jobRepo := fakeJobRepo{store}

	tokenRepo := repository.NewMemoryTokenStore(clock.Now)
	passwords := security.NewPasswordEncoder(bcrypt.MinCost)
	publisher := &recordingPublisher{}
	guard := NewOwnershipGuard(memberRepo, portfolioRepo, projectRepo, awardRepo)
	paging := PagingConfig{Size: 12, PageNum: 5}

	env := &testEnv{
		store:     store,
		clock:     clock,
		tokens:    tokens,
		tokenRepo: tokenRepo,
		publisher: publisher,
	}
	env.auth = NewAuthService(memberRepo, tokenRepo, tokens, passwords, publisher)
	env.members = NewMemberService(memberRepo, guard, passwords)
	env.jobs = NewJobService(jobRepo)
	env.licenses = NewLicenseService(fakeLicenseRepo{store}, guard)
	env.portfolio = NewPortfolioService(portfolioRepo, jobRepo, memberRepo, likeRepo, guard, publisher, paging)
	env.awards = NewPortfolioAwardService(awardRepo, guard)
	env.skills = NewPortfolioSkillService(fakePortfolioSkillRepo{store}, guard, fakeTx{}, publisher)
	env.likes = NewPortfolioLikeService(likeRepo, portfolioRepo, guard, fakeTx{}, publisher, paging)
	env.projects = NewProjectService(ProjectRepositories{
		Projects: projectRepo,
		Skills:   fakeProjectSkillRepo{store},
		Images:   fakeProjectImgRepo{store},
		Awards:   fakeProjectAwardRepo{store},
	}, guard, fakeTx{}, publisher)

	require.NoError(t, env.jobs.EnrollJob(context.Background(), "Developer"))
	require.NoError(t, env.jobs.EnrollJob(context.Background(), "Designer"))
	return env
}

func (e *testEnv) signUp(t *testing.T, loginID, password string) {
	t.Helper()
	require.NoError(t, e.auth.SignUp(context.Background(), &dto.JoinRequest{
		LoginID:         loginID,
		Password:        password,
		PasswordConfirm: password,
		NickName:        loginID + "-nick",
		Email:           loginID + "@example.com",
	}))
}

func (e *testEnv) signIn(t *testing.T, loginID, password string) *security.TokenPair {
	t.Helper()
	pair, err := e.auth.SignIn(context.Background(), &dto.LoginRequest{LoginID: loginID, Password: password})
	require.NoError(t, err)
	return pair
}

func (e *testEnv) newPortfolio(t *testing.T, loginID string) int64 {
	t.Helper()
	resp, err := e.portfolio.EnrollBasicPortfolio(context.Background(), loginID, "Developer")
	require.NoError(t, err)
	return resp.PortfolioID
}

func (e *testEnv) newProject(t *testing.T, loginID string, portfolioID int64) int64 {
	t.Helper()
	require.NoError(t, e.projects.EnrollBasicProject(context.Background(), loginID, portfolioID))
	list, err := e.projects.GetProjectList(context.Background(), portfolioID)
	require.NoError(t, err)
	require.NotEmpty(t, list)
	return list[len(list)-1].ProjectID
}

func skillNames(skills []dto.PortfolioSkillResponse) []string {
	names := make([]string, 0, len(skills))
	for _, s := range skills {
		names = append(names, s.Name)
	}
	return names
}

func skillItems(names ...string) *dto.PortfolioSkillUpdateRequest {
	req := &dto.PortfolioSkillUpdateRequest{}
	for _, n := range names {
		req.Skills = append(req.Skills, dto.PortfolioSkillItem{Type: "lang", Name: n, Path: "/icons/" + n})
	}
	return req
}
