package security

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ms-You/poje-remind/apps/remind-service/internal/domain"
)

var testSecret = base64.StdEncoding.EncodeToString([]byte("0123456789abcdef0123456789abcdef-remind"))

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestProvider(t *testing.T) (*TokenProvider, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	p, err := NewTokenProvider(TokenConfig{
		Secret:          testSecret,
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 7 * 24 * time.Hour,
		Now:             clock.Now,
	})
	require.NoError(t, err)
	return p, clock
}

func TestNewTokenProvider_Secret(t *testing.T) {
	_, err := NewTokenProvider(TokenConfig{})
	assert.Error(t, err)

	_, err = NewTokenProvider(TokenConfig{Secret: "%%%"})
	assert.Error(t, err)

	short := base64.StdEncoding.EncodeToString([]byte("short"))
	_, err = NewTokenProvider(TokenConfig{Secret: short})
	assert.Error(t, err)
}

func TestIssue_RoundTrip(t *testing.T) {
	p, clock := newTestProvider(t)

	pair, err := p.Issue("alice", []string{"ROLE_USER", "ROLE_ADMIN"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.GrantType)
	assert.Equal(t, clock.now.Add(time.Hour).UnixMilli(), pair.AccessTokenExpiresIn)

	assert.True(t, p.Validate(pair.AccessToken))
	assert.True(t, p.Validate(pair.RefreshToken))

	identity, err := p.Authentication(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", identity.LoginID)
	assert.Equal(t, []string{"ROLE_USER", "ROLE_ADMIN"}, identity.Authorities)
	assert.True(t, identity.HasAuthority("ROLE_ADMIN"))

	clock.Advance(time.Hour + time.Second)
	ok, reason := p.ValidateWithReason(pair.AccessToken)
	assert.False(t, ok)
	assert.Equal(t, FailureExpired, reason)

	// the refresh token outlives the access token
	assert.True(t, p.Validate(pair.RefreshToken))
}

func TestIssue_RefreshTokensDiffer(t *testing.T) {
	p, _ := newTestProvider(t)

	first, err := p.Issue("alice", []string{"ROLE_USER"})
	require.NoError(t, err)
	second, err := p.Issue("alice", []string{"ROLE_USER"})
	require.NoError(t, err)

	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	claims, err := p.ParseClaims(first.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Empty(t, claims.Auth)
	assert.NotEmpty(t, claims.ID)
}

func TestValidateWithReason(t *testing.T) {
	p, _ := newTestProvider(t)
	pair, err := p.Issue("alice", []string{"ROLE_USER"})
	require.NoError(t, err)

	other, err := NewTokenProvider(TokenConfig{
		Secret: base64.StdEncoding.EncodeToString([]byte(strings.Repeat("x", 40))),
	})
	require.NoError(t, err)
	foreign, err := other.Issue("alice", []string{"ROLE_USER"})
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "alice", "exp": time.Now().Add(time.Hour).Unix()})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		reason TokenFailure
	}{
		{"valid", pair.AccessToken, FailureNone},
		{"empty", "  ", FailureEmpty},
		{"malformed", "not.a.jwt", FailureMalformed},
		{"foreign signature", foreign.AccessToken, FailureSignature},
		{"unsupported alg", unsigned, FailureUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, reason := p.ValidateWithReason(tt.token)
			assert.Equal(t, tt.reason == FailureNone, ok)
			assert.Equal(t, tt.reason, reason)
		})
	}
}

func TestParseClaims_ToleratesExpiry(t *testing.T) {
	p, clock := newTestProvider(t)
	pair, err := p.Issue("alice", []string{"ROLE_USER"})
	require.NoError(t, err)

	clock.Advance(3 * time.Hour)
	require.False(t, p.Validate(pair.AccessToken))

	claims, err := p.ParseClaims(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)

	_, err = p.ParseClaims(pair.AccessToken + "x")
	assert.ErrorIs(t, err, domain.ErrTokenNotValid)
}

func TestAuthentication_MissingAuthorities(t *testing.T) {
	p, _ := newTestProvider(t)
	pair, err := p.Issue("alice", []string{"ROLE_USER"})
	require.NoError(t, err)

	_, err = p.Authentication(pair.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrMissingAuthoritiesClaim)
}

func TestRemainingLifetime(t *testing.T) {
	p, clock := newTestProvider(t)
	pair, err := p.Issue("alice", []string{"ROLE_USER"})
	require.NoError(t, err)

	exp, err := p.ExpiryOf(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, clock.now.Add(time.Hour).Unix(), exp.Unix())

	clock.Advance(20 * time.Minute)
	assert.Equal(t, 40*time.Minute, p.RemainingLifetime(pair.AccessToken))

	clock.Advance(2 * time.Hour)
	assert.Zero(t, p.RemainingLifetime(pair.AccessToken))
	assert.Zero(t, p.RemainingLifetime("garbage"))
}

func TestPasswordEncoder(t *testing.T) {
	enc := NewPasswordEncoder(4)

	hash, err := enc.HashPassword("pw1")
	require.NoError(t, err)
	assert.NotEqual(t, "pw1", hash)

	ok, err := enc.ComparePassword(hash, "pw1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = enc.ComparePassword(hash, "pw2")
	require.NoError(t, err)
	assert.False(t, ok)
}
