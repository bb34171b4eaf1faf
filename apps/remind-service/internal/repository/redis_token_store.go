package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Ms-You/poje-remind/pkg/redis"
)

const (
	refreshTokenKeyPrefix = "RT:"
	blacklistKeyPrefix    = "BL:"

	// LogoutMarker is the value stored under a revoked access token
	LogoutMarker = "logout"

	rotateScriptName = "rotate_refresh_token"
)

// KEYS[1] refresh key, ARGV[1] expected, ARGV[2] next, ARGV[3] ttl ms
const rotateRefreshTokenScript = `
local current = redis.call('GET', KEYS[1])
if current ~= ARGV[1] then
	return 0
end
local ttl = tonumber(ARGV[3])
if ttl > 0 then
	redis.call('SET', KEYS[1], ARGV[2], 'PX', ttl)
else
	redis.call('DEL', KEYS[1])
end
return 1
`

func refreshTokenKey(loginID string) string {
	return refreshTokenKeyPrefix + loginID
}

func blacklistKey(accessToken string) string {
	return blacklistKeyPrefix + accessToken
}

// RedisTokenStore implements TokenStore on Redis
type RedisTokenStore struct {
	client *redis.Client
}

// NewRedisTokenStore creates a new RedisTokenStore
func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{client: client}
}

// SaveRefreshToken stores the current refresh token of loginID
func (s *RedisTokenStore) SaveRefreshToken(ctx context.Context, loginID, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, refreshTokenKey(loginID), token, ttl); err != nil {
		return fmt.Errorf("failed to save refresh token: %w", err)
	}
	return nil
}

// GetRefreshToken returns the stored refresh token or ""
func (s *RedisTokenStore) GetRefreshToken(ctx context.Context, loginID string) (string, error) {
	token, _, err := s.client.Get(ctx, refreshTokenKey(loginID))
	if err != nil {
		return "", fmt.Errorf("failed to get refresh token: %w", err)
	}
	return token, nil
}

// DeleteRefreshToken forgets the refresh token of loginID
func (s *RedisTokenStore) DeleteRefreshToken(ctx context.Context, loginID string) error {
	if err := s.client.Del(ctx, refreshTokenKey(loginID)); err != nil {
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}
	return nil
}

// RotateRefreshToken swaps expected for next atomically
func (s *RedisTokenStore) RotateRefreshToken(ctx context.Context, loginID, expected, next string, ttl time.Duration) (bool, error) {
	swapped, err := s.client.EvalWithFallback(ctx, rotateScriptName, rotateRefreshTokenScript,
		[]string{refreshTokenKey(loginID)}, expected, next, ttl.Milliseconds(),
	).Int()
	if err != nil {
		return false, fmt.Errorf("failed to rotate refresh token: %w", err)
	}
	return swapped == 1, nil
}

// MarkLoggedOut blacklists an access token until it would have expired anyway
func (s *RedisTokenStore) MarkLoggedOut(ctx context.Context, accessToken string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, blacklistKey(accessToken), LogoutMarker, ttl); err != nil {
		return fmt.Errorf("failed to mark logout: %w", err)
	}
	return nil
}

// IsLoggedOut reports whether the access token carries a logout marker
func (s *RedisTokenStore) IsLoggedOut(ctx context.Context, accessToken string) (bool, error) {
	value, ok, err := s.client.Get(ctx, blacklistKey(accessToken))
	if err != nil {
		return false, fmt.Errorf("failed to check logout marker: %w", err)
	}
	return ok && value == LogoutMarker, nil
}
