package repository

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryTokenStore is an in-process TokenStore with the same key layout and TTL rules as Redis
type MemoryTokenStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryTokenStore creates a store; now defaults to time.Now
func NewMemoryTokenStore(now func() time.Time) *MemoryTokenStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryTokenStore{entries: make(map[string]memoryEntry), now: now}
}

func (s *MemoryTokenStore) get(key string) (string, bool) {
	e, ok := s.entries[key]
	if !ok {
		return "", false
	}
	if !s.now().Before(e.expiresAt) {
		delete(s.entries, key)
		return "", false
	}
	return e.value, true
}

func (s *MemoryTokenStore) set(key, value string, ttl time.Duration) {
	s.entries[key] = memoryEntry{value: value, expiresAt: s.now().Add(ttl)}
}

// SaveRefreshToken stores the current refresh token of loginID
func (s *MemoryTokenStore) SaveRefreshToken(_ context.Context, loginID, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set(refreshTokenKey(loginID), token, ttl)
	return nil
}

// GetRefreshToken returns the stored refresh token or ""
func (s *MemoryTokenStore) GetRefreshToken(_ context.Context, loginID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	token, _ := s.get(refreshTokenKey(loginID))
	return token, nil
}

// DeleteRefreshToken forgets the refresh token of loginID
func (s *MemoryTokenStore) DeleteRefreshToken(_ context.Context, loginID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, refreshTokenKey(loginID))
	return nil
}

// RotateRefreshToken swaps expected for next under the store lock
func (s *MemoryTokenStore) RotateRefreshToken(_ context.Context, loginID, expected, next string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := refreshTokenKey(loginID)
	current, ok := s.get(key)
	if !ok || current != expected {
		return false, nil
	}
	if ttl <= 0 {
		delete(s.entries, key)
		return true, nil
	}
	s.set(key, next, ttl)
	return true, nil
}

// MarkLoggedOut blacklists an access token for ttl
func (s *MemoryTokenStore) MarkLoggedOut(_ context.Context, accessToken string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set(blacklistKey(accessToken), LogoutMarker, ttl)
	return nil
}

// IsLoggedOut reports whether the access token carries a logout marker
func (s *MemoryTokenStore) IsLoggedOut(_ context.Context, accessToken string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.get(blacklistKey(accessToken))
	return ok && value == LogoutMarker, nil
}
