package security

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Ms-You/poje-remind/apps/remind-service/internal/domain"
	"github.com/Ms-You/poje-remind/pkg/logger"
)

const (
	// GrantType is the scheme used in the Authorization header
	GrantType = "Bearer"

	authoritiesClaim = "auth"
	minSecretBytes   = 32
)

// TokenFailure classifies why a token did not validate
type TokenFailure string

const (
	FailureNone        TokenFailure = ""
	FailureSignature   TokenFailure = "signature"
	FailureMalformed   TokenFailure = "malformed"
	FailureExpired     TokenFailure = "expired"
	FailureUnsupported TokenFailure = "unsupported"
	FailureEmpty       TokenFailure = "empty"
)

// TokenConfig holds the signing settings
type TokenConfig struct {
	Secret          string // base64
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	Issuer          string
	Now             func() time.Time
}

// TokenPair is handed to the client after sign-in and reissue
type TokenPair struct {
	GrantType            string `json:"grantType"`
	AccessToken          string `json:"accessToken"`
	RefreshToken         string `json:"refreshToken"`
	AccessTokenExpiresIn int64  `json:"accessTokenExpiresIn"`
}

// Claims are the JWT claims used by both token kinds
type Claims struct {
	Auth string `json:"auth,omitempty"`
	jwt.RegisteredClaims
}

// Identity is the authenticated caller resolved from an access token
type Identity struct {
	LoginID     string
	Authorities []string
}

// HasAuthority reports whether the identity was granted authority
func (i *Identity) HasAuthority(authority string) bool {
	for _, a := range i.Authorities {
		if a == authority {
			return true
		}
	}
	return false
}

// TokenProvider issues and verifies HS256 tokens
type TokenProvider struct {
	key        []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	issuer     string
	now        func() time.Time
}

// NewTokenProvider decodes the secret and applies TTL defaults
func NewTokenProvider(cfg TokenConfig) (*TokenProvider, error) {
	if cfg.Secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	key, err := base64.StdEncoding.DecodeString(cfg.Secret)
	if err != nil {
		return nil, fmt.Errorf("jwt secret must be base64: %w", err)
	}
	if len(key) < minSecretBytes {
		return nil, fmt.Errorf("jwt secret must decode to at least %d bytes", minSecretBytes)
	}

	if cfg.AccessTokenTTL <= 0 {
		cfg.AccessTokenTTL = time.Hour
	}
	if cfg.RefreshTokenTTL <= 0 {
		cfg.RefreshTokenTTL = 7 * 24 * time.Hour
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &TokenProvider{
		key:        key,
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
		issuer:     cfg.Issuer,
		now:        cfg.Now,
	}, nil
}

// RefreshTTL is the lifetime of a refresh token
func (p *TokenProvider) RefreshTTL() time.Duration {
	return p.refreshTTL
}

// Issue mints an access/refresh pair for identity
func (p *TokenProvider) Issue(identity string, authorities []string) (*TokenPair, error) {
	now := p.now()
	accessExp := now.Add(p.accessTTL)

	access := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Auth: strings.Join(authorities, ","),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity,
			Issuer:    p.issuer,
			ExpiresAt: jwt.NewNumericDate(accessExp),
		},
	})
	accessToken, err := access.SignedString(p.key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	// no authorities on the refresh token, it only proves the session
	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   identity,
			Issuer:    p.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(p.refreshTTL)),
		},
	})
	refreshToken, err := refresh.SignedString(p.key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return &TokenPair{
		GrantType:            GrantType,
		AccessToken:          accessToken,
		RefreshToken:         refreshToken,
		AccessTokenExpiresIn: accessExp.UnixMilli(),
	}, nil
}

// Validate reports whether token is signed by us and unexpired
func (p *TokenProvider) Validate(token string) bool {
	ok, failure := p.ValidateWithReason(token)
	if !ok {
		logger.Get().Info("token validation failed", zap.String("reason", string(failure)))
	}
	return ok
}

// ValidateWithReason is Validate plus the failure class
func (p *TokenProvider) ValidateWithReason(token string) (bool, TokenFailure) {
	if strings.TrimSpace(token) == "" {
		return false, FailureEmpty
	}
	_, err := p.parse(token, false)
	if err != nil {
		return false, classify(err)
	}
	return true, FailureNone
}

// ParseClaims returns the claims of a correctly signed token, expired or not
func (p *TokenProvider) ParseClaims(token string) (*Claims, error) {
	if strings.TrimSpace(token) == "" {
		return nil, domain.ErrTokenNotValid
	}
	claims, err := p.parse(token, true)
	if err != nil {
		return nil, domain.ErrTokenNotValid
	}
	return claims, nil
}

// Authentication resolves the caller of an access token
func (p *TokenProvider) Authentication(accessToken string) (*Identity, error) {
	claims, err := p.ParseClaims(accessToken)
	if err != nil {
		return nil, err
	}
	if claims.Auth == "" {
		return nil, domain.ErrMissingAuthoritiesClaim
	}

	var authorities []string
	for _, a := range strings.Split(claims.Auth, ",") {
		if a = strings.TrimSpace(a); a != "" {
			authorities = append(authorities, a)
		}
	}
	return &Identity{LoginID: claims.Subject, Authorities: authorities}, nil
}

// ExpiryOf returns the exp claim of token
func (p *TokenProvider) ExpiryOf(token string) (time.Time, error) {
	claims, err := p.ParseClaims(token)
	if err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, domain.ErrTokenNotValid
	}
	return claims.ExpiresAt.Time, nil
}

// RemainingLifetime is the time until token expires, zero when already expired or unreadable
func (p *TokenProvider) RemainingLifetime(token string) time.Duration {
	exp, err := p.ExpiryOf(token)
	if err != nil {
		return 0
	}
	if left := exp.Sub(p.now()); left > 0 {
		return left
	}
	return 0
}

func (p *TokenProvider) parse(token string, tolerateExpiry bool) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithTimeFunc(p.now),
		jwt.WithExpirationRequired(),
	}
	if tolerateExpiry {
		opts = append(opts, jwt.WithoutClaimsValidation())
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unsupported signing method %v", t.Header["alg"])
		}
		return p.key, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}

func classify(err error) TokenFailure {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return FailureExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return FailureSignature
	case errors.Is(err, jwt.ErrTokenMalformed):
		return FailureMalformed
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return FailureUnsupported
	default:
		return FailureUnsupported
	}
}
