package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/Ms-You/poje-remind/apps/remind-service/internal/domain"
	"github.com/Ms-You/poje-remind/apps/remind-service/internal/dto"
	"github.com/Ms-You/poje-remind/apps/remind-service/internal/event"
	"github.com/Ms-You/poje-remind/apps/remind-service/internal/metrics"
	"github.com/Ms-You/poje-remind/apps/remind-service/internal/repository"
	"github.com/Ms-You/poje-remind/apps/remind-service/internal/security"
	"github.com/Ms-You/poje-remind/pkg/logger"
)

// AuthService defines the interface for the session lifecycle
type AuthService interface {
	// SignUp registers a new USER member
	SignUp(ctx context.Context, req *dto.JoinRequest) error
	// SignIn checks credentials and starts a session
	SignIn(ctx context.Context, req *dto.LoginRequest) (*security.TokenPair, error)
	// Logout revokes the access token and forgets the refresh token
	Logout(ctx context.Context, accessToken string) error
	// Reissue trades a stored refresh token for a new pair
	Reissue(ctx context.Context, accessToken, refreshToken string) (*security.TokenPair, error)
	// Authenticate resolves the caller of a non-revoked access token
	Authenticate(ctx context.Context, accessToken string) (*security.Identity, error)
}

// authService implements AuthService
type authService struct {
	memberRepo repository.MemberRepository
	tokenStore repository.TokenStore
	tokens     *security.TokenProvider
	passwords  *security.PasswordEncoder
	publisher  event.Publisher
}

// NewAuthService creates a new AuthService
func NewAuthService(
	memberRepo repository.MemberRepository,
	tokenStore repository.TokenStore,
	tokens *security.TokenProvider,
	passwords *security.PasswordEncoder,
	publisher event.Publisher,
) AuthService {
	return &authService{
		memberRepo: memberRepo,
		tokenStore: tokenStore,
		tokens:     tokens,
		passwords:  passwords,
		publisher:  publisher,
	}
}

// SignUp registers a new USER member
func (s *authService) SignUp(ctx context.Context, req *dto.JoinRequest) (err error) {
	ctx, span := startSpan(ctx, "SignUp")
	defer func() {
		metrics.ObserveAuth(metrics.AuthSignUp, err)
		endSpan(span, err)
	}()

	if !req.PasswordsMatch() {
		return domain.ErrPasswordNotMatched
	}

	exists, err := s.memberRepo.ExistsByLoginID(ctx, req.LoginID)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrLoginIDAlreadyExists
	}

	hash, err := s.passwords.HashPassword(req.Password)
	if err != nil {
		return err
	}

	member, err := domain.NewMember(domain.NewMemberParams{
		LoginID:      req.LoginID,
		PasswordHash: hash,
		NickName:     req.NickName,
		Email:        req.Email,
		PhoneNum:     req.PhoneNum,
		Gender:       req.Gender,
		Birth:        req.Birth,
	})
	if err != nil {
		return err
	}

	if err := s.memberRepo.Create(ctx, member); err != nil {
		return err
	}

	publish(ctx, s.publisher, domain.NewEvent(domain.EventMemberSignedUp, member.LoginID, map[string]any{
		"member_id": member.ID,
	}))
	return nil
}

// SignIn checks credentials, issues a pair and stores the refresh token.
// A previously stored refresh token is overwritten.
func (s *authService) SignIn(ctx context.Context, req *dto.LoginRequest) (pair *security.TokenPair, err error) {
	ctx, span := startSpan(ctx, "SignIn")
	defer func() {
		metrics.ObserveAuth(metrics.AuthSignIn, err)
		endSpan(span, err)
	}()

	member, err := s.memberRepo.GetByLoginID(ctx, req.LoginID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, domain.ErrIDOrPasswordWrong
	}

	ok, err := s.passwords.ComparePassword(member.Password, req.Password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrIDOrPasswordWrong
	}

	pair, err = s.tokens.Issue(member.LoginID, member.Authorities())
	if err != nil {
		return nil, err
	}

	ttl := s.tokens.RemainingLifetime(pair.RefreshToken)
	if err := s.tokenStore.SaveRefreshToken(ctx, member.LoginID, pair.RefreshToken, ttl); err != nil {
		return nil, err
	}
	return pair, nil
}

// Logout deletes the stored refresh token and marks the access token as logged out
// for the rest of its lifetime. Calling it twice is harmless.
func (s *authService) Logout(ctx context.Context, accessToken string) (err error) {
	ctx, span := startSpan(ctx, "Logout")
	defer func() {
		metrics.ObserveAuth(metrics.AuthLogout, err)
		endSpan(span, err)
	}()

	if !s.tokens.Validate(accessToken) {
		return domain.ErrTokenNotValid
	}

	claims, err := s.tokens.ParseClaims(accessToken)
	if err != nil {
		return err
	}

	if err := s.tokenStore.DeleteRefreshToken(ctx, claims.Subject); err != nil {
		return err
	}
	if err := s.tokenStore.MarkLoggedOut(ctx, accessToken, s.tokens.RemainingLifetime(accessToken)); err != nil {
		return err
	}

	logger.Get().Info("member logged out", zap.String("login_id", claims.Subject))
	return nil
}

// Reissue validates the refresh token and swaps it for a new pair. The access token
// may be expired; it only names the session. The swap is a compare-and-swap, so of
// two concurrent reissues with the same refresh token only one succeeds.
func (s *authService) Reissue(ctx context.Context, accessToken, refreshToken string) (pair *security.TokenPair, err error) {
	ctx, span := startSpan(ctx, "Reissue")
	defer func() {
		metrics.ObserveAuth(metrics.AuthReissue, err)
		endSpan(span, err)
	}()

	if !s.tokens.Validate(refreshToken) {
		return nil, domain.ErrTokenNotValid
	}

	identity, err := s.tokens.Authentication(accessToken)
	if err != nil {
		return nil, err
	}

	refreshClaims, err := s.tokens.ParseClaims(refreshToken)
	if err != nil {
		return nil, err
	}
	if refreshClaims.Subject != "" && refreshClaims.Subject != identity.LoginID {
		return nil, domain.ErrRefreshTokenNotMatched
	}

	pair, err = s.tokens.Issue(identity.LoginID, identity.Authorities)
	if err != nil {
		return nil, err
	}

	ttl := s.tokens.RemainingLifetime(pair.RefreshToken)
	swapped, err := s.tokenStore.RotateRefreshToken(ctx, identity.LoginID, refreshToken, pair.RefreshToken, ttl)
	if err != nil {
		return nil, err
	}
	if !swapped {
		return nil, domain.ErrRefreshTokenNotMatched
	}
	return pair, nil
}

// Authenticate validates the token, rejects logged-out tokens and resolves the identity
func (s *authService) Authenticate(ctx context.Context, accessToken string) (*security.Identity, error) {
	if !s.tokens.Validate(accessToken) {
		return nil, domain.ErrTokenNotValid
	}

	loggedOut, err := s.tokenStore.IsLoggedOut(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	if loggedOut {
		return nil, domain.ErrTokenLoggedOut
	}

	return s.tokens.Authentication(accessToken)
}
