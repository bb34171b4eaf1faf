package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Ms-You/poje-remind/apps/remind-service/internal/domain"
	"github.com/Ms-You/poje-remind/apps/remind-service/internal/dto"
	"github.com/Ms-You/poje-remind/apps/remind-service/internal/middleware"
	"github.com/Ms-You/poje-remind/apps/remind-service/internal/security"
	"github.com/Ms-You/poje-remind/apps/remind-service/internal/service"
	"github.com/Ms-You/poje-remind/pkg/response"
)

const (
	// RefreshTokenCookie names both the cookie and the request header carrying the refresh token
	RefreshTokenCookie = "RefreshToken"

	defaultCookieMaxAge = 7 * 24 * time.Hour
)

// CookieConfig controls the refresh token cookie
type CookieConfig struct {
	Secure bool
	Domain string
	MaxAge time.Duration
}

// AuthHandler handles sign-up, sign-in, logout and token reissue
type AuthHandler struct {
	authService service.AuthService
	cookie      CookieConfig
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService service.AuthService, cookie CookieConfig) *AuthHandler {
	if cookie.MaxAge <= 0 {
		cookie.MaxAge = defaultCookieMaxAge
	}
	return &AuthHandler{authService: authService, cookie: cookie}
}

// SignUp handles member registration
// POST /auth
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req dto.JoinRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.authService.SignUp(c.Request.Context(), &req); err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, "회원가입이 완료되었습니다.", nil)
}

// SignIn handles login
// POST /auth/login
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	pair, err := h.authService.SignIn(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.writeTokens(c, pair)
	response.Success(c, "로그인 성공", tokenResponse(pair))
}

// Logout revokes the caller's access token
// POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context(), middleware.BearerToken(c)); err != nil {
		respondError(c, err)
		return
	}

	h.clearRefreshCookie(c)
	response.Success(c, "로그아웃 되었습니다.", nil)
}

// Reissue trades the refresh token for a new pair
// POST /auth/reissue
func (h *AuthHandler) Reissue(c *gin.Context) {
	refreshToken := c.GetHeader(RefreshTokenCookie)
	if refreshToken == "" {
		refreshToken, _ = c.Cookie(RefreshTokenCookie)
	}
	if refreshToken == "" {
		respondError(c, domain.ErrTokenNotValid)
		return
	}

	pair, err := h.authService.Reissue(c.Request.Context(), middleware.BearerToken(c), refreshToken)
	if err != nil {
		respondError(c, err)
		return
	}

	h.writeTokens(c, pair)
	response.Success(c, "성공적으로 재발급 되었습니다.", tokenResponse(pair))
}

func (h *AuthHandler) writeTokens(c *gin.Context, pair *security.TokenPair) {
	c.Header(middleware.AuthorizationHeader, security.GrantType+" "+pair.AccessToken)
	h.setRefreshCookie(c, pair.RefreshToken, int(h.cookie.MaxAge.Seconds()))
}

func (h *AuthHandler) clearRefreshCookie(c *gin.Context) {
	h.setRefreshCookie(c, "", -1)
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, value string, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     RefreshTokenCookie,
		Value:    value,
		Path:     "/",
		Domain:   h.cookie.Domain,
		MaxAge:   maxAge,
		Secure:   h.cookie.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func tokenResponse(pair *security.TokenPair) dto.TokenResponse {
	return dto.TokenResponse{
		GrantType:            pair.GrantType,
		AccessToken:          pair.AccessToken,
		AccessTokenExpiresIn: pair.AccessTokenExpiresIn,
	}
}
