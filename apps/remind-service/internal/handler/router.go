package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Ms-You/poje-remind/apps/remind-service/internal/domain"
	"github.com/Ms-You/poje-remind/apps/remind-service/internal/middleware"
	"github.com/Ms-You/poje-remind/pkg/logger"
	"github.com/Ms-You/poje-remind/pkg/telemetry"
)

// RouterConfig holds everything the HTTP surface is built from
type RouterConfig struct {
	Auth          *AuthHandler
	Member        *MemberHandler
	Job           *JobHandler
	Portfolio     *PortfolioHandler
	Project       *ProjectHandler
	Media         *MediaHandler
	Health        *HealthHandler
	Authenticator middleware.Authenticator
	Logger        *logger.Logger
	CORS          middleware.CORSConfig
	// Idempotency backs the Idempotency-Key replay on non-idempotent writes; nil disables it
	Idempotency    middleware.IdempotencyStore
	IdempotencyTTL time.Duration
}

// NewRouter builds the gin engine with global middleware and every route
func NewRouter(cfg *RouterConfig) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = logger.Get()
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		telemetry.TracingMiddleware(),
		middleware.Logger(log),
		middleware.Metrics(),
		middleware.CORSWithConfig(cfg.CORS),
	)
	r.NoRoute(NoRoute)
	r.NoMethod(NoMethod)

	r.GET("/health", cfg.Health.Health)
	r.GET("/ready", cfg.Health.Ready)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.IdempotencyTTL == 0 {
		cfg.IdempotencyTTL = 24 * time.Hour
	}
	idempotent := middleware.Idempotency(cfg.Idempotency, cfg.IdempotencyTTL)

	api := r.Group("/", middleware.Authenticate(cfg.Authenticator))

	api.POST("/auth", cfg.Auth.SignUp)
	api.POST("/auth/login", cfg.Auth.SignIn)
	api.POST("/auth/reissue", cfg.Auth.Reissue)
	// logout validates the token itself so a repeated logout still succeeds
	api.POST("/auth/logout", cfg.Auth.Logout)

	api.GET("/check-loginId", cfg.Member.CheckLoginID)
	api.GET("/job", cfg.Job.GetJobList)

	api.GET("/portfolios", cfg.Portfolio.GetPortfolioList)
	api.GET("/portfolio/:portfolio_id", cfg.Portfolio.GetPortfolio)
	api.GET("/portfolio/:portfolio_id/about-me", cfg.Portfolio.GetPortfolioAboutMe)
	api.GET("/portfolio/:portfolio_id/award", cfg.Portfolio.GetPortfolioAwardList)
	api.GET("/portfolio/:portfolio_id/skill", cfg.Portfolio.GetPortfolioSkill)
	api.GET("/portfolio/:portfolio_id/project", cfg.Project.GetProjectList)

	member := api.Group("/member", middleware.RequireAuth())
	{
		member.GET("", cfg.Member.GetMember)
		member.PUT("", cfg.Member.UpdateMember)
		member.PUT("/password", cfg.Member.UpdatePassword)

		member.POST("/license", cfg.Member.EnrollLicense)
		member.PUT("/license", cfg.Member.UpdateLicense)
		member.GET("/license", cfg.Member.GetLicenseList)

		member.POST("/portfolio", idempotent, cfg.Portfolio.EnrollBasicPortfolio)
		member.GET("/portfolio", cfg.Portfolio.GetMemberPortfolioList)
		member.PUT("/portfolio/:portfolio_id", cfg.Portfolio.UpdatePortfolio)
		member.DELETE("/portfolio/:portfolio_id", cfg.Portfolio.DeletePortfolio)

		member.POST("/portfolio/:portfolio_id/award", cfg.Portfolio.EnrollPortfolioAward)
		member.PUT("/portfolio/award/:award_id", cfg.Portfolio.UpdatePortfolioAward)
		member.DELETE("/portfolio/award/:award_id", cfg.Portfolio.DeletePortfolioAward)

		member.POST("/portfolio/:portfolio_id/like", idempotent, cfg.Portfolio.ToggleLike)
		member.GET("/like/portfolio", cfg.Portfolio.GetLikedPortfolios)

		member.PUT("/portfolio/:portfolio_id/skill", cfg.Portfolio.UpdatePortfolioSkill)

		member.POST("/portfolio/:portfolio_id/project", idempotent, cfg.Project.EnrollBasicProject)
		member.PUT("/portfolio/:portfolio_id/project/:project_id", cfg.Project.UpdateProject)
		member.DELETE("/portfolio/:portfolio_id/project/:project_id", cfg.Project.DeleteProject)

		member.POST("/media/presign", cfg.Media.Presign)
	}

	admin := api.Group("/admin", middleware.RequireRole(string(domain.RoleAdmin)))
	{
		admin.POST("/job", cfg.Job.EnrollJob)
		admin.PUT("/job", cfg.Job.UpdateJob)
		admin.DELETE("/job/:job_id", cfg.Job.DeleteJob)
	}

	return r
}
