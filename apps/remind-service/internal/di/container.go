package di

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ms-You/poje-remind/apps/remind-service/internal/event"
	"github.com/Ms-You/poje-remind/apps/remind-service/internal/handler"
	"github.com/Ms-You/poje-remind/apps/remind-service/internal/middleware"
	"github.com/Ms-You/poje-remind/apps/remind-service/internal/repository"
	"github.com/Ms-You/poje-remind/apps/remind-service/internal/security"
	"github.com/Ms-You/poje-remind/apps/remind-service/internal/service"
	"github.com/Ms-You/poje-remind/apps/remind-service/internal/storage"
	"github.com/Ms-You/poje-remind/pkg/logger"
)

// Repositories groups every repository the services depend on
type Repositories struct {
	Members         repository.MemberRepository
	Jobs            repository.JobRepository
	Licenses        repository.LicenseRepository
	Portfolios      repository.PortfolioRepository
	PortfolioSkills repository.PortfolioSkillRepository
	PortfolioAwards repository.PortfolioAwardRepository
	Likes           repository.LikeRepository
	Projects        repository.ProjectRepository
	ProjectSkills   repository.ProjectSkillRepository
	ProjectImgs     repository.ProjectImgRepository
	ProjectAwards   repository.ProjectAwardRepository
}

// NewPostgresRepositories builds the Postgres repositories. The job list is
// served through cache when one is given.
func NewPostgresRepositories(pool *pgxpool.Pool, cache repository.Cache) Repositories {
	var jobs repository.JobRepository = repository.NewPostgresJobRepository(pool)
	if cache != nil {
		jobs = repository.NewCachedJobRepository(jobs, cache)
	}

	return Repositories{
		Members:         repository.NewPostgresMemberRepository(pool),
		Jobs:            jobs,
		Licenses:        repository.NewPostgresLicenseRepository(pool),
		Portfolios:      repository.NewPostgresPortfolioRepository(pool),
		PortfolioSkills: repository.NewPostgresPortfolioSkillRepository(pool),
		PortfolioAwards: repository.NewPostgresPortfolioAwardRepository(pool),
		Likes:           repository.NewPostgresLikeRepository(pool),
		Projects:        repository.NewPostgresProjectRepository(pool),
		ProjectSkills:   repository.NewPostgresProjectSkillRepository(pool),
		ProjectImgs:     repository.NewPostgresProjectImgRepository(pool),
		ProjectAwards:   repository.NewPostgresProjectAwardRepository(pool),
	}
}

// Container holds all dependencies for the remind service
type Container struct {
	// Infrastructure
	Tokens    *security.TokenProvider
	Publisher event.Publisher
	Presigner storage.Presigner

	// Services
	AuthService           service.AuthService
	MemberService         service.MemberService
	JobService            service.JobService
	LicenseService        service.LicenseService
	PortfolioService      service.PortfolioService
	PortfolioAwardService service.PortfolioAwardService
	PortfolioSkillService service.PortfolioSkillService
	PortfolioLikeService  service.PortfolioLikeService
	ProjectService        service.ProjectService

	// Handlers
	HealthHandler    *handler.HealthHandler
	AuthHandler      *handler.AuthHandler
	MemberHandler    *handler.MemberHandler
	JobHandler       *handler.JobHandler
	PortfolioHandler *handler.PortfolioHandler
	ProjectHandler   *handler.ProjectHandler
	MediaHandler     *handler.MediaHandler

	logger      *logger.Logger
	cors        middleware.CORSConfig
	idempotency middleware.IdempotencyStore
}

// ContainerConfig contains configuration for building the container
type ContainerConfig struct {
	ServiceName  string
	Repositories Repositories
	TokenStore   repository.TokenStore
	Tx           service.Transactor
	Tokens       *security.TokenProvider
	Passwords    *security.PasswordEncoder
	Publisher    event.Publisher
	Presigner    storage.Presigner
	Paging       service.PagingConfig
	Cookie       handler.CookieConfig
	CORS         middleware.CORSConfig
	HealthChecks map[string]handler.HealthChecker
	Idempotency  middleware.IdempotencyStore
	Logger       *logger.Logger
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *ContainerConfig) *Container {
	if cfg.Publisher == nil {
		cfg.Publisher = event.NewNoOpPublisher()
	}
	if cfg.Presigner == nil {
		cfg.Presigner = storage.DisabledPresigner{}
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Get()
	}

	repos := cfg.Repositories
	c := &Container{
		Tokens:      cfg.Tokens,
		Publisher:   cfg.Publisher,
		Presigner:   cfg.Presigner,
		logger:      cfg.Logger,
		cors:        cfg.CORS,
		idempotency: cfg.Idempotency,
	}

	guard := service.NewOwnershipGuard(repos.Members, repos.Portfolios, repos.Projects, repos.PortfolioAwards)

	// Initialize services
	c.AuthService = service.NewAuthService(repos.Members, cfg.TokenStore, cfg.Tokens, cfg.Passwords, cfg.Publisher)
	c.MemberService = service.NewMemberService(repos.Members, guard, cfg.Passwords)
	c.JobService = service.NewJobService(repos.Jobs)
	c.LicenseService = service.NewLicenseService(repos.Licenses, guard)
	c.PortfolioService = service.NewPortfolioService(repos.Portfolios, repos.Jobs, repos.Members, repos.Likes, guard, cfg.Publisher, cfg.Paging)
	c.PortfolioAwardService = service.NewPortfolioAwardService(repos.PortfolioAwards, guard)
	c.PortfolioSkillService = service.NewPortfolioSkillService(repos.PortfolioSkills, guard, cfg.Tx, cfg.Publisher)
	c.PortfolioLikeService = service.NewPortfolioLikeService(repos.Likes, repos.Portfolios, guard, cfg.Tx, cfg.Publisher, cfg.Paging)
	c.ProjectService = service.NewProjectService(service.ProjectRepositories{
		Projects: repos.Projects,
		Skills:   repos.ProjectSkills,
		Images:   repos.ProjectImgs,
		Awards:   repos.ProjectAwards,
	}, guard, cfg.Tx, cfg.Publisher)

	// Initialize handlers
	c.HealthHandler = handler.NewHealthHandler(cfg.ServiceName, cfg.HealthChecks)
	c.AuthHandler = handler.NewAuthHandler(c.AuthService, cfg.Cookie)
	c.MemberHandler = handler.NewMemberHandler(c.MemberService, c.LicenseService)
	c.JobHandler = handler.NewJobHandler(c.JobService)
	c.PortfolioHandler = handler.NewPortfolioHandler(c.PortfolioService, c.PortfolioAwardService, c.PortfolioSkillService, c.PortfolioLikeService)
	c.ProjectHandler = handler.NewProjectHandler(c.ProjectService)
	c.MediaHandler = handler.NewMediaHandler(c.Presigner)

	return c
}

// Router builds the HTTP surface over the container's handlers
func (c *Container) Router() *gin.Engine {
	return handler.NewRouter(&handler.RouterConfig{
		Auth:          c.AuthHandler,
		Member:        c.MemberHandler,
		Job:           c.JobHandler,
		Portfolio:     c.PortfolioHandler,
		Project:       c.ProjectHandler,
		Media:         c.MediaHandler,
		Health:        c.HealthHandler,
		Authenticator: c.AuthService,
		Logger:        c.logger,
		CORS:          c.cors,
		Idempotency:   c.idempotency,
	})
}
