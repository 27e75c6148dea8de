package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/mesto-api/config"
	"github.com/oksasatya/mesto-api/internal/application"
	"github.com/oksasatya/mesto-api/internal/container"
	pginfra "github.com/oksasatya/mesto-api/internal/infrastructure/postgres"
	"github.com/oksasatya/mesto-api/internal/infrastructure/search"
	handlers "github.com/oksasatya/mesto-api/internal/interface/http"
	"github.com/oksasatya/mesto-api/internal/interface/middleware"
	"github.com/oksasatya/mesto-api/internal/router/modules"
	"github.com/oksasatya/mesto-api/pkg/helpers"
)

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	Users       handlers.UserService
	Cards       handlers.CardService
	JWT         *helpers.JWTManager
	Cookies     *helpers.Manager
	Revocations middleware.RevocationChecker // nil: signout is client-side only
	Redis       *redis.Client                // nil: no rate limiting
	DB          modules.Pinger
	Metrics     *prometheus.Registry // nil: no /metrics or /debug/vars
	Logger      *logrus.Logger
}

// BuildDeps wires repositories and services from the container.
func BuildDeps(ctn *container.Container) Deps {
	cfg := ctn.Config

	userOpts := []application.UserOption{application.WithAppName(cfg.AppName)}
	if ctn.ES != nil {
		userOpts = append(userOpts, application.WithSearch(search.NewUserIndex(ctn.ES, cfg.ESUsersIndex)))
	}
	if ctn.GCS != nil {
		userOpts = append(userOpts, application.WithAvatars(helpers.NewGCSUploader(ctn.GCS, cfg.GCSBucket)))
	}
	if ctn.RabbitPub != nil {
		userOpts = append(userOpts, application.WithJobs(ctn.RabbitPub))
	}

	var revocations middleware.RevocationChecker
	if ctn.Redis != nil {
		denylist := helpers.NewDenylist(ctn.Redis)
		userOpts = append(userOpts, application.WithRevoker(denylist))
		revocations = denylist
	}

	defaults := application.ProfileDefaults{
		Name:   cfg.DefaultUserName,
		About:  cfg.DefaultUserAbout,
		Avatar: cfg.DefaultUserAvatar,
	}
	users := application.NewUserService(pginfra.NewUserRepository(ctn.PG), ctn.JWT, ctn.Logger, defaults, userOpts...)
	cards := application.NewCardService(pginfra.NewCardRepository(ctn.PG), ctn.Logger)

	d := Deps{
		Users:       users,
		Cards:       cards,
		JWT:         ctn.JWT,
		Cookies:     helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure),
		Revocations: revocations,
		DB:          ctn.PG,
		Logger:      ctn.Logger,
	}
	if cfg.RateLimitEnabled {
		d.Redis = ctn.Redis
	}
	if cfg.DebugMetricsEnabled {
		d.Metrics = ctn.Metrics
	}
	return d
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry, d Deps) {
	auth := middleware.Auth(d.JWT, d.Revocations, d.Logger)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(d.Users, d.Logger, d.Cookies), auth, d.Redis))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(d.Users, d.Logger), auth))
	r.Add(modules.NewCardModule(handlers.NewCardHandler(d.Cards, d.Logger), auth, d.Redis))

	var gatherer prometheus.Gatherer
	if d.Metrics != nil {
		gatherer = d.Metrics
	}
	r.Add(modules.NewDebugModule(d.DB, gatherer, d.Redis))
}

// NewEngine builds the gin engine with the global middleware chain and all modules.
func NewEngine(cfg *config.Config, d Deps) *gin.Engine {
	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.TrustedProxyList()); err != nil {
		if d.Logger != nil {
			d.Logger.WithError(err).Warn("invalid TRUSTED_PROXIES; forwarding headers ignored")
		}
		_ = engine.SetTrustedProxies(nil)
	}
	if cfg.BehindCloudflare {
		engine.TrustedPlatform = gin.PlatformCloudflare
	}
	engine.Use(
		middleware.RequestIDMiddleware(),
		middleware.RealIP(),
		middleware.Recovery(d.Logger),
		middleware.ErrorHandler(d.Logger),
	)
	if d.Metrics != nil {
		engine.Use(middleware.NewHTTPMetrics(d.Metrics).Handler())
	}
	if cfg.HTTPLogEnabled && d.Logger != nil {
		engine.Use(middleware.AccessLog(d.Logger))
	}
	if origins := cfg.CORSOrigins(); len(origins) > 0 {
		engine.Use(cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.HeaderRequestID},
			ExposeHeaders:    []string{middleware.HeaderRequestID},
			AllowCredentials: true,
		}))
	}
	engine.NoRoute(middleware.NoRoute())

	reg := NewRegistry(engine, cfg.APIPrefix)
	InitModules(reg, d)
	reg.RegisterAll()
	return engine
}
