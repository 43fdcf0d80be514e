package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/mk-cardoso198/engajapro-digital-hub/internal/accounts"
	"github.com/mk-cardoso198/engajapro-digital-hub/internal/auth"
	"github.com/mk-cardoso198/engajapro-digital-hub/internal/cache"
	"github.com/mk-cardoso198/engajapro-digital-hub/internal/clients"
	"github.com/mk-cardoso198/engajapro-digital-hub/internal/config"
	"github.com/mk-cardoso198/engajapro-digital-hub/internal/db"
	"github.com/mk-cardoso198/engajapro-digital-hub/internal/genimages"
	"github.com/mk-cardoso198/engajapro-digital-hub/internal/images"
	"github.com/mk-cardoso198/engajapro-digital-hub/internal/middleware"
	"github.com/mk-cardoso198/engajapro-digital-hub/internal/projects"
	"github.com/mk-cardoso198/engajapro-digital-hub/internal/realtime"
	"github.com/mk-cardoso198/engajapro-digital-hub/internal/services"
	"github.com/mk-cardoso198/engajapro-digital-hub/internal/storage"
	"github.com/mk-cardoso198/engajapro-digital-hub/internal/validation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, cols, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Error("mongo connection failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("mongo connected")
	defer client.Disconnect(context.Background())

	if err := db.EnsureIndexes(ctx, cols); err != nil {
		logger.Error("index creation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var cacheStore cache.Cache = cache.NewNoop()
	if cfg.RedisURL != "" || cfg.RedisAddr != "" {
		var redisCache *cache.RedisCache
		var err error
		if cfg.RedisURL != "" {
			redisCache, err = cache.NewRedisFromURL(cfg.RedisURL)
		} else {
			redisCache = cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		}
		if err != nil {
			logger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if err := redisCache.Ping(ctx); err != nil {
			logger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("redis connected")
		cacheStore = redisCache
	}
	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second

	var jwtManager *auth.Manager
	if cfg.JWTSecret != "" {
		jwtManager = &auth.Manager{
			Secret:     []byte(cfg.JWTSecret),
			AccessTTL:  time.Duration(cfg.AccessTTLMinutes) * time.Minute,
			RefreshTTL: time.Duration(cfg.RefreshTTLMinutes) * time.Minute,
			Issuer:     "engajapro-backend",
		}
	}

	uploader, err := storage.NewS3(ctx, cfg.S3Region, cfg.S3Endpoint, cfg.StoragePublicURL)
	if err != nil {
		logger.Error("storage setup failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	val := validation.New()

	clientsRepo := clients.NewRepository(cols.Clients)
	clientsService := clients.NewService(clientsRepo, cfg.Timezone)
	clientsHandler := clients.NewHandler(clientsService, val, logger, cacheStore, cacheTTL)

	servicesRepo := services.NewRepository(cols.Services)
	servicesManager := services.NewManager(servicesRepo, cfg.Timezone)
	servicesHandler := services.NewHandler(servicesManager, val, logger, cacheStore, cacheTTL)

	projectsRepo := projects.NewRepository(cols.Projects)
	projectsService := projects.NewService(projectsRepo, cfg.Timezone)
	projectsHandler := projects.NewHandler(projectsService, val, logger, cacheStore, cacheTTL)

	accountsRepo := accounts.NewRepository(cols.Users)
	accountsService := accounts.NewService(accountsRepo, cfg.Timezone)
	accountsHandler := accounts.NewHandler(accountsService, jwtManager, val, logger, cfg.AdminSetupKey, cfg.CookieSecure)

	imagesService := images.NewService(uploader, cfg.MaxUploadMB)
	imagesHandler := images.NewHandler(imagesService, logger)

	generator := genimages.NewGenerator(cfg.AIGatewayURL, cfg.AIGatewayKey, uploader)
	if generator == nil {
		logger.Info("image generation disabled")
	}
	genHandler := genimages.NewHandler(generator, val, logger)

	hub := realtime.NewHub()
	realtimeHandler := realtime.NewHandler(hub, logger, cfg.FrontendOrigins)
	if cfg.RealtimeEnabled {
		watcher := realtime.NewWatcher(hub, cacheStore, logger)
		watcher.Watch(db.CollectionClients, cols.Clients, clients.PublicCacheKey)
		watcher.Watch(db.CollectionServices, cols.Services, services.PublicCacheKey)
		watcher.Watch(db.CollectionProjects, cols.Projects, projects.PublicCacheKey)
		watcher.Start(context.Background())
	} else {
		logger.Info("realtime watcher disabled")
	}

	adminGuard := middleware.AdminAuth(cfg.AdminAPIKey, jwtManager, accountsService.IsAdmin)

	r := chi.NewRouter()
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.FrontendOrigins))

	loginLimiter := middleware.NewRateLimiter(cfg.RateLimitLogin, time.Duration(cfg.RateLimitWindowSec)*time.Second)
	uploadLimiter := middleware.NewRateLimiter(cfg.RateLimitUpload, time.Duration(cfg.RateLimitWindowSec)*time.Second)

	// The request timeout stays off the websocket stream and the image
	// generation call; both outlive 30 seconds by design of their own
	// context budgets.
	requestTimeout := chiMiddleware.Timeout(30 * time.Second)

	r.Route("/api/v1", func(api chi.Router) {
		api.Group(func(public chi.Router) {
			public.Use(requestTimeout)
			public.Get("/clients", clientsHandler.PublicList)
			public.Get("/services", servicesHandler.PublicList)
			public.Get("/projects", projectsHandler.PublicList)
			public.Get("/projects/{id}", projectsHandler.PublicGet)
		})

		api.Route("/admin", func(admin chi.Router) {
			admin.Group(func(timed chi.Router) {
				timed.Use(requestTimeout)

				timed.With(loginLimiter.Middleware).Post("/register", accountsHandler.Register)
				timed.With(loginLimiter.Middleware).Post("/login", accountsHandler.Login)
				timed.Post("/refresh", accountsHandler.Refresh)
				timed.Post("/logout", accountsHandler.Logout)

				// Important (chi): middlewares must be attached before defining routes.
				// Login/refresh/logout stay public, everything else goes through the guard.
				timed.Group(func(protected chi.Router) {
					protected.Use(adminGuard)

					protected.Get("/session", accountsHandler.Session)
					protected.Post("/users", accountsHandler.CreateUser)
					protected.Patch("/users/{id}/password", accountsHandler.UpdatePassword)

					protected.Get("/clients", clientsHandler.AdminList)
					protected.Post("/clients", clientsHandler.AdminCreate)
					protected.Put("/clients/{id}", clientsHandler.AdminUpdate)
					protected.Patch("/clients/{id}/active", clientsHandler.AdminToggleActive)
					protected.Delete("/clients/{id}", clientsHandler.AdminDelete)

					protected.Get("/services", servicesHandler.AdminList)
					protected.Post("/services", servicesHandler.AdminCreate)
					protected.Put("/services/{id}", servicesHandler.AdminUpdate)
					protected.Patch("/services/{id}/active", servicesHandler.AdminToggleActive)
					protected.Delete("/services/{id}", servicesHandler.AdminDelete)

					protected.Get("/projects", projectsHandler.AdminList)
					protected.Post("/projects", projectsHandler.AdminCreate)
					protected.Put("/projects/{id}", projectsHandler.AdminUpdate)
					protected.Patch("/projects/{id}/archive", projectsHandler.AdminArchive)
					protected.Delete("/projects/{id}", projectsHandler.AdminDelete)

					protected.With(uploadLimiter.Middleware).Post("/uploads/{bucket}", imagesHandler.Upload)
				})
			})

			admin.Group(func(long chi.Router) {
				long.Use(adminGuard)
				long.Get("/events", realtimeHandler.Events)
				long.Post("/services/generate-image", genHandler.Generate)
			})
		})
	})

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: r,
	}

	go func() {
		logger.Info("server started", slog.String("addr", cfg.ServerAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.String("error", err.Error()))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.String("error", err.Error()))
	}
	logger.Info("server stopped")
}
