package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appcatalog "github.com/orderhub/backend/internal/application/catalog"
	appidentity "github.com/orderhub/backend/internal/application/identity"
	appordering "github.com/orderhub/backend/internal/application/ordering"
	domordering "github.com/orderhub/backend/internal/domain/ordering"
	"github.com/orderhub/backend/internal/infrastructure/auth"
	"github.com/orderhub/backend/internal/infrastructure/config"
	"github.com/orderhub/backend/internal/infrastructure/logger"
	"github.com/orderhub/backend/internal/infrastructure/notification"
	"github.com/orderhub/backend/internal/infrastructure/persistence"
	"github.com/orderhub/backend/internal/interfaces/http/handler"
	"github.com/orderhub/backend/internal/interfaces/http/middleware"
	"github.com/orderhub/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log)
	defer logger.Sync(log)

	log.Info("starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port))

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Redis backs the token blacklist and confirmation tokens; without it
	// the in-memory stores keep a single instance fully functional.
	var (
		blacklist     auth.TokenBlacklist
		confirmations auth.ConfirmationStore
	)
	if cfg.Redis.Host != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer rdb.Close()
		blacklist = auth.NewRedisTokenBlacklist(rdb)
		confirmations = auth.NewRedisConfirmationStore(rdb)
		log.Info("using redis token stores", zap.String("host", cfg.Redis.Host))
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
		confirmations = auth.NewInMemoryConfirmationStore()
		log.Warn("redis not configured, using in-memory token stores")
	}

	tokens := auth.NewTokenService(cfg.JWT)

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	contactRepo := persistence.NewGormContactRepository(db.DB)
	shopRepo := persistence.NewGormShopRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	productInfoRepo := persistence.NewGormProductInfoRepository(db.DB)
	parameterRepo := persistence.NewGormParameterRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	catalogWriter := persistence.NewGormCatalogWriter(db.DB)

	// Notifications go out asynchronously so a slow mail server never
	// blocks a request.
	var sink domordering.Notifier
	if cfg.SMTP.Host != "" {
		sink = notification.NewSMTPSink(cfg.SMTP)
	} else {
		log.Warn("smtp not configured, notifications are logged only")
		sink = notification.NewLogSink(log)
	}
	notifier := notification.NewAsyncNotifier(sink, log)

	// Application services
	authService := appidentity.NewAuthService(userRepo, tokens, blacklist, confirmations, notifier, log)
	accountService := appidentity.NewAccountService(userRepo, contactRepo)
	contactService := appidentity.NewContactService(contactRepo)
	importService := appcatalog.NewImportService(userRepo, catalogWriter, log)
	queryService := appcatalog.NewQueryService(shopRepo, categoryRepo, productInfoRepo, parameterRepo)
	partnerService := appcatalog.NewPartnerService(userRepo, shopRepo)
	basketService := appordering.NewBasketService(orderRepo, productInfoRepo, productRepo, contactRepo)
	orderService := appordering.NewOrderService(orderRepo, productInfoRepo, productRepo, shopRepo, contactRepo, userRepo, notifier, log)

	// HTTP wiring
	authMW := middleware.RequireAuth(tokens, blacklist)
	shopMW := middleware.RequireShop()

	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		logger.Recovery(log),
		logger.RequestLogger(log),
		middleware.CORSWithConfig(middleware.DefaultCORSConfig()),
	)
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("invalid trusted proxies", zap.Error(err))
		}
	}

	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(handler.NewSystemHandler(db)).
		Register(handler.NewAuthHandler(authService, accountService, authMW)).
		Register(handler.NewContactHandler(contactService, authMW)).
		Register(handler.NewCatalogHandler(queryService)).
		Register(handler.NewPartnerHandler(importService, partnerService, orderService, authMW, shopMW)).
		Register(handler.NewBasketHandler(basketService, authMW)).
		Register(handler.NewOrderHandler(orderService, authMW)).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	log.Info("server stopped")
}
