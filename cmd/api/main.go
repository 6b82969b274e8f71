package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"school-cms/internal/config"
	"school-cms/internal/domain/entity"
	"school-cms/internal/infra/adapter/blob"
	"school-cms/internal/infra/fallback"
	"school-cms/internal/infra/mailer"
	"school-cms/internal/infra/objectstore"
	"school-cms/internal/observability/logging"
	"school-cms/internal/observability/tracing"

	contactUC "school-cms/internal/usecase/contact"
	contentUC "school-cms/internal/usecase/content"
	"school-cms/internal/usecase/media"
	siteUC "school-cms/internal/usecase/site"

	hhttp "school-cms/internal/handler/http"
	hadmin "school-cms/internal/handler/http/admin"
	hauth "school-cms/internal/handler/http/auth"
	hcontact "school-cms/internal/handler/http/contact"
	hcontent "school-cms/internal/handler/http/content"
	hfeed "school-cms/internal/handler/http/feed"
	"school-cms/internal/handler/http/middleware"
	"school-cms/internal/handler/http/requestid"
	hsite "school-cms/internal/handler/http/site"
	hupload "school-cms/internal/handler/http/upload"
	authservice "school-cms/internal/service/auth"

	_ "school-cms/docs" // swagger docs
)

// @title           School CMS API
// @version         1.0
// @description     学校サイトのコンテンツ (イベント・ギャラリー・ニュース) 管理 API
// @description     お問い合わせ送信、画像アップロード、サイト表示用データを提供します。

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT トークンによる認証。ヘッダーに "Bearer {token}" 形式で指定してください。

// defaultBodyLimit caps JSON request bodies.
const defaultBodyLimit = 1 << 20

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := initLogger(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracing, err := tracing.Setup(ctx, cfg.OTLPEndpoint)
	if err != nil {
		logger.Error("failed to set up tracing", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer flushCancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Error("failed to flush traces", slog.Any("error", err))
		}
	}()

	components, err := setupServer(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to set up server", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := components.CloseCache(); err != nil {
			logger.Error("failed to close fallback cache", slog.Any("error", err))
		}
	}()

	runServer(ctx, cancel, cfg, logger, components)
}

// initLogger builds the process logger from LOG_LEVEL and LOG_FORMAT.
func initLogger(cfg *config.Config) *slog.Logger {
	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)
	return logger
}

// ServerComponents holds components needed for server operation and cleanup.
type ServerComponents struct {
	Handler    http.Handler
	Limiter    *middleware.RateLimiter // nil when rate limiting is disabled
	CloseCache func() error
}

// setupServer wires storage, use cases and routes.
func setupServer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*ServerComponents, error) {
	store := initObjectStore(cfg, logger)
	repo := blob.NewCollectionRepo(store, logger)

	contents := contentUC.Services{
		Events:  contentUC.NewService[entity.Event](repo, entity.CollectionEvents, logger),
		Gallery: contentUC.NewService[entity.GalleryImage](repo, entity.CollectionGallery, logger),
		News:    contentUC.NewService[entity.NewsArticle](repo, entity.CollectionNews, logger),
	}

	backend, closeCache, err := fallback.Open(ctx, fallback.Options{
		Driver:        cfg.Cache.Driver,
		Dir:           cfg.Cache.Dir,
		DSN:           cfg.Cache.DSN,
		RedisAddr:     cfg.Cache.RedisAddr,
		RedisPassword: cfg.Cache.RedisPassword,
		RedisDB:       cfg.Cache.RedisDB,
		RedisPrefix:   cfg.Cache.RedisPrefix,
		RedisTTL:      cfg.Cache.RedisTTL,
	}, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("fallback cache ready", slog.String("driver", cfg.Cache.Driver))

	// サイトストアはコンテンツサービスを正とする
	site := siteUC.NewStore(siteUC.Remotes{
		Events:  contents.Events,
		Gallery: contents.Gallery,
		News:    contents.News,
	}, fallback.New(backend, logger), logger)
	if err := site.Load(ctx); err != nil {
		_ = closeCache()
		return nil, err
	}

	contactSvc, err := initContact(cfg, logger)
	if err != nil {
		_ = closeCache()
		return nil, err
	}

	ipExtractor, err := initIPExtractor(cfg, logger)
	if err != nil {
		_ = closeCache()
		return nil, err
	}

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = middleware.NewRateLimiter(cfg.RateLimit.Limit, cfg.RateLimit.Window, ipExtractor)
		logger.Info("rate limiting initialized",
			slog.Int("ip_limit", cfg.RateLimit.Limit),
			slog.Duration("ip_window", cfg.RateLimit.Window))
	} else {
		logger.Warn("rate limiting is DISABLED - not recommended for production")
	}

	authSvc := authservice.NewAuthService(
		hauth.NewBcryptProvider(cfg.Auth.AdminEmail, cfg.Auth.AdminPasswordHash),
		authservice.TokenConfig{Secret: []byte(cfg.Auth.JWTSecret), TTL: cfg.Auth.JWTTTL},
	)

	mux := setupRoutes(routeDeps{
		cfg:      cfg,
		logger:   logger,
		store:    store,
		cache:    backend,
		contents: contents,
		site:     site,
		contact:  contactSvc,
		media:    &media.Service{Store: store, MaxBytes: cfg.Upload.MaxBytes, Logger: logger},
		auth:     authSvc,
		limiter:  limiter,
	})

	return &ServerComponents{
		Handler:    applyMiddleware(cfg, logger, mux),
		Limiter:    limiter,
		CloseCache: closeCache,
	}, nil
}

// initObjectStore uses the hosted blob API when a token is configured and an
// in-memory store otherwise.
func initObjectStore(cfg *config.Config, logger *slog.Logger) objectstore.Store {
	if cfg.Blob.UseAPI() {
		logger.Info("object store: blob API", slog.String("base_url", cfg.Blob.BaseURL))
		return objectstore.NewBlobAPI(objectstore.BlobAPIConfig{
			BaseURL: cfg.Blob.BaseURL,
			Token:   cfg.Blob.Token,
			Timeout: cfg.Blob.Timeout,
		}, nil)
	}
	logger.Warn("object store: BLOB_READ_WRITE_TOKEN not set, content is kept in memory only")
	return objectstore.NewMemory()
}

func initContact(cfg *config.Config, logger *slog.Logger) (*contactUC.Service, error) {
	to, err := cfg.Mail.Recipients()
	if err != nil {
		return nil, err
	}

	var m mailer.Mailer
	switch cfg.Mail.Driver {
	case "sendgrid":
		from, err := cfg.Mail.Sender()
		if err != nil {
			return nil, err
		}
		m = mailer.NewSendGrid(cfg.Mail.SendGridAPIKey, from, cfg.Mail.SendGridHost)
		logger.Info("contact mail: sendgrid", slog.Int("recipients", len(to)))
	default:
		m = mailer.Log{Logger: logger}
		logger.Warn("contact mail: log driver, messages are not delivered")
	}
	return &contactUC.Service{Mailer: m, To: to, Logger: logger}, nil
}

func initIPExtractor(cfg *config.Config, logger *slog.Logger) (middleware.IPExtractor, error) {
	if len(cfg.RateLimit.TrustedProxies) == 0 {
		logger.Info("rate limiting: using RemoteAddr (secure mode, proxy headers ignored)")
		return &middleware.RemoteAddrExtractor{}, nil
	}
	proxies, err := middleware.ParseTrustedProxies(cfg.RateLimit.TrustedProxies)
	if err != nil {
		return nil, err
	}
	logger.Info("rate limiting: trusted proxy mode enabled",
		slog.Int("trusted_proxies_count", len(cfg.RateLimit.TrustedProxies)))
	return middleware.NewTrustedProxyExtractor(proxies), nil
}

type routeDeps struct {
	cfg      *config.Config
	logger   *slog.Logger
	store    objectstore.Store
	cache    fallback.Backend
	contents contentUC.Services
	site     *siteUC.Store
	contact  *contactUC.Service
	media    *media.Service
	auth     *authservice.AuthService
	limiter  *middleware.RateLimiter
}

// setupRoutes registers all HTTP routes (public and protected).
func setupRoutes(d routeDeps) *http.ServeMux {
	bodyLimit := hhttp.LimitRequestBody(defaultBodyLimit)
	requireAdmin := hauth.RequireAdmin(d.auth)
	admin := func(h http.Handler) http.Handler { return bodyLimit(requireAdmin(h)) }
	rateLimited := func(h http.Handler) http.Handler {
		h = bodyLimit(h)
		if d.limiter != nil {
			h = d.limiter.Middleware(h)
		}
		return h
	}

	mux := http.NewServeMux()

	// 認証
	mux.Handle("POST /auth/token", rateLimited(hauth.TokenHandler(d.auth, d.logger)))
	mux.Handle("GET  /auth/session", requireAdmin(http.HandlerFunc(hauth.SessionHandler)))

	// コンテンツ: 読み取りはドキュメントから、更新はサイトストア経由
	hcontent.Register(mux, hcontent.Collections{
		Events:  hcontent.Collection[entity.Event]{Name: entity.CollectionEvents, Reader: d.contents.Events, Writer: d.site.Events},
		Gallery: hcontent.Collection[entity.GalleryImage]{Name: entity.CollectionGallery, Reader: d.contents.Gallery, Writer: d.site.Gallery},
		News:    hcontent.Collection[entity.NewsArticle]{Name: entity.CollectionNews, Reader: d.contents.News, Writer: d.site.News},
	}, admin)

	uploadLimit := hhttp.LimitRequestBody(d.cfg.Upload.MaxBytes + defaultBodyLimit)
	mux.Handle("POST /upload", requireAdmin(uploadLimit(hupload.Handler{Svc: d.media})))

	hcontact.Register(mux, d.contact, rateLimited)
	hsite.Register(mux, d.site)
	mux.Handle("GET /feed/news.xml", hfeed.Handler{
		News:        d.site.AllPublishedNews,
		Title:       d.cfg.SiteName,
		Description: "Latest announcements",
		SiteURL:     d.cfg.SiteURL,
	})

	hadmin.Register(mux,
		hadmin.ResetHandler{Content: d.contents, Site: d.site},
		hadmin.BlobsHandler{Store: d.store},
		admin)

	// ヘルスチェックエンドポイント（認証不要）
	mux.Handle("GET /health", &hhttp.HealthHandler{Store: d.store, Cache: d.cache, Version: d.cfg.Version})
	mux.Handle("GET /ready", &hhttp.ReadyHandler{Site: d.site})
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())

	// Swagger UI（認証不要）
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	return mux
}

// applyMiddleware wraps the handler with the middleware chain.
// Order: CORS → Security headers → Request ID → Input limits → Tracing → Recovery → Logging → Metrics
func applyMiddleware(cfg *config.Config, logger *slog.Logger, handler http.Handler) http.Handler {
	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowedOrigins = cfg.CORSOrigins
	corsConfig.Logger = logger

	logger.Info("CORS enabled",
		slog.Any("allowed_origins", corsConfig.AllowedOrigins),
		slog.Any("allowed_methods", corsConfig.AllowedMethods),
		slog.Int("max_age", corsConfig.MaxAge))

	secConfig := middleware.DefaultSecurityHeadersConfig()
	secConfig.Enabled = cfg.CSPEnabled
	secConfig.ReportOnly = cfg.CSPReportOnly

	return hhttp.Chain(handler,
		middleware.CORS(corsConfig),
		middleware.SecurityHeaders(secConfig),
		requestid.Middleware,
		hhttp.InputLimits(),
		tracing.Middleware,
		hhttp.Recover(logger),
		hhttp.Logging(logger),
		hhttp.MetricsMiddleware,
	)
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(ctx context.Context, cancel context.CancelFunc, cfg *config.Config, logger *slog.Logger, components *ServerComponents) {
	if components.Limiter != nil {
		go components.Limiter.StartCleanup(ctx, cfg.RateLimit.CleanupInterval, cfg.RateLimit.IdleTTL, "ip")
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           components.Handler,
		ReadHeaderTimeout: 10 * time.Second, // Slowloris 対策
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", cfg.Addr),
			slog.String("version", cfg.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	// バックグラウンド処理を停止
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
