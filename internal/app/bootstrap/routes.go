// internal/app/bootstrap/routes.go
package bootstrap

import (
	"context"
	"net/http"
	"time"

	contactsfeature "github.com/edumanage/schoolsite/internal/app/features/contacts"
	healthfeature "github.com/edumanage/schoolsite/internal/app/features/health"
	statsfeature "github.com/edumanage/schoolsite/internal/app/features/stats"
	testimonialsfeature "github.com/edumanage/schoolsite/internal/app/features/testimonials"
	"github.com/edumanage/schoolsite/internal/app/services/contactsvc"
	"github.com/edumanage/schoolsite/internal/app/services/statssvc"
	"github.com/edumanage/schoolsite/internal/app/services/testimonialsvc"
	contactstore "github.com/edumanage/schoolsite/internal/app/store/contacts"
	statsstore "github.com/edumanage/schoolsite/internal/app/store/stats"
	metricsstore "github.com/edumanage/schoolsite/internal/app/store/metrics"
	testimonialstore "github.com/edumanage/schoolsite/internal/app/store/testimonials"
	"github.com/edumanage/schoolsite/internal/app/system/adminauth"
	"github.com/edumanage/schoolsite/internal/app/system/metrics"
	"github.com/edumanage/schoolsite/internal/app/system/ratelimit"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. The router serves:
//   - /api            liveness message
//   - /health         database-aware health check
//   - /metrics        Prometheus exposition
//   - /api/contacts   public submit, admin list and status update
//   - /api/testimonials
//   - /api/stats
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	guard, err := adminauth.New(appCfg.AdminTokenHash, logger)
	if err != nil {
		logger.Error("admin guard init failed", zap.Error(err))
		return nil, err
	}
	if !guard.Enabled() {
		logger.Warn("admin token not configured; admin routes are open", zap.String("env", coreCfg.Env))
	}

	var limiter *ratelimit.Limiter
	if appCfg.ContactRateLimit > 0 {
		limiter = ratelimit.New(appCfg.ContactRateLimit, appCfg.ContactRateBurst)
	}

	m := metrics.New()
	db := deps.MongoDatabase
	if err := m.WatchContent(func(ctx context.Context) metricsstore.Counts {
		return metricsstore.FetchContentCounts(ctx, db)
	}); err != nil {
		logger.Error("content gauges init failed", zap.Error(err))
		return nil, err
	}

	contactsHandler := contactsfeature.NewHandler(contactsvc.New(contactstore.New(db)), m, logger)
	testimonialsHandler := testimonialsfeature.NewHandler(testimonialsvc.New(testimonialstore.New(db)), m, logger)
	statsHandler := statsfeature.NewHandler(statssvc.New(statsstore.New(db)), m, logger)
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	if appCfg.TrustProxyHeaders {
		r.Use(middleware.RealIP)
	}
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(cors.Handler(cors.Options{
		AllowOriginFunc:  func(*http.Request, string) bool { return true },
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(m.Middleware)

	r.Get("/api", healthHandler.Live)
	r.Mount("/health", healthfeature.Routes(healthHandler))
	r.Handle("/metrics", m.Handler())

	r.Mount("/api/contacts", contactsfeature.Routes(contactsHandler, guard, limiter))
	r.Mount("/api/testimonials", testimonialsfeature.Routes(testimonialsHandler, guard))
	r.Mount("/api/stats", statsfeature.Routes(statsHandler, guard))

	return r, nil
}

// requestLogger logs one line per request at Info level.
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Info("http request",
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)))
		})
	}
}
