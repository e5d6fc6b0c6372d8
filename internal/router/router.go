package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vendops/api/internal/config"
	"github.com/vendops/api/internal/database"
	"github.com/vendops/api/internal/handler"
	"github.com/vendops/api/internal/mail"
	mw "github.com/vendops/api/internal/middleware"
	"github.com/vendops/api/internal/service"
	"github.com/vendops/api/internal/ws"
	"go.uber.org/zap"
)

// Integrations are the optional backends chosen at startup. Each one has a
// no-op stand-in so the router always gets a usable value.
type Integrations struct {
	Cache     service.JSONCache
	Publisher service.EventPublisher
	Mailer    mail.Mailer
}

// New creates a Chi router with all application routes wired up.
// Session auth runs on every request; handlers gate with RequireAuth and
// RequireRole where needed.
func New(cfg *config.Config, queries *database.Queries, pool *pgxpool.Pool, hub *ws.Hub, in Integrations) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mw.RequestLogger(zap.L()))
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	// Public infra routes
	handler.NewHealthHandler().RegisterRoutes(r)
	r.Handle("/metrics", promhttp.Handler())

	// WebSocket route (handles auth internally via cookie or ?token=)
	r.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(hub, queries, w, r)
	})

	// Services
	stats := service.NewStatsService(queries, in.Cache, cfg.Redis.StatsTTL)
	notifier := service.NewNotifier(queries, hub, in.Publisher, stats)
	workflow := service.NewOrderWorkflow(queries, notifier)
	checkout := service.NewCheckoutService(pool, func(db database.DBTX) service.CheckoutStore {
		return database.New(db)
	}, notifier)

	r.Route("/api", func(r chi.Router) {
		r.Use(mw.Authenticate(queries))

		// Auth and account
		authHandler := handler.NewAuthHandler(queries, in.Mailer, handler.AuthConfig{
			SessionTTL:   cfg.Session.TTL,
			CookieSecure: cfg.Session.CookieSecure,
			ResetSecret:  cfg.Session.Secret,
			AppBaseURL:   cfg.Mail.AppBaseURL,
		})
		authHandler.RegisterRoutes(r)

		userHandler := handler.NewUserHandler(queries, cfg.Session.Secret)
		userHandler.RegisterRoutes(r)

		// Catalog
		categoryHandler := handler.NewCategoryHandler(queries, pool, func(db database.DBTX) handler.CategoryStore {
			return database.New(db)
		})
		categoryHandler.RegisterRoutes(r)

		subcategoryHandler := handler.NewSubcategoryHandler(queries)
		r.Route("/subcategories", subcategoryHandler.RegisterRoutes)

		productHandler := handler.NewProductHandler(queries, stats)
		r.Route("/products", productHandler.RegisterRoutes)

		// Orders
		orderHandler := handler.NewOrderHandler(workflow, queries, stats)
		r.Route("/orders", orderHandler.RegisterRoutes)

		checkoutHandler := handler.NewCheckoutHandler(checkout)
		checkoutHandler.RegisterRoutes(r)

		// Operations (admin only)
		deliveryHandler := handler.NewDeliveryHandler(queries, notifier)
		r.Route("/deliveries", deliveryHandler.RegisterRoutes)

		assemblyHandler := handler.NewAssemblyHandler(queries)
		r.Route("/assemblies", assemblyHandler.RegisterRoutes)

		maintenanceHandler := handler.NewMaintenanceHandler(queries)
		r.Route("/maintenance", maintenanceHandler.RegisterRoutes)

		reportsHandler := handler.NewReportsHandler(stats, queries)
		reportsHandler.RegisterRoutes(r)

		// Notifications
		notificationHandler := handler.NewNotificationHandler(queries)
		r.Route("/notifications", notificationHandler.RegisterRoutes)
	})

	zap.L().Info("router initialized")
	return r
}
