package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/subtrack/api/controllers"
	"github.com/angelmondragon/subtrack/api/middleware"
	"github.com/angelmondragon/subtrack/internal/subscriptions"
	"github.com/angelmondragon/subtrack/internal/users"
	"github.com/angelmondragon/subtrack/pkg/config"
	"github.com/angelmondragon/subtrack/pkg/logger"
	"github.com/angelmondragon/subtrack/pkg/metrics"
	"github.com/angelmondragon/subtrack/pkg/mongo"
	"github.com/angelmondragon/subtrack/web"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	store mongo.Pinger,
	httpMetrics *metrics.HTTPMetrics,
	metricsGatherer prometheus.Gatherer,
	subscriptionService subscriptions.Service,
	userService users.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, store))
	})

	if metricsGatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(metricsGatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/subscriptions", func(r chi.Router) {
		r.Get("/", controllers.SubscriptionList(subscriptionService, logg))
		r.Post("/", controllers.SubscriptionCreate(subscriptionService, logg))
	})

	r.Route("/users", func(r chi.Router) {
		r.Get("/", controllers.UserList(userService, logg))
		r.Post("/", controllers.UserCreate(userService, logg))
		r.Put("/{id}", controllers.UserUpdate(userService, logg))
	})

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/dashboard/users", http.StatusFound)
	})
	r.Route("/dashboard", func(r chi.Router) {
		r.Get("/users", web.UsersPage(logg))
		r.Get("/subscriptions", web.SubscriptionsPage(logg))
	})
	r.Handle("/static/*", web.Static())

	return r
}
