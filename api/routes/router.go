package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aidosmk/food-delivery-backend/api/controllers"
	"github.com/aidosmk/food-delivery-backend/api/middleware"
	banner "github.com/aidosmk/food-delivery-backend/internal/banners"
	"github.com/aidosmk/food-delivery-backend/internal/catalog"
	"github.com/aidosmk/food-delivery-backend/internal/chat"
	discount "github.com/aidosmk/food-delivery-backend/internal/discounts"
	"github.com/aidosmk/food-delivery-backend/internal/feedback"
	order "github.com/aidosmk/food-delivery-backend/internal/orders"
	user "github.com/aidosmk/food-delivery-backend/internal/users"
	"github.com/aidosmk/food-delivery-backend/pkg/auth/session"
	"github.com/aidosmk/food-delivery-backend/pkg/config"
	"github.com/aidosmk/food-delivery-backend/pkg/db"
	"github.com/aidosmk/food-delivery-backend/pkg/enums"
	"github.com/aidosmk/food-delivery-backend/pkg/logger"
	"github.com/aidosmk/food-delivery-backend/pkg/metrics"
	"github.com/aidosmk/food-delivery-backend/pkg/redis"
)

// Services bundles the domain services the router exposes.
type Services struct {
	Users     user.Service
	Catalog   catalog.Service
	Orders    order.Service
	Discounts discount.Service
	Banners   banner.Service
	Feedback  feedback.Service
	Chat      chat.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	httpMetrics *metrics.HTTPMetrics,
	gatherer prometheus.Gatherer,
	dbP db.Pinger,
	redisClient *redis.Client,
	sessions session.AccessSessionChecker,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.CORS(),
		middleware.Logging(logg, httpMetrics),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, redisClient, logg)).Post("/register", controllers.AuthRegister(svcs.Users, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.AuthLogin(svcs.Users, logg))
		r.Post("/refresh", controllers.AuthRefresh(svcs.Users, logg))
		r.Post("/logout", controllers.AuthLogout(svcs.Users, cfg.JWT, logg))
	})

	// Public browse surface. Quotes work anonymously; a valid token just
	// unlocks the user-bound discount predicates.
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/categories", controllers.ListCategories(svcs.Catalog, logg))
		r.Get("/foods", controllers.ListFoods(svcs.Catalog, logg))
		r.Get("/foods/{foodId}", controllers.GetFood(svcs.Catalog, logg))
		r.Get("/foods/{foodId}/feedback", controllers.ListFoodFeedback(svcs.Feedback, logg))
		r.Get("/banners", controllers.ListVisibleBanners(svcs.Banners, logg))

		r.With(middleware.OptionalAuth(cfg.JWT, sessions, logg)).
			Post("/orders/quote", controllers.QuoteOrder(svcs.Orders, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, sessions, logg))

			r.Route("/users/me", func(r chi.Router) {
				r.Get("/", controllers.Profile(svcs.Users, logg))
				r.Patch("/", controllers.UpdateProfile(svcs.Users, logg))
				r.Post("/addresses", controllers.AddAddress(svcs.Users, logg))
			})

			r.Route("/orders", func(r chi.Router) {
				r.Post("/", controllers.CreateOrder(svcs.Orders, logg))
				r.Get("/", controllers.ListOrders(svcs.Orders, logg))
				r.Get("/{orderId}", controllers.GetOrder(svcs.Orders, logg))
			})

			r.Post("/foods/{foodId}/feedback", controllers.CreateFoodFeedback(svcs.Feedback, logg))
			r.Delete("/feedback/{feedbackId}", controllers.DeleteFoodFeedback(svcs.Feedback, logg))

			r.Route("/chats", func(r chi.Router) {
				r.Post("/", controllers.StartChat(svcs.Chat, logg))
				r.Get("/", controllers.ListChats(svcs.Chat, logg))
				r.Get("/{chatId}/messages", controllers.ListChatMessages(svcs.Chat, logg))
				r.Post("/{chatId}/messages", controllers.SendChatMessage(svcs.Chat, logg))
				r.Post("/{chatId}/read", controllers.MarkChatRead(svcs.Chat, logg))
			})
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessions, logg))
		r.Use(middleware.RequireRole(logg, enums.UserRoleAdmin, enums.UserRoleManager))

		r.Route("/categories", func(r chi.Router) {
			r.Post("/", controllers.CreateCategory(svcs.Catalog, logg))
			r.Delete("/{categoryId}", controllers.DeleteCategory(svcs.Catalog, logg))
		})
		r.Route("/foods", func(r chi.Router) {
			r.Post("/", controllers.CreateFood(svcs.Catalog, logg))
			r.Patch("/{foodId}", controllers.UpdateFood(svcs.Catalog, logg))
			r.Delete("/{foodId}", controllers.DeleteFood(svcs.Catalog, logg))
		})
		r.Route("/additions", func(r chi.Router) {
			r.Post("/", controllers.CreateAddition(svcs.Catalog, logg))
			r.Get("/", controllers.ListAdditions(svcs.Catalog, logg))
		})
		r.Route("/sizes", func(r chi.Router) {
			r.Post("/", controllers.CreateSize(svcs.Catalog, logg))
			r.Get("/", controllers.ListSizes(svcs.Catalog, logg))
		})

		r.Route("/discounts", func(r chi.Router) {
			r.Post("/", controllers.CreateDiscount(svcs.Discounts, logg))
			r.Get("/", controllers.ListDiscounts(svcs.Discounts, logg))
			r.Get("/{discountId}", controllers.GetDiscount(svcs.Discounts, logg))
			r.Patch("/{discountId}", controllers.UpdateDiscount(svcs.Discounts, logg))
			r.Delete("/{discountId}", controllers.DeleteDiscount(svcs.Discounts, logg))
		})

		r.Route("/banners", func(r chi.Router) {
			r.Get("/", controllers.AdminListBanners(svcs.Banners, logg))
			r.Post("/", controllers.AdminCreateBanner(svcs.Banners, logg))
			r.Post("/{bannerId}/status", controllers.AdminSetBannerStatus(svcs.Banners, logg))
			r.Delete("/{bannerId}", controllers.AdminDeleteBanner(svcs.Banners, logg))
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", controllers.AdminListUsers(svcs.Users, logg))
			r.Post("/{userId}/ban", controllers.AdminBanUser(svcs.Users, logg))
			r.Post("/{userId}/unban", controllers.AdminUnbanUser(svcs.Users, logg))
			r.Post("/{userId}/discount-card", controllers.AdminSetDiscountCard(svcs.Users, logg))
		})
	})

	return r
}
