package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carhub-app/carhub-backend/api/controllers"
	"github.com/carhub-app/carhub-backend/api/middleware"
	"github.com/carhub-app/carhub-backend/internal/appointments"
	"github.com/carhub-app/carhub-backend/internal/auth"
	"github.com/carhub-app/carhub-backend/internal/cars"
	"github.com/carhub-app/carhub-backend/internal/centers"
	"github.com/carhub-app/carhub-backend/internal/forum"
	"github.com/carhub-app/carhub-backend/internal/news"
	"github.com/carhub-app/carhub-backend/internal/reactions"
	"github.com/carhub-app/carhub-backend/internal/reputation"
	"github.com/carhub-app/carhub-backend/internal/users"
	"github.com/carhub-app/carhub-backend/pkg/config"
	"github.com/carhub-app/carhub-backend/pkg/db"
	"github.com/carhub-app/carhub-backend/pkg/enums"
	"github.com/carhub-app/carhub-backend/pkg/logger"
	"github.com/carhub-app/carhub-backend/pkg/metrics"
	"github.com/carhub-app/carhub-backend/pkg/redis"
)

// Services groups every domain service the router mounts.
type Services struct {
	Auth         auth.Service
	Register     auth.RegisterService
	Users        users.Service
	Cars         cars.Service
	Centers      centers.Service
	Reputation   reputation.Service
	Appointments appointments.Service
	Forum        forum.Service
	Reactions    reactions.Service
	News         news.Service
}

// NewRouter mounts every public, authenticated, and admin route on a
// shared middleware chain.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbClient db.Pinger,
	redisClient *redis.Client,
	identities middleware.IdentityChecker,
	m *metrics.Metrics,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(m),
		middleware.CORS(),
	)

	// Register and login stay outside this chain so token resolution
	// never runs on the endpoints that issue tokens.
	authenticate := middleware.Authenticate(cfg.JWT, identities, logg)

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
		r.Get("/ready", controllers.HealthReady(cfg, dbClient, redisClient))
	})
	r.Method(http.MethodGet, "/metrics", m.Handler())

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, redisClient, logg)).Post("/register", controllers.Register(svcs.Register, m, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.Login(svcs.Auth, m, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(authenticate)

		// Public catalog and community reads.
		r.Get("/cars", controllers.CarsList(svcs.Cars, logg))
		r.Get("/cars/{carId}", controllers.CarsGet(svcs.Cars, logg))
		r.Get("/centers", controllers.CentersList(svcs.Centers, logg))
		r.Get("/centers/top", controllers.CentersTop(svcs.Reputation, logg))
		r.Get("/centers/{centerId}", controllers.CentersGet(svcs.Centers, logg))
		r.Get("/forum/posts", controllers.ForumPostsList(svcs.Forum, logg))
		r.Get("/forum/posts/{postId}", controllers.ForumPostsGet(svcs.Forum, logg))
		r.Get("/forum/posts/{postId}/comments", controllers.ForumCommentsList(svcs.Forum, logg))
		r.Get("/forum/posts/{postId}/reactions", controllers.ReactionsSummary(svcs.Reactions, logg))
		r.Get("/news", controllers.NewsLatest(svcs.News, logg))

		// Authenticated surface.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(logg))

			r.Get("/users/me", controllers.Me(svcs.Users, logg))

			r.Get("/cars/mine", controllers.CarsMine(svcs.Cars, logg))
			r.Post("/cars", controllers.CarsCreate(svcs.Cars, logg))
			r.Patch("/cars/{carId}", controllers.CarsUpdate(svcs.Cars, logg))
			r.Delete("/cars/{carId}", controllers.CarsDelete(svcs.Cars, logg))

			r.Post("/centers/{centerId}/vote", controllers.CentersVote(svcs.Reputation, m, logg))

			r.Route("/appointments", func(r chi.Router) {
				r.Get("/", controllers.AppointmentsMine(svcs.Appointments, logg))
				r.Post("/", controllers.AppointmentsCreate(svcs.Appointments, m, logg))
				r.Get("/{appointmentId}", controllers.AppointmentsGet(svcs.Appointments, logg))
				r.Patch("/{appointmentId}", controllers.AppointmentsUpdate(svcs.Appointments, logg))
				r.Post("/{appointmentId}/cancel", controllers.AppointmentsCancel(svcs.Appointments, m, logg))
			})

			r.Post("/forum/posts", controllers.ForumPostsCreate(svcs.Forum, logg))
			r.Patch("/forum/posts/{postId}", controllers.ForumPostsUpdate(svcs.Forum, logg))
			r.Delete("/forum/posts/{postId}", controllers.ForumPostsDelete(svcs.Forum, logg))
			r.Post("/forum/posts/{postId}/comments", controllers.ForumCommentsCreate(svcs.Forum, logg))
			r.Patch("/forum/comments/{commentId}", controllers.ForumCommentsUpdate(svcs.Forum, logg))
			r.Delete("/forum/comments/{commentId}", controllers.ForumCommentsDelete(svcs.Forum, logg))

			r.Put("/forum/posts/{postId}/reactions", controllers.ReactionsPut(svcs.Reactions, m, logg))
			r.Delete("/forum/posts/{postId}/reactions", controllers.ReactionsDelete(svcs.Reactions, m, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(authenticate)
		r.Use(middleware.RequireAuth(logg))
		r.Use(middleware.RequireRole(enums.RoleAdmin, logg))

		r.Route("/users", func(r chi.Router) {
			r.Get("/", controllers.AdminListUsers(svcs.Users, logg))
			r.Delete("/{userId}", controllers.AdminDeleteUser(svcs.Users, logg))
			r.Patch("/{userId}/role", controllers.AdminUpdateUserRole(svcs.Users, logg))
		})

		r.Route("/centers", func(r chi.Router) {
			r.Post("/", controllers.CentersCreate(svcs.Centers, logg))
			r.Patch("/{centerId}", controllers.CentersUpdate(svcs.Centers, logg))
			r.Delete("/{centerId}", controllers.CentersDelete(svcs.Centers, logg))
		})

		r.Route("/appointments", func(r chi.Router) {
			r.Get("/", controllers.AdminAppointmentsList(svcs.Appointments, logg))
			r.Patch("/{appointmentId}/status", controllers.AdminAppointmentsSetStatus(svcs.Appointments, m, logg))
		})
	})

	return r
}
