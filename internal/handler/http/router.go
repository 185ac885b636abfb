package http

import (
	"log/slog"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/ratelimit"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth       AuthHandler
	Employee   EmployeeHandler
	Profile    ProfileHandler
	Attendance AttendanceHandler
	Leave      LeaveHandler
	Payroll    PayrollHandler
	Health     HealthHandler
}

type RouterOptions struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	AuthService    auth.AuthService
	LoginLimiter   ratelimit.Limiter
}

func NewRouter(opts RouterOptions, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition", "Retry-After"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RealIP)

	if opts.Logger != nil {
		r.Use(httplog.RequestLogger(opts.Logger, &httplog.Options{
			Level:  slog.LevelInfo,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health.Check)

		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				if opts.LoginLimiter != nil {
					r.Use(middleware.RateLimit(opts.LoginLimiter, "login"))
				}
				r.Post("/login", h.Auth.Login)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.AuthRequired(opts.AuthService))
				r.Post("/change-password", h.Auth.ChangePassword)
				r.Get("/me", h.Auth.Me)
			})
		})

		// Requires authentication and a rotated one-time password
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthRequired(opts.AuthService))
			r.Use(middleware.RequirePasswordRotated)

			r.Route("/profile", func(r chi.Router) {
				r.Get("/", h.Profile.Get)
				r.Put("/", h.Profile.Update)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/checkin", h.Attendance.CheckIn)
				r.Post("/checkout", h.Attendance.CheckOut)
				r.Get("/today", h.Attendance.Today)
				r.Get("/my", h.Attendance.MyAttendance)

				// Admin only
				r.With(middleware.RequireAdmin).Get("/", h.Attendance.ListByDay)
			})

			r.Route("/leave", func(r chi.Router) {
				r.Post("/apply", h.Leave.Apply)
				r.Get("/my", h.Leave.MyRequests)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Get("/all", h.Leave.ListAll)
					r.Put("/{id}/status", h.Leave.Decide)
				})
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Get("/me", h.Payroll.Mine)
				r.Get("/me/payslip", h.Payroll.Payslip)
				r.With(middleware.RequireAdmin).Post("/preview", h.Payroll.Preview)
			})

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)

				r.Route("/employees", func(r chi.Router) {
					r.Get("/", h.Employee.List)
					r.Post("/", h.Employee.Create)
					r.Post("/create", h.Employee.Create)
				})

				r.Route("/admin/employees/{id}", func(r chi.Router) {
					r.Get("/", h.Employee.Get)
					r.Put("/", h.Employee.Update)
					r.Post("/documents", h.Employee.AddDocument)
					r.Delete("/documents/{documentId}", h.Employee.RemoveDocument)
				})
			})
		})
	})

	return r
}
