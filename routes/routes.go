package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/smashhub/smashhub-server/handlers"
	"github.com/smashhub/smashhub-server/middleware"
	"github.com/smashhub/smashhub-server/models"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	Player     *handlers.PlayerHandler
	Pegboard   *handlers.PegboardHandler
	Match      *handlers.MatchHandler
	Summary    *handlers.SummaryHandler
	Attendance *handlers.AttendanceHandler
	Skill      *handlers.SkillHandler
	CSV        *handlers.CSVHandler
	Finance    *handlers.FinanceHandler
	WebSocket  *handlers.WebSocketHandler
}

func SetupRoutes(router *chi.Mux, h Handlers, rateLimiter *middleware.RateLimiter, jwtSecret string) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticator([]byte(jwtSecret))
	boardRoles := middleware.Authorize(string(models.RoleClubAdmin), string(models.RoleCoach), string(models.RoleOrganiser))
	adminOnly := middleware.Authorize(string(models.RoleClubAdmin))

	router.Route("/api", func(r chi.Router) {
		// Login and signup sit behind the rate limiter to slow brute force.
		r.Group(func(r chi.Router) {
			r.Use(rateLimiter.Middleware)
			r.Post("/auth/signup", h.Auth.Signup)
			r.Post("/auth/login", h.Auth.Login)
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Put("/users/theme", h.Auth.SaveTheme)
			r.Get("/users/access", h.Player.AccessUsers)

			r.Route("/players", func(r chi.Router) {
				r.Get("/", h.Player.List)
				r.Post("/", h.Player.Create)
				r.Get("/top", h.Match.TopPlayers)
				r.With(adminOnly).Get("/csv-template", h.CSV.Template)
				r.With(boardRoles).Post("/attendance", h.Attendance.Mark)
				r.With(boardRoles).Get("/attendances", h.Attendance.ListByDate)
				r.Route("/{playerID}", func(r chi.Router) {
					r.Get("/", h.Player.Get)
					r.Put("/", h.Player.Update)
					r.Delete("/", h.Player.Delete)
					r.Post("/photo", h.Player.UploadPhoto)
					r.Get("/matches", h.Match.History)
					r.Get("/skills", h.Skill.History)
					r.Post("/skills", h.Skill.RecordSnapshot)
				})
			})

			r.Route("/pegboard", func(r chi.Router) {
				r.Use(boardRoles)
				r.Use(rateLimiter.Middleware)

				r.Get("/", h.Pegboard.Board)
				r.Post("/reset", h.Pegboard.Reset)
				r.Post("/auto-assign", h.Pegboard.AutoAssign)
				r.Post("/smart-assign", h.Pegboard.SmartAssign)
				r.Get("/suggestions", h.Pegboard.Suggestions)
				r.Post("/assign", h.Pegboard.AssignSelection)
				r.Post("/courts/{courtNo}/complete", h.Pegboard.Complete)
				r.Post("/guests", h.Pegboard.AddGuest)
				r.Delete("/guests/{guestID}", h.Pegboard.RemoveGuest)
			})

			r.Route("/matchHistory", func(r chi.Router) {
				r.With(boardRoles).Post("/", h.Match.Record)
				r.Get("/top-players", h.Match.TopPlayers)
				r.Get("/player/{playerID}", h.Match.History)
			})

			r.Get("/matchSummary", h.Summary.Get)
			r.With(boardRoles).Post("/matchSummary", h.Summary.Record)
			r.Get("/summary", h.Summary.Get)
			r.With(adminOnly).Post("/summary/email", h.Summary.EmailReport)

			r.Route("/attendance", func(r chi.Router) {
				r.Use(boardRoles)
				r.Post("/", h.Attendance.Mark)
				r.Get("/", h.Attendance.ListByDate)
				r.Get("/trend", h.Attendance.Trend)
				r.Get("/stats-daily", h.Attendance.Trend)
			})

			r.Route("/skills", func(r chi.Router) {
				r.Get("/template", h.Skill.Template)
				r.With(adminOnly).Put("/template", h.Skill.SaveTemplate)
			})

			r.Route("/csv", func(r chi.Router) {
				r.Use(adminOnly)
				r.Get("/template", h.CSV.Template)
				r.Post("/import", h.CSV.Import)
			})

			r.Route("/finance", func(r chi.Router) {
				r.Use(adminOnly)
				r.Post("/expenses", h.Finance.AddExpense)
				r.Get("/expenses", h.Finance.ListExpenses)
				r.Post("/revenue", h.Finance.AddRevenue)
				r.Get("/revenue", h.Finance.ListRevenue)
				r.Post("/payroll", h.Finance.AddPayroll)
				r.Get("/payroll", h.Finance.ListPayroll)
				r.Get("/audit", h.Finance.AuditTrail)
			})
		})
	})

	router.Get("/ws/pegboard", h.WebSocket.ServeWs)
	router.Get("/ws/pegboard/{clubID}", h.WebSocket.ServeWs)
}
