package routes

import (
	"github.com/Dosada05/club-management/handlers"
	"github.com/Dosada05/club-management/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
)

type Handlers struct {
	Auth        *handlers.AuthHandler
	Sport       *handlers.SportHandler
	Court       *handlers.CourtHandler
	Member      *handlers.MemberHandler
	Reservation *handlers.ReservationHandler
	WebSocket   *handlers.WebSocketHandler
}

func SetupRoutes(h Handlers, jwtSecret string) *chi.Mux {
	router := chi.NewRouter()

	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate([]byte(jwtSecret))

	// Публичные маршруты: только регистрация и вход.
	router.Post("/auth/register", h.Auth.Register)
	router.Post("/auth/login", h.Auth.Login)

	// Всё остальное требует валидного токена.
	router.Group(func(r chi.Router) {
		r.Use(authenticate)

		r.Route("/sports", func(r chi.Router) {
			r.Get("/", h.Sport.GetAllSports)
			r.Get("/{sportID}", h.Sport.GetSportByID)

			// Мутации только для администраторов (роль проверяется в handler-е)
			r.Post("/", h.Sport.CreateSport)
			r.Put("/{sportID}", h.Sport.UpdateSport)
			r.Delete("/{sportID}", h.Sport.DeleteSport)
			r.Post("/{sportID}/logo", h.Sport.UploadSportLogo)
		})

		r.Route("/courts", func(r chi.Router) {
			r.Get("/", h.Court.ListCourts)
			r.Get("/{courtID}", h.Court.GetCourtByID)
			r.Post("/search", h.Court.Search)

			r.Post("/", h.Court.CreateCourt)
			r.Put("/{courtID}", h.Court.UpdateCourt)
			r.Delete("/{courtID}", h.Court.DeleteCourt)
		})

		r.Route("/members", func(r chi.Router) {
			r.Get("/", h.Member.ListMembers)
			r.Get("/{memberID}", h.Member.GetMemberByID)
			r.Post("/", h.Member.CreateMember)
			r.Put("/{memberID}", h.Member.UpdateMember)
			r.Delete("/{memberID}", h.Member.DeleteMember)
		})

		r.Route("/reservations", func(r chi.Router) {
			r.Get("/", h.Reservation.ListReservations)
			r.Get("/{reservationID}", h.Reservation.GetReservationByID)
			r.Post("/", h.Reservation.CreateReservation)
			r.Put("/{reservationID}", h.Reservation.UpdateReservation)
			r.Delete("/{reservationID}", h.Reservation.CancelReservation)
		})

		// WebSocket-подписка на обновления слотов площадки
		r.Get("/ws/courts/{courtID}", h.WebSocket.ServeWs)
	})

	return router
}
