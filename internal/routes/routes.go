package routes

import (
	"github.com/elif-d/StudioFitBack/internal/config"
	"github.com/elif-d/StudioFitBack/internal/handlers"
	"github.com/elif-d/StudioFitBack/internal/middleware"
	"github.com/elif-d/StudioFitBack/internal/repository"
	"github.com/elif-d/StudioFitBack/internal/services"
	eventws "github.com/elif-d/StudioFitBack/internal/websocket"
	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool) {
	memberRepo := repository.NewMemberRepository(db)
	workoutRepo := repository.NewWorkoutRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	announcementRepo := repository.NewAnnouncementRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	eventHub := eventws.NewHub()
	go eventHub.Run()

	var checkoutClient services.CheckoutClient
	if cfg.CheckoutURL != "" && cfg.CheckoutAPIKey != "" {
		checkoutClient = services.NewHTTPCheckoutClient(cfg.CheckoutURL, cfg.CheckoutAPIKey)
	}

	bookingService := services.NewBookingService(db, workoutRepo, eventHub, cfg.StorageTimeout)
	accessService := services.NewAccessService(memberRepo, cfg.StorageTimeout)
	videoService := services.NewVideoService(videoRepo, cfg.StorageTimeout)
	statsService := services.NewStatsService(memberRepo, cfg.StorageTimeout)
	announcementService := services.NewAnnouncementService(announcementRepo, eventHub, cfg.StorageTimeout)
	paymentService := services.NewPaymentService(checkoutClient, paymentRepo, cfg.StorageTimeout)

	authHandler := handlers.NewAuthHandler(memberRepo, cfg.JWTSecret)
	memberHandler := handlers.NewMemberHandler(memberRepo)
	workoutHandler := handlers.NewWorkoutHandler(bookingService)
	videoHandler := handlers.NewVideoHandler(videoService, accessService)
	announcementHandler := handlers.NewAnnouncementHandler(announcementService)
	statsHandler := handlers.NewStatsHandler(statsService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	eventsHandler := handlers.NewEventsHandler(eventHub, cfg.JWTSecret)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.AuthRequired(cfg.JWTSecret), authHandler.Me)

	authProtected := api.Group("/v1", middleware.AuthRequired(cfg.JWTSecret))
	adminOnly := middleware.AdminRequired()

	workouts := authProtected.Group("/workouts")
	workouts.Get("", workoutHandler.ListWorkouts)
	workouts.Post("", adminOnly, workoutHandler.CreateWorkout)
	workouts.Delete("/:id", adminOnly, workoutHandler.DeleteWorkout)
	workouts.Post("/:id/book", workoutHandler.Book)
	workouts.Delete("/:id/booking", workoutHandler.Cancel)

	authProtected.Get("/bookings", workoutHandler.ListBookings)

	members := authProtected.Group("/members")
	members.Get("/:id", memberHandler.GetMember)
	members.Put("/:id", memberHandler.UpdateMember)

	videos := authProtected.Group("/videos")
	videos.Get("", videoHandler.ListVideos)
	videos.Get("/loved", videoHandler.ListLoved)
	videos.Post("", adminOnly, videoHandler.CreateVideo)
	videos.Delete("/:id", adminOnly, videoHandler.DeleteVideo)
	videos.Post("/:id/toggle-love", videoHandler.ToggleLove)
	videos.Put("/:id/love", videoHandler.SetLove)

	announcements := authProtected.Group("/announcements")
	announcements.Get("", announcementHandler.List)
	announcements.Get("/:id", announcementHandler.Get)
	announcements.Post("", adminOnly, announcementHandler.Create)
	announcements.Put("/:id", adminOnly, announcementHandler.Update)
	announcements.Delete("/:id", adminOnly, announcementHandler.Delete)

	authProtected.Get("/stats/memberships", adminOnly, statsHandler.MembershipStats)

	payments := authProtected.Group("/payments")
	payments.Post("/orders", paymentHandler.CreateOrder)
	payments.Get("/orders/:ref", paymentHandler.GetOrderStatus)
	payments.Post("/orders/:ref/record", paymentHandler.RecordPayment)
	payments.Get("", paymentHandler.ListPayments)

	api.Use("/v1/ws", eventsHandler.WebSocketAuth)
	api.Get("/v1/ws", websocket.New(eventsHandler.HandleWebSocket))
}
