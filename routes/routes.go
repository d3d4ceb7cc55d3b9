package routes

import (
	"os"

	accommodationController "campusstay/controllers/accommodation"
	adminController "campusstay/controllers/admin"
	authController "campusstay/controllers/auth"
	bookingController "campusstay/controllers/booking"
	favoriteController "campusstay/controllers/favorite"
	reviewController "campusstay/controllers/review"
	"campusstay/httpServices/payment"
	"campusstay/logger"
	"campusstay/middleware"
	bookingService "campusstay/services/booking"
	favoriteService "campusstay/services/favorite"
	reviewService "campusstay/services/review"
	statsService "campusstay/services/stats"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, provider payment.Provider) {
	asyncLogger := logger.NewAsyncLogger(db)

	reviews := reviewService.NewService(db)
	favorites := favoriteService.NewService(db)
	stats := statsService.NewService(db)
	bookings := bookingService.NewService(
		db,
		provider,
		"zar",
		os.Getenv("FRONTEND_URL")+"/payment/success",
		os.Getenv("FRONTEND_URL")+"/payment/cancel",
	)

	auth := authController.NewAuthController(db, asyncLogger)
	accommodations := accommodationController.NewAccommodationController(db, reviews, favorites, asyncLogger)
	bookingCtrl := bookingController.NewBookingController(db, bookings, asyncLogger)
	reviewCtrl := reviewController.NewReviewController(db, reviews, asyncLogger)
	favoriteCtrl := favoriteController.NewFavoriteController(db, favorites, asyncLogger)
	adminCtrl := adminController.NewAdminController(db, stats, asyncLogger)

	// Start the async logger processing goroutine
	go asyncLogger.ProcessLog()

	/*=============================================================================
	| Public Routes
	===============================================================================*/
	api := app.Group("/api")
	api.Post("/register", auth.Register)
	api.Post("/login", auth.Login)

	api.Get("/accommodations", accommodations.List)
	api.Get("/accommodations/featured", accommodations.Featured)
	api.Get("/accommodations/:id", middleware.OptionalAuth(), accommodations.Detail)
	api.Get("/accommodations/:id/reviews", reviewCtrl.Index)

	// Hosted checkout redirects land here without authentication
	api.Get("/payment/success", bookingCtrl.PaymentSuccess)
	api.Get("/payment/cancel/:id", bookingCtrl.PaymentCancel)

	/*=============================================================================
	| Protected Routes
	===============================================================================*/
	authGroup := api.Group("/auth").Use(middleware.IsAuthenticated())
	authGroup.Get("/profile", auth.Profile)
	authGroup.Post("/logout", auth.Logout)

	bookingGroup := api.Group("/booking").Use(middleware.IsAuthenticated())
	bookingGroup.Post("/create", bookingCtrl.Store)
	bookingGroup.Get("/mine", bookingCtrl.MyBookings)

	reviewGroup := api.Group("/review").Use(middleware.IsAuthenticated())
	reviewGroup.Post("/create", reviewCtrl.Store)

	favoriteGroup := api.Group("/favorite").Use(middleware.IsAuthenticated())
	favoriteGroup.Post("/toggle/:id", favoriteCtrl.Toggle)
	favoriteGroup.Get("/", favoriteCtrl.Index)

	/*=============================================================================
	| Admin Routes (capability check applied once to the whole group)
	===============================================================================*/
	adminGroup := api.Group("/admin").Use(middleware.IsAuthenticated(), middleware.RequireAdmin())
	adminGroup.Get("/dashboard", adminCtrl.Dashboard)
	adminGroup.Get("/users", adminCtrl.Users)
	adminGroup.Post("/users/:id/promote", adminCtrl.Promote)
	adminGroup.Post("/users/:id/demote", adminCtrl.Demote)
	adminGroup.Get("/bookings", bookingCtrl.Index)
	adminGroup.Post("/accommodations", accommodations.Store)
	adminGroup.Put("/accommodations/:id", accommodations.Update)
	adminGroup.Delete("/accommodations/:id", accommodations.Delete)
}
