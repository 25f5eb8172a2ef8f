package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"stayhub/internal/config"
	"stayhub/internal/database"
	"stayhub/internal/exchange"
	"stayhub/internal/middleware"
	"stayhub/internal/modules/admin"
	"stayhub/internal/modules/auth"
	"stayhub/internal/modules/booking"
	"stayhub/internal/modules/catalog"
	"stayhub/internal/modules/host"
	"stayhub/internal/modules/review"
	"stayhub/internal/modules/user"
	jwtsvc "stayhub/internal/pkg/jwt"
	"stayhub/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	propertyRepo := repository.NewPropertyRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	wishlistRepo := repository.NewWishlistRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)
	rates := exchange.NewCache(cfg.SiteCurrency, exchange.NewClient(cfg.RateAPIKey), nil)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	bookingService := booking.NewService(bookingRepo, propertyRepo, paymentRepo, nil)
	bookingHandler := booking.NewHandler(bookingService)

	catalogService := catalog.NewService(propertyRepo, reviewRepo, userRepo, rates)
	catalogHandler := catalog.NewHandler(catalogService, bookingService)

	userService := user.NewService(userRepo, bookingRepo, propertyRepo, wishlistRepo, catalogService)
	userHandler := user.NewHandler(userService, bookingService)

	hostService := host.NewService(propertyRepo, bookingRepo, wishlistRepo)
	hostHandler := host.NewHandler(hostService, bookingService)

	reviewService := review.NewService(reviewRepo, bookingRepo, propertyRepo)
	reviewHandler := review.NewHandler(reviewService)

	adminService := admin.NewService(propertyRepo, bookingRepo, wishlistRepo)
	adminHandler := admin.NewHandler(adminService)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)
		catalogHandler.RegisterRoutes(v1)
		bookingHandler.RegisterRoutes(v1)

		// authenticated
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			userHandler.RegisterRoutes(protected)
			hostHandler.RegisterRoutes(protected)
			reviewHandler.RegisterRoutes(protected)

			adminGroup := protected.Group("/")
			adminGroup.Use(middleware.AdminOnly())
			{
				adminHandler.RegisterRoutes(adminGroup)
			}
		}
	}

	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
}
