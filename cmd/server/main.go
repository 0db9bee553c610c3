package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/flightagency/backend/internal/config"
	"github.com/flightagency/backend/internal/database"
	"github.com/flightagency/backend/internal/handler"
	"github.com/flightagency/backend/internal/queue"
	"github.com/flightagency/backend/internal/repository"
	"github.com/flightagency/backend/internal/router"
	"github.com/flightagency/backend/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}
	cfg := config.Load()

	db, err := database.Open("mysql",
		database.MySQLDSN(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName),
		database.Options{})
	if err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	defer db.Close()

	if cfg.MigrateOnStart {
		if err := database.MigrateUp(cfg.MigrationsPath, cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}

	rdb := config.NewRedisClient() // nil when Redis is unreachable; cache disables itself
	cacheCfg := config.LoadCacheConfig()

	destRepo := repository.NewDestinationRepo(db)
	flightRepo := repository.NewFlightRepo(db)
	hotelRepo := repository.NewHotelRepo(db)
	userRepo := repository.NewUserRepo(db)
	resRepo := repository.NewReservationRepo(db)

	pub := service.NewAMQPPublisher()
	resSvc := service.NewReservationService(userRepo, flightRepo, hotelRepo, resRepo, pub)

	go queue.StartReservationConsumer()

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	router.Register(e, router.Handlers{
		Destinations: handler.NewDestinationHandler(destRepo),
		Flights:      handler.NewFlightHandler(flightRepo),
		Hotels:       handler.NewHotelHandler(hotelRepo),
		Users:        handler.NewUserHandler(userRepo, cfg),
		Auth:         handler.NewAuthHandler(userRepo),
		Reservations: handler.NewReservationHandler(resSvc),
	}, cfg.JWTSecret, rdb, cacheCfg)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
