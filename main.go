package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	httpapi "campus-canteen/internal/api/http"
	"campus-canteen/internal/config"
	"campus-canteen/internal/service"
	"campus-canteen/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}
	cfg := config.Load()

	db := config.MustInitPostgres()
	defer db.Close()

	rdb := config.MustInitRedis()
	defer rdb.Close()

	kafkaWriter := config.NewKafkaWriter(cfg.KafkaTopic)
	defer kafkaWriter.Close()

	kafkaReader := config.NewKafkaReader(cfg.KafkaTopic, "campus-canteen")
	defer kafkaReader.Close()

	users := storage.NewUserRepository(db)
	profiles := storage.NewProfileRepository(db)
	catalog := storage.NewCatalogRepository(db)
	baskets := storage.NewBasketRepository(db)
	orders := storage.NewOrderRepository(db)
	ratings := storage.NewRatingRepository(db)
	ratingCache := storage.NewRatingCache(rdb, 24*time.Hour)
	publisher := storage.NewChangePublisher(kafkaWriter)

	watcher := service.NewPaymentWatcher(orders, publisher, cfg.PaymentWindow)
	broker := service.NewBroker()

	authSvc := service.NewAuthService(users, profiles, publisher, cfg.JWTSecret, cfg.TokenTTL, cfg.WelcomeCoins)
	catalogSvc := service.NewCatalogService(catalog)
	basketSvc := service.NewBasketService(baskets, catalog)
	orderSvc := service.NewOrderService(orders, baskets, publisher, watcher)
	ratingSvc := service.NewRatingService(ratings, ratingCache, publisher)

	consumer := service.NewChangeConsumer(kafkaReader, broker, watcher)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	go watcher.Start(ctx)
	go consumer.Start(ctx)

	handler := httpapi.NewHandler(authSvc, catalogSvc, basketSvc, orderSvc, ratingSvc,
		watcher, service.DefaultQRGenerator{BaseURL: cfg.QRBaseURL}, broker)

	r := mux.NewRouter()
	handler.RegisterRoutes(r)

	log.Println("Campus canteen service starting on port " + cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, cors.Default().Handler(r)))
}
