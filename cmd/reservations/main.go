package main

import (
	"salas/internal/reservations/handler"
	"salas/internal/reservations/repository"
	"salas/internal/reservations/service"
	"salas/internal/reservations/validator"
	"salas/pkg/app"
	"salas/pkg/config"
	"salas/pkg/kafka"
)

const ServiceName = "reservations"

func main() {
	cfg := config.Load(ServiceName)

	var repo repository.ReservationRepository
	switch cfg.StoreBackend {
	case config.BackendMongo:
		cfg.SetMongo()
		repo = repository.NewMongoReservationRepository(cfg)
	default:
		cfg.SetSheets()
		repo = repository.NewSheetReservationRepository(cfg)
	}

	var events *kafka.Producer
	if cfg.EventsEnabled() {
		producer, err := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
		}
		defer producer.Close()
		events = producer
		cfg.Log.Info("Reservation events enabled", "topic", cfg.KafkaTopic)
	}

	reservationValidator := validator.NewReservationValidator(cfg.Log)
	reservationService := service.NewReservationService(repo, reservationValidator, cfg, events)

	application := app.NewApplication(cfg)
	application.SetApp(
		handler.NewReservationHandler(reservationService, cfg.Log),
		handler.NewHealthHandler(repo, cfg.Log),
	)
	application.Run()
}
