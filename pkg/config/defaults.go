package config

import "time"

const (
	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	BackendSheets = "sheets"
	BackendMongo  = "mongo"

	DefaultStoreBackend = BackendSheets
	DefaultSheetName    = "Reservas"

	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "salas"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultRooms = "Amarilla,Morada"

	DefaultKafkaTopic = "reservations.events"

	DefaultRateLimitRequests = 30
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
)
