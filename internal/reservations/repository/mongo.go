package repository

import (
	"context"
	"fmt"
	"time"

	"salas/pkg/config"
	"salas/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const reservationsCollection = "Reservations"

type mongoReservationRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoReservationRepository(cfg *config.Config) ReservationRepository {
	collection := cfg.Client.Mongo.Client.
		Database(cfg.MongoDatabaseName).
		Collection(reservationsCollection)

	return &mongoReservationRepository{
		cfg:        cfg,
		collection: collection,
	}
}

func (r *mongoReservationRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.cfg.MongoConnTimeout)
}

func (r *mongoReservationRepository) List(ctx context.Context) ([]*model.Reservation, error) {
	return r.find(ctx, bson.M{})
}

func (r *mongoReservationRepository) ListByRoom(ctx context.Context, room string) ([]*model.Reservation, error) {
	return r.find(ctx, bson.M{"room_id": room})
}

func (r *mongoReservationRepository) find(ctx context.Context, filter bson.M) ([]*model.Reservation, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{
		{Key: "date", Value: 1},
		{Key: "start_time", Value: 1},
	})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query reservations: %w", err)
	}
	defer cursor.Close(ctx)

	var reservations []*model.Reservation
	if err := cursor.All(ctx, &reservations); err != nil {
		return nil, fmt.Errorf("failed to decode reservations: %w", err)
	}

	return reservations, nil
}

func (r *mongoReservationRepository) Append(ctx context.Context, reservation *model.Reservation) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	reservation.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	if _, err := r.collection.InsertOne(ctx, reservation); err != nil {
		return fmt.Errorf("failed to insert reservation: %w", err)
	}

	return nil
}

func (r *mongoReservationRepository) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("failed to delete reservation: %w", err)
	}

	return result.DeletedCount > 0, nil
}

func (r *mongoReservationRepository) Ping(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.cfg.Client.Mongo.Client.Ping(ctx, nil)
}
