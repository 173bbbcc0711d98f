// Package repository abstracts the durable reservation store. The conflict
// logic never sees a particular persistence technology: the reference
// deployment keeps reservations in a Google spreadsheet, with MongoDB as an
// alternative backend.
package repository

import (
	"context"

	"salas/pkg/model"
)

type ReservationRepository interface {
	// List returns every stored reservation.
	List(ctx context.Context) ([]*model.Reservation, error)
	// ListByRoom returns the stored reservations for one room.
	ListByRoom(ctx context.Context, room string) ([]*model.Reservation, error)
	// Append stores a new reservation. It never overwrites existing rows.
	Append(ctx context.Context, reservation *model.Reservation) error
	// Delete removes a reservation by id, reporting whether it existed.
	Delete(ctx context.Context, id string) (bool, error)
	// Ping verifies the store is reachable.
	Ping(ctx context.Context) error
}
