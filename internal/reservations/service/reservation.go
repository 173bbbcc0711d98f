package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	reserrors "salas/internal/reservations/errors"
	"salas/internal/reservations/repository"
	reservationvalidator "salas/internal/reservations/validator"
	"salas/internal/schedule"
	"salas/pkg/config"
	apperrors "salas/pkg/errors"
	"salas/pkg/kafka"
	"salas/pkg/model"
	"salas/pkg/sanitizer"

	"github.com/google/uuid"
)

// Event types published when reservations change.
const (
	EventReservationCreated = "reservation.created"
	EventReservationDeleted = "reservation.deleted"
)

type ReservationService interface {
	Create(ctx context.Context, reservation *model.Reservation) (*model.Reservation, error)
	GetAll(ctx context.Context) ([]*model.Reservation, error)
	Delete(ctx context.Context, id string) error
	Rooms() []string
}

type reservationService struct {
	repo      repository.ReservationRepository
	validator *reservationvalidator.ReservationValidator
	cfg       *config.Config
	events    *kafka.Producer

	// roomLocks serializes the check-then-append window per room. Without it
	// two concurrent requests for the same slot could both pass the conflict
	// scan and both be stored.
	mu        sync.Mutex
	roomLocks map[string]*sync.Mutex
}

func NewReservationService(
	repo repository.ReservationRepository,
	validator *reservationvalidator.ReservationValidator,
	cfg *config.Config,
	events *kafka.Producer,
) ReservationService {
	return &reservationService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
		events:    events,
		roomLocks: make(map[string]*sync.Mutex),
	}
}

func (s *reservationService) roomLock(room string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.roomLocks[room]
	if !ok {
		lock = &sync.Mutex{}
		s.roomLocks[room] = lock
	}
	return lock
}

func (s *reservationService) Create(ctx context.Context, reservation *model.Reservation) (*model.Reservation, error) {
	s.sanitize(reservation)
	s.applyDefaults(reservation)

	if err := s.validator.Validate(reservation); err != nil {
		var validationErrs reservationvalidator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return nil, apperrors.Validation("Reservation validation failed", map[string]any{
				"errors": validationErrs,
			})
		}
		return nil, apperrors.Internal("Failed to validate reservation", err)
	}

	if !s.knownRoom(reservation.Room) {
		return nil, apperrors.Wrap(
			reserrors.ErrUnknownRoom,
			apperrors.CodeInvalidInput,
			fmt.Sprintf("Unknown room %q, available rooms: %v", reservation.Room, s.cfg.Rooms),
			http.StatusBadRequest,
		)
	}

	candidate, err := schedule.NewInterval(reservation.Room, reservation.Date, reservation.StartTime, reservation.EndTime)
	if err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}
	if candidate.DayFallback {
		s.cfg.Log.Warn("Reservation date not understood, assuming today",
			"reservation_id", reservation.ID,
			"raw_date", reservation.Date,
		)
	}

	lock := s.roomLock(reservation.Room)
	lock.Lock()
	defer lock.Unlock()

	existing, err := s.repo.ListByRoom(ctx, reservation.Room)
	if err != nil {
		return nil, apperrors.Internal("Failed to load existing reservations", err)
	}

	decision := schedule.TryReserve(candidate, s.toIntervals(existing))
	if !decision.Accepted {
		return nil, apperrors.Wrap(
			reserrors.ErrTimeConflict,
			apperrors.CodeConflict,
			"The requested time overlaps existing reservations",
			http.StatusConflict,
		).WithDetails(map[string]any{
			"conflicts": toConflicts(decision.Conflicts),
		})
	}

	if err := s.repo.Append(ctx, reservation); err != nil {
		return nil, apperrors.Internal("Failed to store reservation", err)
	}

	s.cfg.Log.Info("Reservation created",
		"reservation_id", reservation.ID,
		"room", reservation.Room,
		"date", reservation.Date,
		"time_range", reservation.TimeRange(),
	)

	s.publish(ctx, EventReservationCreated, reservation.Room, reservation)

	return reservation, nil
}

func (s *reservationService) GetAll(ctx context.Context) ([]*model.Reservation, error) {
	reservations, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to load reservations", err)
	}
	return reservations, nil
}

func (s *reservationService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Reservation id cannot be empty")
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return apperrors.Internal("Failed to delete reservation", err)
	}
	if !deleted {
		return apperrors.Wrap(
			reserrors.ErrNotFound,
			apperrors.CodeNotFound,
			"Reservation not found",
			http.StatusNotFound,
		).WithDetails(map[string]any{"id": id})
	}

	s.cfg.Log.Info("Reservation deleted", "reservation_id", id)

	s.publish(ctx, EventReservationDeleted, id, map[string]string{"id": id})

	return nil
}

func (s *reservationService) Rooms() []string {
	return s.cfg.Rooms
}

func (s *reservationService) sanitize(reservation *model.Reservation) {
	reservation.Room = sanitizer.NormalizeRoom(reservation.Room)
	reservation.Area = sanitizer.NormalizeArea(reservation.Area)
	reservation.Date = sanitizer.TrimAndNormalize(reservation.Date)
	reservation.StartTime = sanitizer.TrimAndNormalize(reservation.StartTime)
	reservation.EndTime = sanitizer.TrimAndNormalize(reservation.EndTime)
}

func (s *reservationService) applyDefaults(reservation *model.Reservation) {
	if reservation.ID == "" {
		reservation.ID = uuid.New().String()
	}
	if reservation.Attendees <= 0 {
		reservation.Attendees = 1
	}
}

func (s *reservationService) knownRoom(room string) bool {
	for _, r := range s.cfg.Rooms {
		if r == room {
			return true
		}
	}
	return false
}

// toIntervals builds the conflict-check view of the stored reservations.
// Rows that cannot be understood are logged and skipped rather than failing
// the whole request: the store is hand-editable and a corrupted row must not
// block every future booking.
func (s *reservationService) toIntervals(reservations []*model.Reservation) []schedule.Interval {
	intervals := make([]schedule.Interval, 0, len(reservations))
	for _, r := range reservations {
		iv, err := schedule.NewInterval(r.Room, r.Date, r.StartTime, r.EndTime)
		if err != nil {
			s.cfg.Log.Warn("Skipping stored reservation with unusable times",
				"reservation_id", r.ID,
				"start_time", r.StartTime,
				"end_time", r.EndTime,
				"error", err,
			)
			continue
		}
		if iv.DayFallback {
			s.cfg.Log.Warn("Stored reservation date not understood, assuming today",
				"reservation_id", r.ID,
				"raw_date", r.Date,
			)
		}
		iv.ID = r.ID
		iv.Area = r.Area
		intervals = append(intervals, iv)
	}
	return intervals
}

func toConflicts(intervals []schedule.Interval) []model.Conflict {
	conflicts := make([]model.Conflict, 0, len(intervals))
	for _, iv := range intervals {
		conflicts = append(conflicts, model.Conflict{
			ID:        iv.ID,
			Area:      iv.Area,
			TimeRange: iv.TimeRange(),
		})
	}
	return conflicts
}

// publish emits a domain event when a producer is configured. Event delivery
// is best effort: a broker outage must not undo a booking that is already
// stored.
func (s *reservationService) publish(ctx context.Context, eventType, key string, payload any) {
	if s.events == nil {
		return
	}

	msg := kafka.NewMessage().
		WithKey(key).
		WithValue(payload).
		WithEventType(eventType).
		WithSource("reservations").
		Build()

	if err := s.events.Publish(ctx, msg); err != nil {
		s.cfg.Log.Error("Failed to publish reservation event",
			"event_type", eventType,
			"error", err,
		)
	}
}
