package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	reserrors "salas/internal/reservations/errors"
	"salas/internal/reservations/repository"
	reservationvalidator "salas/internal/reservations/validator"
	"salas/pkg/config"
	apperrors "salas/pkg/errors"
	"salas/pkg/logger"
	"salas/pkg/model"
)

type mockRepository struct {
	mu sync.Mutex

	listFunc       func(ctx context.Context) ([]*model.Reservation, error)
	listByRoomFunc func(ctx context.Context, room string) ([]*model.Reservation, error)
	appendFunc     func(ctx context.Context, r *model.Reservation) error
	deleteFunc     func(ctx context.Context, id string) (bool, error)
	pingFunc       func(ctx context.Context) error

	appended []*model.Reservation
}

func (m *mockRepository) List(ctx context.Context) ([]*model.Reservation, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockRepository) ListByRoom(ctx context.Context, room string) ([]*model.Reservation, error) {
	if m.listByRoomFunc != nil {
		return m.listByRoomFunc(ctx, room)
	}
	return nil, nil
}

func (m *mockRepository) Append(ctx context.Context, r *model.Reservation) error {
	m.mu.Lock()
	m.appended = append(m.appended, r)
	m.mu.Unlock()

	if m.appendFunc != nil {
		return m.appendFunc(ctx, r)
	}
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, id string) (bool, error) {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return false, nil
}

func (m *mockRepository) Ping(ctx context.Context) error {
	if m.pingFunc != nil {
		return m.pingFunc(ctx)
	}
	return nil
}

func (m *mockRepository) appendCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.appended)
}

func newTestService(t *testing.T, repo repository.ReservationRepository) ReservationService {
	t.Helper()

	log := logger.New(logger.Config{
		Level:   logger.ERROR,
		Format:  logger.TEXT,
		Service: "reservations-test",
	})

	cfg := &config.Config{
		Rooms: []string{"Amarilla", "Morada"},
		Log:   log,
	}

	return NewReservationService(repo, reservationvalidator.NewReservationValidator(log), cfg, nil)
}

func newReservation(room, date, start, end string) *model.Reservation {
	return &model.Reservation{
		Room:      room,
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Area:      "Finanzas",
		Attendees: 3,
	}
}

func storedReservation(id, room, date, start, end, area string) *model.Reservation {
	return &model.Reservation{
		ID:        id,
		Room:      room,
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Area:      area,
		Attendees: 2,
	}
}

func TestCreateAcceptsFreeSlot(t *testing.T) {
	repo := &mockRepository{}
	svc := newTestService(t, repo)

	created, err := svc.Create(context.Background(), newReservation("Amarilla", "2026-09-01", "09:00", "10:00"))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID == "" {
		t.Error("expected a generated id")
	}
	if repo.appendCount() != 1 {
		t.Errorf("expected 1 append, got %d", repo.appendCount())
	}
}

func TestCreateRejectsOverlap(t *testing.T) {
	repo := &mockRepository{
		listByRoomFunc: func(ctx context.Context, room string) ([]*model.Reservation, error) {
			return []*model.Reservation{
				storedReservation("res-1", "Amarilla", "2026-09-01", "09:00", "10:00", "Finanzas"),
			}, nil
		},
	}
	svc := newTestService(t, repo)

	_, err := svc.Create(context.Background(), newReservation("Amarilla", "2026-09-01", "09:30", "10:30"))
	if err == nil {
		t.Fatal("expected a conflict error")
	}

	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeConflict {
		t.Fatalf("expected code %s, got %s", apperrors.CodeConflict, appErr.Code)
	}
	if !errors.Is(err, reserrors.ErrTimeConflict) {
		t.Error("expected the error to wrap ErrTimeConflict")
	}

	conflicts, ok := appErr.Details["conflicts"].([]model.Conflict)
	if !ok {
		t.Fatalf("expected conflicts detail, got %T", appErr.Details["conflicts"])
	}
	if len(conflicts) != 1 {
		t.Fatalf("expected 1 conflict, got %d", len(conflicts))
	}
	if conflicts[0].ID != "res-1" || conflicts[0].TimeRange != "09:00 - 10:00" {
		t.Errorf("unexpected conflict: %+v", conflicts[0])
	}
	if repo.appendCount() != 0 {
		t.Errorf("rejected reservation must not be stored, got %d appends", repo.appendCount())
	}
}

func TestCreateAcceptsTouchingBoundary(t *testing.T) {
	repo := &mockRepository{
		listByRoomFunc: func(ctx context.Context, room string) ([]*model.Reservation, error) {
			return []*model.Reservation{
				storedReservation("res-1", "Amarilla", "2026-09-01", "09:00", "10:00", "Finanzas"),
			}, nil
		},
	}
	svc := newTestService(t, repo)

	if _, err := svc.Create(context.Background(), newReservation("Amarilla", "2026-09-01", "10:00", "11:00")); err != nil {
		t.Fatalf("back-to-back reservation should be accepted: %v", err)
	}
}

func TestCreateAcceptsSameSlotOtherRoom(t *testing.T) {
	repo := &mockRepository{
		listByRoomFunc: func(ctx context.Context, room string) ([]*model.Reservation, error) {
			if room != "Morada" {
				t.Errorf("expected lookup for Morada, got %s", room)
			}
			return nil, nil
		},
	}
	svc := newTestService(t, repo)

	if _, err := svc.Create(context.Background(), newReservation("Morada", "2026-09-01", "09:00", "10:00")); err != nil {
		t.Fatalf("same slot in a different room should be accepted: %v", err)
	}
}

func TestCreateRejectsInvalidRange(t *testing.T) {
	svc := newTestService(t, &mockRepository{})

	for _, tc := range []struct {
		name       string
		start, end string
	}{
		{"end before start", "11:00", "10:00"},
		{"zero length", "10:00", "10:00"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), newReservation("Amarilla", "2026-09-01", tc.start, tc.end))
			if err == nil {
				t.Fatal("expected an error")
			}
			appErr := apperrors.AsAppError(err)
			if appErr.Code != apperrors.CodeValidation && appErr.Code != apperrors.CodeInvalidInput {
				t.Errorf("expected validation or invalid input code, got %s", appErr.Code)
			}
		})
	}
}

func TestCreateRejectsUnknownRoom(t *testing.T) {
	svc := newTestService(t, &mockRepository{})

	_, err := svc.Create(context.Background(), newReservation("Verde", "2026-09-01", "09:00", "10:00"))
	if err == nil {
		t.Fatal("expected an error for an unknown room")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeInvalidInput {
		t.Errorf("expected code %s, got %s", apperrors.CodeInvalidInput, appErr.Code)
	}
	if !errors.Is(err, reserrors.ErrUnknownRoom) {
		t.Error("expected the error to wrap ErrUnknownRoom")
	}
}

func TestCreateDefaultsAttendees(t *testing.T) {
	repo := &mockRepository{}
	svc := newTestService(t, repo)

	r := newReservation("Amarilla", "2026-09-01", "09:00", "10:00")
	r.Attendees = 0

	created, err := svc.Create(context.Background(), r)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.Attendees != 1 {
		t.Errorf("expected attendees to default to 1, got %d", created.Attendees)
	}
}

func TestCreateHandlesMixedDateLayouts(t *testing.T) {
	// The store may hold the same day written in either supported layout.
	repo := &mockRepository{
		listByRoomFunc: func(ctx context.Context, room string) ([]*model.Reservation, error) {
			return []*model.Reservation{
				storedReservation("res-1", "Amarilla", "01/09/2026", "09:00", "10:00", "Finanzas"),
			}, nil
		},
	}
	svc := newTestService(t, repo)

	_, err := svc.Create(context.Background(), newReservation("Amarilla", "2026-09-01", "09:30", "10:30"))
	if err == nil {
		t.Fatal("expected a conflict across date layouts")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeConflict {
		t.Errorf("expected code %s, got %s", apperrors.CodeConflict, appErr.Code)
	}
}

func TestCreateSkipsCorruptedRows(t *testing.T) {
	repo := &mockRepository{
		listByRoomFunc: func(ctx context.Context, room string) ([]*model.Reservation, error) {
			return []*model.Reservation{
				storedReservation("res-bad", "Amarilla", "2026-09-01", "late", "later", "Finanzas"),
			}, nil
		},
	}
	svc := newTestService(t, repo)

	if _, err := svc.Create(context.Background(), newReservation("Amarilla", "2026-09-01", "09:00", "10:00")); err != nil {
		t.Fatalf("a corrupted stored row must not block new bookings: %v", err)
	}
}

func TestCreateRepositoryFailure(t *testing.T) {
	repo := &mockRepository{
		listByRoomFunc: func(ctx context.Context, room string) ([]*model.Reservation, error) {
			return nil, errors.New("store offline")
		},
	}
	svc := newTestService(t, repo)

	_, err := svc.Create(context.Background(), newReservation("Amarilla", "2026-09-01", "09:00", "10:00"))
	if err == nil {
		t.Fatal("expected an error when the store is unreachable")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeInternal {
		t.Errorf("expected code %s, got %s", apperrors.CodeInternal, appErr.Code)
	}
}

func TestConcurrentCreatesSameSlot(t *testing.T) {
	// Two requests race for the same slot. The per-room lock must serialize
	// the check-then-append window so exactly one wins.
	var (
		storeMu sync.Mutex
		store   []*model.Reservation
	)
	repo := &mockRepository{}
	repo.listByRoomFunc = func(ctx context.Context, room string) ([]*model.Reservation, error) {
		storeMu.Lock()
		defer storeMu.Unlock()
		out := make([]*model.Reservation, len(store))
		copy(out, store)
		return out, nil
	}
	repo.appendFunc = func(ctx context.Context, r *model.Reservation) error {
		storeMu.Lock()
		defer storeMu.Unlock()
		store = append(store, r)
		return nil
	}

	svc := newTestService(t, repo)

	const attempts = 8
	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Create(context.Background(), newReservation("Amarilla", "2026-09-01", "09:00", "10:00"))
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var accepted, rejected int
	for err := range results {
		if err == nil {
			accepted++
			continue
		}
		if appErr := apperrors.AsAppError(err); appErr.Code == apperrors.CodeConflict {
			rejected++
		} else {
			t.Errorf("unexpected error: %v", err)
		}
	}

	if accepted != 1 {
		t.Errorf("expected exactly 1 accepted reservation, got %d", accepted)
	}
	if rejected != attempts-1 {
		t.Errorf("expected %d rejections, got %d", attempts-1, rejected)
	}
}

func TestGetAll(t *testing.T) {
	repo := &mockRepository{
		listFunc: func(ctx context.Context) ([]*model.Reservation, error) {
			return []*model.Reservation{
				storedReservation("res-1", "Amarilla", "2026-09-01", "09:00", "10:00", "Finanzas"),
				storedReservation("res-2", "Morada", "2026-09-01", "09:00", "10:00", "Ventas"),
			}, nil
		},
	}
	svc := newTestService(t, repo)

	reservations, err := svc.GetAll(context.Background())
	if err != nil {
		t.Fatalf("GetAll returned error: %v", err)
	}
	if len(reservations) != 2 {
		t.Errorf("expected 2 reservations, got %d", len(reservations))
	}
}

func TestDeleteNotFound(t *testing.T) {
	repo := &mockRepository{
		deleteFunc: func(ctx context.Context, id string) (bool, error) {
			return false, nil
		},
	}
	svc := newTestService(t, repo)

	err := svc.Delete(context.Background(), "missing-id")
	if err == nil {
		t.Fatal("expected a not found error")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeNotFound {
		t.Errorf("expected code %s, got %s", apperrors.CodeNotFound, appErr.Code)
	}
	if !errors.Is(err, reserrors.ErrNotFound) {
		t.Error("expected the error to wrap ErrNotFound")
	}
}

func TestDeleteEmptyID(t *testing.T) {
	svc := newTestService(t, &mockRepository{})

	err := svc.Delete(context.Background(), "")
	if err == nil {
		t.Fatal("expected an error for an empty id")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeInvalidInput {
		t.Errorf("expected code %s, got %s", apperrors.CodeInvalidInput, appErr.Code)
	}
}

func TestDelete(t *testing.T) {
	var deletedID string
	repo := &mockRepository{
		deleteFunc: func(ctx context.Context, id string) (bool, error) {
			deletedID = id
			return true, nil
		},
	}
	svc := newTestService(t, repo)

	if err := svc.Delete(context.Background(), "res-1"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if deletedID != "res-1" {
		t.Errorf("expected delete for res-1, got %q", deletedID)
	}
}

func TestRooms(t *testing.T) {
	svc := newTestService(t, &mockRepository{})

	rooms := svc.Rooms()
	if len(rooms) != 2 || rooms[0] != "Amarilla" || rooms[1] != "Morada" {
		t.Errorf("unexpected rooms: %v", rooms)
	}
}
