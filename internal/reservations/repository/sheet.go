package repository

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"salas/pkg/config"
	"salas/pkg/model"

	"google.golang.org/api/sheets/v4"
)

// Column layout of the reservations sheet. One reservation per row, header
// row first.
var sheetHeaders = []any{
	"ID",
	"DATE",
	"START_TIME",
	"END_TIME",
	"AREA",
	"ROOM",
	"ATTENDEES",
}

type sheetReservationRepository struct {
	cfg           *config.Config
	service       *sheets.Service
	spreadsheetID string
	sheetName     string

	mu      sync.Mutex
	ensured bool
}

func NewSheetReservationRepository(cfg *config.Config) ReservationRepository {
	return &sheetReservationRepository{
		cfg:           cfg,
		service:       cfg.Client.Sheets.Service,
		spreadsheetID: cfg.SpreadsheetID,
		sheetName:     cfg.SheetName,
	}
}

// ensureSheet creates the reservations sheet with its header row the first
// time the spreadsheet is touched.
func (r *sheetReservationRepository) ensureSheet(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.ensured {
		return nil
	}

	spreadsheet, err := r.service.Spreadsheets.Get(r.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to read spreadsheet metadata: %w", err)
	}

	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties.Title == r.sheetName {
			r.ensured = true
			return nil
		}
	}

	r.cfg.Log.Info("Reservations sheet missing, creating it", "sheet", r.sheetName)

	_, err = r.service.Spreadsheets.BatchUpdate(r.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			{
				AddSheet: &sheets.AddSheetRequest{
					Properties: &sheets.SheetProperties{Title: r.sheetName},
				},
			},
		},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", r.sheetName, err)
	}

	headerRange := fmt.Sprintf("%s!A1:G1", r.sheetName)
	_, err = r.service.Spreadsheets.Values.Update(r.spreadsheetID, headerRange, &sheets.ValueRange{
		Values: [][]any{sheetHeaders},
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	r.ensured = true
	return nil
}

func (r *sheetReservationRepository) List(ctx context.Context) ([]*model.Reservation, error) {
	if err := r.ensureSheet(ctx); err != nil {
		return nil, err
	}

	readRange := fmt.Sprintf("%s!A:G", r.sheetName)
	resp, err := r.service.Spreadsheets.Values.Get(r.spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read reservations: %w", err)
	}

	// First row is the header; rows without an id are leftovers and skipped.
	var reservations []*model.Reservation
	for i, row := range resp.Values {
		if i == 0 {
			continue
		}
		if cell(row, 0) == "" {
			continue
		}
		reservations = append(reservations, rowToReservation(row))
	}

	return reservations, nil
}

func (r *sheetReservationRepository) ListByRoom(ctx context.Context, room string) ([]*model.Reservation, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	var reservations []*model.Reservation
	for _, reservation := range all {
		if reservation.Room == room {
			reservations = append(reservations, reservation)
		}
	}
	return reservations, nil
}

func (r *sheetReservationRepository) Append(ctx context.Context, reservation *model.Reservation) error {
	if err := r.ensureSheet(ctx); err != nil {
		return err
	}

	reservation.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	appendRange := fmt.Sprintf("%s!A:G", r.sheetName)
	_, err := r.service.Spreadsheets.Values.Append(r.spreadsheetID, appendRange, &sheets.ValueRange{
		Values: [][]any{
			{
				reservation.ID,
				reservation.Date,
				reservation.StartTime,
				reservation.EndTime,
				reservation.Area,
				reservation.Room,
				reservation.Attendees,
			},
		},
	}).ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to append reservation: %w", err)
	}

	return nil
}

func (r *sheetReservationRepository) Delete(ctx context.Context, id string) (bool, error) {
	if err := r.ensureSheet(ctx); err != nil {
		return false, err
	}

	idRange := fmt.Sprintf("%s!A:A", r.sheetName)
	resp, err := r.service.Spreadsheets.Values.Get(r.spreadsheetID, idRange).Context(ctx).Do()
	if err != nil {
		return false, fmt.Errorf("failed to read reservation ids: %w", err)
	}

	rowIndex := -1
	for i, row := range resp.Values {
		if cell(row, 0) == id {
			rowIndex = i
			break
		}
	}
	if rowIndex == -1 {
		return false, nil
	}

	sheetID, err := r.sheetID(ctx)
	if err != nil {
		return false, err
	}

	_, err = r.service.Spreadsheets.BatchUpdate(r.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			{
				DeleteDimension: &sheets.DeleteDimensionRequest{
					Range: &sheets.DimensionRange{
						SheetId:    sheetID,
						Dimension:  "ROWS",
						StartIndex: int64(rowIndex),
						EndIndex:   int64(rowIndex + 1),
					},
				},
			},
		},
	}).Context(ctx).Do()
	if err != nil {
		return false, fmt.Errorf("failed to delete reservation row: %w", err)
	}

	return true, nil
}

func (r *sheetReservationRepository) Ping(ctx context.Context) error {
	_, err := r.service.Spreadsheets.Get(r.spreadsheetID).Fields("spreadsheetId").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("spreadsheet unreachable: %w", err)
	}
	return nil
}

func (r *sheetReservationRepository) sheetID(ctx context.Context) (int64, error) {
	spreadsheet, err := r.service.Spreadsheets.Get(r.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("failed to read spreadsheet metadata: %w", err)
	}

	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties.Title == r.sheetName {
			return sheet.Properties.SheetId, nil
		}
	}

	return 0, fmt.Errorf("sheet %q not found", r.sheetName)
}

func rowToReservation(row []any) *model.Reservation {
	attendees, err := strconv.Atoi(cell(row, 6))
	if err != nil || attendees <= 0 {
		attendees = 1
	}

	return &model.Reservation{
		ID:        cell(row, 0),
		Date:      cell(row, 1),
		StartTime: cell(row, 2),
		EndTime:   cell(row, 3),
		Area:      cell(row, 4),
		Room:      cell(row, 5),
		Attendees: attendees,
	}
}

func cell(row []any, i int) string {
	if i >= len(row) {
		return ""
	}
	return fmt.Sprint(row[i])
}
