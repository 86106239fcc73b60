package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sportbeacon/eventparse/internal/booking"
	"github.com/sportbeacon/eventparse/pkg/logger"
)

// BookingStorage handles storage of venue bookings
type BookingStorage struct {
	db     *sql.DB
	logger *logger.Logger
}

// NewBookingStorage creates a new SQLite booking storage
func NewBookingStorage(db *sql.DB, log *logger.Logger) (*BookingStorage, error) {
	storage := &BookingStorage{
		db:     db,
		logger: log.Named("sqlite-bookings"),
	}

	if err := storage.initDB(); err != nil {
		return nil, fmt.Errorf("failed to initialize booking storage: %w", err)
	}
	return storage, nil
}

// initDB initializes the database tables
func (s *BookingStorage) initDB() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS bookings (
			id TEXT PRIMARY KEY,
			venue_id TEXT NOT NULL,
			user_id TEXT,
			start_time TIMESTAMP NOT NULL,
			end_time TIMESTAMP NOT NULL,
			status TEXT NOT NULL DEFAULT 'confirmed',
			created_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create bookings table: %w", err)
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_bookings_venue_id ON bookings(venue_id)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_start_time ON bookings(start_time)`,
	}
	for _, indexSQL := range indexes {
		if _, err = s.db.Exec(indexSQL); err != nil {
			return fmt.Errorf("failed to create booking index: %w", err)
		}
	}

	return nil
}

// CreateBooking stores a new booking, generating an ID when none is set
func (s *BookingStorage) CreateBooking(ctx context.Context, b booking.Booking) (string, error) {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Status == "" {
		b.Status = booking.StatusConfirmed
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO bookings (id, venue_id, user_id, start_time, end_time, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.VenueID, b.UserID,
		b.Start.UTC().Format(time.RFC3339),
		b.End.UTC().Format(time.RFC3339),
		b.Status, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create booking: %w", err)
	}
	return b.ID, nil
}

// FindOverlapping returns confirmed bookings at the venue that intersect the
// window. Interval overlap is exclusive at the edges, so a booking ending at
// 18:00 does not collide with a request starting at 18:00.
func (s *BookingStorage) FindOverlapping(ctx context.Context, venueID string, start, end time.Time) ([]booking.Booking, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, venue_id, user_id, start_time, end_time, status
		FROM bookings
		WHERE venue_id = ? AND start_time < ? AND end_time > ? AND status != 'cancelled'
		ORDER BY start_time`,
		venueID,
		end.UTC().Format(time.RFC3339),
		start.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	return s.scanBookingRows(rows)
}

// CancelBooking marks a booking as cancelled
func (s *BookingStorage) CancelBooking(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE bookings SET status = 'cancelled' WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to cancel booking: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check cancel result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("booking %s not found", id)
	}
	return nil
}

// scanBookingRows scans database rows into Booking structs
func (s *BookingStorage) scanBookingRows(rows *sql.Rows) ([]booking.Booking, error) {
	var records []booking.Booking
	for rows.Next() {
		var b booking.Booking
		var userID sql.NullString
		var startStr, endStr string

		if err := rows.Scan(&b.ID, &b.VenueID, &userID, &startStr, &endStr, &b.Status); err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}

		b.UserID = userID.String

		start, err := time.Parse(time.RFC3339, startStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse booking start time: %w", err)
		}
		end, err := time.Parse(time.RFC3339, endStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse booking end time: %w", err)
		}
		b.Start = start
		b.End = end

		records = append(records, b)
	}
	return records, rows.Err()
}
