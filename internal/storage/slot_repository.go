package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/appointease/slot-service/internal/model"
	"github.com/appointease/slot-service/libs/db"
)

var (
	ErrSlotNotFound = errors.New("slot not found")
	// ErrSlotUnavailable means a booking raced or targeted a non-available
	// slot; the row decides, not the caller.
	ErrSlotUnavailable = errors.New("slot is not available")
	// ErrSlotImmutable means an update or delete targeted a booked slot.
	ErrSlotImmutable = errors.New("booked slots cannot be modified")
)

const slotColumns = `
	id::text, slot_date::text, start_time, end_time, title, description,
	duration_minutes, status,
	client_name, client_email, client_phone, booking_notes, created_at`

// SlotRepository is the Postgres persistence layer for slots. Mutations that
// must pair with an outbox event take an explicit transaction; reads run on
// the pool.
type SlotRepository struct {
	pool *db.Pool
}

func NewSlotRepository(pool *db.Pool) *SlotRepository {
	return &SlotRepository{pool: pool}
}

func (r *SlotRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	return r.pool.Begin(ctx)
}

func (r *SlotRepository) ListByDate(ctx context.Context, date string) ([]model.Slot, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+slotColumns+`
		FROM slots
		WHERE slot_date = $1
		ORDER BY start_time ASC
	`, date)
	if err != nil {
		return nil, err
	}
	return collectSlots(rows)
}

func (r *SlotRepository) ListByRange(ctx context.Context, startDate, endDate string) ([]model.Slot, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+slotColumns+`
		FROM slots
		WHERE slot_date >= $1 AND slot_date <= $2
		ORDER BY slot_date ASC, start_time ASC
	`, startDate, endDate)
	if err != nil {
		return nil, err
	}
	return collectSlots(rows)
}

func (r *SlotRepository) GetByID(ctx context.Context, id string) (model.Slot, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+slotColumns+`
		FROM slots
		WHERE id = $1
	`, id)
	slot, err := scanSlot(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Slot{}, ErrSlotNotFound
	}
	return slot, err
}

// StatusesByMonth lists every slot status in (year, month) keyed by date, as
// input for the availability aggregation.
func (r *SlotRepository) StatusesByMonth(ctx context.Context, year int, month time.Month) (map[string][]model.SlotStatus, error) {
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)

	rows, err := r.pool.Query(ctx, `
		SELECT slot_date::text, status
		FROM slots
		WHERE slot_date >= $1 AND slot_date < $2
	`, monthStart.Format(model.DateLayout), monthEnd.Format(model.DateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byDay := map[string][]model.SlotStatus{}
	for rows.Next() {
		var date string
		var status model.SlotStatus
		if err := rows.Scan(&date, &status); err != nil {
			return nil, err
		}
		byDay[date] = append(byDay[date], status)
	}
	return byDay, rows.Err()
}

// CreateTx inserts one descriptor as an available slot and returns the
// persisted row. IDs are assigned here.
func (r *SlotRepository) CreateTx(ctx context.Context, tx pgx.Tx, desc model.SlotDescriptor) (model.Slot, error) {
	row := tx.QueryRow(ctx, `
		INSERT INTO slots (id, slot_date, start_time, end_time, title, description, duration_minutes, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 'available')
		RETURNING `+slotColumns+`
	`, uuid.NewString(), desc.Date, desc.StartTime, desc.EndTime, desc.Title, desc.Description, desc.DurationMinutes)
	return scanSlot(row)
}

// Update replaces the editable fields of a slot. Booked slots are immutable.
func (r *SlotRepository) Update(ctx context.Context, id string, desc model.SlotDescriptor) (model.Slot, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE slots
		SET slot_date = $2,
			start_time = $3,
			end_time = $4,
			title = $5,
			description = $6,
			duration_minutes = $7
		WHERE id = $1 AND status <> 'booked'
		RETURNING `+slotColumns+`
	`, id, desc.Date, desc.StartTime, desc.EndTime, desc.Title, desc.Description, desc.DurationMinutes)
	slot, err := scanSlot(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Slot{}, r.classifyMissing(ctx, id)
	}
	return slot, err
}

// DeleteTx removes a slot and returns the deleted row for event payloads.
func (r *SlotRepository) DeleteTx(ctx context.Context, tx pgx.Tx, id string) (model.Slot, error) {
	row := tx.QueryRow(ctx, `
		DELETE FROM slots
		WHERE id = $1
		RETURNING `+slotColumns+`
	`, id)
	slot, err := scanSlot(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Slot{}, ErrSlotNotFound
	}
	return slot, err
}

// BookTx books an available slot for a client. The conditional UPDATE is the
// arbiter for concurrent bookings: the loser sees ErrSlotUnavailable.
func (r *SlotRepository) BookTx(ctx context.Context, tx pgx.Tx, id string, client model.ClientInfo) (model.Slot, error) {
	row := tx.QueryRow(ctx, `
		UPDATE slots
		SET status = 'booked',
			client_name = $2,
			client_email = $3,
			client_phone = $4,
			booking_notes = $5,
			booked_at = now()
		WHERE id = $1 AND status = 'available'
		RETURNING `+slotColumns+`
	`, id, client.Name, client.Email, client.Phone, client.Notes)
	slot, err := scanSlot(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Slot{}, r.classifyMissingTx(ctx, tx, id)
	}
	return slot, err
}

// classifyMissing turns a zero-row mutation into not-found vs not-mutable.
func (r *SlotRepository) classifyMissing(ctx context.Context, id string) error {
	var status string
	err := r.pool.QueryRow(ctx, `SELECT status FROM slots WHERE id = $1`, id).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrSlotNotFound
	}
	if err != nil {
		return err
	}
	if status == string(model.StatusBooked) {
		return ErrSlotImmutable
	}
	return fmt.Errorf("%w (status %s)", ErrSlotUnavailable, status)
}

func (r *SlotRepository) classifyMissingTx(ctx context.Context, tx pgx.Tx, id string) error {
	var status string
	err := tx.QueryRow(ctx, `SELECT status FROM slots WHERE id = $1`, id).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrSlotNotFound
	}
	if err != nil {
		return err
	}
	return fmt.Errorf("%w (status %s)", ErrSlotUnavailable, status)
}

// IsConflict reports a unique-constraint violation, e.g. two slots starting
// at the same time on the same date.
func IsConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrSlotNotFound)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSlot(row rowScanner) (model.Slot, error) {
	var slot model.Slot
	var clientName, clientEmail, clientPhone, bookingNotes *string
	err := row.Scan(
		&slot.ID,
		&slot.Date,
		&slot.StartTime,
		&slot.EndTime,
		&slot.Title,
		&slot.Description,
		&slot.DurationMinutes,
		&slot.Status,
		&clientName,
		&clientEmail,
		&clientPhone,
		&bookingNotes,
		&slot.CreatedAt,
	)
	if err != nil {
		return model.Slot{}, err
	}
	if slot.Status == model.StatusBooked && clientName != nil {
		slot.BookedBy = &model.ClientInfo{
			Name:  *clientName,
			Email: deref(clientEmail),
			Phone: deref(clientPhone),
			Notes: deref(bookingNotes),
		}
	}
	return slot, nil
}

func collectSlots(rows pgx.Rows) ([]model.Slot, error) {
	defer rows.Close()
	var slots []model.Slot
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	return slots, rows.Err()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
