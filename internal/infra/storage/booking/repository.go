package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/pgerrors"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"id",
	"resource_id",
	"hold_id",
	"start_t",
	"end_t",
	"customer_name",
	"customer_email",
	"customer_phone",
	"notes",
	"total_amount",
	"status",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция, использует её.
//
// Ошибки ограничений:
// - EXCLUDE по (resource_id, [start_t, end_t)) для pending/confirmed -> ErrOverlap
// - UNIQUE по hold_id -> ErrHoldAlreadyBooked
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"id",
			"resource_id",
			"hold_id",
			"start_t",
			"end_t",
			"customer_name",
			"customer_email",
			"customer_phone",
			"notes",
			"total_amount",
			"status",
		).
		Values(
			b.ID,
			b.ResourceID,
			b.HoldID,
			b.Start.UTC(),
			b.End.UTC(),
			b.CustomerName,
			b.CustomerEmail,
			b.CustomerPhone,
			b.Notes,
			b.TotalAmount,
			b.Status,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&b.CreatedAt, &b.UpdatedAt)
	switch {
	case pgerrors.IsExclusionViolation(err):
		return nil, ErrOverlap
	case pgerrors.IsUniqueViolation(err):
		return nil, ErrHoldAlreadyBooked
	case err != nil:
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return b, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id}, false)
}

// GetByIDForUpdate получает бронирование по ID и блокирует строку до конца транзакции
func (r *Repository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Booking, error) {
	return r.getOne(ctx, "GetByIDForUpdate", squirrel.Eq{"id": id}, true)
}

// GetByHoldID получает бронирование, созданное из холда
func (r *Repository) GetByHoldID(ctx context.Context, holdID string) (*domain.Booking, error) {
	return r.getOne(ctx, "GetByHoldID", squirrel.Eq{"hold_id": holdID}, false)
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Eq, forUpdate bool) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(where)

	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	b, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) || pgerrors.IsInvalidUUID(err) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan booking: %v", ErrScanRow, op, err)
	}

	return b, nil
}

// ListActiveByResource получает pending/confirmed бронирования ресурса, пересекающие [from, to)
func (r *Repository) ListActiveByResource(ctx context.Context, resourceID string, from, to time.Time) ([]*domain.Booking, error) {
	return r.ListByResource(ctx, domain.ResourceBookingsFilter{
		ResourceID: resourceID,
		From:       &from,
		To:         &to,
	})
}

// ListByResource получает бронирования ресурса с гибкой фильтрацией
// Поддерживает фильтрацию по:
// - Периоду (From, To): бронирования, пересекающие [From, To)
// - Статусу (Status)
// - Включению отмененных бронирований (IncludeCancelled)
//
// Примеры использования:
//
// 1. Все активные бронирования ресурса:
//    filter := domain.ResourceBookingsFilter{ResourceID: id}
//
// 2. Только подтвержденные:
//    status := domain.StatusConfirmed
//    filter := domain.ResourceBookingsFilter{ResourceID: id, Status: &status}
func (r *Repository) ListByResource(ctx context.Context, filter domain.ResourceBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"resource_id": filter.ResourceID})

	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"end_t": filter.From.UTC()})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_t": filter.To.UTC()})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeCancelled {
		active := make([]string, len(domain.ActiveBookingStatuses))
		for i, s := range domain.ActiveBookingStatuses {
			active[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": active})
	}

	query, args, err := selectBuilder.OrderBy("start_t ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByResource - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		if pgerrors.IsInvalidUUID(err) {
			return []*domain.Booking{}, nil
		}
		return nil, fmt.Errorf("%w: ListByResource - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execSingle(ctx, executor, "UpdateStatus", query, args)
}

// Cancel отменяет бронирование с указанием причины, освобождая его интервал
func (r *Repository) Cancel(ctx context.Context, id string, reason *string, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", at.UTC()).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execSingle(ctx, executor, "Cancel", query, args)
}

func (r *Repository) execSingle(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		b           domain.Booking
		phone       sql.NullString
		notes       sql.NullString
		totalAmount sql.NullFloat64
		reason      sql.NullString
		cancelledAt sql.NullTime
	)

	err := row.Scan(
		&b.ID,
		&b.ResourceID,
		&b.HoldID,
		&b.Start,
		&b.End,
		&b.CustomerName,
		&b.CustomerEmail,
		&phone,
		&notes,
		&totalAmount,
		&b.Status,
		&reason,
		&cancelledAt,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.Start = b.Start.UTC()
	b.End = b.End.UTC()
	if phone.Valid {
		b.CustomerPhone = &phone.String
	}
	if notes.Valid {
		b.Notes = &notes.String
	}
	if totalAmount.Valid {
		b.TotalAmount = &totalAmount.Float64
	}
	if reason.Valid {
		b.CancellationReason = &reason.String
	}
	if cancelledAt.Valid {
		t := cancelledAt.Time.UTC()
		b.CancelledAt = &t
	}

	return &b, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
