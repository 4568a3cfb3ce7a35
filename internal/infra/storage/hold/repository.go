package hold

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

var holdColumns = []string{
	"id",
	"resource_id",
	"start_t",
	"end_t",
	"expires_at",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий холдов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория холдов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новый холд.
// Пересечение с другим активным холдом ресурса отсекается EXCLUDE-ограничением и возвращается как ErrOverlap.
func (r *Repository) Create(ctx context.Context, h *domain.Hold) (*domain.Hold, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("holds").
		Columns("id", "resource_id", "start_t", "end_t", "expires_at", "status").
		Values(h.ID, h.ResourceID, h.Start.UTC(), h.End.UTC(), h.ExpiresAt.UTC(), h.Status).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&h.CreatedAt, &h.UpdatedAt)
	if pgerrors.IsExclusionViolation(err) {
		return nil, ErrOverlap
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return h, nil
}

// GetByID получает холд по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Hold, error) {
	return r.get(ctx, id, false)
}

// GetByIDForUpdate получает холд по ID и блокирует строку до конца транзакции
func (r *Repository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Hold, error) {
	return r.get(ctx, id, true)
}

func (r *Repository) get(ctx context.Context, id string, forUpdate bool) (*domain.Hold, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(holdColumns...).
		From("holds").
		Where(squirrel.Eq{"id": id})

	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	h, err := scanHold(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) || pgerrors.IsInvalidUUID(err) {
		return nil, ErrHoldNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan hold: %v", ErrScanRow, err)
	}

	return h, nil
}

// ListActiveByResource получает холды ресурса в статусе active, пересекающие [from, to).
// Холды с истекшим TTL тоже попадают в выборку, фильтрация по времени остается за вызывающим.
func (r *Repository) ListActiveByResource(ctx context.Context, resourceID string, from, to time.Time) ([]*domain.Hold, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(holdColumns...).
		From("holds").
		Where(squirrel.Eq{"resource_id": resourceID}).
		Where(squirrel.Eq{"status": domain.HoldStatusActive}).
		Where(squirrel.Lt{"start_t": to.UTC()}).
		Where(squirrel.Gt{"end_t": from.UTC()}).
		OrderBy("start_t ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByResource - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByResource - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanHolds(rows)
}

// UpdateStatus меняет статус холда
func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.HoldStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("holds").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrHoldNotFound
	}

	return nil
}

// ExpireStaleByResource переводит в expired активные холды ресурса с истекшим TTL
func (r *Repository) ExpireStaleByResource(ctx context.Context, resourceID string, now time.Time) (int64, error) {
	return r.expireStale(ctx, squirrel.Eq{"resource_id": resourceID}, now)
}

// ExpireStale переводит в expired все активные холды с истекшим TTL
func (r *Repository) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	return r.expireStale(ctx, nil, now)
}

func (r *Repository) expireStale(ctx context.Context, scope squirrel.Sqlizer, now time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	update := psqlbuilder.Update("holds").
		Set("status", domain.HoldStatusExpired).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"status": domain.HoldStatusActive}).
		Where(squirrel.LtOrEq{"expires_at": now.UTC()})

	if scope != nil {
		update = update.Where(scope)
	}

	query, args, err := update.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: ExpireStale - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: ExpireStale - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: ExpireStale - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// DeleteExpiredBefore физически удаляет холды в статусе expired, истекшие раньше before.
// Поглощенные холды не удаляются: на них ссылаются бронирования.
func (r *Repository) DeleteExpiredBefore(ctx context.Context, before time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("holds").
		Where(squirrel.Eq{"status": domain.HoldStatusExpired}).
		Where(squirrel.Lt{"expires_at": before.UTC()}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpiredBefore - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpiredBefore - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpiredBefore - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanHold(row rowScanner) (*domain.Hold, error) {
	var h domain.Hold
	err := row.Scan(
		&h.ID,
		&h.ResourceID,
		&h.Start,
		&h.End,
		&h.ExpiresAt,
		&h.Status,
		&h.CreatedAt,
		&h.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	h.Start = h.Start.UTC()
	h.End = h.End.UTC()
	h.ExpiresAt = h.ExpiresAt.UTC()

	return &h, nil
}

// scanHolds сканирует результаты запроса в слайс холдов
func scanHolds(rows *sql.Rows) ([]*domain.Hold, error) {
	holds := make([]*domain.Hold, 0)

	for rows.Next() {
		h, err := scanHold(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanHolds - scan row: %v", ErrScanRow, err)
		}
		holds = append(holds, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanHolds - rows error: %v", ErrScanRow, err)
	}

	return holds, nil
}
