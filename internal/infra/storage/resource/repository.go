package resource

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

// Repository репозиторий ресурсов и их рабочих часов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория ресурсов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает ресурс вместе с рабочими часами
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Resource, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"duration_minutes",
		"slot_granularity_minutes",
		"timezone",
		"created_at",
		"updated_at",
	).
		From("resources").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var res domain.Resource
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&res.Name,
		&res.DurationMinutes,
		&res.SlotGranularityMinutes,
		&res.Timezone,
		&res.CreatedAt,
		&res.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) || pgerrors.IsInvalidUUID(err) {
		return nil, ErrResourceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan resource: %v", ErrScanRow, err)
	}

	hours, err := r.getWorkingHours(ctx, executor, id)
	if err != nil {
		return nil, err
	}
	res.WorkingHours = hours

	return &res, nil
}

// LockByID блокирует строку ресурса до конца текущей транзакции (SELECT ... FOR UPDATE).
// Все изменяющие операции над холдами и бронированиями ресурса начинаются с этой блокировки.
func (r *Repository) LockByID(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id").
		From("resources").
		Where(squirrel.Eq{"id": id}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: LockByID - build select query: %v", ErrBuildQuery, err)
	}

	var lockedID string
	err = executor.QueryRowContext(ctx, query, args...).Scan(&lockedID)
	if errors.Is(err, sql.ErrNoRows) || pgerrors.IsInvalidUUID(err) {
		return ErrResourceNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: LockByID - lock resource: %v", ErrExecQuery, err)
	}

	return nil
}

// Upsert создает или полностью заменяет ресурс и его рабочие часы.
// Должен вызываться внутри транзакции.
func (r *Repository) Upsert(ctx context.Context, res *domain.Resource) (*domain.Resource, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("resources").
		Columns(
			"id",
			"name",
			"duration_minutes",
			"slot_granularity_minutes",
			"timezone",
		).
		Values(
			res.ID,
			res.Name,
			res.DurationMinutes,
			res.SlotGranularityMinutes,
			res.Timezone,
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			duration_minutes = EXCLUDED.duration_minutes,
			slot_granularity_minutes = EXCLUDED.slot_granularity_minutes,
			timezone = EXCLUDED.timezone,
			updated_at = NOW()
		RETURNING created_at, updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&res.CreatedAt, &res.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("resource_working_hours").
		Where(squirrel.Eq{"resource_id": res.ID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build delete hours query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return nil, fmt.Errorf("%w: Upsert - delete hours: %v", ErrExecQuery, err)
	}

	if len(res.WorkingHours) == 0 {
		return res, nil
	}

	insert := psqlbuilder.Insert("resource_working_hours").
		Columns("resource_id", "weekday", "open_time", "close_time")
	for _, w := range res.WorkingHours {
		insert = insert.Values(res.ID, int(w.Weekday), w.Open, w.Close)
	}

	insertQuery, insertArgs, err := insert.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert hours query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return nil, fmt.Errorf("%w: Upsert - insert hours: %v", ErrExecQuery, err)
	}

	return res, nil
}

// getWorkingHours получает рабочие окна ресурса, упорядоченные по дню недели и времени открытия
func (r *Repository) getWorkingHours(ctx context.Context, executor DBExecutor, resourceID string) ([]domain.WorkingWindow, error) {
	query, args, err := psqlbuilder.Select("weekday", "open_time", "close_time").
		From("resource_working_hours").
		Where(squirrel.Eq{"resource_id": resourceID}).
		OrderBy("weekday ASC", "open_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getWorkingHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getWorkingHours - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	hours := make([]domain.WorkingWindow, 0)
	for rows.Next() {
		var (
			weekday int
			w       domain.WorkingWindow
		)
		if err := rows.Scan(&weekday, &w.Open, &w.Close); err != nil {
			return nil, fmt.Errorf("%w: getWorkingHours - scan row: %v", ErrScanRow, err)
		}
		w.Weekday = time.Weekday(weekday)
		hours = append(hours, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getWorkingHours - rows error: %v", ErrScanRow, err)
	}

	return hours, nil
}
