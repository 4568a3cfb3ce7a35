package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/m04kA/SMC-ReservationService/internal/usecase/sweep_holds"
)

// HoldSweeper очистка холдов
type HoldSweeper interface {
	Execute(ctx context.Context, req *sweep_holds.Request) (*sweep_holds.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Scheduler запускает очистку холдов по cron-расписанию
type Scheduler struct {
	sweeper  HoldSweeper
	schedule string
	timeout  time.Duration
	logger   Logger
}

// New создает планировщик. schedule в формате robfig/cron, например "@every 1m" или "*/5 * * * *".
func New(sweeper HoldSweeper, schedule string, timeout time.Duration, logger Logger) *Scheduler {
	return &Scheduler{
		sweeper:  sweeper,
		schedule: schedule,
		timeout:  timeout,
		logger:   logger,
	}
}

// Start блокируется до отмены ctx. Запуски не пересекаются: следующий пропускается, пока идет текущий.
func (s *Scheduler) Start(ctx context.Context) error {
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)

	if _, err := c.AddFunc(s.schedule, func() { s.tick(ctx) }); err != nil {
		return fmt.Errorf("scheduler: invalid schedule %q: %w", s.schedule, err)
	}

	c.Start()
	s.logger.Info("Scheduler: hold sweep started, schedule=%s", s.schedule)

	<-ctx.Done()

	// ждем завершения текущего запуска
	<-c.Stop().Done()
	s.logger.Info("Scheduler: stopped")
	return nil
}

// tick выполняет одну очистку
func (s *Scheduler) tick(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	runCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	resp, err := s.sweeper.Execute(runCtx, &sweep_holds.Request{})
	if err != nil {
		s.logger.Error("Scheduler: hold sweep failed: %v", err)
		return
	}

	s.logger.Info("Scheduler: hold sweep done, expired=%d, deleted=%d", resp.Expired, resp.Deleted)
}
