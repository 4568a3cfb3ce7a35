package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	cancelBookingHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/cancel_booking"
	confirmHoldHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/confirm_hold"
	createHoldHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/create_hold"
	getAvailabilityHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_availability"
	getBookingHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_booking"
	getResourceHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_resource"
	getResourceBookingsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_resource_bookings"
	releaseHoldHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/release_hold"
	updateBookingStatusHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/update_booking_status"
	upsertResourceHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/upsert_resource"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/config"
	resourceCache "github.com/m04kA/SMC-ReservationService/internal/infra/cache/resource"
	bookingRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/booking"
	holdRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/hold"
	resourceRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/resource"
	"github.com/m04kA/SMC-ReservationService/internal/scheduler"
	bookingsService "github.com/m04kA/SMC-ReservationService/internal/service/bookings"
	calendarService "github.com/m04kA/SMC-ReservationService/internal/service/calendar"
	reservationService "github.com/m04kA/SMC-ReservationService/internal/service/reservation"
	confirmBookingUC "github.com/m04kA/SMC-ReservationService/internal/usecase/confirm_booking"
	createHoldUC "github.com/m04kA/SMC-ReservationService/internal/usecase/create_hold"
	getAvailabilityUC "github.com/m04kA/SMC-ReservationService/internal/usecase/get_availability"
	releaseHoldUC "github.com/m04kA/SMC-ReservationService/internal/usecase/release_hold"
	sweepHoldsUC "github.com/m04kA/SMC-ReservationService/internal/usecase/sweep_holds"
	"github.com/m04kA/SMC-ReservationService/migrations"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/metrics"
	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
)

const limiterCleanupInterval = time.Minute

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-ReservationService...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Database.AutoMigrate {
		if err := migrations.Up(db); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Database migrations applied")
	}

	// Обёртка над БД: при выключенных метриках работает как прозрачный прокси
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	resourceRepository := resourceRepo.NewRepository(wrappedDB)
	holdRepository := holdRepo.NewRepository(wrappedDB)
	bookingRepository := bookingRepo.NewRepository(wrappedDB)

	// Кэш ресурсов (опционально). Интерфейс остаётся nil, если Redis выключен.
	var cache calendarService.ResourceCache
	if cfg.Cache.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Addr,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Warn("Redis unavailable at %s, resource cache disabled: %v", cfg.Cache.Addr, err)
		} else {
			cache = resourceCache.NewCache(redisClient, cfg.Cache.TTL)
			log.Info("Resource cache enabled (addr=%s, ttl=%s)", cfg.Cache.Addr, cfg.Cache.TTL)
		}
	}

	// Инициализируем сервисы
	calendarSvc := calendarService.NewService(resourceRepository, cache, txMgr, log)
	bookingSvc := bookingsService.NewService(bookingRepository, resourceRepository, txMgr, log)

	// Инициализируем use cases
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		calendarSvc,
		holdRepository,
		bookingRepository,
		txMgr,
		log,
		getAvailabilityUC.WithMaxRange(cfg.Reservation.MaxAvailabilitySpan),
	)
	createHoldUseCase := createHoldUC.NewUseCase(
		resourceRepository,
		holdRepository,
		bookingRepository,
		txMgr,
		log,
		createHoldUC.WithHoldTTL(cfg.Reservation.HoldTTL),
	)
	confirmBookingUseCase := confirmBookingUC.NewUseCase(
		resourceRepository,
		holdRepository,
		bookingRepository,
		txMgr,
		log,
	)
	releaseHoldUseCase := releaseHoldUC.NewUseCase(
		resourceRepository,
		holdRepository,
		txMgr,
		log,
	)
	sweepHoldsUseCase := sweepHoldsUC.NewUseCase(
		holdRepository,
		txMgr,
		log,
		sweepHoldsUC.WithRetention(cfg.Reservation.SweepRetention),
		sweepHoldsUC.WithMetrics(metricsCollector),
	)

	reservationSvc := reservationService.NewService(
		getAvailabilityUseCase,
		createHoldUseCase,
		confirmBookingUseCase,
		releaseHoldUseCase,
		metricsCollector,
		log,
	)

	sweeper := scheduler.New(sweepHoldsUseCase, cfg.Reservation.SweepSchedule, cfg.Reservation.SweepTimeout, log)

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(reservationSvc, log)
	createHold := createHoldHandler.NewHandler(reservationSvc, log)
	confirmHold := confirmHoldHandler.NewHandler(reservationSvc, log)
	releaseHold := releaseHoldHandler.NewHandler(reservationSvc, log)
	getResource := getResourceHandler.NewHandler(calendarSvc, log)
	upsertResource := upsertResourceHandler.NewHandler(calendarSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getResourceBookings := getResourceBookingsHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.Recovery(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/resources/{resourceId}", getResource.Handle).Methods(http.MethodGet)
	api.HandleFunc("/resources/{resourceId}/availability", getAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/resources/{resourceId}/bookings", getResourceBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Создание холда ограничено по частоте запросов с одного IP
	var limiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
		api.Handle("/holds", limiter.Middleware(http.HandlerFunc(createHold.Handle))).Methods(http.MethodPost)
		log.Info("Rate limit on POST /holds: %.2f rps, burst %d", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	} else {
		api.HandleFunc("/holds", createHold.Handle).Methods(http.MethodPost)
	}

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Холды ---
	protected.HandleFunc("/holds/{holdId}/confirm", confirmHold.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/holds/{holdId}", releaseHold.Handle).Methods(http.MethodDelete)

	// --- Управление ресурсами и бронированиями (для операторов) ---
	protected.HandleFunc("/resources/{resourceId}", upsertResource.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Ожидаем сигнал завершения
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		log.Info("Starting hold sweeper (schedule=%q, retention=%s)",
			cfg.Reservation.SweepSchedule, cfg.Reservation.SweepRetention)
		return sweeper.Start(gCtx)
	})

	if limiter != nil {
		g.Go(func() error {
			ticker := time.NewTicker(limiterCleanupInterval)
			defer ticker.Stop()
			for {
				select {
				case <-gCtx.Done():
					return nil
				case <-ticker.C:
					limiter.Cleanup()
				}
			}
		})
	}

	g.Go(func() error {
		<-gCtx.Done()
		log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
		)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Server forced to shutdown: %v", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("Service stopped with error: %v", err)
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
