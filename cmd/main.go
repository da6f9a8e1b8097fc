package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelReservationHandler "github.com/m04kA/CHS-ReservationService/internal/api/handlers/cancel_reservation"
	confirmReservationHandler "github.com/m04kA/CHS-ReservationService/internal/api/handlers/confirm_reservation"
	createBlockHandler "github.com/m04kA/CHS-ReservationService/internal/api/handlers/create_block"
	createReservationHandler "github.com/m04kA/CHS-ReservationService/internal/api/handlers/create_reservation"
	deleteBlockHandler "github.com/m04kA/CHS-ReservationService/internal/api/handlers/delete_block"
	exportBillingHandler "github.com/m04kA/CHS-ReservationService/internal/api/handlers/export_billing"
	getDayScheduleHandler "github.com/m04kA/CHS-ReservationService/internal/api/handlers/get_day_schedule"
	getReservationHandler "github.com/m04kA/CHS-ReservationService/internal/api/handlers/get_reservation"
	getUnitReservationsHandler "github.com/m04kA/CHS-ReservationService/internal/api/handlers/get_unit_reservations"
	listBlocksHandler "github.com/m04kA/CHS-ReservationService/internal/api/handlers/list_blocks"
	updateReservationHandler "github.com/m04kA/CHS-ReservationService/internal/api/handlers/update_reservation"
	"github.com/m04kA/CHS-ReservationService/internal/api/middleware"
	"github.com/m04kA/CHS-ReservationService/internal/config"
	blockRepo "github.com/m04kA/CHS-ReservationService/internal/infra/storage/block"
	reservationRepo "github.com/m04kA/CHS-ReservationService/internal/infra/storage/reservation"
	activityLogClient "github.com/m04kA/CHS-ReservationService/internal/integrations/activitylog"
	"github.com/m04kA/CHS-ReservationService/internal/notifier"
	billingService "github.com/m04kA/CHS-ReservationService/internal/service/billing"
	blocksService "github.com/m04kA/CHS-ReservationService/internal/service/blocks"
	reservationsService "github.com/m04kA/CHS-ReservationService/internal/service/reservations"
	createReservationUC "github.com/m04kA/CHS-ReservationService/internal/usecase/create_reservation"
	updateReservationUC "github.com/m04kA/CHS-ReservationService/internal/usecase/update_reservation"
	"github.com/m04kA/CHS-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/CHS-ReservationService/pkg/logger"
	"github.com/m04kA/CHS-ReservationService/pkg/metrics"
	"github.com/m04kA/CHS-ReservationService/pkg/rabbit"
	"github.com/m04kA/CHS-ReservationService/pkg/simpletxmanager"
	"github.com/m04kA/CHS-ReservationService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting CHS-ReservationService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Инициализируем клиент журнала действий
	activityLog := activityLogClient.NewClient(
		cfg.ActivityLog.URL,
		time.Duration(cfg.ActivityLog.Timeout)*time.Second,
		log,
	)
	log.Info("ActivityLog client initialized (url=%s timeout=%ds)", cfg.ActivityLog.URL, cfg.ActivityLog.Timeout)

	// Инициализируем издателя доменных событий (если включен)
	var eventPublisher *rabbit.Publisher
	if cfg.Rabbit.Enabled {
		eventPublisher, err = rabbit.NewPublisher(cfg.Rabbit.URL, cfg.Rabbit.Exchange)
		if err != nil {
			log.Fatal("Failed to connect to rabbit: %v", err)
		}
		defer eventPublisher.Close()
		log.Info("Event publisher initialized (exchange=%s)", cfg.Rabbit.Exchange)
	} else {
		log.Info("Event publisher disabled")
	}

	var events *notifier.Notifier
	if eventPublisher != nil {
		events = notifier.New(eventPublisher, log)
	} else {
		events = notifier.New(nil, log)
	}

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		blockRepository       *blockRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		blockRepository = blockRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		blockRepository = blockRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	reservationSvc := reservationsService.New(
		reservationRepository,
		blockRepository,
		activityLog,
		&reservationsService.RealTimeProvider{},
		log,
		cfg.Resources.TableCount,
	)
	blockSvc := blocksService.New(
		blockRepository,
		activityLog,
		events,
		&blocksService.RealTimeProvider{},
		log,
	)
	billingSvc := billingService.New(
		reservationRepository,
		cfg.Tariff.ToDomain(),
		log,
	)

	// Инициализируем use cases
	createSettings := createReservationUC.Settings{
		UnitCount:       cfg.Resources.UnitCount,
		TableCount:      cfg.Resources.TableCount,
		ShortNoticeDays: cfg.Rules.ShortNoticeDays,
		RestDays:        cfg.Rules.RestWeekdays(),
		EnforceBlocks:   cfg.Rules.EnforceBlocks,
	}
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		blockRepository,
		txMgr,
		activityLog,
		events,
		log,
		createSettings,
	)

	updateSettings := updateReservationUC.Settings{
		UnitCount:       cfg.Resources.UnitCount,
		TableCount:      cfg.Resources.TableCount,
		ShortNoticeDays: cfg.Rules.ShortNoticeDays,
		RestDays:        cfg.Rules.RestWeekdays(),
		EnforceBlocks:   cfg.Rules.EnforceBlocks,
	}
	updateReservationUseCase := updateReservationUC.NewUseCase(
		reservationRepository,
		blockRepository,
		txMgr,
		activityLog,
		log,
		updateSettings,
	)

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	updateReservation := updateReservationHandler.NewHandler(updateReservationUseCase, log)
	confirmReservation := confirmReservationHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	getUnitReservations := getUnitReservationsHandler.NewHandler(reservationSvc, log)
	getDaySchedule := getDayScheduleHandler.NewHandler(reservationSvc, log)
	createBlock := createBlockHandler.NewHandler(blockSvc, log)
	deleteBlock := deleteBlockHandler.NewHandler(blockSvc, log)
	listBlocks := listBlocksHandler.NewHandler(blockSvc, log)
	exportBilling := exportBillingHandler.NewHandler(billingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix: все маршруты требуют идентификацию от шлюза
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth)

	// --- Бронирования ---
	api.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	api.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	api.HandleFunc("/reservations/{reservationId}", updateReservation.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/reservations/{reservationId}", cancelReservation.Handle).Methods(http.MethodDelete)
	api.HandleFunc("/reservations/{reservationId}/confirm", confirmReservation.Handle).Methods(http.MethodPatch)

	// --- История квартиры и расписание дня ---
	api.HandleFunc("/units/{unitNumber}/reservations", getUnitReservations.Handle).Methods(http.MethodGet)
	api.HandleFunc("/schedule/{date}", getDaySchedule.Handle).Methods(http.MethodGet)

	// --- Административные блокировки ---
	api.HandleFunc("/blocks", createBlock.Handle).Methods(http.MethodPost)
	api.HandleFunc("/blocks", listBlocks.Handle).Methods(http.MethodGet)
	api.HandleFunc("/blocks/{blockId}", deleteBlock.Handle).Methods(http.MethodDelete)

	// --- Выгрузка начислений ---
	api.HandleFunc("/billing/{year}", exportBilling.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
