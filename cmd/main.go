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
	_ "time/tzdata"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	createNotaryHandler "github.com/m04kA/SMC-NotaryService/internal/api/handlers/create_notary"
	deleteNotaryHandler "github.com/m04kA/SMC-NotaryService/internal/api/handlers/delete_notary"
	getNotariesHandler "github.com/m04kA/SMC-NotaryService/internal/api/handlers/get_notaries"
	getNotariesSelectHandler "github.com/m04kA/SMC-NotaryService/internal/api/handlers/get_notaries_select"
	getNotaryEditorHandler "github.com/m04kA/SMC-NotaryService/internal/api/handlers/get_notary_editor"
	updateNotaryHandler "github.com/m04kA/SMC-NotaryService/internal/api/handlers/update_notary"
	"github.com/m04kA/SMC-NotaryService/internal/api/middleware"
	"github.com/m04kA/SMC-NotaryService/internal/config"
	"github.com/m04kA/SMC-NotaryService/internal/infra/storage/migrations"
	notaryRepo "github.com/m04kA/SMC-NotaryService/internal/infra/storage/notary"
	orderRepo "github.com/m04kA/SMC-NotaryService/internal/infra/storage/order"
	qualificationRepo "github.com/m04kA/SMC-NotaryService/internal/infra/storage/qualification"
	notariesService "github.com/m04kA/SMC-NotaryService/internal/service/notaries"
	"github.com/m04kA/SMC-NotaryService/internal/service/projector"
	"github.com/m04kA/SMC-NotaryService/pkg/dbmetrics"
	"github.com/m04kA/SMC-NotaryService/pkg/logger"
	"github.com/m04kA/SMC-NotaryService/pkg/metrics"
	"github.com/m04kA/SMC-NotaryService/pkg/txmanager"
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

	log.Info("Starting SMC-NotaryService...")
	log.Info("Configuration loaded from config.toml")

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

	// Применяем миграции
	if cfg.Database.AutoMigrate {
		if err := migrations.Up(db); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Database migrations applied")
	}

	// Без метрик обёртка работает как прозрачный прокси
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	if cfg.Metrics.Enabled {
		log.Info("Database metrics collection started")
	}

	// Параметры сетки расписания
	bounds := cfg.Schedule.Bounds()
	location, err := cfg.Schedule.Location()
	if err != nil {
		log.Fatal("Failed to load time zone %q: %v", cfg.Schedule.TimeZone, err)
	}
	policy, err := projector.ParsePolicy(cfg.Schedule.ProjectionPolicy)
	if err != nil {
		log.Fatal("Invalid projection policy: %v", err)
	}
	scheduleProjector, err := projector.New(bounds, location, policy)
	if err != nil {
		log.Fatal("Failed to create schedule projector: %v", err)
	}
	log.Info("Schedule grid: hours %d-%d, time zone %s, projection policy %s",
		bounds.MinHour, bounds.MaxHour(), location, policy)

	// Инициализируем репозитории
	notaryRepository := notaryRepo.NewRepository(wrappedDB, bounds)
	orderRepository := orderRepo.NewRepository(wrappedDB)
	qualificationRepository := qualificationRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем сервисы
	notarySvc := notariesService.NewService(
		notaryRepository,
		orderRepository,
		qualificationRepository,
		scheduleProjector,
		txMgr,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	getNotaries := getNotariesHandler.NewHandler(notarySvc, log)
	getNotariesSelect := getNotariesSelectHandler.NewHandler(notarySvc, log)
	getNotaryEditor := getNotaryEditorHandler.NewHandler(notarySvc, log)
	createNotary := createNotaryHandler.NewHandler(notarySvc, log)
	updateNotary := updateNotaryHandler.NewHandler(notarySvc, log)
	deleteNotary := deleteNotaryHandler.NewHandler(notarySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Список нотариусов с фильтром по квалификации и ФИО
	api.HandleFunc("/notaries", getNotaries.Handle).Methods(http.MethodGet)

	// Список для выбора нотариуса при оформлении заказа
	api.HandleFunc("/notaries/select", getNotariesSelect.Handle).Methods(http.MethodGet)

	// Расписание для редактора с пометками бронирований
	api.HandleFunc("/notaries/{notaryId:[0-9]+}/editor", getNotaryEditor.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	protected.HandleFunc("/notaries", createNotary.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/notaries/{notaryId:[0-9]+}", updateNotary.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/notaries/{notaryId:[0-9]+}", deleteNotary.Handle).Methods(http.MethodDelete)

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
	close(stopMetricsCh)

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
