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

	cancelReservationHandler "github.com/tavolo-app/ReservationService/internal/api/handlers/cancel_reservation"
	confirmReservationHandler "github.com/tavolo-app/ReservationService/internal/api/handlers/confirm_reservation"
	createReservationHandler "github.com/tavolo-app/ReservationService/internal/api/handlers/create_reservation"
	getAvailableSlotsHandler "github.com/tavolo-app/ReservationService/internal/api/handlers/get_available_slots"
	getBusinessConfigHandler "github.com/tavolo-app/ReservationService/internal/api/handlers/get_business_config"
	getBusinessReservationsHandler "github.com/tavolo-app/ReservationService/internal/api/handlers/get_business_reservations"
	getReservationHandler "github.com/tavolo-app/ReservationService/internal/api/handlers/get_reservation"
	updateBusinessConfigHandler "github.com/tavolo-app/ReservationService/internal/api/handlers/update_business_config"
	"github.com/tavolo-app/ReservationService/internal/api/middleware"
	"github.com/tavolo-app/ReservationService/internal/config"
	"github.com/tavolo-app/ReservationService/internal/domain"
	"github.com/tavolo-app/ReservationService/internal/infra/notify/noop"
	"github.com/tavolo-app/ReservationService/internal/infra/notify/rabbitmq"
	reservationRepo "github.com/tavolo-app/ReservationService/internal/infra/storage/reservation"
	venueConfigRepo "github.com/tavolo-app/ReservationService/internal/infra/storage/venueconfig"
	businessServiceClient "github.com/tavolo-app/ReservationService/internal/integrations/businessservice"
	userServiceClient "github.com/tavolo-app/ReservationService/internal/integrations/userservice"
	configService "github.com/tavolo-app/ReservationService/internal/service/config"
	reservationsService "github.com/tavolo-app/ReservationService/internal/service/reservations"
	createReservationUC "github.com/tavolo-app/ReservationService/internal/usecase/create_reservation"
	getAvailableSlotsUC "github.com/tavolo-app/ReservationService/internal/usecase/get_available_slots"
	"github.com/tavolo-app/ReservationService/pkg/dbmetrics"
	"github.com/tavolo-app/ReservationService/pkg/logger"
	"github.com/tavolo-app/ReservationService/pkg/metrics"
	"github.com/tavolo-app/ReservationService/pkg/simpletxmanager"
	"github.com/tavolo-app/ReservationService/pkg/txmanager"
)

// NotificationPublisher общий интерфейс публикации событий брони
type NotificationPublisher interface {
	ReservationCreated(ctx context.Context, reservation *domain.Reservation) error
	ReservationCancelled(ctx context.Context, reservation *domain.Reservation) error
	Close() error
}

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

	log.Info("Starting ReservationService...")
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

	// Инициализируем интеграционных клиентов
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	businessClient := businessServiceClient.NewClient(
		cfg.BusinessService.URL,
		time.Duration(cfg.BusinessService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (UserService=%s timeout=%ds, BusinessService=%s timeout=%ds)",
		cfg.UserService.URL, cfg.UserService.Timeout, cfg.BusinessService.URL, cfg.BusinessService.Timeout)

	// Инициализируем публикацию уведомлений
	var publisher NotificationPublisher
	if cfg.RabbitMQ.Enabled {
		rmqPublisher, err := rabbitmq.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Queue, log)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		publisher = rmqPublisher
		log.Info("RabbitMQ publisher initialized (queue=%s)", cfg.RabbitMQ.Queue)
	} else {
		publisher = noop.NewPublisher()
		log.Info("Notifications disabled, using noop publisher")
	}
	defer publisher.Close()

	// Инициализируем репозитории и сервисы (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		configRepository      *venueConfigRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		// Инициализируем репозитории с обёрткой метрик
		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		configRepository = venueConfigRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		reservationRepository = reservationRepo.NewRepository(db)
		configRepository = venueConfigRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	reservationsSvc := reservationsService.NewService(
		reservationRepository,
		businessClient,
		publisher,
		log,
	)
	configSvc := configService.NewService(
		configRepository,
		businessClient,
		log,
	)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		configRepository,
		userClient,
		publisher,
		txMgr,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		reservationRepository,
		configRepository,
		log,
	)

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationsSvc, log)
	confirmReservation := confirmReservationHandler.NewHandler(reservationsSvc, log)
	getBusinessReservations := getBusinessReservationsHandler.NewHandler(reservationsSvc, log)
	getBusinessConfig := getBusinessConfigHandler.NewHandler(configSvc, log)
	updateBusinessConfig := updateBusinessConfigHandler.NewHandler(configSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты на дату
	api.HandleFunc("/businesses/{businessId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Конфигурация заведения
	api.HandleFunc("/businesses/{businessId}/config",
		getBusinessConfig.Handle).Methods(http.MethodGet)

	// Создание брони: доступно и гостям без профиля
	guest := api.PathPrefix("").Subrouter()
	guest.Use(middleware.Auth)
	guest.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Брони ---
	// Получение брони по ID
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Отмена брони
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// Ручное подтверждение брони (для менеджеров)
	protected.HandleFunc("/reservations/{reservationId}/confirm", confirmReservation.Handle).Methods(http.MethodPatch)

	// --- Управление заведением (для менеджеров) ---
	// Список броней заведения
	protected.HandleFunc("/businesses/{businessId}/reservations", getBusinessReservations.Handle).Methods(http.MethodGet)

	// Обновление конфигурации заведения
	protected.HandleFunc("/businesses/{businessId}/config", updateBusinessConfig.Handle).Methods(http.MethodPut)

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
