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

	acceptRequestHandler "github.com/m04kA/SMC-ServiceDesk/internal/api/handlers/accept_request"
	addInterventionPartHandler "github.com/m04kA/SMC-ServiceDesk/internal/api/handlers/add_intervention_part"
	adjustPartHandler "github.com/m04kA/SMC-ServiceDesk/internal/api/handlers/adjust_part"
	cancelRequestHandler "github.com/m04kA/SMC-ServiceDesk/internal/api/handlers/cancel_request"
	createInterventionHandler "github.com/m04kA/SMC-ServiceDesk/internal/api/handlers/create_intervention"
	generateSlotsHandler "github.com/m04kA/SMC-ServiceDesk/internal/api/handlers/generate_slots"
	getAvailableSlotsHandler "github.com/m04kA/SMC-ServiceDesk/internal/api/handlers/get_available_slots"
	getClientRequestsHandler "github.com/m04kA/SMC-ServiceDesk/internal/api/handlers/get_client_requests"
	getInterventionHandler "github.com/m04kA/SMC-ServiceDesk/internal/api/handlers/get_intervention"
	getPartMovementsHandler "github.com/m04kA/SMC-ServiceDesk/internal/api/handlers/get_part_movements"
	getPendingRequestsHandler "github.com/m04kA/SMC-ServiceDesk/internal/api/handlers/get_pending_requests"
	getRequestHandler "github.com/m04kA/SMC-ServiceDesk/internal/api/handlers/get_request"
	getTechnicianInterventionsHandler "github.com/m04kA/SMC-ServiceDesk/internal/api/handlers/get_technician_interventions"
	listPartsHandler "github.com/m04kA/SMC-ServiceDesk/internal/api/handlers/list_parts"
	markInterventionPaidHandler "github.com/m04kA/SMC-ServiceDesk/internal/api/handlers/mark_intervention_paid"
	reassignInterventionHandler "github.com/m04kA/SMC-ServiceDesk/internal/api/handlers/reassign_intervention"
	refuseRequestHandler "github.com/m04kA/SMC-ServiceDesk/internal/api/handlers/refuse_request"
	restockPartHandler "github.com/m04kA/SMC-ServiceDesk/internal/api/handlers/restock_part"
	setInterventionLaborHandler "github.com/m04kA/SMC-ServiceDesk/internal/api/handlers/set_intervention_labor"
	submitRequestHandler "github.com/m04kA/SMC-ServiceDesk/internal/api/handlers/submit_request"
	transitionInterventionHandler "github.com/m04kA/SMC-ServiceDesk/internal/api/handlers/transition_intervention"
	"github.com/m04kA/SMC-ServiceDesk/internal/api/middleware"
	"github.com/m04kA/SMC-ServiceDesk/internal/config"
	"github.com/m04kA/SMC-ServiceDesk/internal/domain"
	interventionRepo "github.com/m04kA/SMC-ServiceDesk/internal/infra/storage/intervention"
	partRepo "github.com/m04kA/SMC-ServiceDesk/internal/infra/storage/part"
	requestRepo "github.com/m04kA/SMC-ServiceDesk/internal/infra/storage/request"
	slotRepo "github.com/m04kA/SMC-ServiceDesk/internal/infra/storage/slot"
	catalogServiceClient "github.com/m04kA/SMC-ServiceDesk/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-ServiceDesk/internal/integrations/events"
	userServiceClient "github.com/m04kA/SMC-ServiceDesk/internal/integrations/userservice"
	interventionsService "github.com/m04kA/SMC-ServiceDesk/internal/service/interventions"
	inventoryService "github.com/m04kA/SMC-ServiceDesk/internal/service/inventory"
	requestsService "github.com/m04kA/SMC-ServiceDesk/internal/service/requests"
	"github.com/m04kA/SMC-ServiceDesk/internal/service/warranty"
	acceptRequestUC "github.com/m04kA/SMC-ServiceDesk/internal/usecase/accept_request"
	generateSlotsUC "github.com/m04kA/SMC-ServiceDesk/internal/usecase/generate_slots"
	getAvailableSlotsUC "github.com/m04kA/SMC-ServiceDesk/internal/usecase/get_available_slots"
	refuseRequestUC "github.com/m04kA/SMC-ServiceDesk/internal/usecase/refuse_request"
	submitRequestUC "github.com/m04kA/SMC-ServiceDesk/internal/usecase/submit_request"
	"github.com/m04kA/SMC-ServiceDesk/pkg/dbmetrics"
	"github.com/m04kA/SMC-ServiceDesk/pkg/logger"
	"github.com/m04kA/SMC-ServiceDesk/pkg/metrics"
	"github.com/m04kA/SMC-ServiceDesk/pkg/txmanager"
)

const defaultConfigPath = "config.toml"

// publisher издатель событий с корректным закрытием соединения
type publisher interface {
	Publish(ctx context.Context, event events.Event) error
	Close() error
}

func main() {
	configPath := defaultConfigPath
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
	if cfg.Logs.Format == "json" {
		log.UseJSON()
	}

	log.Info("Starting SMC-ServiceDesk...")
	log.Info("Configuration loaded from %s", configPath)

	location, err := cfg.Slots.Location()
	if err != nil {
		log.Fatal("Invalid slots timezone %q: %v", cfg.Slots.Timezone, err)
	}

	// Метрики: при выключенных метриках все методы *Metrics работают на nil-получателе
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

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Репозитории
	slotRepository := slotRepo.NewRepository(wrappedDB)
	requestRepository := requestRepo.NewRepository(wrappedDB)
	interventionRepository := interventionRepo.NewRepository(wrappedDB)
	partRepository := partRepo.NewRepository(wrappedDB)

	// Интеграционные клиенты
	userClient := userServiceClient.NewClient(cfg.UserService.URL, cfg.UserService.TimeoutDuration(), log)
	catalogClient := catalogServiceClient.NewClient(cfg.CatalogService.URL, cfg.CatalogService.TimeoutDuration(), log)
	log.Info("Integration clients initialized (UserService=%s timeout=%ds, CatalogService=%s timeout=%ds)",
		cfg.UserService.URL, cfg.UserService.Timeout, cfg.CatalogService.URL, cfg.CatalogService.Timeout)

	warrantyEvaluator := warranty.NewEvaluator(catalogClient, log)

	// Издатель событий
	var eventPublisher publisher
	if cfg.RabbitMQ.Enabled {
		rabbit, err := events.Dial(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, log)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		eventPublisher = rabbit
		log.Info("RabbitMQ publisher connected (exchange=%s)", cfg.RabbitMQ.Exchange)
	} else {
		eventPublisher = events.NewNoopPublisher(log)
		log.Info("RabbitMQ disabled, events are only logged")
	}
	defer eventPublisher.Close()

	// Use cases
	generateSlotsUseCase := generateSlotsUC.NewUseCase(
		slotRepository,
		txMgr,
		location,
		cfg.Slots.MaxGenerationDays,
		metricsCollector,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(slotRepository, log)
	submitRequestUseCase := submitRequestUC.NewUseCase(
		requestRepository,
		slotRepository,
		catalogClient,
		userClient,
		eventPublisher,
		txMgr,
		metricsCollector,
		log,
	)
	acceptRequestUseCase := acceptRequestUC.NewUseCase(
		requestRepository,
		slotRepository,
		interventionRepository,
		warrantyEvaluator,
		eventPublisher,
		txMgr,
		metricsCollector,
		log,
	)
	refuseRequestUseCase := refuseRequestUC.NewUseCase(requestRepository, eventPublisher, metricsCollector, log)

	// Сервисы
	requestSvc := requestsService.NewService(requestRepository, eventPublisher, metricsCollector, log)
	interventionSvc := interventionsService.NewService(
		interventionRepository,
		slotRepository,
		partRepository,
		warrantyEvaluator,
		eventPublisher,
		txMgr,
		metricsCollector,
		log,
	)
	inventorySvc := inventoryService.NewService(partRepository, eventPublisher, txMgr, metricsCollector, log)

	// Handlers
	generateSlots := generateSlotsHandler.NewHandler(generateSlotsUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	submitRequest := submitRequestHandler.NewHandler(submitRequestUseCase, log)
	getRequest := getRequestHandler.NewHandler(requestSvc, log)
	cancelRequest := cancelRequestHandler.NewHandler(requestSvc, log)
	getPendingRequests := getPendingRequestsHandler.NewHandler(requestSvc, log)
	getClientRequests := getClientRequestsHandler.NewHandler(requestSvc, log)
	acceptRequest := acceptRequestHandler.NewHandler(acceptRequestUseCase, log)
	refuseRequest := refuseRequestHandler.NewHandler(refuseRequestUseCase, log)
	createIntervention := createInterventionHandler.NewHandler(interventionSvc, log)
	getIntervention := getInterventionHandler.NewHandler(interventionSvc, log)
	getTechnicianInterventions := getTechnicianInterventionsHandler.NewHandler(interventionSvc, log)
	transitionIntervention := transitionInterventionHandler.NewHandler(interventionSvc, log)
	addInterventionPart := addInterventionPartHandler.NewHandler(interventionSvc, log)
	reassignIntervention := reassignInterventionHandler.NewHandler(interventionSvc, log)
	setInterventionLabor := setInterventionLaborHandler.NewHandler(interventionSvc, log)
	markInterventionPaid := markInterventionPaidHandler.NewHandler(interventionSvc, log)
	listParts := listPartsHandler.NewHandler(inventorySvc, log)
	getPartMovements := getPartMovementsHandler.NewHandler(inventorySvc, log)
	restockPart := restockPartHandler.NewHandler(inventorySvc, log)
	adjustPart := adjustPartHandler.NewHandler(inventorySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID, middleware.AccessLog(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Все маршруты API требуют идентичности пользователя
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Identity(cfg.Auth.JWTSecret))

	// --- Слоты (любая роль) ---
	api.HandleFunc("/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// --- Клиенты ---
	clients := api.PathPrefix("").Subrouter()
	clients.Use(middleware.RequireRole(domain.RoleClient))
	clients.HandleFunc("/requests", submitRequest.Handle).Methods(http.MethodPost)
	clients.HandleFunc("/requests/{requestId:[0-9]+}/cancel", cancelRequest.Handle).Methods(http.MethodPatch)

	// --- Клиент-владелец или ответственный (проверка в сервисе) ---
	api.HandleFunc("/requests/{requestId:[0-9]+}", getRequest.Handle).Methods(http.MethodGet)
	api.HandleFunc("/clients/{clientId:[0-9]+}/requests", getClientRequests.Handle).Methods(http.MethodGet)

	// --- Ответственные ---
	responsables := api.PathPrefix("").Subrouter()
	responsables.Use(middleware.RequireRole(domain.RoleResponsable))
	responsables.HandleFunc("/technicians/{technicianId:[0-9]+}/slots/generate", generateSlots.Handle).Methods(http.MethodPost)
	responsables.HandleFunc("/requests/pending", getPendingRequests.Handle).Methods(http.MethodGet)
	responsables.HandleFunc("/requests/{requestId:[0-9]+}/accept", acceptRequest.Handle).Methods(http.MethodPost)
	responsables.HandleFunc("/requests/{requestId:[0-9]+}/refuse", refuseRequest.Handle).Methods(http.MethodPost)
	responsables.HandleFunc("/interventions", createIntervention.Handle).Methods(http.MethodPost)
	responsables.HandleFunc("/interventions/{interventionId:[0-9]+}/technician", reassignIntervention.Handle).Methods(http.MethodPut)
	responsables.HandleFunc("/interventions/{interventionId:[0-9]+}/paid", markInterventionPaid.Handle).Methods(http.MethodPost)
	responsables.HandleFunc("/parts/{partId:[0-9]+}/restock", restockPart.Handle).Methods(http.MethodPost)
	responsables.HandleFunc("/parts/{partId:[0-9]+}/adjust", adjustPart.Handle).Methods(http.MethodPost)

	// --- Техники и ответственные (назначенный техник проверяется в сервисе) ---
	staff := api.PathPrefix("").Subrouter()
	staff.Use(middleware.RequireRole(domain.RoleTechnician, domain.RoleResponsable))
	staff.HandleFunc("/interventions/{interventionId:[0-9]+}", getIntervention.Handle).Methods(http.MethodGet)
	staff.HandleFunc("/technicians/{technicianId:[0-9]+}/interventions", getTechnicianInterventions.Handle).Methods(http.MethodGet)
	staff.HandleFunc("/interventions/{interventionId:[0-9]+}/{action:start|complete|cancel}", transitionIntervention.Handle).Methods(http.MethodPost)
	staff.HandleFunc("/interventions/{interventionId:[0-9]+}/parts", addInterventionPart.Handle).Methods(http.MethodPost)
	staff.HandleFunc("/interventions/{interventionId:[0-9]+}/labor", setInterventionLabor.Handle).Methods(http.MethodPut)
	staff.HandleFunc("/parts", listParts.Handle).Methods(http.MethodGet)
	staff.HandleFunc("/parts/low-stock", listParts.HandleLowStock).Methods(http.MethodGet)
	staff.HandleFunc("/parts/{partId:[0-9]+}/movements", getPartMovements.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
