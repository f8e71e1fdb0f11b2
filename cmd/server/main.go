package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/the-foundingengineer/ShadowDrop-Smc/internal/bank"
	"github.com/the-foundingengineer/ShadowDrop-Smc/internal/config"
	"github.com/the-foundingengineer/ShadowDrop-Smc/internal/db"
	"github.com/the-foundingengineer/ShadowDrop-Smc/internal/escrow"
	httpHandlers "github.com/the-foundingengineer/ShadowDrop-Smc/internal/http/handlers"
	httpRouter "github.com/the-foundingengineer/ShadowDrop-Smc/internal/http/router"
	"github.com/the-foundingengineer/ShadowDrop-Smc/internal/logger"
	"github.com/the-foundingengineer/ShadowDrop-Smc/internal/repository"
	"github.com/the-foundingengineer/ShadowDrop-Smc/internal/service"
	"github.com/the-foundingengineer/ShadowDrop-Smc/internal/ws"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	logLevel := "info"
	if cfg.Env == "development" {
		logLevel = "debug"
		logger.Init(logLevel)
		logger.SetTextFormatter()
	} else {
		logger.Init(logLevel)
	}

	tokenManager := service.NewTokenManager(cfg.JWTSecret, cfg.IdentityTTL)

	// Личности владельца и агента. В development генерируем на месте
	// и печатаем токены, чтобы оператор мог действовать от их имени.
	ownerID := resolveIdentity("ESCROW_OWNER_ID", cfg.OwnerID, tokenManager)
	agentID := resolveIdentity("ESCROW_AGENT_ID", cfg.AgentID, tokenManager)

	// Журнал событий опционален: без DATABASE_URL движок работает,
	// аудиторский след ограничивается логом.
	var dbConn *sqlx.DB
	var journalRepo *repository.JournalRepository
	if cfg.DatabaseURL != "" {
		dbConn, err = db.NewPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("main: ошибка подключения к базе: %v", err)
		}
		defer safeClose(dbConn)

		if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
			log.Fatalf("main: ошибка миграций: %v", err)
		}
		journalRepo = repository.NewJournalRepository(dbConn)
	}

	// Вебсокеты.
	hub := ws.NewHub(ctx)
	go hub.Run()

	var journalWriter service.JournalWriter
	if journalRepo != nil {
		journalWriter = journalRepo
	}
	fanout := service.NewEventFanout(ctx, hub, journalWriter)

	// Движок эскроу.
	treasury := bank.NewAccountBank()
	params := escrow.Params{
		MinStake:               cfg.MinStake,
		MaxAccessFee:           cfg.MaxAccessFee,
		PassScore:              cfg.PassScore,
		Timeout:                cfg.AccessTimeout,
		MaxSubmissionsPerParty: cfg.MaxSubmissions,
	}
	engine, err := escrow.NewEngine(ownerID, agentID, params, treasury, fanout, nil)
	if err != nil {
		log.Fatalf("main: не удалось создать движок: %v", err)
	}
	escrowService := service.NewEscrowService(engine)

	// HTTP хэндлеры.
	authHandler := httpHandlers.NewAuthHandler(tokenManager)
	submissionHandler := httpHandlers.NewSubmissionHandler(escrowService, journalRepo)
	agentHandler := httpHandlers.NewAgentHandler(escrowService)
	journalistHandler := httpHandlers.NewJournalistHandler(escrowService)
	walletHandler := httpHandlers.NewWalletHandler(escrowService)
	adminHandler := httpHandlers.NewAdminHandler(escrowService)
	wsHandler := httpHandlers.NewWSHandler(hub)
	healthHandler := httpHandlers.NewHealthHandler(dbConn)

	// Роутер.
	engineRouter := httpRouter.SetupRouter(cfg, authHandler, submissionHandler, agentHandler, journalistHandler, walletHandler, adminHandler, wsHandler, healthHandler, tokenManager)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: engineRouter,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("main: ошибка остановки http сервера: %v", err)
		}
	}()

	log.Printf("main: HTTP сервер запущен на порту %s", cfg.HTTPPort)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}

// resolveIdentity парсит UUID из конфигурации или генерирует новый,
// печатая токен для оператора.
func resolveIdentity(name, raw string, tokens *service.TokenManager) uuid.UUID {
	if raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			log.Fatalf("main: %s не является валидным UUID: %v", name, err)
		}
		return id
	}

	token, err := tokens.IssueNew()
	if err != nil {
		log.Fatalf("main: не удалось выпустить токен для %s: %v", name, err)
	}
	log.Printf("main: %s не задан, сгенерирован %s (токен: %s)", name, token.Identity, token.Token)
	return token.Identity
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		log.Printf("main: ошибка закрытия базы: %v", err)
	}
}
