package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/xavierca1/ligue-landing/internal/config"
	"github.com/xavierca1/ligue-landing/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-landing/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-landing/internal/infra/http/router"
	"github.com/xavierca1/ligue-landing/internal/infra/integration/google"
	"github.com/xavierca1/ligue-landing/internal/infra/integration/kommo"
	"github.com/xavierca1/ligue-landing/internal/infra/mail"
	"github.com/xavierca1/ligue-landing/internal/infra/queue"
	"github.com/xavierca1/ligue-landing/internal/logger"
	"github.com/xavierca1/ligue-landing/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewLogger("api", "info").Fatal().Err(err).Msg("configuração inválida")
	}

	log := logger.NewLogger("api", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Credenciais da service account
	creds, err := loadCredentials(cfg.Google)
	if err != nil {
		log.Fatal().Err(err).Msg("não foi possível carregar as credenciais do Google")
	}

	// 2. Google: token + planilha
	tokens := google.NewTokenProvider(creds,
		google.WithTokenURL(cfg.Google.TokenURL),
		google.WithHTTPTimeout(cfg.Google.HTTPTimeout),
		google.WithRefreshHook(middleware.RecordTokenRefresh),
		google.WithLogger(log.GetChildLogger()),
	)

	sheet, err := google.NewSheetAppender(ctx, tokens.TokenSource(ctx), google.SheetConfig{
		SpreadsheetID: cfg.Google.SpreadsheetID,
		Range:         cfg.Google.SheetRange,
		Endpoint:      cfg.Google.SheetsEndpoint,
		Timeout:       cfg.Google.HTTPTimeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("não foi possível criar o cliente do Sheets")
	}

	// 3. Notificações pós-gravação (opcionais)
	var notifiers usecase.Notifiers
	if cfg.Mail.Enabled() {
		notifiers = append(notifiers, mail.NewEmailSender(
			cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.User, cfg.Mail.Password, cfg.Mail.From, cfg.Mail.To,
		))
	} else {
		log.Info().Msg("MAIL_HOST/MAIL_TO não definidos, leads não serão notificados por email")
	}

	if cfg.Queue.Enabled() {
		rabbitMQ, err := queue.NewRabbitMQ(cfg.Queue.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("não foi possível conectar no RabbitMQ")
		}
		defer rabbitMQ.Close()

		notifiers = append(notifiers, queue.NewProducer(rabbitMQ.Ch))
	}

	if cfg.Kommo.Enabled() {
		notifiers = append(notifiers, kommo.NewClient(
			cfg.Kommo.BaseURL, cfg.Kommo.APIToken, cfg.Kommo.StatusID, cfg.Google.HTTPTimeout,
		))
	}

	var notifier usecase.LeadNotifier
	if len(notifiers) > 0 {
		notifier = notifiers
	}

	// 4. UseCase + Handlers
	submitLeadUC := usecase.NewSubmitLeadUseCase(sheet, notifier)

	r := router.New(log, router.Handlers{
		Lead:   handlers.NewLeadHandler(submitLeadUC),
		Health: handlers.NewHealthHandler(tokens, cfg.Google.SpreadsheetID, cfg.Mail.Enabled(), cfg.Version),
		Static: handlers.NewStaticHandler(os.DirFS(cfg.Static.Root), cfg.Static.IndexFile, cfg.Static.NotFoundBehavior),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("version", cfg.Version).Msg("landing page rodando")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("servidor parou")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("desligando servidor")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown forçado")
	}

	// leads já gravados ainda podem estar sendo notificados
	if err := submitLeadUC.Wait(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("notificações pendentes descartadas no shutdown")
	}
}

// loadCredentials prefere o JSON inline (útil em container) ao arquivo.
func loadCredentials(cfg config.Google) (*google.Credentials, error) {
	if cfg.CredentialsJSON != "" {
		return google.ParseCredentials([]byte(cfg.CredentialsJSON))
	}
	return google.LoadCredentialsFile(cfg.CredentialsFile)
}
