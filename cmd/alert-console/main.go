package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/diwise/alert-console/internal/pkg/application/alerts"
	"github.com/diwise/alert-console/internal/pkg/application/events"
	"github.com/diwise/alert-console/internal/pkg/application/janitor"
	"github.com/diwise/alert-console/internal/pkg/application/webevents"
	"github.com/diwise/alert-console/internal/pkg/infrastructure/logging"
	"github.com/diwise/alert-console/internal/pkg/infrastructure/repositories/database"
	"github.com/diwise/alert-console/internal/pkg/infrastructure/router"
	"github.com/diwise/alert-console/internal/pkg/infrastructure/tracing"
	"github.com/diwise/alert-console/internal/pkg/presentation/api"
	"github.com/diwise/alert-console/internal/pkg/presentation/api/auth"
	"github.com/diwise/alert-console/pkg/client"
	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

const serviceName string = "alert-console"

func main() {
	serviceVersion := version()

	ctx, logger := logging.NewLogger(context.Background(), serviceName, serviceVersion, os.Getenv("LOG_LEVEL"))
	logger.Info().Msg("starting up ...")

	flags, err := parseExternalConfig(logger, defaultFlags(), os.Args[1:])
	exitIf(err, logger, "could not parse command line")

	cleanup, err := tracing.Init(ctx, logger, serviceName, serviceVersion)
	exitIf(err, logger, "failed to init tracing")
	defer cleanup()

	cfgFile, err := os.Open(flags[configurationFile])
	exitIf(err, logger, "could not open configuration file")

	appCfg, err := parseExternalConfigFile(cfgFile)
	cfgFile.Close()
	exitIf(err, logger, "could not parse configuration file")

	policies, err := os.Open(flags[policiesFile])
	exitIf(err, logger, "unable to open opa policy file")

	authenticator, err := auth.NewAuthenticator(ctx, flags[tokenSecret], policies)
	policies.Close()
	exitIf(err, logger, "failed to create api authenticator")

	store, err := newOverlayStore(logger, flags)
	exitIf(err, logger, "could not create or connect to overlay database")

	source, err := client.New(ctx, flags[alertSourceURL], flags[oauth2TokenURL], flags[oauth2ClientID], flags[oauth2ClientSecret])
	exitIf(err, logger, "could not create alert source client")

	var publisher events.Publisher

	if flags[enableMessaging] == "true" {
		messenger, err := messaging.Initialize(messaging.LoadConfiguration(serviceName, logger))
		exitIf(err, logger, "failed to init messenger")
		defer messenger.Close()

		events.RegisterTopicMessageHandlers(messenger, store)
		publisher = messenger
	}

	stream := webevents.New()
	defer stream.Shutdown()

	notifier := alerts.Broadcast(events.New(publisher, &appCfg.Config), stream)
	console := alerts.New(source, store, notifier, appCfg.View)

	j := janitor.New(store, appCfg.Overlay.Retention, appCfg.Overlay.Interval, logger)
	j.Start()
	defer j.Stop()

	r := router.New(serviceName, origins(flags[allowedOrigins])...)
	api.RegisterHandlers(ctx, r, authenticator, console, stream)

	err = serve(ctx, logger, net.JoinHostPort(flags[listenAddress], flags[servicePort]), r)
	exitIf(err, logger, "failed to start request router")
}

func newOverlayStore(logger zerolog.Logger, flags flagMap) (alerts.OverlayStore, error) {
	switch flags[dbType] {
	case "postgres":
		cfg := database.LoadConfigFromEnv(logger)
		cfg.Host = flags[dbHost]
		cfg.Username = flags[dbUser]
		cfg.Password = flags[dbPassword]
		cfg.DbName = flags[dbName]
		cfg.SslMode = flags[dbSSLMode]
		return database.NewOverlayRepository(database.NewPostgreSQLConnector(logger, cfg))
	case "sqlite", "":
		return database.NewOverlayRepository(database.NewSQLiteConnector(logger, flags[sqlitePath]))
	default:
		return nil, fmt.Errorf("unknown overlay database type %q", flags[dbType])
	}
}

func serve(ctx context.Context, logger zerolog.Logger, addr string, handler http.Handler) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Msg("starting to listen for connections")
		errs <- server.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		logger.Info().Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := server.Shutdown(shutdownCtx)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}

	return err
}

func origins(s string) []string {
	trimmed := lo.Map(strings.Split(s, ","), func(o string, _ int) string {
		return strings.TrimSpace(o)
	})

	return lo.Filter(trimmed, func(o string, _ int) bool {
		return o != ""
	})
}

func version() string {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}

	buildSettings := buildInfo.Settings
	infoMap := map[string]string{}
	for _, s := range buildSettings {
		infoMap[s.Key] = s.Value
	}

	sha := infoMap["vcs.revision"]
	if infoMap["vcs.modified"] == "true" {
		sha += "+"
	}

	return sha
}

func exitIf(err error, logger zerolog.Logger, msg string) {
	if err != nil {
		logger.Error().Err(err).Msg(msg)
		time.Sleep(2 * time.Second)
		os.Exit(1)
	}
}
