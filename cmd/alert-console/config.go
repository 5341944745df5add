package main

import (
	"flag"
	"io"
	"time"

	"github.com/diwise/alert-console/internal/pkg/application/alerts"
	"github.com/diwise/alert-console/internal/pkg/application/events"
	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v2"
)

type flagType int
type flagMap map[flagType]string

const (
	listenAddress flagType = iota
	servicePort
	allowedOrigins

	policiesFile
	configurationFile

	alertSourceURL
	oauth2TokenURL
	oauth2ClientID
	oauth2ClientSecret
	tokenSecret

	dbType
	sqlitePath
	dbHost
	dbUser
	dbPassword
	dbName
	dbSSLMode

	enableMessaging
)

type overlayConfig struct {
	Retention time.Duration `yaml:"retention"`
	Interval  time.Duration `yaml:"interval"`
}

type appConfig struct {
	View          alerts.Config `yaml:"view"`
	Overlay       overlayConfig `yaml:"overlay"`
	events.Config `yaml:",inline"`
}

func defaultFlags() flagMap {
	return flagMap{
		listenAddress:  "0.0.0.0",
		servicePort:    "8080",
		allowedOrigins: "",

		policiesFile:      "/opt/diwise/config/authz.rego",
		configurationFile: "/opt/diwise/config/config.yaml",

		alertSourceURL:     "",
		oauth2TokenURL:     "",
		oauth2ClientID:     "",
		oauth2ClientSecret: "",
		tokenSecret:        "",

		dbType:     "sqlite",
		sqlitePath: "alert-console.db",
		dbHost:     "",
		dbUser:     "",
		dbPassword: "",
		dbName:     "diwise",
		dbSSLMode:  "disable",

		enableMessaging: "false",
	}
}

func parseExternalConfig(logger zerolog.Logger, flags flagMap, args []string) (flagMap, error) {
	// Allow environment variables to override certain defaults
	envOrDef := func(key, fallback string) string {
		return env.GetVariableOrDefault(logger, key, fallback)
	}

	flags[listenAddress] = envOrDef("LISTEN_ADDRESS", flags[listenAddress])
	flags[servicePort] = envOrDef("SERVICE_PORT", flags[servicePort])
	flags[allowedOrigins] = envOrDef("ALLOWED_ORIGINS", flags[allowedOrigins])

	flags[policiesFile] = envOrDef("POLICIES_FILE", flags[policiesFile])
	flags[configurationFile] = envOrDef("CONFIG_FILE", flags[configurationFile])

	flags[alertSourceURL] = envOrDef("ALERT_SOURCE_URL", flags[alertSourceURL])
	flags[oauth2TokenURL] = envOrDef("OAUTH2_TOKEN_URL", flags[oauth2TokenURL])
	flags[oauth2ClientID] = envOrDef("OAUTH2_CLIENT_ID", flags[oauth2ClientID])
	flags[oauth2ClientSecret] = envOrDef("OAUTH2_CLIENT_SECRET", flags[oauth2ClientSecret])
	flags[tokenSecret] = envOrDef("JWT_SECRET", flags[tokenSecret])

	flags[dbType] = envOrDef("OVERLAY_DB_TYPE", flags[dbType])
	flags[sqlitePath] = envOrDef("SQLITE_PATH", flags[sqlitePath])
	flags[dbHost] = envOrDef("POSTGRES_HOST", flags[dbHost])
	flags[dbName] = envOrDef("POSTGRES_DBNAME", flags[dbName])
	flags[dbUser] = envOrDef("POSTGRES_USER", flags[dbUser])
	flags[dbPassword] = envOrDef("POSTGRES_PASSWORD", flags[dbPassword])
	flags[dbSSLMode] = envOrDef("POSTGRES_SSLMODE", flags[dbSSLMode])

	flags[enableMessaging] = envOrDef("ENABLE_MESSAGING", flags[enableMessaging])

	apply := func(f flagType) func(string) error {
		return func(value string) error {
			flags[f] = value
			return nil
		}
	}

	// Allow command line arguments to override defaults and environment variables
	fs := flag.NewFlagSet(serviceName, flag.ContinueOnError)
	fs.Func("policies", "an authorization policy file", apply(policiesFile))
	fs.Func("config", "alert console configuration file", apply(configurationFile))
	fs.Func("alert-source", "base url of the remote alert source", apply(alertSourceURL))
	fs.Func("db", "overlay database type (sqlite or postgres)", apply(dbType))
	fs.Func("sqlite", "path to the sqlite overlay database", apply(sqlitePath))

	err := fs.Parse(args)

	return flags, err
}

func parseExternalConfigFile(cfgFile io.Reader) (*appConfig, error) {
	b, err := io.ReadAll(cfgFile)
	if err != nil {
		return nil, err
	}

	cfg := &appConfig{}
	err = yaml.Unmarshal(b, cfg)
	if err != nil {
		return nil, err
	}

	if err := cfg.Config.Validate(); err != nil {
		return nil, err
	}

	if cfg.View.Limit <= 0 {
		cfg.View.Limit = alerts.DefaultPageLimit
	}
	if cfg.View.LoadMore == "" {
		cfg.View.LoadMore = alerts.LoadMoreReplace
	}

	return cfg, nil
}
