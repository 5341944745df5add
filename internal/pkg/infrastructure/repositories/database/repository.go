package database

import (
	"fmt"
	"os"
	"time"

	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type ConnectorConfig struct {
	Host     string
	Username string
	DbName   string
	Password string
	SslMode  string
}

func LoadConfigFromEnv(log zerolog.Logger) ConnectorConfig {
	return ConnectorConfig{
		Host:     os.Getenv("POSTGRES_HOST"),
		Username: os.Getenv("POSTGRES_USER"),
		DbName:   os.Getenv("POSTGRES_DBNAME"),
		Password: os.Getenv("POSTGRES_PASSWORD"),
		SslMode:  env.GetVariableOrDefault(log, "POSTGRES_SSLMODE", "disable"),
	}
}

type ConnectorFunc func() (*gorm.DB, error)

// NewSQLiteConnector opens the sqlite database at path. An empty path gives a
// private in memory database that is lost when the process exits.
func NewSQLiteConnector(log zerolog.Logger, path string) ConnectorFunc {
	dsn := "file::memory:"
	if path != "" {
		dsn = fmt.Sprintf("file:%s?_busy_timeout=5000", path)
	}

	return func() (*gorm.DB, error) {
		log.Info().Str("dsn", dsn).Msg("opening sqlite database")

		db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
			Logger:          logger.Default.LogMode(logger.Silent),
			CreateBatchSize: 1000,
			NowFunc:         func() time.Time { return time.Now().UTC() },
		})

		if err == nil {
			db.Exec("PRAGMA foreign_keys = ON")
			sqldb, _ := db.DB()
			sqldb.SetMaxOpenConns(1)
		}

		return db, err
	}
}

func NewPostgreSQLConnector(log zerolog.Logger, cfg ConnectorConfig) ConnectorFunc {
	dbURI := fmt.Sprintf("host=%s user=%s dbname=%s sslmode=%s password=%s", cfg.Host, cfg.Username, cfg.DbName, cfg.SslMode, cfg.Password)

	return func() (*gorm.DB, error) {
		sublogger := log.With().Str("host", cfg.Host).Str("database", cfg.DbName).Logger()

		var err error

		for attempt := 1; attempt <= 3; attempt++ {
			sublogger.Info().Msg("connecting to database host")

			var db *gorm.DB
			db, err = gorm.Open(postgres.Open(dbURI), &gorm.Config{
				NowFunc: func() time.Time { return time.Now().UTC() },
				Logger: logger.New(
					&logadapter{logger: sublogger},
					logger.Config{
						SlowThreshold:             time.Second,
						LogLevel:                  logger.Warn,
						IgnoreRecordNotFoundError: true,
						Colorful:                  false,
					},
				),
			})
			if err == nil {
				return db, nil
			}

			sublogger.Error().Err(err).Msgf("failed to connect to database (attempt %d)", attempt)
			time.Sleep(3 * time.Second)
		}

		return nil, err
	}
}

// logadapter provides a Printf interface to the gorm logger
// so that we can forward the log data to zerolog
type logadapter struct {
	logger zerolog.Logger
}

func (adapter *logadapter) Printf(format string, args ...interface{}) {
	adapter.logger.Info().Msgf(format, args...)
}
