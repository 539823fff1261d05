package cmd

import (
	"fmt"
	"strings"

	"github.com/spigell/skillmatch/internal/records"
	"github.com/spigell/skillmatch/internal/secrets"

	"go.uber.org/zap"
)

const (
	sourceFile   = "file"
	sourceHTTP   = "http"
	sourceSQLite = "sqlite"
)

// openSource returns the configured candidate source and a function releasing
// it. Without an explicit source the file source is used.
func openSource(config *RecordsConfig, logger *zap.Logger) (records.Source, func(), error) {
	noop := func() {}

	switch strings.ToLower(strings.TrimSpace(config.Source)) {
	case "", sourceFile:
		if config.Path == "" {
			return nil, noop, fmt.Errorf("records.path is required for the %s source", sourceFile)
		}
		return records.NewFileSource(logger, config.Path), noop, nil

	case sourceHTTP:
		if config.URL == "" {
			return nil, noop, fmt.Errorf("records.url is required for the %s source", sourceHTTP)
		}

		token := ""
		if config.TokenFile != "" {
			var err error
			token, err = secrets.Load(secrets.Source{Name: "records api token", File: config.TokenFile})
			if err != nil {
				return nil, noop, err
			}
		}

		src := records.NewHTTPSource(logger, config.URL, token)
		if config.UserAgent != "" {
			src.UserAgent = config.UserAgent
		}
		return src, noop, nil

	case sourceSQLite:
		if config.SQLitePath == "" {
			return nil, noop, fmt.Errorf("records.sqlite-path is required for the %s source", sourceSQLite)
		}

		store, err := records.OpenSQLite(logger, config.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		return store, func() {
			if err := store.Close(); err != nil {
				logger.Warn("closing sqlite store", zap.Error(err))
			}
		}, nil

	default:
		return nil, noop, fmt.Errorf("unknown records source %q", config.Source)
	}
}
