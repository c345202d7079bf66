package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Simplici0/printcost/internal/calculator"
	"github.com/Simplici0/printcost/internal/config"
	"github.com/Simplici0/printcost/internal/db"
	"github.com/Simplici0/printcost/internal/format"
	"github.com/Simplici0/printcost/internal/logging"
	"github.com/Simplici0/printcost/internal/migrations"
	"github.com/Simplici0/printcost/internal/store"
)

// GlobalOptions are the flags shared by commands that touch saved state.
type GlobalOptions struct {
	DBPath   string
	LogLevel string
}

func (o *GlobalOptions) Bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.DBPath, "db", "", "path of the SQLite state file (default from PRINTCOST_DB_PATH)")
	cmd.Flags().StringVar(&o.LogLevel, "log-level", "", "log level (default from PRINTCOST_LOG_LEVEL)")
}

// session is an opened calculator together with its resources.
type session struct {
	calc   *calculator.Calculator
	logger *zap.Logger
	close  func()
}

func (o *GlobalOptions) open(ctx context.Context) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if o.DBPath != "" {
		cfg.DBPath = o.DBPath
	}
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	database, err := db.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, err
	}
	if err := migrations.Up(database, logger); err != nil {
		database.Close()
		return nil, err
	}

	calc := calculator.New(store.NewSQLite(database, cfg.StateKey), format.NewCurrency(cfg.Currency), cfg.Units, logger)
	if _, err := calc.Load(ctx); err != nil {
		logger.Warn("ignoring saved state", zap.Error(err))
	}

	return &session{
		calc:   calc,
		logger: logger,
		close: func() {
			_ = logger.Sync()
			database.Close()
		},
	}, nil
}

// rowNumber converts a 1-based row argument to a sheet index.
func rowNumber(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("row must be a positive number, got %q", arg)
	}
	return n - 1, nil
}
