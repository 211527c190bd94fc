package main

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/tbourn/go-pm-backend/internal/config"
	"github.com/tbourn/go-pm-backend/internal/repo"
	"github.com/tbourn/go-pm-backend/internal/sysutil"
)

func newRootCommand() *cobra.Command {
	var dbFlag string
	ctx := newCommandContext(&dbFlag)

	rootCmd := &cobra.Command{
		Use:           "pmserver",
		Short:         "Project management API server and integration admin tool",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			sysutil.SetupLogger(cfg.LogLevel, cfg.LogPretty, cmd.ErrOrStderr())
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	rootCmd.PersistentFlags().StringVar(&dbFlag, "db", "", "SQLite database path (overrides DB_PATH)")

	rootCmd.AddCommand(newServeCommand(ctx))
	rootCmd.AddCommand(newSelfTestCommand(ctx))
	rootCmd.AddCommand(newPurgeLogsCommand(ctx))
	rootCmd.AddCommand(newSeedSettingsCommand(ctx))
	rootCmd.AddCommand(newSettingsCommand(ctx))
	rootCmd.AddCommand(newRemindersCommand(ctx))
	rootCmd.AddCommand(newDigestCommand(ctx))
	return rootCmd
}

// commandContext loads the configuration and opens the database once per
// invocation.
type commandContext struct {
	dbFlag *string

	configOnce sync.Once
	config     config.Config
	configErr  error

	dbOnce sync.Once
	db     *gorm.DB
	dbErr  error
}

func newCommandContext(dbFlag *string) *commandContext {
	return &commandContext{dbFlag: dbFlag}
}

func (c *commandContext) ensureConfig() (config.Config, error) {
	c.configOnce.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			c.configErr = fmt.Errorf("load config: %w", err)
			return
		}
		if c.dbFlag != nil {
			if path := strings.TrimSpace(*c.dbFlag); path != "" {
				cfg.DBPath = path
			}
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// database opens and migrates the configured SQLite file. Default settings
// rows are created when SEED_DEFAULT_SETTINGS is on.
func (c *commandContext) database(cmd *cobra.Command) (*gorm.DB, error) {
	c.dbOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.dbErr = err
			return
		}
		db, err := repo.OpenSQLite(cfg.DBPath)
		if err != nil {
			c.dbErr = fmt.Errorf("open database %s: %w", cfg.DBPath, err)
			return
		}
		if err := repo.AutoMigrate(db); err != nil {
			c.dbErr = fmt.Errorf("migrate: %w", err)
			return
		}
		if cfg.Integrations.SeedDefaultSettings {
			if _, err := repo.CreateDefaultSettings(cmd.Context(), db); err != nil {
				c.dbErr = fmt.Errorf("seed integration settings: %w", err)
				return
			}
		}
		c.db = db
	})
	return c.db, c.dbErr
}

func (c *commandContext) close() {
	if c.db == nil {
		return
	}
	if sqlDB, err := c.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
