package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/im45145v/bipulse/internal/config"
	"github.com/im45145v/bipulse/internal/dataset"
	"github.com/im45145v/bipulse/internal/db"
	"github.com/im45145v/bipulse/internal/logger"
	"github.com/im45145v/bipulse/internal/metrics"
	"github.com/im45145v/bipulse/internal/store"
	"github.com/im45145v/bipulse/internal/util"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var generateStore string

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the synthetic customer/order dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1) load config
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		logger.Init(cfg.Log.Level)

		genCfg, err := cfg.Generator.DatasetConfig()
		if err != nil {
			return err
		}

		// 2) generate
		ds, err := dataset.Generate(genCfg)
		if err != nil {
			return fmt.Errorf("generate dataset: %w", err)
		}
		metrics.DatasetsGeneratedTotal.Inc()

		runID := util.NewRunID()
		logger.Log.Info("dataset generated",
			zap.String("run_id", runID),
			zap.Int64("seed", genCfg.Seed),
			zap.Int("customers", len(ds.Customers)),
			zap.Int("orders", len(ds.Orders)),
		)

		// 3) persist
		if generateStore == "csv" || generateStore == "both" {
			if err := dataset.SaveCSV(cfg.Data.Dir, ds); err != nil {
				return fmt.Errorf("save csv: %w", err)
			}
			logger.Log.Info("dataset saved", zap.String("dir", cfg.Data.Dir))
		}

		if generateStore == "mysql" || generateStore == "both" {
			sqlDB, err := db.NewMySQLConnection(cfg.MySQL.DSN, db.MySQLOpts{
				MaxOpenConns:    cfg.MySQL.MaxOpenConns,
				MaxIdleConns:    cfg.MySQL.MaxIdleConns,
				ConnMaxLifetime: cfg.MySQL.ConnMaxLifetime,
				ConnMaxIdleTime: cfg.MySQL.ConnMaxIdleTime,
				PingTimeout:     cfg.MySQL.PingTimeout,
			})
			if err != nil {
				return fmt.Errorf("mysql connect: %w", err)
			}
			defer sqlDB.Close()

			run := store.Run{
				ID:          runID,
				Seed:        genCfg.Seed,
				GeneratedAt: time.Now().UTC(),
			}
			if err := store.NewDatasetStore(sqlDB).SaveRun(context.Background(), run, ds); err != nil {
				return fmt.Errorf("ingest run %s: %w", runID, err)
			}
			logger.Log.Info("dataset ingested", zap.String("run_id", runID))
		}

		return nil
	},
}

func init() {
	generateCmd.Flags().StringVar(&generateStore, "store", "csv", "where to persist the dataset: csv|mysql|both")
}
