package cmd

import (
	"log/slog"

	"github.com/projectchronos/chronos/chronos/database"
	"github.com/projectchronos/chronos/chronos/database/models"
	"github.com/projectchronos/chronos/chronos/migration"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	migrateDataDir   string
	migrateMongoURI  string
	migrateMongoDB   string
	migratePackType  string
	migrateBatchSize int
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Import the legacy card catalog into a template card pool",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		packType, err := models.ParsePackType(migratePackType)
		if err != nil {
			return err
		}

		db, err := database.New(ctx, cfg.DB)
		if err != nil {
			slog.Error("Failed to connect to database", slog.Any("error", err))
			return err
		}
		defer db.Close()

		if err := db.InitializeSchema(ctx); err != nil {
			return err
		}

		migrator := migration.NewMigrator(db.BunDB(), migrateDataDir)
		migrator.SetBatchSize(migrateBatchSize)

		if migrateMongoURI != "" {
			client, err := mongo.Connect(ctx, options.Client().ApplyURI(migrateMongoURI))
			if err != nil {
				slog.Error("Failed to connect to legacy MongoDB", slog.Any("error", err))
				return err
			}
			defer func() { _ = client.Disconnect(ctx) }()
			migrator.UseMongo(client, migrateMongoDB)
		}

		if err := migrator.ImportCardPool(ctx, packType); err != nil {
			slog.Error("Migration failed", slog.Any("error", err))
			return err
		}

		slog.Info("Migration completed successfully")
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateDataDir, "data-dir", "data", "directory holding the legacy JSON export")
	migrateCmd.Flags().StringVar(&migrateMongoURI, "mongo-uri", "", "legacy MongoDB connection URI (preferred over the JSON export)")
	migrateCmd.Flags().StringVar(&migrateMongoDB, "mongo-db", "chronos_legacy", "legacy MongoDB database name")
	migrateCmd.Flags().StringVar(&migratePackType, "pack-type", string(models.PackTypeWelcome), "pack type whose pool receives the cards")
	migrateCmd.Flags().IntVar(&migrateBatchSize, "batch-size", 500, "read batch size")
	rootCmd.AddCommand(migrateCmd)
}
