package cmd

import (
	"log/slog"

	"github.com/projectchronos/chronos/chronos"
	"github.com/projectchronos/chronos/chronos/database"
	"github.com/projectchronos/chronos/chronos/database/models"
	"github.com/spf13/cobra"
)

var retryLimit int

// retry-mints re-drives the on-chain leg for claims whose mint never
// succeeded. The pack id is the idempotency key, so re-running a claim that
// actually made it on chain is harmless.
var retryMintsCmd = &cobra.Command{
	Use:   "retry-mints",
	Short: "Retry on-chain assignment for claims with a pending or failed mint",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		db, err := database.New(ctx, cfg.DB)
		if err != nil {
			slog.Error("Failed to connect to database", slog.Any("error", err))
			return err
		}
		defer db.Close()

		app := chronos.New(*cfg, version, commit)
		app.DB = db
		app.Setup()

		records, err := app.ClaimRepository.ListUnresolved(ctx, retryLimit)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			slog.Info("No unresolved claims")
			return nil
		}

		retried, failed := 0, 0
		for _, record := range records {
			pack, err := app.PackRepository.GetByPackID(ctx, record.PackID)
			if err != nil {
				slog.Error("Claim record points at a missing pack",
					slog.String("pack_id", record.PackID),
					slog.Any("error", err))
				failed++
				continue
			}

			ref, err := app.ChainGateway.MintAndAssign(ctx, pack.Cards, record.UserID, pack.PackID)
			if err != nil {
				slog.Error("Mint retry failed",
					slog.String("pack_id", record.PackID),
					slog.Any("error", err))
				if logErr := app.ClaimRepository.SetOnChainResult(ctx, record.PackID, models.OnChainFailed, ""); logErr != nil {
					slog.Error("Failed to record retry failure",
						slog.String("pack_id", record.PackID),
						slog.Any("error", logErr))
				}
				failed++
				continue
			}

			if err := app.ClaimRepository.SetOnChainResult(ctx, record.PackID, models.OnChainSucceeded, ref); err != nil {
				slog.Error("Failed to record retry success",
					slog.String("pack_id", record.PackID),
					slog.Any("error", err))
			}
			retried++
		}

		slog.Info("Mint retry pass complete",
			slog.Int("resolved", retried),
			slog.Int("failed", failed))
		return nil
	},
}

func init() {
	retryMintsCmd.Flags().IntVar(&retryLimit, "limit", 100, "maximum number of claims to retry in one pass")
	rootCmd.AddCommand(retryMintsCmd)
}
