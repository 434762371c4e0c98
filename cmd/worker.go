package cmd

import (
	"sync"
	"time"

	"redbank/worker"
	"redbank/worker/cashier"
	"redbank/worker/interest"
	"redbank/worker/priceoracle"

	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "redbank job worker",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)
		ctx = logger.WithContext(ctx, log)

		database := provideDatabase()
		defer database.Close()

		batch, _ := cmd.Flags().GetInt("cashier.batch")
		capacity, _ := cmd.Flags().GetInt64("cashier.capacity")
		interval, _ := cmd.Flags().GetDuration("interest.interval")

		workers := []worker.Worker{
			cashier.New(
				database,
				provideTransferStore(database),
				provideWalletService(),
				cashier.Config{Batch: batch, Capacity: capacity},
			),
			interest.New(
				database,
				provideMarketStore(database),
				provideMarketService(database),
				providePropertyStore(database),
				interval,
			),
			priceoracle.New(
				database,
				provideMarketStore(database),
				providePriceStore(database),
				cfg.Oracle,
			),
		}

		wg := sync.WaitGroup{}
		for _, w := range workers {
			wg.Add(1)

			go func(worker worker.Worker) {
				defer wg.Done()
				_ = worker.Run(ctx)
			}(w)
		}

		wg.Wait()
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)

	workerCmd.Flags().Int("cashier.batch", 100, "custom batch for worker cashier")
	workerCmd.Flags().Int64("cashier.capacity", 1, "custom capacity for worker cashier")
	workerCmd.Flags().Duration("interest.interval", time.Minute, "interval between idle market accruals")
}
