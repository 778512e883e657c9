// Command seed loads fixture data into, and dumps collections from, the
// configured record store.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Priyanshi004/Schedula-sub001/internal/app"
	"github.com/Priyanshi004/Schedula-sub001/internal/config"
	"github.com/Priyanshi004/Schedula-sub001/internal/event"
	"github.com/Priyanshi004/Schedula-sub001/internal/repository"
	"github.com/Priyanshi004/Schedula-sub001/internal/seed"
	"github.com/Priyanshi004/Schedula-sub001/pkg/logger"
)

type rootOptions struct {
	backend string
	dataDir string
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:          "schedula-seed",
		Short:        "Seed and inspect the schedula record store",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.backend, "backend", "", "store backend, overrides STORE_BACKEND")
	root.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "data directory for the file backend, overrides DATA_DIR")

	root.AddCommand(newLoadCmd(opts), newDumpCmd(opts))
	return root
}

func (o *rootOptions) config() (*config.Config, error) {
	if o.backend != "" {
		if err := os.Setenv("STORE_BACKEND", o.backend); err != nil {
			return nil, err
		}
	}
	if o.dataDir != "" {
		if err := os.Setenv("DATA_DIR", o.dataDir); err != nil {
			return nil, err
		}
	}
	return config.Load()
}

func newLoadCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "load FIXTURE.yaml",
		Short: "Book the fixture's appointments and create its reviews",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			log := logger.New("schedula-seed", cfg.LogLevel)

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open fixture: %w", err)
			}
			defer f.Close()

			fixture, err := seed.Decode(f)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()

			backend, err := app.OpenBackend(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer backend.Close()

			svc := app.NewServices(backend.Store, event.NewProducer(event.NopPublisher{}, log), time.Now, log)
			res, err := seed.New(svc.Reviews, svc.Appointments, time.Now, log).Apply(ctx, fixture)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d appointments and %d reviews into %s store\n",
				res.Appointments, res.Reviews, cfg.StoreBackend)
			return nil
		},
	}
}

func newDumpCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "dump [reviews|appointments]",
		Short:     "Print a persisted collection as stored",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{repository.ReviewsKey, repository.AppointmentsKey},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			log := logger.New("schedula-seed", cfg.LogLevel)

			backend, err := app.OpenBackend(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer backend.Close()

			data, err := backend.Store.Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
