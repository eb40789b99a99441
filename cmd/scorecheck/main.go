package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/risinghub/hub/internal/adapters/repository/sqlstore"
	"github.com/risinghub/hub/internal/config"
	"github.com/risinghub/hub/internal/core/services"
	"github.com/spf13/cobra"
)

type options struct {
	dbDriver string
	dbURL    string
	repair   bool
	timeout  time.Duration
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "scorecheck:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.FromEnv()
	}

	opts := &options{}
	cmd := &cobra.Command{
		Use:   "scorecheck",
		Short: "Audit news post scores against their votes",
		Long: `Compares every news post's stored score with the sum of its votes.

With --repair the difference is applied to the score as a delta inside the
same transaction that measured it.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.dbDriver, "db-driver", cfg.DBDriver, "database driver (postgres or sqlite)")
	cmd.Flags().StringVar(&opts.dbURL, "db-url", cfg.DatabaseURL, "database connection string or SQLite file")
	cmd.Flags().BoolVar(&opts.repair, "repair", false, "apply the missing delta to drifting scores")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 5*time.Minute, "maximum run time")

	return cmd
}

func run(cmd *cobra.Command, opts *options) error {
	driver, err := sqlstore.ParseDriver(opts.dbDriver)
	if err != nil {
		return err
	}
	if opts.dbURL == "" {
		return fmt.Errorf("--db-url is required")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
	defer cancel()

	store, err := sqlstore.Open(ctx, driver, opts.dbURL)
	if err != nil {
		return err
	}
	defer store.Close()

	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
	scoreService := services.NewScoreService(
		sqlstore.NewNewsRepository(store),
		sqlstore.NewVoteRepository(store),
		logger,
	)

	drifts, err := scoreService.Audit(ctx, opts.repair)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, d := range drifts {
		status := "drift"
		if d.Repaired {
			status = "repaired"
		}
		fmt.Fprintf(out, "%s\t%s\tstored=%d\tcomputed=%d\tdelta=%+d\n", d.ItemID, status, d.Stored, d.Computed, d.Delta())
	}
	fmt.Fprintf(out, "%d news post(s) with drifting scores\n", len(drifts))
	return nil
}
