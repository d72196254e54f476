package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/crimewatch/internal/logger"
)

// newScheduleCmd creates the schedule command: scrape on a cron
// schedule until interrupted.
func newScheduleCmd() *cobra.Command {
	var siteName string

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Scrape on a recurring schedule",
		Long: `Run scrape passes on the configured cron schedule (schedule.cron,
default daily at 09:00) until interrupted. Overlapping runs are
skipped: a pass that is still going when the next trigger fires wins.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx, true)
			if err != nil {
				return err
			}
			defer a.Close()

			sites, err := a.sitesToRun(siteName)
			if err != nil {
				return err
			}

			c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
			_, err = c.AddFunc(a.cfg.Schedule.Cron, func() {
				if _, runErr := a.pipe.Run(ctx, sites); runErr != nil {
					a.log.Error("scheduled scrape failed", logger.Error(runErr))
				}
			})
			if err != nil {
				return fmt.Errorf("invalid cron spec %q: %w", a.cfg.Schedule.Cron, err)
			}

			a.log.Info("scheduler started",
				logger.String("cron", a.cfg.Schedule.Cron),
				logger.Int("sites", len(sites)),
			)
			c.Start()
			<-ctx.Done()

			a.log.Info("scheduler stopping")
			<-c.Stop().Done()
			return nil
		},
	}

	cmd.Flags().StringVar(&siteName, "site", "", "scrape a single configured site by name")
	return cmd
}
