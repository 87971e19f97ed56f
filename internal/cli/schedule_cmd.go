package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexanderramin/ganttline/internal/digest"
	"github.com/alexanderramin/ganttline/internal/report"
	"github.com/spf13/cobra"
)

func newScheduleCmd(app *App) *cobra.Command {
	var spec, outDir string
	var once bool

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Write the weekly report to a directory on a cron schedule",
		Long: `Run in the foreground and write report-YYYY-MM-DD.txt for the current
week each time the cron expression fires. --once writes a single report and
exits. Stop the scheduler with Ctrl+C.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("cron") && app.Config.Schedule.Cron != "" {
				spec = app.Config.Schedule.Cron
			}
			if !cmd.Flags().Changed("out-dir") {
				outDir = app.Config.Schedule.OutDir
			}

			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
			sched, err := digest.New(app.Reports, digest.Options{
				Spec:            spec,
				OutDir:          outDir,
				Labels:          report.LabelsFor(app.Config.Locale),
				IncludeAdhoc:    app.Config.Report.IncludeAdhoc,
				IncludeWorkLogs: app.Config.Report.IncludeWorkLogs,
				Logger:          logger,
				Now:             app.now,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if once {
				path, err := sched.RunOnce(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Wrote %s\n", path)
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			sched.Start()
			fmt.Fprintf(out, "Next report at %s\n", sched.Next().Format(time.DateTime))
			<-ctx.Done()

			shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := sched.Stop(shutdown); err != nil {
				return fmt.Errorf("stopping scheduler: %w", err)
			}
			fmt.Fprintf(out, "Wrote %d reports\n", len(sched.Written()))
			return nil
		},
	}

	cmd.Flags().StringVar(&spec, "cron", "0 17 * * 5", "Cron expression (five fields or @descriptor)")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "Directory the reports are written to")
	cmd.Flags().BoolVar(&once, "once", false, "Write one report now and exit")
	return cmd
}
