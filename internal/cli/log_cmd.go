package cli

import (
	"fmt"

	"github.com/alexanderramin/ganttline/internal/calendar"
	"github.com/alexanderramin/ganttline/internal/cli/formatter"
	"github.com/alexanderramin/ganttline/internal/domain"
	"github.com/spf13/cobra"
)

func newLogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "log",
		Aliases: []string{"logs"},
		Short:   "Record dated work notes against tasks",
	}
	cmd.AddCommand(
		newLogAddCmd(app),
		newLogListCmd(app),
		newLogRemoveCmd(app),
	)
	return cmd
}

func newLogAddCmd(app *App) *cobra.Command {
	var task, date, note string
	var hours float64
	var progress int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a work log",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			taskID, err := resolveTaskID(ctx, app, task)
			if err != nil {
				return err
			}
			day, err := parseDateFlag("date", date, app, app.today())
			if err != nil {
				return err
			}
			w := &domain.WorkLog{TaskID: taskID, Date: day, Note: note}
			if cmd.Flags().Changed("hours") {
				w.Hours = domain.Float64Ptr(hours)
			}
			if cmd.Flags().Changed("progress") {
				w.ProgressAfter = domain.IntPtr(progress)
			}
			if err := app.WorkLogs.Log(ctx, w); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s on %s [%s]\n", day, domain.ShortID(taskID), domain.ShortID(w.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&task, "task", "", "Task ID or prefix")
	cmd.Flags().StringVar(&date, "date", "", "Date YYYY-MM-DD (default today)")
	cmd.Flags().StringVarP(&note, "note", "m", "", "What was done")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Hours spent")
	cmd.Flags().IntVar(&progress, "progress", 0, "Task progress after this work, 0-100")
	_ = cmd.MarkFlagRequired("task")
	_ = cmd.MarkFlagRequired("note")
	return cmd
}

func newLogListCmd(app *App) *cobra.Command {
	var task, from, to string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List work logs",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var logs []*domain.WorkLog
			var err error

			switch {
			case from != "" || to != "":
				var p calendar.Period
				if p, err = periodFlags(app, from, to); err != nil {
					return err
				}
				logs, err = app.WorkLogs.ListInPeriod(ctx, p)
				if err == nil && task != "" {
					var taskID string
					if taskID, err = resolveTaskID(ctx, app, task); err != nil {
						return err
					}
					logs = filterLogs(logs, taskID)
				}
			case task != "":
				var taskID string
				if taskID, err = resolveTaskID(ctx, app, task); err != nil {
					return err
				}
				logs, err = app.WorkLogs.List(ctx, taskID)
			default:
				logs, err = app.WorkLogs.List(ctx, "")
			}
			if err != nil {
				return err
			}

			names, err := taskNames(ctx, app)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatWorkLogList(logs, names))
			return nil
		},
	}

	cmd.Flags().StringVar(&task, "task", "", "Only logs of this task")
	cmd.Flags().StringVar(&from, "from", "", "First day YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "Last day YYYY-MM-DD")
	return cmd
}

func filterLogs(logs []*domain.WorkLog, taskID string) []*domain.WorkLog {
	out := logs[:0]
	for _, w := range logs {
		if w.TaskID == taskID {
			out = append(out, w)
		}
	}
	return out
}

func newLogRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <log>",
		Aliases: []string{"rm"},
		Short:   "Delete a work log",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveWorkLogID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.WorkLogs.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed work log %s\n", domain.ShortID(id))
			return nil
		},
	}
}

// periodFlags builds a period from --from/--to. A missing bound takes the
// other's value so a single flag selects one day.
func periodFlags(app *App, from, to string) (calendar.Period, error) {
	start, err := parseDateFlag("from", from, app, calendar.Date{})
	if err != nil {
		return calendar.Period{}, err
	}
	end, err := parseDateFlag("to", to, app, start)
	if err != nil {
		return calendar.Period{}, err
	}
	if start.IsZero() {
		start = end
	}
	return calendar.NewPeriod(start, end), nil
}
