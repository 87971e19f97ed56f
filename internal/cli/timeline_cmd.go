package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/alexanderramin/ganttline/internal/cli/formatter"
	"github.com/alexanderramin/ganttline/internal/domain"
	"github.com/alexanderramin/ganttline/internal/timeline"
	"github.com/spf13/cobra"
)

// Days of padding around the task range on the chart.
const (
	chartPadBefore = 2
	chartPadAfter  = 7
)

func newTimelineCmd(app *App) *cobra.Command {
	var project, zoom string
	var dayWidth int
	var static bool

	cmd := &cobra.Command{
		Use:     "timeline",
		Aliases: []string{"gantt"},
		Short:   "Show the Gantt timeline",
		Long: `Show tasks on a Gantt chart. On a terminal this opens an interactive
view where the selected bar can be moved and resized a day at a time;
--static (or a non-terminal stdout) prints the chart once.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			prefs, err := app.State.Preferences(ctx)
			if err != nil {
				return err
			}
			opts := formatter.GanttOptions{Zoom: prefs.GanttZoom, DayWidth: prefs.DayWidth}
			if opts.DayWidth <= 0 {
				opts.DayWidth = app.Config.DayWidth
			}
			if cmd.Flags().Changed("zoom") {
				opts.Zoom = domain.GanttZoom(strings.ToLower(zoom))
				if !opts.Zoom.Valid() {
					return fmt.Errorf("--zoom: unknown zoom %q (want day or week)", zoom)
				}
			}
			if cmd.Flags().Changed("day-width") {
				if dayWidth <= 0 {
					return fmt.Errorf("--day-width must be positive")
				}
				opts.DayWidth = dayWidth
			}

			var projectIDs []string
			if project != "" {
				id, err := resolveProjectID(ctx, app, project)
				if err != nil {
					return err
				}
				projectIDs = []string{id}
			}

			if !static && app.interactive() {
				m := newTimelineModel(app, projectIDs, opts)
				return app.runProgram(m, cmd.InOrStdin(), os.Stdout)
			}

			state, err := app.State.Snapshot(ctx)
			if err != nil {
				return err
			}
			today := app.today()
			tasks := timeline.FilterByProjects(state.Tasks, projectIDs)
			bounds := timeline.Bounds(tasks, today, chartPadBefore, chartPadAfter)
			chart := timeline.Layout(tasks, bounds, today)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.FormatSummary(timeline.Summarize(tasks, today)))
			fmt.Fprintln(out)
			fmt.Fprint(out, formatter.RenderGantt(chart, opts))
			fmt.Fprintln(out)
			fmt.Fprintln(out, formatter.GanttLegend())
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Only show tasks of this project")
	cmd.Flags().StringVar(&zoom, "zoom", "day", "Column unit: day or week")
	cmd.Flags().IntVar(&dayWidth, "day-width", 3, "Cell width of one column")
	cmd.Flags().BoolVar(&static, "static", false, "Print the chart instead of opening the interactive view")
	return cmd
}
