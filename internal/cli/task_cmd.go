package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/alexanderramin/ganttline/internal/calendar"
	"github.com/alexanderramin/ganttline/internal/cli/formatter"
	"github.com/alexanderramin/ganttline/internal/domain"
	"github.com/alexanderramin/ganttline/internal/timeline"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"tasks", "t"},
		Short:   "Manage scheduled tasks",
	}
	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskUpdateCmd(app),
		newTaskProgressCmd(app),
		newTaskMoveCmd(app),
		newTaskResizeCmd(app),
		newTaskRemoveCmd(app),
	)
	return cmd
}

// taskFlags are the editable task fields shared by add and update.
type taskFlags struct {
	name, project, start, end string
	status, priority          string
	assignee, notes, category string
	progress                  int
	dependsOn                 []string
}

func (f *taskFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Task name")
	cmd.Flags().StringVar(&f.project, "project", "", "Project ID, ID prefix or name")
	cmd.Flags().StringVar(&f.start, "start", "", "Planned start YYYY-MM-DD")
	cmd.Flags().StringVar(&f.end, "end", "", "Planned end YYYY-MM-DD")
	cmd.Flags().IntVar(&f.progress, "progress", 0, "Progress 0-100")
	cmd.Flags().StringVar(&f.status, "status", "", "not_started, in_progress, completed or on_hold")
	cmd.Flags().StringVar(&f.priority, "priority", "", "high, medium or low")
	cmd.Flags().StringVar(&f.assignee, "assignee", "", "Assignee")
	cmd.Flags().StringVar(&f.notes, "notes", "", "Free-form notes")
	cmd.Flags().StringVar(&f.category, "category", "", "Category label")
	cmd.Flags().StringSliceVar(&f.dependsOn, "depends-on", nil, "IDs of tasks this one depends on")
}

// apply copies every flag the user set onto t.
func (f *taskFlags) apply(ctx context.Context, cmd *cobra.Command, app *App, t *domain.Task) error {
	flags := cmd.Flags()
	var err error
	if flags.Changed("name") {
		t.Name = f.name
	}
	if flags.Changed("project") {
		t.ProjectID = ""
		if f.project != "" {
			if t.ProjectID, err = resolveProjectID(ctx, app, f.project); err != nil {
				return err
			}
		}
	}
	if flags.Changed("start") {
		if t.PlannedStart, err = parseDateFlag("start", f.start, app, t.PlannedStart); err != nil {
			return err
		}
	}
	if flags.Changed("end") {
		if t.PlannedEnd, err = parseDateFlag("end", f.end, app, t.PlannedEnd); err != nil {
			return err
		}
	}
	if flags.Changed("progress") {
		t.SetProgress(f.progress)
	}
	if flags.Changed("status") {
		if t.Status, err = domain.ParseTaskStatus(f.status); err != nil {
			return err
		}
	}
	if flags.Changed("priority") {
		if t.Priority, err = domain.ParsePriority(f.priority); err != nil {
			return err
		}
	}
	if flags.Changed("assignee") {
		t.Assignee = f.assignee
	}
	if flags.Changed("notes") {
		t.Notes = f.notes
	}
	if flags.Changed("category") {
		t.Category = f.category
	}
	if flags.Changed("depends-on") {
		t.DependsOn = f.dependsOn
	}
	return nil
}

func newTaskAddCmd(app *App) *cobra.Command {
	f := &taskFlags{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Schedule a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			today := app.today()
			t := &domain.Task{
				PlannedStart: today,
				PlannedEnd:   calendar.AddDays(today, 4),
			}
			if err := f.apply(ctx, cmd, app, t); err != nil {
				return err
			}
			if !cmd.Flags().Changed("end") && cmd.Flags().Changed("start") {
				t.PlannedEnd = calendar.AddDays(t.PlannedStart, 4)
			}
			if err := app.Tasks.Create(ctx, t); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created task %s [%s] %s..%s\n",
				t.Name, domain.ShortID(t.ID), t.PlannedStart, t.PlannedEnd)
			return nil
		},
	}
	f.register(cmd)
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID := ""
			if project != "" {
				id, err := resolveProjectID(ctx, app, project)
				if err != nil {
					return err
				}
				projectID = id
			}
			tasks, err := app.Tasks.List(ctx, projectID)
			if err != nil {
				return err
			}
			names, err := projectNames(ctx, app)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTaskList(tasks, names))
			return nil
		},
	}
	cmd.Flags().StringVar(&project, "project", "", "Only tasks of this project")
	return cmd
}

func newTaskUpdateCmd(app *App) *cobra.Command {
	f := &taskFlags{}

	cmd := &cobra.Command{
		Use:   "update <task>",
		Short: "Change task fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			t, err := app.Tasks.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if err := f.apply(ctx, cmd, app, t); err != nil {
				return err
			}
			if err := app.Tasks.Update(ctx, t); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated task %s\n", t.Name)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newTaskProgressCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "progress <task> <percent>",
		Short: "Set task progress; status follows",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			pct, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid percent %q: %w", args[1], err)
			}
			t, err := app.Tasks.SetProgress(ctx, id, pct)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d%% (%s)\n", t.Name, t.Progress, t.Status)
			return nil
		},
	}
}

func newTaskMoveCmd(app *App) *cobra.Command {
	var by int

	cmd := &cobra.Command{
		Use:   "move <task>",
		Short: "Shift both planned dates by a number of days",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return shiftTask(cmd, app, args[0], by, timeline.DragMove)
		},
	}
	cmd.Flags().IntVar(&by, "by", 0, "Days to shift; negative moves earlier")
	_ = cmd.MarkFlagRequired("by")
	return cmd
}

func newTaskResizeCmd(app *App) *cobra.Command {
	var by int
	var edge string

	cmd := &cobra.Command{
		Use:   "resize <task>",
		Short: "Move one planned date; the interval never inverts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := timeline.ParseDragMode(edge)
			if err != nil {
				return err
			}
			if mode == timeline.DragMove {
				return fmt.Errorf("--edge must be start or end")
			}
			return shiftTask(cmd, app, args[0], by, mode)
		},
	}
	cmd.Flags().IntVar(&by, "by", 0, "Days to shift the edge")
	cmd.Flags().StringVar(&edge, "edge", "end", "Edge to move: start or end")
	_ = cmd.MarkFlagRequired("by")
	return cmd
}

func shiftTask(cmd *cobra.Command, app *App, input string, by int, mode timeline.DragMode) error {
	ctx := cmd.Context()
	id, err := resolveTaskID(ctx, app, input)
	if err != nil {
		return err
	}
	t, err := app.Tasks.Shift(ctx, id, by, mode)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s..%s\n", t.Name, t.PlannedStart, t.PlannedEnd)
	return nil
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <task>",
		Aliases: []string{"rm"},
		Short:   "Delete a task and its work logs",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			removed, err := app.Tasks.Delete(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed task %s and %d work logs\n", domain.ShortID(id), removed)
			return nil
		},
	}
}

func projectNames(ctx context.Context, app *App) (map[string]string, error) {
	projects, err := app.Projects.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(projects))
	for _, p := range projects {
		names[p.ID] = p.Name
	}
	return names, nil
}

func taskNames(ctx context.Context, app *App) (map[string]string, error) {
	tasks, err := app.Tasks.List(ctx, "")
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(tasks))
	for _, t := range tasks {
		names[t.ID] = t.Name
	}
	return names, nil
}
