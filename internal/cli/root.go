package cli

import (
	"io"
	"time"

	"github.com/alexanderramin/ganttline/internal/calendar"
	"github.com/alexanderramin/ganttline/internal/config"
	"github.com/alexanderramin/ganttline/internal/service"
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// App holds the services and terminal hooks commands run against.
type App struct {
	Projects service.ProjectService
	Tasks    service.TaskService
	WorkLogs service.WorkLogService
	Adhoc    service.AdhocService
	State    service.StateService
	Reports  service.ReportService
	Import   service.ImportService

	Config config.Config

	// Open loads configuration and wires the services before any command
	// runs. Tests wire the services directly and leave it nil.
	Open func(cmd *cobra.Command) error
	// Close releases whatever Open acquired.
	Close func() error

	Now           func() time.Time
	IsInteractive func() bool
	RunProgram    func(m tea.Model, in io.Reader, out io.Writer) error
	Clipboard     func(text string) error
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) today() calendar.Date {
	return calendar.Today(a.now())
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) runProgram(m tea.Model, in io.Reader, out io.Writer) error {
	if a.RunProgram != nil {
		return a.RunProgram(m, in, out)
	}
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithInput(in), tea.WithOutput(out)).Run()
	return err
}

func (a *App) copyText(text string) error {
	if a.Clipboard != nil {
		return a.Clipboard(text)
	}
	return clipboard.WriteAll(text)
}

// NewRootCmd creates the top-level "ganttline" command and registers all
// subcommands against app.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "ganttline",
		Short:         "Gantt timeline and progress reports for small projects",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.Open == nil {
				return nil
			}
			return app.Open(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if app.Close == nil {
				return nil
			}
			return app.Close()
		},
	}

	root.PersistentFlags().String("config", "", "config file (default ~/.ganttline/config.yaml)")
	root.PersistentFlags().String("db", "", "SQLite database path (default ~/.ganttline/ganttline.db)")

	root.AddCommand(
		newProjectCmd(app),
		newTaskCmd(app),
		newLogCmd(app),
		newAdhocCmd(app),
		newTimelineCmd(app),
		newReportCmd(app),
		newImportCmd(app),
		newExportCmd(app),
		newScheduleCmd(app),
	)

	return root
}
