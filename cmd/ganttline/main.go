package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/alexanderramin/ganttline/internal/cli"
	"github.com/alexanderramin/ganttline/internal/config"
	"github.com/alexanderramin/ganttline/internal/db"
	"github.com/alexanderramin/ganttline/internal/repository"
	"github.com/alexanderramin/ganttline/internal/service"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	app := &cli.App{}
	var database *sql.DB

	app.Open = func(cmd *cobra.Command) error {
		baseDir, err := config.Dir()
		if err != nil {
			return err
		}
		flags := cmd.Root().PersistentFlags()
		loader := config.NewLoader(baseDir)
		if err := loader.BindFlag("db_path", flags.Lookup("db")); err != nil {
			return err
		}
		configPath, _ := flags.GetString("config")
		cfg, err := loader.Load(configPath)
		if err != nil {
			return err
		}
		app.Config = cfg

		database, err = db.OpenDB(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		wire(app, database, cfg)
		return nil
	}
	app.Close = func() error {
		if database == nil {
			return nil
		}
		return database.Close()
	}

	// The timeline view needs a terminal on both ends.
	app.IsInteractive = func() bool {
		in, out := os.Stdin.Fd(), os.Stdout.Fd()
		return (isatty.IsTerminal(in) || isatty.IsCygwinTerminal(in)) &&
			(isatty.IsTerminal(out) || isatty.IsCygwinTerminal(out))
	}

	return cli.NewRootCmd(app).Execute()
}

func wire(app *cli.App, database *sql.DB, cfg config.Config) {
	projectRepo := repository.NewSQLiteProjectRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)
	workLogRepo := repository.NewSQLiteWorkLogRepo(database)
	adhocRepo := repository.NewSQLiteAdhocRepo(database)
	prefsRepo := repository.NewSQLitePreferencesRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	var observers []service.UseCaseObserver
	if cfg.LogUseCases {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	state := service.NewStateService(uow, prefsRepo)
	app.Projects = service.NewProjectService(projectRepo, uow)
	app.Tasks = service.NewTaskService(taskRepo, uow, observers...)
	app.WorkLogs = service.NewWorkLogService(workLogRepo, uow, observers...)
	app.Adhoc = service.NewAdhocService(adhocRepo)
	app.State = state
	app.Reports = service.NewReportService(state, logger, observers...)
	app.Import = service.NewImportService(state, uow, observers...)
}
