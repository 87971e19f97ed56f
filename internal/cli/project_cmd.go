package cli

import (
	"fmt"

	"github.com/alexanderramin/ganttline/internal/calendar"
	"github.com/alexanderramin/ganttline/internal/cli/formatter"
	"github.com/alexanderramin/ganttline/internal/domain"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "project",
		Aliases: []string{"projects", "p"},
		Short:   "Manage projects",
	}
	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newProjectUpdateCmd(app),
		newProjectRemoveCmd(app),
	)
	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	var name, owner, start, end, status string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			today := app.today()
			startDate, err := parseDateFlag("start", start, app, today)
			if err != nil {
				return err
			}
			endDate, err := parseDateFlag("end", end, app, calendar.AddDays(startDate, 30))
			if err != nil {
				return err
			}
			p := &domain.Project{
				Name:      name,
				Owner:     owner,
				StartDate: startDate,
				EndDate:   endDate,
			}
			if status != "" {
				if p.Status, err = domain.ParseProjectStatus(status); err != nil {
					return err
				}
			}
			if err := app.Projects.Create(cmd.Context(), p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s [%s]\n", p.Name, p.DisplayID())
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&owner, "owner", "", "Owner")
	cmd.Flags().StringVar(&start, "start", "", "Start date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&end, "end", "", "End date YYYY-MM-DD (default start + 30 days)")
	cmd.Flags().StringVar(&status, "status", "", "planned, active, completed or on_hold")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProjectList(projects))
			return nil
		},
	}
}

func newProjectUpdateCmd(app *App) *cobra.Command {
	var name, owner, start, end, status string

	cmd := &cobra.Command{
		Use:   "update <project>",
		Short: "Change project fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Projects.GetByID(ctx, id)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("name") {
				p.Name = name
			}
			if flags.Changed("owner") {
				p.Owner = owner
			}
			if flags.Changed("start") {
				if p.StartDate, err = parseDateFlag("start", start, app, p.StartDate); err != nil {
					return err
				}
			}
			if flags.Changed("end") {
				if p.EndDate, err = parseDateFlag("end", end, app, p.EndDate); err != nil {
					return err
				}
			}
			if flags.Changed("status") {
				if p.Status, err = domain.ParseProjectStatus(status); err != nil {
					return err
				}
			}

			if err := app.Projects.Update(ctx, p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated project %s\n", p.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&owner, "owner", "", "Owner")
	cmd.Flags().StringVar(&start, "start", "", "Start date YYYY-MM-DD")
	cmd.Flags().StringVar(&end, "end", "", "End date YYYY-MM-DD")
	cmd.Flags().StringVar(&status, "status", "", "planned, active, completed or on_hold")
	return cmd
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <project>",
		Aliases: []string{"rm"},
		Short:   "Delete a project that no task references",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Projects.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed project %s\n", domain.ShortID(id))
			return nil
		},
	}
}
