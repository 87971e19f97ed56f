package cli

import (
	"fmt"

	"github.com/alexanderramin/ganttline/internal/cli/formatter"
	"github.com/alexanderramin/ganttline/internal/domain"
	"github.com/spf13/cobra"
)

func newAdhocCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "adhoc",
		Short: "Record unscheduled work for reports",
	}
	cmd.AddCommand(
		newAdhocAddCmd(app),
		newAdhocListCmd(app),
		newAdhocRemoveCmd(app),
	)
	return cmd
}

func newAdhocAddCmd(app *App) *cobra.Command {
	var title, date, detail, project string
	var hours float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an ad-hoc task",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			day, err := parseDateFlag("date", date, app, app.today())
			if err != nil {
				return err
			}
			a := &domain.AdhocTask{Date: day, Title: title, Detail: detail}
			if project != "" {
				if a.RelatedProjectID, err = resolveProjectID(ctx, app, project); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("hours") {
				a.Hours = domain.Float64Ptr(hours)
			}
			if err := app.Adhoc.Create(ctx, a); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s on %s [%s]\n", a.Title, day, domain.ShortID(a.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Title")
	cmd.Flags().StringVar(&date, "date", "", "Date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&detail, "detail", "", "Detail line")
	cmd.Flags().StringVar(&project, "project", "", "Related project")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Hours spent")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newAdhocListCmd(app *App) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List ad-hoc tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var items []*domain.AdhocTask
			if from != "" || to != "" {
				p, err := periodFlags(app, from, to)
				if err != nil {
					return err
				}
				if items, err = app.Adhoc.ListInPeriod(ctx, p); err != nil {
					return err
				}
			} else {
				var err error
				if items, err = app.Adhoc.List(ctx); err != nil {
					return err
				}
			}
			names, err := projectNames(ctx, app)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatAdhocList(items, names))
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "First day YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "Last day YYYY-MM-DD")
	return cmd
}

func newAdhocRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <adhoc>",
		Aliases: []string{"rm"},
		Short:   "Delete an ad-hoc task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveAdhocID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Adhoc.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed ad-hoc task %s\n", domain.ShortID(id))
			return nil
		},
	}
}
