package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/ganttline/internal/calendar"
	"github.com/alexanderramin/ganttline/internal/report"
	"github.com/spf13/cobra"
)

// presetPeriod maps a preset name to the period containing day.
func presetPeriod(preset string, day calendar.Date) (calendar.Period, error) {
	switch strings.ToLower(preset) {
	case "today", "day":
		return calendar.DayRange(day), nil
	case "", "week":
		return calendar.WeekRange(day), nil
	case "month":
		return calendar.MonthRange(day), nil
	}
	return calendar.Period{}, fmt.Errorf("unknown preset %q (want today, week or month)", preset)
}

func newReportCmd(app *App) *cobra.Command {
	var from, to, preset, today, locale string
	var projects []string
	var adhoc, worklogs, copyOut bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate a progress report for a period",
		Long: `Generate a plain-text progress report.

The period defaults to the current Monday..Sunday week. --preset picks the
day, week or month containing --today; --from and --to override either end.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ref, err := parseDateFlag("today", today, app, app.today())
			if err != nil {
				return err
			}
			period, err := presetPeriod(preset, ref)
			if err != nil {
				return err
			}
			if period.From, err = parseDateFlag("from", from, app, period.From); err != nil {
				return err
			}
			if period.To, err = parseDateFlag("to", to, app, period.To); err != nil {
				return err
			}

			opts := report.Options{
				From:            period.From,
				To:              period.To,
				IncludeAdhoc:    app.Config.Report.IncludeAdhoc,
				IncludeWorkLogs: app.Config.Report.IncludeWorkLogs,
				Today:           ref,
			}
			if cmd.Flags().Changed("adhoc") {
				opts.IncludeAdhoc = adhoc
			}
			if cmd.Flags().Changed("worklogs") {
				opts.IncludeWorkLogs = worklogs
			}
			for _, p := range projects {
				id, err := resolveProjectID(ctx, app, p)
				if err != nil {
					return err
				}
				opts.ProjectIDs = append(opts.ProjectIDs, id)
			}

			if !cmd.Flags().Changed("locale") && app.Config.Locale != "" {
				locale = app.Config.Locale
			}
			text, err := app.Reports.Generate(ctx, opts, report.LabelsFor(locale))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), text)

			if copyOut {
				if err := app.copyText(text); err != nil {
					return fmt.Errorf("copying report: %w", err)
				}
				fmt.Fprintln(cmd.ErrOrStderr(), "Report copied to clipboard.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "First day YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "Last day YYYY-MM-DD")
	cmd.Flags().StringVar(&preset, "preset", "week", "Period preset: today, week or month")
	cmd.Flags().StringSliceVar(&projects, "project", nil, "Limit to these projects (repeatable)")
	cmd.Flags().BoolVar(&adhoc, "adhoc", true, "Include ad-hoc tasks")
	cmd.Flags().BoolVar(&worklogs, "worklogs", true, "Include work logs")
	cmd.Flags().StringVar(&today, "today", "", "Reference date for presets and the generated line")
	cmd.Flags().StringVar(&locale, "locale", "en", "Report language: en or ja")
	cmd.Flags().BoolVar(&copyOut, "copy", false, "Also copy the report to the clipboard")
	return cmd
}
