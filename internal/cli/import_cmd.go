package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alexanderramin/ganttline/internal/importer"
	"github.com/alexanderramin/ganttline/internal/service"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	var replace, sample bool

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Load a stored record (JSON or YAML)",
		Long: `Load projects, tasks, work logs, ad-hoc tasks and UI preferences from a
record file. The whole file is validated first; nothing is written if any
entry is rejected. Without --replace the records are added to what is
already stored.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var res *service.ImportResult
			var err error
			switch {
			case sample:
				res, err = app.Import.ImportRecord(ctx, importer.SampleRecord(app.today()), replace)
			case len(args) == 1:
				res, err = app.Import.ImportFile(ctx, args[0], replace)
			default:
				return fmt.Errorf("a file argument or --sample is required")
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			verb := "Imported"
			if res.Replaced {
				verb = "Replaced state with"
			}
			fmt.Fprintf(out, "%s %d projects, %d tasks, %d work logs, %d ad-hoc tasks\n",
				verb, res.Projects, res.Tasks, res.WorkLogs, res.AdhocTasks)
			for _, ref := range res.Dangling {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", ref)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&replace, "replace", false, "Wipe stored data before loading")
	cmd.Flags().BoolVar(&sample, "sample", false, "Load the starter project instead of a file")
	return cmd
}

func newExportCmd(app *App) *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the stored record as JSON or YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := app.Import.Export(cmd.Context())
			if err != nil {
				return err
			}

			f := importer.Format(strings.ToLower(format))
			if !cmd.Flags().Changed("format") && output != "" {
				f = importer.FormatForPath(output)
			}
			if f != importer.FormatJSON && f != importer.FormatYAML {
				return fmt.Errorf("unknown format %q (want json or yaml)", format)
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" {
				file, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("creating %s: %w", output, err)
				}
				defer file.Close()
				w = file
			}
			return importer.EncodeRecord(w, rec, f)
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "Output format: json or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")
	return cmd
}
