package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/sdktable/internal/config"
)

var (
	saveDryRun    bool
	exportTo      string
	exportBackend string
)

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Rewrite the table in canonical form",
	Long: `Load the table and write it back. Malformed entries that were skipped on
load are dropped. With --dry-run the changes are printed as a diff instead
(yaml backend only).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := openApp(cmd.Context(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		if saveDryRun {
			diff, err := a.Preview()
			if err != nil {
				return err
			}
			if diff == "" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "no changes")
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), diff)
			return err
		}

		if err := a.Save(cmd.Context()); err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "saved %d sdks to %s\n", len(a.Records()), a.StorePath())
		return err
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Copy the table to another file or backend",
	Long: `Write the current table to --to using --backend. The configured store
is left as it is.

Examples:
  sdktable export --to ./sdk.table.yaml
  sdktable export --to ./sdktable.db --backend sqlite`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if exportTo == "" {
			return fmt.Errorf("--to is required")
		}
		a, err := openApp(cmd.Context(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		if err := a.Export(cmd.Context(), exportBackend, exportTo); err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "exported %d sdks to %s (%s)\n", len(a.Records()), exportTo, exportBackend)
		return err
	},
}

func init() {
	saveCmd.Flags().BoolVar(&saveDryRun, "dry-run", false, "print the diff instead of writing")
	exportCmd.Flags().StringVar(&exportTo, "to", "", "destination file")
	exportCmd.Flags().StringVar(&exportBackend, "backend", config.BackendYAML, "destination backend: yaml or sqlite")
	rootCmd.AddCommand(saveCmd, exportCmd)
}
