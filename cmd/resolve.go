package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/sdktable/internal/presentation"
)

var (
	resolveType   string
	resolveFormat string
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <name>",
	Short: "Find an SDK by name, falling back to hints",
	Long: `Find a registered SDK by name. If none is registered, look up a home
path hint for <hint_prefix>.<name> and build the SDK from it without adding
it to the table.

Hints come from the "hints" section of the config file, SDKTABLE_JDK_<NAME>
variables, and JDK_<NAME> variables when the env-hints flag is on.

Examples:
  sdktable resolve corretto-17
  JDK_ZULU_8=/opt/zulu-8 sdktable resolve zulu-8
  sdktable resolve go1.24 --type GoSDK --format json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		res, ok := a.Resolve(cmd.Context(), args[0], resolveType)
		if !ok {
			return fmt.Errorf("no sdk or hint for %q", args[0])
		}

		origin := presentation.OriginTable
		if !res.Registered {
			origin = presentation.OriginDerived
		}
		return writeSdks(cmd, resolveFormat, "", []presentation.SdkDTO{presentation.FromDomain(res.Sdk, origin)})
	},
}

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the SDK types sdktable can recognise",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := openApp(cmd.Context(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		return presentation.NewFormatter(cmd.OutOrStdout()).FormatTypes(a.Table().Types().Names())
	},
}

func init() {
	resolveCmd.Flags().StringVar(&resolveType, "type", "", "SDK type used to check a hinted home (default: resolve.default_type)")
	resolveCmd.Flags().StringVarP(&resolveFormat, "format", "f", "table", "output format: table or json")
	rootCmd.AddCommand(resolveCmd, typesCmd)
}
