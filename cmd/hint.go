package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/zjrosen/sdktable/internal/app"
	"github.com/zjrosen/sdktable/internal/config"
	"github.com/zjrosen/sdktable/internal/hints"
	"github.com/zjrosen/sdktable/internal/sdk/sdktypes"
)

var (
	hintType  string
	hintForce bool
)

var hintCmd = &cobra.Command{
	Use:   "hint",
	Short: "Manage home path hints in the config file",
}

var hintSetCmd = &cobra.Command{
	Use:   "set <name> <home>",
	Short: "Record a home path hint for an unregistered SDK",
	Long: `Write hints.<hint_prefix>.<name> = <home> into the config file, keeping
its comments and other settings. The home is checked with the given type
unless --force is set.

Example:
  sdktable hint set zulu-8 /opt/zulu-8`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, home := args[0], args[1]

		if !hintForce {
			typeName := hintType
			if typeName == "" {
				typeName = cfg.Resolve.DefaultType
			}
			t, ok := sdktypes.Default(afero.NewOsFs()).Find(typeName)
			if !ok {
				return fmt.Errorf("%w: %q", app.ErrUnknownType, typeName)
			}
			if !t.IsValidHome(home) {
				return fmt.Errorf("%s is not a %s home (use --force to save anyway)", home, typeName)
			}
		}

		prefix := cfg.Resolve.HintPrefix
		if prefix == "" {
			prefix = config.Defaults().Resolve.HintPrefix
		}
		path := configFilePath()
		if err := config.SaveHint(afero.NewOsFs(), path, hints.Key(prefix, name), home); err != nil {
			return err
		}
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "hint %s = %s saved to %s\n", hints.Key(prefix, name), home, path)
		return err
	},
}

func init() {
	hintSetCmd.Flags().StringVar(&hintType, "type", "", "SDK type used to check the home (default: resolve.default_type)")
	hintSetCmd.Flags().BoolVar(&hintForce, "force", false, "save without checking the home")
	hintCmd.AddCommand(hintSetCmd)
	rootCmd.AddCommand(hintCmd)
}
