package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var addType string

var addCmd = &cobra.Command{
	Use:   "add <name> <home>",
	Short: "Register an SDK",
	Long: `Check <home> with the given type and register the SDK under <name>.

The version and attributes are read from the installation (the JDK release
file, the Go VERSION file).

Examples:
  sdktable add corretto-17 /usr/lib/jvm/java-17-amazon-corretto
  sdktable add go1.24 /usr/local/go --type GoSDK`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		s, err := a.Add(cmd.Context(), args[0], args[1], addType)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s %s)\n", s.Name(), s.TypeName(), s.Version())
		return err
	},
}

var removeCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"rm"},
	Short:   "Remove an SDK from the table",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		if err := a.Remove(cmd.Context(), args[0]); err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[0])
		return err
	},
}

var renameCmd = &cobra.Command{
	Use:   "rename <old> <new>",
	Short: "Rename an SDK",
	Long: `Rename a registered SDK. The new name must not be taken by another SDK.

Example:
  sdktable rename jdk-11 jdk-11-re`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		if err := a.Rename(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "renamed %s to %s\n", args[0], args[1])
		return err
	},
}

var setHomeCmd = &cobra.Command{
	Use:   "set-home <name> <home>",
	Short: "Point a registered SDK at another home path",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		if err := a.SetHome(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s now at %s\n", args[0], args[1])
		return err
	},
}

func init() {
	addCmd.Flags().StringVar(&addType, "type", "", "SDK type (default: resolve.default_type)")
	rootCmd.AddCommand(addCmd, removeCmd, renameCmd, setHomeCmd)
}
