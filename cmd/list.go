package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/sdktable/internal/presentation"
	"github.com/zjrosen/sdktable/internal/sdk"
	"github.com/zjrosen/sdktable/internal/table"
)

var (
	listType     string
	listFormat   string
	listInternal bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the SDKs in the table",
	Long: `List the registered SDKs in table order.

Examples:
  sdktable list
  sdktable list --type JavaSDK
  sdktable list --internal
  sdktable list --format json | jq '.[].home'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := openApp(cmd.Context(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		var dtos []presentation.SdkDTO
		for _, s := range a.Sdks() {
			if listType != "" && s.TypeName() != listType {
				continue
			}
			dtos = append(dtos, presentation.FromDomain(s, presentation.OriginTable))
		}
		if listInternal {
			if internal := a.Internal(); internal != nil && matchesType(internal, listType) {
				dtos = append(dtos, presentation.FromDomain(internal, presentation.OriginInternal))
			}
		}

		return writeSdks(cmd, listFormat, table.PresentableName, dtos)
	},
}

func init() {
	listCmd.Flags().StringVar(&listType, "type", "", "only list SDKs of this type")
	listCmd.Flags().StringVarP(&listFormat, "format", "f", "table", "output format: table or json")
	listCmd.Flags().BoolVar(&listInternal, "internal", false, "include the SDK sdktable itself runs on")
	rootCmd.AddCommand(listCmd)
}

func matchesType(s *sdk.Sdk, typeName string) bool {
	return typeName == "" || s.TypeName() == typeName
}

func writeSdks(cmd *cobra.Command, format, title string, dtos []presentation.SdkDTO) error {
	formatter := presentation.NewFormatter(cmd.OutOrStdout())
	switch format {
	case "json":
		if dtos == nil {
			dtos = []presentation.SdkDTO{}
		}
		return formatter.FormatSdks(dtos)
	case "table", "":
		return formatter.FormatTable(title, dtos)
	default:
		return fmt.Errorf("unknown format %q (want table or json)", format)
	}
}
