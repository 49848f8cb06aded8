package cli

import (
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the configured standards packs",
}

var catalogStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show registered packs, resolved sources, and load diagnostics",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}

		status := struct {
			State   string `json:"state"`
			Records int    `json:"records"`
			Plugins any    `json:"plugins"`
			Report  any    `json:"report"`
		}{
			State:   services.Standards.Store().State(),
			Records: services.Standards.Store().Count(),
			Plugins: services.Registry.Plugins(),
			Report:  services.Standards.Store().Report(),
		}
		return printJSON(status)
	},
}

func init() {
	catalogCmd.AddCommand(catalogStatusCmd)
	RootCmd.AddCommand(catalogCmd)
}
