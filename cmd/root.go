package cmd

import (
	"os"

	"github.com/opencrowbar/crowbar-inventory/internal/model"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   model.AppName,
	Short: "Ansible dynamic inventory via OpenCrowbar",
	Long: `Ansible dynamic inventory via OpenCrowbar.

Queries the OpenCrowbar status API and prints the inventory JSON on stdout.
The API address and digest credentials default to http://127.0.0.1:3000 and
crowbar/crowbar, override them in the configuration file or with the
CROWBAR_INVENTORY_CROWBAR_ADDRESS, CROWBAR_INVENTORY_CROWBAR_USERNAME and
CROWBAR_INVENTORY_CROWBAR_PASSWORD environment variables.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runInventory(cmd.Context(), cmd.OutOrStdout())
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "configuration file (default is $HOME/.crowbar-inventory.yml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "set logging level - info, debug, trace")
}
