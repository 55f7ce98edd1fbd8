package cmd

import (
	"io"
	"log"

	"github.com/opencrowbar/crowbar-inventory/internal/app"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var cmdConfig = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration with the password redacted",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		crowbarInventory, err := app.New(cfgFile, logLevel)
		if err != nil {
			log.Fatal(err)
		}

		if err := printConfig(crowbarInventory.Config, cmd.OutOrStdout()); err != nil {
			crowbarInventory.Logger.Fatal(err)
		}
	},
}

func printConfig(cfg *app.Configuration, out io.Writer) error {
	b, err := yaml.Marshal(cfg.Redacted())
	if err != nil {
		return err
	}

	_, err = out.Write(b)

	return err
}

func init() {
	rootCmd.AddCommand(cmdConfig)
}
