package cmd

import (
	"context"
	"io"
	"log"

	"github.com/equinix-labs/otel-init-go/otelinit"
	"github.com/opencrowbar/crowbar-inventory/internal/app"
	"github.com/opencrowbar/crowbar-inventory/internal/inventory"
	"github.com/opencrowbar/crowbar-inventory/internal/metrics"
	"github.com/opencrowbar/crowbar-inventory/internal/model"
	"github.com/opencrowbar/crowbar-inventory/internal/version"
	"github.com/pkg/errors"
)

// inventory command flags
type inventoryFlags struct {
	listInventory bool
	ansibleHost   string
}

var (
	inventoryFlagSet = &inventoryFlags{}
)

// runInventory writes the inventory selected by the --list and --host flags to out.
func runInventory(ctx context.Context, out io.Writer) {
	crowbarInventory, err := app.New(cfgFile, logLevel)
	if err != nil {
		log.Fatal(err)
	}

	ctx, otelShutdown := otelinit.InitOpenTelemetry(ctx, model.AppName)

	// Setup cancel context with cancel func.
	ctx, cancelFunc := context.WithCancel(ctx)

	// routine listens for termination signal and cancels the context
	go func() {
		<-crowbarInventory.TermCh
		crowbarInventory.Logger.Info("got TERM signal, exiting...")
		cancelFunc()
	}()

	version.ExportBuildInfoMetric()

	query := model.NewQuery(inventoryFlagSet.listInventory, inventoryFlagSet.ansibleHost)
	if model.HostIgnored(inventoryFlagSet.listInventory, inventoryFlagSet.ansibleHost) {
		crowbarInventory.Logger.WithField("host", inventoryFlagSet.ansibleHost).Debug("--list given, ignoring --host")
	}

	err = fetchInventory(ctx, crowbarInventory, query, out)

	otelShutdown(ctx)
	cancelFunc()

	if err != nil {
		le := crowbarInventory.Logger.WithField("query", query.Kind)

		var fetchErr *inventory.FetchError
		if errors.As(err, &fetchErr) {
			le = le.WithField("status", fetchErr.StatusCode)
		}

		le.Fatal(err)
	}
}

// fetchInventory writes the inventory for the query to out.
//
// Nothing is written to out when the fetch fails.
func fetchInventory(ctx context.Context, crowbarInventory *app.App, query model.Query, out io.Writer) error {
	client := inventory.NewClient(&crowbarInventory.Config.Crowbar, crowbarInventory.Logger)

	err := writeInventory(ctx, client, query, out)

	if errMetrics := metrics.WriteTextfile(crowbarInventory.Config.Metrics.Textfile); errMetrics != nil {
		crowbarInventory.Logger.WithError(errMetrics).Warn("metrics not written")
	}

	return err
}

func writeInventory(ctx context.Context, source inventory.Source, query model.Query, out io.Writer) error {
	body, err := source.Fetch(ctx, query)
	if err != nil {
		return err
	}

	_, err = out.Write(body)

	return err
}

func init() {
	rootCmd.Flags().BoolVar(&inventoryFlagSet.listInventory, "list", false, "Ansible inventory of all of the deployments")
	rootCmd.Flags().StringVar(&inventoryFlagSet.ansibleHost, "host", "", "Ansible inventory of a particular host")
}
