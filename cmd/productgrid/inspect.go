package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/abgdnv/productgrid/internal/app"
	"github.com/abgdnv/productgrid/internal/config"
	"github.com/abgdnv/productgrid/internal/datasource"
	"github.com/abgdnv/productgrid/internal/platform/bootstrap"
	"github.com/abgdnv/productgrid/internal/platform/config/configloader"
	"github.com/abgdnv/productgrid/internal/product"
	"github.com/spf13/cobra"
)

type inspectFlags struct {
	url    string
	format string
}

func newInspectCmd() *cobra.Command {
	var flags inspectFlags
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Fetch the product list once and print it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			url := flags.url
			level := "warn"
			var timeout time.Duration
			if url == "" {
				cfg, err := configloader.Load[config.InspectConfig](app.ServiceName)
				if err != nil {
					return fmt.Errorf("failed to load configuration: %w", err)
				}
				url = cfg.DataSource.URL
				timeout = cfg.DataSource.Timeout
				if cfg.Log.Level != "" {
					level = cfg.Log.Level
				}
			}
			logger := bootstrap.NewLoggerTo(cmd.ErrOrStderr(), level)
			records, err := datasource.NewClient(url, datasource.NewHTTPClient(timeout), logger).Fetch(cmd.Context())
			if err != nil {
				return err
			}
			return printRecords(cmd.OutOrStdout(), records, flags.format)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.url, "url", "", "Data source URL (default: datasource.url from the configuration)")
	f.StringVar(&flags.format, "format", "table", "Output format: table or json")
	return cmd
}

func printRecords(w io.Writer, records []product.Record, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	case "table":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(tw, "ID\tNAME\tUNIT PRICE\tIN STOCK\tDISCONTINUED")
		for _, r := range records {
			_, _ = fmt.Fprintf(tw, "%d\t%s\t%.2f\t%s\t%t\n", r.ID, r.Name, r.UnitPrice, r.UnitsInStock, r.Discontinued)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown format %q: use table or json", format)
	}
}
