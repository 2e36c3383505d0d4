package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"giftmarket-backend/lib/browserutil"
	"giftmarket-backend/lib/serviceutil"
	"giftmarket-backend/services/market"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	fetchBackdrop *string
	fetchModel    *string
	fetchSymbol   *string
	fetchLimit    *int
	fetchEnrich   *bool
	fetchBrowser  *bool
)

func init() {
	fetchBackdrop = fetchCmd.Flags().String("backdrop", "", "Filter by backdrop attribute.")
	fetchModel = fetchCmd.Flags().String("model", "", "Filter by model attribute.")
	fetchSymbol = fetchCmd.Flags().String("symbol", "", "Filter by symbol attribute.")
	fetchLimit = fetchCmd.Flags().Int("limit", 10, "Maximum number of listings to return.")
	fetchEnrich = fetchCmd.Flags().Bool("enrich", false, "Look up model/backdrop/symbol per listing.")
	fetchBrowser = fetchCmd.Flags().Bool("browser", false, "Also race a headless browser render against the direct fetch.")
	rootCmd.AddCommand(fetchCmd)
}

var fetchCmd = &cobra.Command{
	Use:   "fetch <collection>",
	Short: "Fetches the cheapest on-sale listings of a collection.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		strategies := []market.Strategy{
			market.NewHTTPStrategy(market.HTTPStrategyConfig{}),
		}
		if *fetchBrowser {
			pool, err := browserutil.NewPool(browserutil.Config{PoolSize: 1})
			if err != nil {
				serviceutil.Fatal("failed to start browser", err)
			}
			defer pool.Close()
			strategies = append(strategies, market.NewRenderStrategy(pool, market.RenderStrategyConfig{}))
		}

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		resolver := market.NewResolver("", strategies...)
		filter := market.Filter{
			Backdrop: *fetchBackdrop,
			Model:    *fetchModel,
			Symbol:   *fetchSymbol,
		}
		records := resolver.Resolve(ctx, args[0], filter, *fetchLimit)
		if len(records) == 0 {
			fmt.Println("no listings found")
			return
		}
		if *fetchEnrich {
			records = market.NewEnricher(market.EnricherConfig{}).Enrich(ctx, records)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		header := table.Row{"Name", "Slug", "Price", "Provider", "Address"}
		if *fetchEnrich {
			header = append(header, "Model", "Backdrop", "Symbol")
		}
		t.AppendHeader(header)
		for _, rec := range records {
			row := table.Row{rec.Name, rec.Slug, rec.Price, rec.Provider, rec.Address}
			if *fetchEnrich {
				row = append(row, rec.Model, rec.Backdrop, rec.Symbol)
			}
			t.AppendRow(row)
		}
		t.Render()
	},
}
