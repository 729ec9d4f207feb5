// Command apitest verifies connectivity and credentials without touching
// the database: exchange status first, then one authenticated market page
// when credentials are configured.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"

	"github.com/rickgao/kalshi-sync/internal/api"
	"github.com/rickgao/kalshi-sync/internal/config"
)

func main() {
	configPath := flag.String("config", "configs/sync.yaml", "path to config file")
	limit := flag.Int("limit", 5, "markets to fetch")
	flag.Parse()

	godotenv.Load()

	// Defaults only; the database section is not needed here.
	cfg, err := config.LoadWithDefaults(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	client, err := api.NewClient(cfg.API.Host, cfg.API.KeyID, cfg.API.PrivateKeyPath)
	if err != nil {
		log.Fatalf("build client: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	status, err := client.GetExchangeStatus(ctx)
	if err != nil {
		log.Fatalf("GetExchangeStatus failed: %v", err)
	}
	fmt.Printf("Exchange Active: %v\n", status.ExchangeActive)
	fmt.Printf("Trading Active: %v\n", status.TradingActive)

	if !client.AuthEnabled() {
		fmt.Println("\nNo credentials configured; skipping authenticated checks.")
		return
	}

	markets, err := client.GetMarkets(ctx, api.GetMarketsOptions{Limit: *limit})
	if err != nil {
		log.Fatalf("GetMarkets failed: %v", err)
	}
	fmt.Printf("\nFetched %d markets (cursor: %q)\n", len(markets.Markets), markets.Cursor)

	rows := make([][]string, 0, len(markets.Markets))
	for i := range markets.Markets {
		rec := markets.Markets[i].ToRecord()
		rows = append(rows, []string{
			rec.Ticker,
			strOr(rec.Title),
			strOr(rec.Status),
			priceOr(rec.YesBid),
			priceOr(rec.YesAsk),
		})
	}

	table := tablewriter.NewTable(os.Stdout)
	table.Header([]string{"Ticker", "Title", "Status", "Yes Bid", "Yes Ask"})
	table.Bulk(rows)
	table.Render()
}

func strOr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func priceOr(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}
