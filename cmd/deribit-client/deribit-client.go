// Command deribit-client is a command-line front end for the client
// library: one invocation performs one API call and prints the reply as
// indented JSON.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/pflag"

	"deribit-sdk-go/client/rpc"
	"deribit-sdk-go/client/websocket"
	"deribit-sdk-go/common"
)

var (
	yellow = color.YellowString
	red    = color.RedString
	green  = color.GreenString

	mode = pflag.String("mode", "time", "Call to perform: one of time, index, currencies, "+
		"instruments, book, announcements, summary, positions, orders, trades, "+
		"buy, sell, close, cancel, status.")

	credsFilename = pflag.String("creds", "", "Credentials file; YAML by default, JSON for "+
		"files ending in .json. Must contain \"api_key\" and \"secret_key\".")
	apiKey    = pflag.String("apikey", "", "API key to use. Consider using --creds instead.")
	secretKey = pflag.String("secretkey", "", "Secret key to use. Consider using --creds instead.")

	url = pflag.String("url", "", "Websocket API URL. By default, the production URL is used.")

	instrument = pflag.String("instrument", "", "Instrument to operate on, like BTC-PERPETUAL.")
	currency   = pflag.String("currency", "", "Currency: btc or eth. Defaults to btc.")
	kind       = pflag.String("kind", "", "Instrument kind: future or option. Defaults to future.")
	depth      = pflag.Int("depth", 0, "Order book depth. Zero leaves the choice to the server.")

	amount    = pflag.Float64("amount", 0, "Order amount: USD for futures, base currency for options.")
	price     = pflag.Float64("price", 0, "Limit price for buy/sell/close in limit mode.")
	orderType = pflag.String("type", "", "Order type for buy/sell, e.g. limit or market.")
	label     = pflag.String("label", "", "Order label echoed back on fills.")
	orderID   = pflag.String("orderid", "", "Order id for --mode status.")
)

func main() {
	pflag.Parse()

	var cr *creds
	if *credsFilename != "" {
		var err error
		cr, err = parseCreds(*credsFilename)
		if err != nil {
			log.Fatalf("%s", err)
		}
	} else {
		cr = &creds{
			APIKey:    *apiKey,
			SecretKey: *secretKey,
		}
	}

	client, err := websocket.NewClient(&websocket.WSParams{
		URL:       *url,
		APIKey:    cr.APIKey,
		SecretKey: cr.SecretKey,
	})
	if err != nil {
		log.Fatalf("%s", err)
	}

	client.OnWarning(func(msg string) {
		fmt.Fprintf(os.Stderr, "%s %s\n", yellow("warning:"), msg)
	})

	ctx := context.Background()

	switch *mode {
	case "time":
		report(client.ServerTime(ctx))

	case "index":
		report(client.IndexPrice(ctx, common.Currency(*currency)))

	case "currencies":
		report(client.Currencies(ctx))

	case "instruments":
		report(client.Instruments(ctx, common.Currency(*currency), common.InstrumentKind(*kind), false))

	case "book":
		requireInstrument()
		report(client.Orderbook(ctx, *instrument, *depth))

	case "announcements":
		report(client.Announcements(ctx))

	case "summary":
		report(client.AccountSummary(ctx, common.Currency(*currency), true))

	case "positions":
		report(client.Positions(ctx, common.Currency(*currency), common.InstrumentKind(*kind)))

	case "orders":
		report(client.OpenOrdersByCurrency(ctx, &common.CancelOpt{
			Currency: common.Currency(*currency),
			Kind:     common.InstrumentKind(*kind),
		}))

	case "trades":
		report(client.UserTradesByCurrency(ctx, &common.TradeHistoryOpt{
			Currency: common.Currency(*currency),
			Kind:     common.InstrumentKind(*kind),
		}))

	case "buy":
		report(client.Buy(ctx, orderOpt()))

	case "sell":
		report(client.Sell(ctx, orderOpt()))

	case "close":
		requireInstrument()
		var limit *float64
		if *price != 0 {
			limit = price
		}
		report(client.ClosePosition(ctx, *instrument, common.OrderType(*orderType), limit))

	case "cancel":
		if *instrument != "" {
			report(client.CancelAllByInstrument(ctx, &common.CancelOpt{Instrument: *instrument}))
		} else if *currency != "" {
			report(client.CancelAllByCurrency(ctx, &common.CancelOpt{
				Currency: common.Currency(*currency),
				Kind:     common.InstrumentKind(*kind),
			}))
		} else {
			report(client.CancelAll(ctx))
		}

	case "status":
		if *orderID == "" {
			log.Fatalf("--orderid is required for --mode status")
		}
		report(client.OrderStatus(ctx, *orderID))

	default:
		log.Fatalf("unknown mode %q", *mode)
	}
}

func orderOpt() *common.OrderOpt {
	requireInstrument()

	opt := &common.OrderOpt{
		Instrument: *instrument,
		Amount:     *amount,
		OrderType:  common.OrderType(*orderType),
		Label:      *label,
	}
	if *price != 0 {
		opt.LimitPrice = common.Float64(*price)
	}
	return opt
}

func requireInstrument() {
	if *instrument == "" {
		log.Fatalf("--instrument is required for --mode %s", *mode)
	}
}

// report prints the outcome of one call: the result as indented JSON, or
// the error envelope in red. Transport and validation errors are fatal.
func report(resp *rpc.Response, err error) {
	if err != nil {
		log.Fatalf("%s", err)
	}

	if resp.HasError() {
		fmt.Printf("%s %s\n", red("error:"), resp.Error.Error())
		if resp.Error.Data != nil {
			printJSON(resp.Error.Data)
		}
		os.Exit(1)
	}

	fmt.Printf("%s\n", green("ok"))
	printJSON(resp.Result)
}

func printJSON(v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("%s", err)
	}
	fmt.Printf("%s\n", data)
}
