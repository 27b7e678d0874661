package modules

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/ratelimit"

	"github.com/cbpro-tools/coinbase-pro-dca/models"
)

const API_SETUP_MSG string = `Set up a Coinbase Pro API key here: https://pro.coinbase.com/profile/api
The "View" scope is required. If you wish to utilize deposits and/or withdrawals, grant the "Transfer" scope. If you wish to utilize investing, grant the "Trade" scope.
If possible, consider setting a restrictive IP whitelist.`

const DEFAULT_PURCHASES_PER_PERIOD int = 31

// Wizard interactively assembles a configuration document and writes it to
// disk. Payment methods are listed live from the exchange so the user picks
// an id instead of typing one.
type Wizard struct {
	In  *bufio.Reader
	Out io.Writer

	// swapped for a fake in tests
	Exchange func(creds models.Credentials) (Exchange, error)
}

func NewWizard(in io.Reader, out io.Writer, ratelimiter ratelimit.Limiter) *Wizard {
	return &Wizard{
		In:  bufio.NewReader(in),
		Out: out,
		Exchange: func(creds models.Credentials) (Exchange, error) {
			return NewClient(creds, false, ratelimiter)
		},
	}
}

func (w *Wizard) prompt(label string) string {
	fmt.Fprint(w.Out, label)

	line, _ := w.In.ReadString('\n')

	return strings.TrimSpace(line)
}

func (w *Wizard) Run(defaultPath string) error {
	fmt.Fprintln(w.Out, API_SETUP_MSG)

	config := &models.Config{
		ExternalWallets: make(map[string]models.ExternalWallet),
		Logging:         models.LoggingConfig{LogLevel: "info"},
	}

	config.CoinbasePro = models.Credentials{
		APIKey:     w.prompt("Enter API key: "),
		APISecret:  w.prompt("Enter API secret: "),
		Passphrase: w.prompt("Enter API passphrase: "),
	}

	exchange, err := w.Exchange(config.CoinbasePro)
	if err != nil {
		return err
	}

	methods := make([]models.PaymentMethod, 0)
	if err := exchange.Get(COINBASE_PAYMENT_METHODS, &methods); err != nil {
		fmt.Fprintf(w.Out, "API error - %s. Please try running this program again with valid API credentials.\n", err)
		return err
	}

	fmt.Fprintln(w.Out, "Payment methods:")
	for index, method := range methods {
		fmt.Fprintf(w.Out, "%d - %s\n", index, method.Name)
	}

	index, err := strconv.Atoi(w.prompt("Enter the index of the payment method you'd like to deposit from in the future: "))
	if err != nil || index < 0 || index >= len(methods) {
		return fmt.Errorf("invalid payment method index")
	}
	config.Deposit.PaymentMethodID = methods[index].ID

	config.Deposit.PurchasesPerPeriod = DEFAULT_PURCHASES_PER_PERIOD
	if answer := w.prompt(fmt.Sprintf("Enter the number of purchases that will be made per period (%d): ", DEFAULT_PURCHASES_PER_PERIOD)); answer != "" {
		perPeriod, err := strconv.Atoi(answer)
		if err != nil {
			return fmt.Errorf("invalid purchases per period: %w", err)
		}
		config.Deposit.PurchasesPerPeriod = perPeriod
	}

	for first := true; first || w.yes("Enter another order? (y/N): "); first = false {
		pair := strings.ToUpper(w.prompt("Enter order trading pair (eg. BTC-USD): "))

		amount, err := decimal.NewFromString(w.prompt("Enter trading amount in USD: "))
		if err != nil {
			return fmt.Errorf("invalid trading amount: %w", err)
		}

		config.Orders = append(config.Orders, models.OrderIntent{
			TradingPair: pair,
			Amount:      amount,
		})
	}

	for first := true; first || w.yes("Enter another withdrawal configuration? (y/N): "); first = false {
		ticker := strings.ToUpper(w.prompt("Enter the asset's ticker symbol (eg. BTC): "))

		maxValue, err := decimal.NewFromString(w.prompt("Enter the lowest value in USD that should initiate a withdrawal: "))
		if err != nil {
			return fmt.Errorf("invalid withdrawal value: %w", err)
		}

		config.ExternalWallets[ticker] = models.ExternalWallet{
			MaxValueBeforeMove: maxValue,
			DestinationWallet:  w.prompt(fmt.Sprintf("Enter a destination %s address: ", ticker)),
		}
	}

	path := w.prompt(fmt.Sprintf("Enter file name to write configuration (%s): ", defaultPath))
	if path == "" {
		path = defaultPath
	}

	body, err := json.MarshalIndent(config, "", "    ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, body, 0o600)
}

func (w *Wizard) yes(label string) bool {
	return strings.EqualFold(w.prompt(label), "y")
}
