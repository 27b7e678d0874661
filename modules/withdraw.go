package modules

import (
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"

	"github.com/cbpro-tools/coinbase-pro-dca/models"
)

// fiat balances are never withdrawn or nagged about
var ignoredFiatCurrencies = []string{"USD", "EUR", "GBP"}

type withdrawAction int

const (
	actionSkip withdrawAction = iota
	actionWarn
	actionWithdraw
)

// Withdrawer sweeps accumulated crypto balances to external wallets. It runs
// after every action regardless of which one was requested, because balances
// accumulate from any source and the policy should apply uniformly.
type Withdrawer struct {
	Config   *models.Config
	Exchange Exchange
	Logger   *logrus.Logger
}

func NewWithdrawer(config *models.Config, exchange Exchange, logger *logrus.Logger) *Withdrawer {
	return &Withdrawer{
		Config:   config,
		Exchange: exchange,
		Logger:   logger,
	}
}

func (w *Withdrawer) Run() {
	accounts, err := w.Exchange.ListAccounts()
	if err != nil {
		w.Logger.Errorf("Error listing accounts - %s", err)
		return
	}

	for _, account := range accounts {
		w.evaluate(account)
	}
}

func (w *Withdrawer) evaluate(account models.Account) {
	wallet, hasWallet := w.Config.ExternalWallets[account.Currency]

	rate := decimal.Zero
	if hasWallet && !slices.Contains(ignoredFiatCurrencies, account.Currency) {
		var err error

		rate, err = w.Exchange.GetSpotPrice(account.Currency + "-USD")
		if err != nil {
			// no market for this currency; evaluate the rest anyway
			w.Logger.Errorf("Error pricing %s - %s", account.Currency, err)
			return
		}
	}

	switch decideAction(account.Currency, account.Balance, hasWallet, wallet.MaxValueBeforeMove, w.Config.MinimumNagValue, rate) {
	case actionWarn:
		w.Logger.Warnf("%s balance of %s has no external wallet configured", account.Currency, account.Balance)

	case actionWithdraw:
		// the threshold looks at the full balance, but only free funds can
		// move; anything on hold stays behind for the next run
		_, err := w.Exchange.Post(COINBASE_WITHDRAWALS, models.WithdrawalRequest{
			Amount:        account.Available.String(),
			Currency:      account.Currency,
			CryptoAddress: wallet.DestinationWallet,
		})

		if err != nil {
			w.Logger.Errorf("Error withdrawing %s - %s", account.Currency, err)
			return
		}

		w.Logger.Infof("Withdrew %s %s to %s", account.Available, account.Currency, wallet.DestinationWallet)
	}
}

// decideAction is the pure half of the policy: given everything already
// known about a balance, pick skip, warn or withdraw. rate only matters when
// a wallet is configured.
func decideAction(currency string, balance decimal.Decimal, hasWallet bool, maxValue, nagValue, rate decimal.Decimal) withdrawAction {
	if slices.Contains(ignoredFiatCurrencies, currency) {
		return actionSkip
	}

	if !hasWallet {
		if balance.GreaterThanOrEqual(nagValue) {
			return actionWarn
		}

		return actionSkip
	}

	if balance.Mul(rate).GreaterThanOrEqual(maxValue) {
		return actionWithdraw
	}

	return actionSkip
}
