package modules

import (
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/cbpro-tools/coinbase-pro-dca/models"
)

// Depositor pre-funds the account with exactly the fiat one full cadence of
// scheduled buys will spend, assuming it runs once at the start of each
// cadence.
type Depositor struct {
	Config   *models.Config
	Exchange Exchange
	Logger   *logrus.Logger
}

func NewDepositor(config *models.Config, exchange Exchange, logger *logrus.Logger) *Depositor {
	return &Depositor{
		Config:   config,
		Exchange: exchange,
		Logger:   logger,
	}
}

// Run issues a single deposit of sum(order amounts) * purchases per period
// from the configured payment method. Failures are logged and never retried.
func (d *Depositor) Run() {
	total := decimal.Zero
	for _, intent := range d.Config.Orders {
		total = total.Add(intent.Amount)
	}
	total = total.Mul(decimal.NewFromInt(int64(d.Config.Deposit.PurchasesPerPeriod)))

	_, err := d.Exchange.Post(COINBASE_DEPOSITS, models.DepositRequest{
		Amount:          total.StringFixed(2),
		Currency:        "USD",
		PaymentMethodID: d.Config.Deposit.PaymentMethodID,
	})

	if err != nil {
		d.Logger.Errorf("Error depositing $%s - %s", total.StringFixed(2), err)
		return
	}

	d.Logger.Infof("Deposited $%s from payment method %s", total.StringFixed(2), d.Config.Deposit.PaymentMethodID)
}
