package modules

import (
	"github.com/sirupsen/logrus"

	"github.com/cbpro-tools/coinbase-pro-dca/models"
)

const (
	ACTION_DEPOSIT  string = "deposit"
	ACTION_INVEST   string = "invest"
	ACTION_WITHDRAW string = "withdraw"
)

// App bundles what every orchestrator needs: the loaded configuration, the
// run logger and the exchange capability. Nothing in here outlives a run.
type App struct {
	Config   *models.Config
	Exchange Exchange
	Logger   *logrus.Logger
}

func NewApp(config *models.Config, exchange Exchange, logger *logrus.Logger) *App {
	return &App{
		Config:   config,
		Exchange: exchange,
		Logger:   logger,
	}
}

// Run executes one action. Two invest runs place two independent sets of
// buys; there is no cross-run state to dedupe against.
func (a *App) Run(action string) {
	switch action {
	case ACTION_DEPOSIT:
		NewDepositor(a.Config, a.Exchange, a.Logger).Run()
	case ACTION_INVEST:
		NewInvestor(a.Config, a.Exchange, a.Logger).Run()
	case ACTION_WITHDRAW:
	default:
		a.Logger.Warnf("Unknown action %q, running withdrawal checks only", action)
	}

	// balances accumulate from any source, so the sweep runs every time
	NewWithdrawer(a.Config, a.Exchange, a.Logger).Run()
}
