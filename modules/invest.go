package modules

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/cbpro-tools/coinbase-pro-dca/models"
)

// Investor places one market buy per configured order intent and hands
// whatever got placed to the settlement tracker.
type Investor struct {
	Config   *models.Config
	Exchange Exchange
	Logger   *logrus.Logger
	Settler  *Settler
}

func NewInvestor(config *models.Config, exchange Exchange, logger *logrus.Logger) *Investor {
	return &Investor{
		Config:   config,
		Exchange: exchange,
		Logger:   logger,
		Settler:  NewSettler(exchange, logger),
	}
}

// Run attempts every intent in configured order. A failed placement is
// logged and excluded from settlement tracking; it never stops the
// remaining intents.
func (i *Investor) Run() {
	placed := make([]models.Order, 0, len(i.Config.Orders))

	for _, intent := range i.Config.Orders {
		order, err := i.Exchange.PlaceMarketBuy(intent.TradingPair, intent.Amount)
		if err != nil {
			i.Logger.Errorf("Error trading %s - %s", intent.TradingPair, err)
			continue
		}

		asset := strings.Split(intent.TradingPair, "-")[0]
		i.Logger.Infof("Successfully bought $%s of %s", intent.Amount.StringFixed(2), asset)

		placed = append(placed, *order)
	}

	i.Settler.Track(placed)
}
