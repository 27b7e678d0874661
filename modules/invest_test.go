package modules

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbpro-tools/coinbase-pro-dca/models"
)

func newInvestor(config *models.Config, exchange Exchange) (*Investor, *test.Hook) {
	logger, hook := test.NewNullLogger()

	investor := NewInvestor(config, exchange, logger)
	investor.Settler.Delay = 0

	return investor, hook
}

func entriesAt(hook *test.Hook, level logrus.Level) []*logrus.Entry {
	matched := make([]*logrus.Entry, 0)

	for _, entry := range hook.AllEntries() {
		if entry.Level == level {
			matched = append(matched, entry)
		}
	}

	return matched
}

func TestInvestorPlacesAllOrdersAndTracksNewestFirst(t *testing.T) {
	config := &models.Config{
		Orders: []models.OrderIntent{
			{TradingPair: "BTC-USD", Amount: decimal.NewFromInt(30)},
			{TradingPair: "ETH-USD", Amount: decimal.NewFromInt(20)},
			{TradingPair: "LTC-USD", Amount: decimal.NewFromInt(10)},
		},
	}

	exchange := newFakeExchange()
	investor, hook := newInvestor(config, exchange)

	investor.Run()

	require.Len(t, exchange.placements, 3)
	assert.Equal(t, "BTC-USD", exchange.placements[0].productID)
	assert.Equal(t, "ETH-USD", exchange.placements[1].productID)
	assert.Equal(t, "LTC-USD", exchange.placements[2].productID)

	// settlement is checked in reverse issuance order
	assert.Equal(t, []string{"order-3", "order-2", "order-1"}, exchange.fetches)

	assert.Empty(t, entriesAt(hook, logrus.ErrorLevel))
}

func TestInvestorLogsSuccessWithAssetTicker(t *testing.T) {
	config := &models.Config{
		Orders: []models.OrderIntent{
			{TradingPair: "BTC-USD", Amount: decimal.RequireFromString("100.5")},
		},
	}

	exchange := newFakeExchange()
	investor, hook := newInvestor(config, exchange)

	investor.Run()

	infos := entriesAt(hook, logrus.InfoLevel)
	require.NotEmpty(t, infos)
	assert.Equal(t, "Successfully bought $100.50 of BTC", infos[0].Message)
}

func TestInvestorSkipsFailedPlacements(t *testing.T) {
	config := &models.Config{
		Orders: []models.OrderIntent{
			{TradingPair: "BTC-USD", Amount: decimal.NewFromInt(100)},
			{TradingPair: "ETH-USD", Amount: decimal.NewFromInt(50)},
		},
	}

	exchange := newFakeExchange()
	exchange.placeErr["BTC-USD"] = &models.APIError{Status: 400, Message: "Insufficient funds"}

	investor, hook := newInvestor(config, exchange)

	investor.Run()

	// the failure must not stop the remaining intents
	require.Len(t, exchange.placements, 1)
	assert.Equal(t, "ETH-USD", exchange.placements[0].productID)

	// and the failed intent contributes nothing to settlement tracking
	assert.Equal(t, []string{"order-1"}, exchange.fetches)

	errors := entriesAt(hook, logrus.ErrorLevel)
	require.Len(t, errors, 1)
	assert.Equal(t, "Error trading BTC-USD - Insufficient funds", errors[0].Message)
}

func TestInvestorRunsAreIndependent(t *testing.T) {
	config := &models.Config{
		Orders: []models.OrderIntent{
			{TradingPair: "BTC-USD", Amount: decimal.NewFromInt(100)},
		},
	}

	exchange := newFakeExchange()
	investor, _ := newInvestor(config, exchange)

	// no cross-run state: two runs mean two real buys
	investor.Run()
	investor.Run()

	assert.Len(t, exchange.placements, 2)
}
