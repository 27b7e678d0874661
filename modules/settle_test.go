package modules

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbpro-tools/coinbase-pro-dca/models"
)

func newSettler(exchange Exchange) (*Settler, *test.Hook) {
	logger, hook := test.NewNullLogger()

	settler := NewSettler(exchange, logger)
	settler.Delay = 0

	return settler, hook
}

func TestSettlerStopsOnceSettled(t *testing.T) {
	exchange := newFakeExchange()
	exchange.settleAfter["order-1"] = 10

	settler, hook := newSettler(exchange)

	settler.Track([]models.Order{{ID: "order-1", ProductID: "BTC-USD"}})

	// settled on the final allowed attempt: exactly ten fetches, no more
	assert.Equal(t, 10, exchange.fetchCount["order-1"])
	assert.Empty(t, entriesAt(hook, logrus.ErrorLevel))
}

func TestSettlerGivesUpAfterRetryBudget(t *testing.T) {
	exchange := newFakeExchange()
	exchange.settleAfter["order-2"] = SETTLE_MAX_ATTEMPTS + 1

	settler, hook := newSettler(exchange)

	settler.Track([]models.Order{
		{ID: "order-1", ProductID: "BTC-USD"},
		{ID: "order-2", ProductID: "ETH-USD"},
	})

	// order-2 is newest so it is checked first; its timeout must not stop
	// order-1 from being checked
	assert.Equal(t, SETTLE_MAX_ATTEMPTS, exchange.fetchCount["order-2"])
	assert.Equal(t, 1, exchange.fetchCount["order-1"])

	errors := entriesAt(hook, logrus.ErrorLevel)
	require.Len(t, errors, 1)
	assert.Equal(t, "order-2", errors[0].Data["order_id"])
}

func TestSettlerWithNothingToTrack(t *testing.T) {
	exchange := newFakeExchange()
	settler, hook := newSettler(exchange)

	settler.Track(nil)

	assert.Empty(t, exchange.fetches)
	assert.Empty(t, hook.AllEntries())
}
