package modules

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cbpro-tools/coinbase-pro-dca/models"
)

const (
	SETTLE_MAX_ATTEMPTS int           = 10
	SETTLE_POLL_DELAY   time.Duration = 3 * time.Second
)

// Settler polls just-issued orders until they settle or the retry budget
// runs out. Nothing downstream gates on the outcome; this is purely
// observational.
type Settler struct {
	Exchange Exchange
	Logger   *logrus.Logger
	Delay    time.Duration
}

func NewSettler(exchange Exchange, logger *logrus.Logger) *Settler {
	return &Settler{
		Exchange: exchange,
		Logger:   logger,
		Delay:    SETTLE_POLL_DELAY,
	}
}

// Track walks the orders newest first: market orders tend to settle roughly
// in issuance order, so waiting on the freshest one first means the older
// ones are usually done by the time they are checked. Best effort only, the
// exchange guarantees no such ordering.
func (s *Settler) Track(orders []models.Order) {
	for i := len(orders) - 1; i >= 0; i-- {
		logger := s.Logger.
			WithField("order_id", orders[i].ID).
			WithField("product_id", orders[i].ProductID)

		settled := false

		for attempt := 1; attempt <= SETTLE_MAX_ATTEMPTS; attempt++ {
			order, err := s.Exchange.GetOrder(orders[i].ID)

			if err != nil {
				logger.Errorf("Error fetching order - %s", err)
			} else if order.Settled {
				logger.Info("Order settled")
				settled = true
				break
			}

			if attempt < SETTLE_MAX_ATTEMPTS {
				time.Sleep(s.Delay)
			}
		}

		// a timeout on one order must not block checking the rest
		if !settled {
			logger.Errorf("Order still unsettled after %d checks, giving up on it", SETTLE_MAX_ATTEMPTS)
		}
	}
}
