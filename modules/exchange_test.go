package modules

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cbpro-tools/coinbase-pro-dca/models"
)

type placement struct {
	productID string
	funds     decimal.Decimal
}

type postCall struct {
	path string
	body any
}

// fakeExchange implements Exchange in memory. Orders settle on the
// settleAfter[id]-th fetch (immediately when unset).
type fakeExchange struct {
	placements []placement
	placeErr   map[string]error

	fetches     []string
	fetchCount  map[string]int
	settleAfter map[string]int

	accounts  []models.Account
	listCalls int

	prices   map[string]decimal.Decimal
	priceErr map[string]error

	posts   []postCall
	postErr error

	paymentMethods []models.PaymentMethod
	getErr         error
}

func newFakeExchange() *fakeExchange {
	return &fakeExchange{
		placeErr:    make(map[string]error),
		fetchCount:  make(map[string]int),
		settleAfter: make(map[string]int),
		prices:      make(map[string]decimal.Decimal),
		priceErr:    make(map[string]error),
	}
}

func (f *fakeExchange) PlaceMarketBuy(productID string, funds decimal.Decimal) (*models.Order, error) {
	if err := f.placeErr[productID]; err != nil {
		return nil, err
	}

	f.placements = append(f.placements, placement{productID: productID, funds: funds})

	return &models.Order{
		ID:        fmt.Sprintf("order-%d", len(f.placements)),
		ProductID: productID,
		Side:      "buy",
		Type:      "market",
		Funds:     funds.String(),
	}, nil
}

func (f *fakeExchange) GetOrder(orderID string) (*models.Order, error) {
	f.fetches = append(f.fetches, orderID)
	f.fetchCount[orderID]++

	return &models.Order{
		ID:      orderID,
		Settled: f.fetchCount[orderID] >= f.settleAfter[orderID],
	}, nil
}

func (f *fakeExchange) ListAccounts() ([]models.Account, error) {
	f.listCalls++

	return f.accounts, nil
}

func (f *fakeExchange) GetSpotPrice(productID string) (decimal.Decimal, error) {
	if err := f.priceErr[productID]; err != nil {
		return decimal.Zero, err
	}

	price, ok := f.prices[productID]
	if !ok {
		return decimal.Zero, &models.APIError{Status: 404, Message: "NotFound"}
	}

	return price, nil
}

func (f *fakeExchange) Post(path string, body any) (json.RawMessage, error) {
	if f.postErr != nil {
		return nil, f.postErr
	}

	f.posts = append(f.posts, postCall{path: path, body: body})

	return json.RawMessage(`{}`), nil
}

func (f *fakeExchange) Get(path string, out any) error {
	if f.getErr != nil {
		return f.getErr
	}

	b, err := json.Marshal(f.paymentMethods)
	if err != nil {
		return err
	}

	return json.Unmarshal(b, out)
}
