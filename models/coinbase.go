package models

import "github.com/shopspring/decimal"

// APIError is an application-level error reported by the exchange. Any
// response body carrying a "message" field decodes into one; it travels as a
// plain error value, never as a panic.
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return e.Message
}

// PlaceOrder is the request body for POST /orders.
type PlaceOrder struct {
	ClientOID string `json:"client_oid,omitempty"`
	Type      string `json:"type"`
	Side      string `json:"side"`
	ProductID string `json:"product_id"`
	Funds     string `json:"funds"`
}

// Order is the exchange's view of an issued order. Numeric fields stay
// string-encoded to preserve precision.
type Order struct {
	ID             string `json:"id"`
	ProductID      string `json:"product_id"`
	Side           string `json:"side"`
	Type           string `json:"type"`
	Funds          string `json:"funds"`
	SpecifiedFunds string `json:"specified_funds,omitempty"`
	Status         string `json:"status"`
	Settled        bool   `json:"settled"`
	FilledSize     string `json:"filled_size,omitempty"`
	ExecutedValue  string `json:"executed_value,omitempty"`
	CreatedAt      string `json:"created_at,omitempty"`
	DoneAt         string `json:"done_at,omitempty"`
}

// Account is a point-in-time balance snapshot. Balance may include funds on
// hold; Available is what can actually be moved.
type Account struct {
	ID        string          `json:"id"`
	Currency  string          `json:"currency"`
	Balance   decimal.Decimal `json:"balance"`
	Available decimal.Decimal `json:"available"`
	Hold      decimal.Decimal `json:"hold"`
}

// Ticker is the response of GET /products/{pair}/ticker.
type Ticker struct {
	TradeID int64           `json:"trade_id"`
	Price   decimal.Decimal `json:"price"`
	Size    string          `json:"size"`
	Bid     string          `json:"bid"`
	Ask     string          `json:"ask"`
	Time    string          `json:"time"`
}

type PaymentMethod struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Currency     string `json:"currency"`
	AllowDeposit bool   `json:"allow_deposit"`
}

// DepositRequest is the body for POST /deposits/payment-method.
type DepositRequest struct {
	Amount          string `json:"amount"`
	Currency        string `json:"currency"`
	PaymentMethodID string `json:"payment_method_id"`
}

// WithdrawalRequest is the body for POST /withdrawals/crypto.
type WithdrawalRequest struct {
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
	CryptoAddress string `json:"crypto_address"`
}
