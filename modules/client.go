package modules

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/parnurzeal/gorequest"
	"github.com/shopspring/decimal"
	"go.uber.org/ratelimit"

	"github.com/cbpro-tools/coinbase-pro-dca/models"
)

const (
	COINBASE_API_ENDPOINT         string = "https://api.exchange.coinbase.com"
	COINBASE_SANDBOX_API_ENDPOINT string = "https://api-public.sandbox.exchange.coinbase.com"

	COINBASE_ORDERS          string = "/orders"
	COINBASE_ACCOUNTS        string = "/accounts"
	COINBASE_PAYMENT_METHODS string = "/payment-methods"
	COINBASE_DEPOSITS        string = "/deposits/payment-method"
	COINBASE_WITHDRAWALS     string = "/withdrawals/crypto"

	// private endpoint allowance, requests per second
	COINBASE_PRIVATE_RATE_LIMIT int = 5
)

// Exchange is the capability surface the orchestrators need. Post and Get
// are narrow escape hatches for endpoints without a typed method (deposits,
// crypto withdrawals, the wizard's payment-method listing).
type Exchange interface {
	PlaceMarketBuy(productID string, funds decimal.Decimal) (*models.Order, error)
	GetOrder(orderID string) (*models.Order, error)
	ListAccounts() ([]models.Account, error)
	GetSpotPrice(productID string) (decimal.Decimal, error)
	Post(path string, body any) (json.RawMessage, error)
	Get(path string, out any) error
}

// Client talks to one Coinbase Pro environment. Sandbox and production are
// separate credential bundles and endpoints, chosen once at construction.
type Client struct {
	Endpoint    string
	Key         string
	Secret      []byte
	Passphrase  string
	RateLimiter ratelimit.Limiter
}

// NewClient builds an authenticated client. The API secret is base64 (the
// signature is keyed with the decoded bytes), so a secret that does not
// decode is rejected here rather than on the first request.
func NewClient(creds models.Credentials, sandbox bool, ratelimiter ratelimit.Limiter) (*Client, error) {
	secret, err := base64.StdEncoding.DecodeString(creds.APISecret)
	if err != nil {
		return nil, fmt.Errorf("invalid api secret: %w", err)
	}

	endpoint := COINBASE_API_ENDPOINT
	if sandbox {
		endpoint = COINBASE_SANDBOX_API_ENDPOINT
	}

	return &Client{
		Endpoint:    endpoint,
		Key:         creds.APIKey,
		Secret:      secret,
		Passphrase:  creds.Passphrase,
		RateLimiter: ratelimiter,
	}, nil
}

func (c *Client) do(method, path string, body, out any) error {
	c.RateLimiter.Take()

	payload := ""
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		payload = string(b)
	}

	timestamp := strconv.FormatInt(time.Now().Unix(), 10)

	mac := hmac.New(sha256.New, c.Secret)
	mac.Write([]byte(timestamp + method + path + payload))
	signature := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	req := gorequest.New().CustomMethod(method, c.Endpoint+path)

	// keep the body byte-for-byte what was signed
	req.BounceToRawString = true

	req.Header.Set("CB-ACCESS-KEY", c.Key)
	req.Header.Set("CB-ACCESS-SIGN", signature)
	req.Header.Set("CB-ACCESS-TIMESTAMP", timestamp)
	req.Header.Set("CB-ACCESS-PASSPHRASE", c.Passphrase)

	if payload != "" {
		req = req.Type("json").Send(payload)
	}

	resp, bytes, errs := req.EndBytes()
	if len(errs) > 0 {
		return errs[0]
	}

	if resp.StatusCode >= 400 {
		apiErr := &models.APIError{Status: resp.StatusCode}
		if err := json.Unmarshal(bytes, apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = resp.Status
		}

		return apiErr
	}

	if out != nil {
		return json.Unmarshal(bytes, out)
	}

	return nil
}

// PlaceMarketBuy spends funds units of the quote currency on productID at
// the best available price.
func (c *Client) PlaceMarketBuy(productID string, funds decimal.Decimal) (*models.Order, error) {
	order := &models.Order{}

	err := c.do(gorequest.POST, COINBASE_ORDERS, models.PlaceOrder{
		ClientOID: uuid.New().String(),
		Type:      "market",
		Side:      "buy",
		ProductID: productID,
		Funds:     funds.String(),
	}, order)

	if err != nil {
		return nil, err
	}

	return order, nil
}

func (c *Client) GetOrder(orderID string) (*models.Order, error) {
	order := &models.Order{}

	if err := c.do(gorequest.GET, COINBASE_ORDERS+"/"+orderID, nil, order); err != nil {
		return nil, err
	}

	return order, nil
}

func (c *Client) ListAccounts() ([]models.Account, error) {
	accounts := make([]models.Account, 0)

	if err := c.do(gorequest.GET, COINBASE_ACCOUNTS, nil, &accounts); err != nil {
		return nil, err
	}

	return accounts, nil
}

func (c *Client) GetSpotPrice(productID string) (decimal.Decimal, error) {
	ticker := models.Ticker{}

	if err := c.do(gorequest.GET, "/products/"+productID+"/ticker", nil, &ticker); err != nil {
		return decimal.Zero, err
	}

	return ticker.Price, nil
}

// Post submits a body to an arbitrary authenticated path and hands back the
// raw response.
func (c *Client) Post(path string, body any) (json.RawMessage, error) {
	raw := json.RawMessage{}

	if err := c.do(gorequest.POST, path, body, &raw); err != nil {
		return nil, err
	}

	return raw, nil
}

// Get reads an arbitrary authenticated path into out.
func (c *Client) Get(path string, out any) error {
	return c.do(gorequest.GET, path, nil, out)
}
