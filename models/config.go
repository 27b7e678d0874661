package models

import "github.com/shopspring/decimal"

// Credentials is one API credential bundle. The configuration carries two of
// these, one for production and one for the sandbox environment, so a run
// never mixes endpoints and keys.
type Credentials struct {
	APIKey     string `yaml:"api_key" json:"api_key"`
	APISecret  string `yaml:"api_secret" json:"api_secret"`
	Passphrase string `yaml:"password" json:"password"`
}

// OrderIntent is one scheduled market buy: amount is denominated in the
// quote currency of the trading pair.
type OrderIntent struct {
	TradingPair string          `yaml:"trading_pair" json:"trading_pair"`
	Amount      decimal.Decimal `yaml:"amount" json:"amount"`
}

type DepositConfig struct {
	PaymentMethodID    string `yaml:"payment_method_id" json:"payment_method_id"`
	PurchasesPerPeriod int    `yaml:"purchases_per_period" json:"purchases_per_period"`
}

// ExternalWallet describes where a currency should be swept once its USD
// value crosses MaxValueBeforeMove.
type ExternalWallet struct {
	MaxValueBeforeMove decimal.Decimal `yaml:"max_value_before_move" json:"max_value_before_move"`
	DestinationWallet  string          `yaml:"destination_wallet" json:"destination_wallet"`
}

type GotifyConfig struct {
	URL      string `yaml:"url" json:"url"`
	Token    string `yaml:"token" json:"token"`
	Priority int    `yaml:"priority,omitempty" json:"priority,omitempty"`
}

type LoggingConfig struct {
	LogLevel string        `yaml:"log_level" json:"log_level"`
	Gotify   *GotifyConfig `yaml:"gotify,omitempty" json:"gotify,omitempty"`
}

type Config struct {
	CoinbasePro        Credentials               `yaml:"coinbase_pro" json:"coinbase_pro"`
	CoinbaseProSandbox Credentials               `yaml:"coinbase_pro_sandbox,omitempty" json:"coinbase_pro_sandbox,omitempty"`
	Orders             []OrderIntent             `yaml:"orders" json:"orders"`
	Deposit            DepositConfig             `yaml:"deposit" json:"deposit"`
	ExternalWallets    map[string]ExternalWallet `yaml:"external_wallets" json:"external_wallets"`
	MinimumNagValue    decimal.Decimal           `yaml:"minimum_nag_value,omitempty" json:"minimum_nag_value,omitempty"`
	Logging            LoggingConfig             `yaml:"logging" json:"logging"`
}

// CredentialsFor returns the bundle matching the selected environment.
func (c *Config) CredentialsFor(sandbox bool) Credentials {
	if sandbox {
		return c.CoinbaseProSandbox
	}

	return c.CoinbasePro
}
