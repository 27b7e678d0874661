package modules

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"github.com/cbpro-tools/coinbase-pro-dca/models"
)

const DEFAULT_MINIMUM_NAG_VALUE int64 = 100

// LoadConfig reads the configuration document. The wizard writes JSON, but a
// .yaml/.yml path is accepted too and decoded through the same schema.
// Credentials may be overridden from the environment so keys can stay out of
// the file on shared machines.
func LoadConfig(path string) (*models.Config, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		file, err = yamlToJSON(file)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	config := &models.Config{}
	if err := json.Unmarshal(file, config); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if config.MinimumNagValue.IsZero() {
		config.MinimumNagValue = decimal.NewFromInt(DEFAULT_MINIMUM_NAG_VALUE)
	}

	applyEnvCredentials(&config.CoinbasePro, "COINBASE_PRO")
	applyEnvCredentials(&config.CoinbaseProSandbox, "COINBASE_PRO_SANDBOX")

	for _, order := range config.Orders {
		if strings.Count(order.TradingPair, "-") != 1 {
			return nil, fmt.Errorf("invalid trading pair %q", order.TradingPair)
		}

		if !order.Amount.IsPositive() {
			return nil, fmt.Errorf("invalid amount %s for %s", order.Amount, order.TradingPair)
		}
	}

	return config, nil
}

func applyEnvCredentials(creds *models.Credentials, prefix string) {
	if v := os.Getenv(prefix + "_API_KEY"); v != "" {
		creds.APIKey = v
	}

	if v := os.Getenv(prefix + "_API_SECRET"); v != "" {
		creds.APISecret = v
	}

	if v := os.Getenv(prefix + "_PASSPHRASE"); v != "" {
		creds.Passphrase = v
	}
}

// yamlToJSON rewrites a YAML document as JSON so both formats share one set
// of struct tags and decimal handling.
func yamlToJSON(in []byte) ([]byte, error) {
	var doc any

	if err := yaml.Unmarshal(in, &doc); err != nil {
		return nil, err
	}

	return json.Marshal(normalize(doc))
}

func normalize(v any) any {
	switch v := v.(type) {
	case map[any]any:
		m := make(map[string]any, len(v))
		for key, value := range v {
			m[fmt.Sprint(key)] = normalize(value)
		}
		return m
	case []any:
		for i, value := range v {
			v[i] = normalize(value)
		}
	}

	return v
}

// NewLogger builds the run logger: level from the config (info when absent
// or unparseable) and the Gotify hook when a sink is configured.
func NewLogger(config models.LoggingConfig) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(config.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if config.Gotify != nil {
		logger.AddHook(NewGotifyHook(config.Gotify))
	}

	return logger
}
