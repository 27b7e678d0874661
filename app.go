package main

import (
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"

	m "github.com/cbpro-tools/coinbase-pro-dca/modules"
)

func main() {
	action := flag.String("action", m.ACTION_INVEST, "action to run: deposit, invest or withdraw")
	configPath := flag.String("config", "config.json", "path to the configuration file")
	sandbox := flag.Bool("sandbox", false, "use the sandbox environment and credentials")
	initConfig := flag.Bool("init", false, "interactively generate a configuration file")
	flag.Parse()

	// optional .env next to the binary may carry credential overrides
	godotenv.Load()

	ratelimiter := ratelimit.New(m.COINBASE_PRIVATE_RATE_LIMIT)

	if *initConfig {
		if err := m.NewWizard(os.Stdin, os.Stdout, ratelimiter).Run(*configPath); err != nil {
			logrus.Fatal(err)
		}

		return
	}

	config, err := m.LoadConfig(*configPath)
	if err != nil {
		logrus.Fatal(err)
	}

	logger := m.NewLogger(config.Logging)

	client, err := m.NewClient(config.CredentialsFor(*sandbox), *sandbox, ratelimiter)
	if err != nil {
		logger.Fatal(err)
	}

	// partial trading failures are reported through the logger, not the
	// exit status; only the two fatals above abort a run
	m.NewApp(config, client, logger).Run(*action)
}
