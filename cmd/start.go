package cmd

import (
	"fmt"
	"net"
	"os"
	"os/signal"

	"github.com/btcsuite/btcutil"
	"github.com/fatih/color"
	"github.com/op/go-logging"
	"github.com/taskbazaar/paymentd/api"
	"github.com/taskbazaar/paymentd/events"
	"github.com/taskbazaar/paymentd/ledger"
	"github.com/taskbazaar/paymentd/notifications"
	"github.com/taskbazaar/paymentd/rates"
	"github.com/taskbazaar/paymentd/repo"
	"github.com/taskbazaar/paymentd/version"
)

var log = logging.MustGetLogger("CMD")

// defaultExchangeRateSources are the default exchange rate API endpoints.
// They conform to the BitcoinAverage API specification.
var defaultExchangeRateSources = []string{
	"https://ticker.openbazaar.org/api",
}

// Start is the main entry point for paymentd. The options to this
// command are the same as the daemon config options.
type Start struct {
	repo.Config
}

// Execute starts the payment daemon.
func (x *Start) Execute(args []string) error {
	cfg, _, err := repo.LoadConfig()
	if err != nil {
		return err
	}

	r, err := repo.NewRepo(cfg.DataDir)
	if err != nil {
		return err
	}

	bus := events.NewBus()
	service, err := ledger.NewService(r.DB(), bus,
		ledger.FeePercent(cfg.FeePercent),
		ledger.Minimums(btcutil.Amount(cfg.MinDeposit), btcutil.Amount(cfg.MinWithdrawal)),
	)
	if err != nil {
		return err
	}

	var erp *rates.ExchangeRateProvider
	if !cfg.DisableExchangeRates {
		sources := cfg.ExchangeRateSources
		if len(sources) == 0 {
			sources = defaultExchangeRateSources
		}
		erp = rates.NewExchangeRateProvider(sources)
	}

	gateway, err := newHTTPGateway(service, erp, cfg)
	if err != nil {
		return err
	}

	notifier := notifications.NewNotifier(bus, r.DB(), gateway.NotifyWebsockets)
	go notifier.Start()

	printSplashScreen()
	log.Infof("Data directory: %s", r.DataDir())

	go func() {
		if err := gateway.Serve(); err != nil {
			log.Errorf("Gateway error: %s", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	<-c
	log.Info("paymentd shutting down...")
	notifier.Stop()
	if err := gateway.Close(); err != nil {
		log.Errorf("Error shutting down gateway: %s", err)
	}
	r.Close()
	os.Exit(1)

	return nil
}

// newHTTPGateway builds the API gateway from the loaded config.
func newHTTPGateway(service *ledger.Service, erp *rates.ExchangeRateProvider, cfg *repo.Config) (*api.Gateway, error) {
	listener, err := net.Listen("tcp", cfg.GatewayAddr)
	if err != nil {
		return nil, err
	}

	allowedIPs := make(map[string]bool)
	for _, ip := range cfg.APIAllowedIPs {
		allowedIPs[ip] = true
	}

	config := &api.GatewayConfig{
		Listener:   listener,
		NoCors:     cfg.APINoCors,
		UseSSL:     cfg.UseSSL,
		SSLCert:    cfg.SSLCertFile,
		SSLKey:     cfg.SSLKeyFile,
		Username:   cfg.APIUsername,
		Password:   cfg.APIPassword,
		Cookie:     cfg.APICookie,
		PublicOnly: cfg.APIPublicGateway,
		AllowedIPs: allowedIPs,
	}

	return api.NewGateway(service, erp, config)
}

func printSplashScreen() {
	blue := color.New(color.FgBlue)
	white := color.New(color.FgWhite)

	for i, l := range []string{
		`                                         __       .___ `,
		`___________  ___.__. _____   ____   _____/  |_  __| _/ `,
		`\____ \__  \<   |  |/     \_/ __ \ /    \   __\/ __ |  `,
		`|  |_> > __ \\___  |  Y Y  \  ___/|   |  \  | / /_/ |  `,
		`|   __(____  / ____|__|_|  /\___  >___|  /__| \____ |  `,
		`|__|       \/\/          \/     \/     \/          \/  `,
	} {
		if i%2 == 0 {
			if _, err := white.Println(l); err != nil {
				log.Debug(err)
				return
			}
			continue
		}
		if _, err := blue.Println(l); err != nil {
			log.Debug(err)
			return
		}
	}

	blue.DisableColor()
	white.DisableColor()
	fmt.Printf("\npaymentd v%s\n", version.String())
}
