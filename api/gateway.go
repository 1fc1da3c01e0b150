package api

import (
	"net"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/op/go-logging"
	"github.com/taskbazaar/paymentd/rates"
)

var log = logging.MustGetLogger("api")

// GatewayConfig holds the listener plus the authentication options for
// the API server.
type GatewayConfig struct {
	Listener   net.Listener
	NoCors     bool
	AllowedIPs map[string]bool
	Cookie     string
	Username   string
	Password   string
	UseSSL     bool
	SSLCert    string
	SSLKey     string
	PublicOnly bool
}

// Gateway represents an HTTP API gateway
type Gateway struct {
	listener net.Listener
	ledger   Ledger
	rates    *rates.ExchangeRateProvider
	handler  http.Handler
	config   *GatewayConfig
	hub      *hub
}

// NewGateway instantiates a new gateway. The ledger API is multiplexed
// along with the websocket notification endpoint.
func NewGateway(ledger Ledger, erp *rates.ExchangeRateProvider, config *GatewayConfig) (*Gateway, error) {
	var (
		g = &Gateway{
			ledger:   ledger,
			rates:    erp,
			config:   config,
			listener: config.Listener,
			hub:      newHub(),
		}
		topMux = http.NewServeMux()
	)

	r := g.newV1Router()

	if !config.NoCors {
		r.Use(mux.CORSMethodMiddleware(r))
		r.Use(g.CORSAllowAllOriginsMiddleware)
	}
	r.Use(g.AuthenticationMiddleware)

	topMux.Handle("/v1/ledger/", r)
	topMux.Handle("/ws", newWebsocketHandler(g.hub))

	go g.hub.run()

	g.handler = topMux
	return g, nil
}

// Close shutsdown the Gateway listener.
func (g *Gateway) Close() error {
	return g.listener.Close()
}

// Serve begins listening on the configured address.
func (g *Gateway) Serve() error {
	log.Infof("Gateway/API server listening on %s\n", g.listener.Addr())
	var err error
	if g.config.UseSSL {
		err = http.ListenAndServeTLS(g.listener.Addr().String(), g.config.SSLCert, g.config.SSLKey, g.handler)
	} else {
		err = http.Serve(g.listener, g.handler)
	}
	return err
}

// NotifyWebsockets sanitizes the object and broadcasts it to all open
// websocket connections.
func (g *Gateway) NotifyWebsockets(i interface{}) error {
	out, err := marshalAndSanitizeJSON(i)
	if err != nil {
		return err
	}
	g.hub.Broadcast <- out
	return nil
}

func (g *Gateway) newV1Router() *mux.Router {
	r := mux.NewRouter()

	if !g.config.PublicOnly {
		r.HandleFunc("/v1/ledger/deposit", g.handlePOSTDeposit).Methods("POST")
		r.HandleFunc("/v1/ledger/bonus", g.handlePOSTBonus).Methods("POST")
		r.HandleFunc("/v1/ledger/fee", g.handlePUTFee).Methods("PUT")
		r.HandleFunc("/v1/ledger/escrow", g.handlePOSTLockEscrow).Methods("POST")
		r.HandleFunc("/v1/ledger/escrow/{taskID}/release", g.handlePOSTReleaseEscrow).Methods("POST")
		r.HandleFunc("/v1/ledger/escrow/{taskID}/refund", g.handlePOSTRefundEscrow).Methods("POST")
		r.HandleFunc("/v1/ledger/withdrawal", g.handlePOSTWithdrawal).Methods("POST")
		r.HandleFunc("/v1/ledger/withdrawal/{withdrawalID}/process", g.handlePOSTProcessWithdrawal).Methods("POST")
	}
	r.HandleFunc("/v1/ledger/balance", g.handleGETBalance).Methods("GET")
	r.HandleFunc("/v1/ledger/balance/{identity}", g.handleGETBalance).Methods("GET")
	r.HandleFunc("/v1/ledger/transaction/{transactionID}", g.handleGETTransaction).Methods("GET")
	r.HandleFunc("/v1/ledger/transactions", g.handleGETTransactions).Methods("GET")
	r.HandleFunc("/v1/ledger/transactions/{identity}", g.handleGETTransactions).Methods("GET")
	r.HandleFunc("/v1/ledger/escrow/{taskID}", g.handleGETEscrow).Methods("GET")
	r.HandleFunc("/v1/ledger/escrows/expired", g.handleGETExpiredEscrows).Methods("GET")
	r.HandleFunc("/v1/ledger/withdrawal/{withdrawalID}", g.handleGETWithdrawal).Methods("GET")
	r.HandleFunc("/v1/ledger/withdrawals", g.handleGETWithdrawals).Methods("GET")
	r.HandleFunc("/v1/ledger/params", g.handleGETParams).Methods("GET")
	r.HandleFunc("/v1/ledger/stats", g.handleGETStats).Methods("GET")
	r.HandleFunc("/v1/ledger/exchangerates", g.handleGETExchangeRates).Methods("GET")
	r.HandleFunc("/v1/ledger/exchangerates/{currency}", g.handleGETExchangeRates).Methods("GET")
	return r
}
