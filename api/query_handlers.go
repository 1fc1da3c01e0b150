package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/taskbazaar/paymentd/models"
	"github.com/taskbazaar/paymentd/rates"
)

type balanceResponse struct {
	Identity string  `json:"identity"`
	Amount   int64   `json:"amount"`
	Fiat     float64 `json:"fiat,omitempty"`
	Currency string  `json:"currency,omitempty"`
}

func (g *Gateway) handleGETBalance(w http.ResponseWriter, r *http.Request) {
	identity := models.Identity(mux.Vars(r)["identity"])
	if identity.IsAnonymous() {
		identity = callerIdentity(r)
	}

	balance, err := g.ledger.Balance(identity)
	if err != nil {
		http.Error(w, wrapError(err), errStatus(err))
		return
	}

	ret := balanceResponse{
		Identity: identity.String(),
		Amount:   int64(balance),
	}

	if currency := r.URL.Query().Get("currency"); currency != "" {
		if g.rates == nil {
			http.Error(w, wrapError(errors.New("exchange rates are not available")), http.StatusBadRequest)
			return
		}
		fiat, err := g.rates.ConvertToFiat(balance, rates.CurrencyCode(currency))
		if err != nil {
			http.Error(w, wrapError(err), http.StatusBadRequest)
			return
		}
		ret.Fiat = fiat
		ret.Currency = currency
	}

	sanitizedJSONResponse(w, ret)
}

func (g *Gateway) handleGETTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID, err := strconv.ParseUint(mux.Vars(r)["transactionID"], 10, 64)
	if err != nil {
		http.Error(w, wrapError(err), http.StatusBadRequest)
		return
	}

	tx, err := g.ledger.Transaction(transactionID)
	if err != nil {
		http.Error(w, wrapError(err), errStatus(err))
		return
	}

	sanitizedJSONResponse(w, tx)
}

func (g *Gateway) handleGETTransactions(w http.ResponseWriter, r *http.Request) {
	var (
		identity  = models.Identity(mux.Vars(r)["identity"])
		limitStr  = r.URL.Query().Get("limit")
		offsetStr = r.URL.Query().Get("offset")
		limit     = -1
		offset    = 0
		err       error
	)
	if identity.IsAnonymous() {
		identity = callerIdentity(r)
	}
	if limitStr != "" {
		limit, err = strconv.Atoi(limitStr)
		if err != nil {
			http.Error(w, wrapError(err), http.StatusBadRequest)
			return
		}
	}
	if offsetStr != "" {
		offset, err = strconv.Atoi(offsetStr)
		if err != nil {
			http.Error(w, wrapError(err), http.StatusBadRequest)
			return
		}
	}

	txs, err := g.ledger.Transactions(identity, limit, offset)
	if err != nil {
		http.Error(w, wrapError(err), errStatus(err))
		return
	}
	if txs == nil {
		txs = []models.Transaction{}
	}

	sanitizedJSONResponse(w, txs)
}

func (g *Gateway) handleGETStats(w http.ResponseWriter, r *http.Request) {
	stats, err := g.ledger.Stats()
	if err != nil {
		http.Error(w, wrapError(err), errStatus(err))
		return
	}

	sanitizedJSONResponse(w, stats)
}

func (g *Gateway) handleGETExchangeRates(w http.ResponseWriter, r *http.Request) {
	if g.rates == nil {
		http.Error(w, wrapError(errors.New("exchange rates are not available")), http.StatusBadRequest)
		return
	}

	currency := mux.Vars(r)["currency"]
	if currency == "" {
		allRates, err := g.rates.GetAllRates(false)
		if err != nil {
			http.Error(w, wrapError(err), http.StatusInternalServerError)
			return
		}
		sanitizedJSONResponse(w, allRates)
		return
	}

	rate, err := g.rates.GetRate(rates.CurrencyCode(currency), false)
	if err != nil {
		http.Error(w, wrapError(err), http.StatusBadRequest)
		return
	}

	sanitizedJSONResponse(w, struct {
		Currency string  `json:"currency"`
		Rate     float64 `json:"rate"`
	}{
		Currency: currency,
		Rate:     rate,
	})
}
