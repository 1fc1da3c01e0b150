package api

import (
	"encoding/json"
	"net/http"

	"github.com/btcsuite/btcutil"
	"github.com/taskbazaar/paymentd/models"
)

func (g *Gateway) handlePOSTDeposit(w http.ResponseWriter, r *http.Request) {
	type deposit struct {
		Target      string `json:"target"`
		Amount      int64  `json:"amount"`
		ExternalRef string `json:"externalRef"`
	}

	var depositData deposit
	if err := json.NewDecoder(r.Body).Decode(&depositData); err != nil {
		http.Error(w, wrapError(err), http.StatusBadRequest)
		return
	}

	tx, err := g.ledger.Deposit(models.Identity(depositData.Target), btcutil.Amount(depositData.Amount), depositData.ExternalRef)
	if err != nil {
		http.Error(w, wrapError(err), errStatus(err))
		return
	}

	sanitizedJSONResponse(w, tx)
}

func (g *Gateway) handlePOSTBonus(w http.ResponseWriter, r *http.Request) {
	type bonus struct {
		Recipient string `json:"recipient"`
		Amount    int64  `json:"amount"`
		Note      string `json:"note"`
	}

	var bonusData bonus
	if err := json.NewDecoder(r.Body).Decode(&bonusData); err != nil {
		http.Error(w, wrapError(err), http.StatusBadRequest)
		return
	}

	tx, err := g.ledger.SendBonus(callerIdentity(r), models.Identity(bonusData.Recipient), btcutil.Amount(bonusData.Amount), bonusData.Note)
	if err != nil {
		http.Error(w, wrapError(err), errStatus(err))
		return
	}

	sanitizedJSONResponse(w, tx)
}

func (g *Gateway) handlePUTFee(w http.ResponseWriter, r *http.Request) {
	type fee struct {
		FeePercent uint `json:"feePercent"`
	}

	var feeData fee
	if err := json.NewDecoder(r.Body).Decode(&feeData); err != nil {
		http.Error(w, wrapError(err), http.StatusBadRequest)
		return
	}

	if err := g.ledger.UpdatePlatformFee(feeData.FeePercent); err != nil {
		http.Error(w, wrapError(err), errStatus(err))
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (g *Gateway) handleGETParams(w http.ResponseWriter, r *http.Request) {
	params, err := g.ledger.Params()
	if err != nil {
		http.Error(w, wrapError(err), errStatus(err))
		return
	}

	sanitizedJSONResponse(w, params)
}
