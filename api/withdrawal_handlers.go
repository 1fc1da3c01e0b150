package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/btcsuite/btcutil"
	"github.com/gorilla/mux"
	"github.com/taskbazaar/paymentd/models"
)

func (g *Gateway) handlePOSTWithdrawal(w http.ResponseWriter, r *http.Request) {
	type withdrawal struct {
		Amount      int64  `json:"amount"`
		Destination string `json:"destination"`
	}

	var withdrawalData withdrawal
	if err := json.NewDecoder(r.Body).Decode(&withdrawalData); err != nil {
		http.Error(w, wrapError(err), http.StatusBadRequest)
		return
	}

	req, err := g.ledger.RequestWithdrawal(callerIdentity(r), btcutil.Amount(withdrawalData.Amount), withdrawalData.Destination)
	if err != nil {
		http.Error(w, wrapError(err), errStatus(err))
		return
	}

	sanitizedJSONResponse(w, req)
}

func (g *Gateway) handlePOSTProcessWithdrawal(w http.ResponseWriter, r *http.Request) {
	withdrawalID, err := strconv.ParseUint(mux.Vars(r)["withdrawalID"], 10, 64)
	if err != nil {
		http.Error(w, wrapError(err), http.StatusBadRequest)
		return
	}

	type process struct {
		Success     bool   `json:"success"`
		ExternalRef string `json:"externalRef"`
	}

	var processData process
	if err := json.NewDecoder(r.Body).Decode(&processData); err != nil {
		http.Error(w, wrapError(err), http.StatusBadRequest)
		return
	}

	req, err := g.ledger.ProcessWithdrawal(withdrawalID, processData.ExternalRef, processData.Success)
	if err != nil {
		http.Error(w, wrapError(err), errStatus(err))
		return
	}

	sanitizedJSONResponse(w, req)
}

func (g *Gateway) handleGETWithdrawal(w http.ResponseWriter, r *http.Request) {
	withdrawalID, err := strconv.ParseUint(mux.Vars(r)["withdrawalID"], 10, 64)
	if err != nil {
		http.Error(w, wrapError(err), http.StatusBadRequest)
		return
	}

	req, err := g.ledger.Withdrawal(withdrawalID)
	if err != nil {
		http.Error(w, wrapError(err), errStatus(err))
		return
	}

	sanitizedJSONResponse(w, req)
}

func (g *Gateway) handleGETWithdrawals(w http.ResponseWriter, r *http.Request) {
	reqs, err := g.ledger.Withdrawals(callerIdentity(r))
	if err != nil {
		http.Error(w, wrapError(err), errStatus(err))
		return
	}
	if reqs == nil {
		reqs = []models.WithdrawalRequest{}
	}

	sanitizedJSONResponse(w, reqs)
}
