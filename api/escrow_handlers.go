package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/btcsuite/btcutil"
	"github.com/gorilla/mux"
	"github.com/taskbazaar/paymentd/models"
)

func (g *Gateway) handlePOSTLockEscrow(w http.ResponseWriter, r *http.Request) {
	type lock struct {
		TaskID string     `json:"taskID"`
		Amount int64      `json:"amount"`
		Expiry *time.Time `json:"expiry"`
	}

	var lockData lock
	if err := json.NewDecoder(r.Body).Decode(&lockData); err != nil {
		http.Error(w, wrapError(err), http.StatusBadRequest)
		return
	}

	tx, err := g.ledger.LockEscrow(callerIdentity(r), lockData.TaskID, btcutil.Amount(lockData.Amount), lockData.Expiry)
	if err != nil {
		http.Error(w, wrapError(err), errStatus(err))
		return
	}

	sanitizedJSONResponse(w, tx)
}

func (g *Gateway) handlePOSTReleaseEscrow(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["taskID"]

	type release struct {
		Beneficiary string `json:"beneficiary"`
	}

	var releaseData release
	if err := json.NewDecoder(r.Body).Decode(&releaseData); err != nil {
		http.Error(w, wrapError(err), http.StatusBadRequest)
		return
	}

	tx, err := g.ledger.ReleaseEscrow(callerIdentity(r), taskID, models.Identity(releaseData.Beneficiary))
	if err != nil {
		http.Error(w, wrapError(err), errStatus(err))
		return
	}

	sanitizedJSONResponse(w, tx)
}

func (g *Gateway) handlePOSTRefundEscrow(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["taskID"]

	tx, err := g.ledger.RefundEscrow(callerIdentity(r), taskID)
	if err != nil {
		http.Error(w, wrapError(err), errStatus(err))
		return
	}

	sanitizedJSONResponse(w, tx)
}

func (g *Gateway) handleGETEscrow(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["taskID"]

	escrow, err := g.ledger.Escrow(taskID)
	if err != nil {
		http.Error(w, wrapError(err), errStatus(err))
		return
	}

	sanitizedJSONResponse(w, escrow)
}

func (g *Gateway) handleGETExpiredEscrows(w http.ResponseWriter, r *http.Request) {
	escrows, err := g.ledger.ExpiredEscrows()
	if err != nil {
		http.Error(w, wrapError(err), errStatus(err))
		return
	}
	if escrows == nil {
		escrows = []models.Escrow{}
	}

	sanitizedJSONResponse(w, escrows)
}
