package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mutualnet/mutualpool/lib/common"
	"github.com/mutualnet/mutualpool/lib/common/keypair"
	"github.com/mutualnet/mutualpool/lib/errors"
	"github.com/mutualnet/mutualpool/lib/network/httputils"
	"github.com/mutualnet/mutualpool/lib/network/api/resource"
	"github.com/mutualnet/mutualpool/lib/pool"
)

func (api NetworkHandlerAPI) GetContributionHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	address := vars["id"]

	readFunc := func() (payload interface{}, err error) {
		found, err := pool.ExistsContribution(api.storage, address)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, errors.StorageRecordDoesNotExist
		}
		c, err := pool.GetContribution(api.storage, address)
		if err != nil {
			return nil, err
		}
		payload = resource.NewContribution(c)
		return payload, nil
	}

	payload, err := readFunc()
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, 200, payload)
}

func (api NetworkHandlerAPI) GetContributionsHandler(w http.ResponseWriter, r *http.Request) {
	p, err := httputils.NewPageQuery(r)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	var (
		firstCursor string
		cursor      string
		rs          []resource.Resource
	)

	walkFunc := func(key, value []byte) (bool, error) {
		var address string
		common.MustUnmarshalJSON(value, &address)

		c, err := pool.GetContribution(api.storage, address)
		if err != nil {
			return false, err
		}

		cursor = string(key)
		if len(firstCursor) == 0 {
			firstCursor = cursor
		}
		rs = append(rs, resource.NewContribution(c))
		return true, nil
	}

	if err := api.storage.Walk(pool.ContributionPrefixCreated, p.WalkOption(), walkFunc); err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	list := p.ResourceList(rs, cursor)
	list.PrevLink = p.PrevLink(firstCursor)

	httputils.MustWriteJSON(w, 200, list)
}

type DepositRequest struct {
	Amount common.Amount `json:"amount"`
}

func (api NetworkHandlerAPI) PostDepositHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	address := vars["id"]

	if !keypair.IsValidAddress(address) {
		httputils.WriteJSONError(w, errors.InvalidAddress)
		return
	}

	defer r.Body.Close()

	var req DepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputils.WriteJSONError(w, errors.BadRequestParameter.Clone().SetData("error", err.Error()))
		return
	}

	c, err := api.pool.Deposit(address, req.Amount)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, 200, resource.NewContribution(c))
}

func (api NetworkHandlerAPI) PostWithdrawHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	address := vars["id"]

	if !keypair.IsValidAddress(address) {
		httputils.WriteJSONError(w, errors.InvalidAddress)
		return
	}

	amount, err := api.pool.Withdraw(address)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, 200, map[string]interface{}{
		"address": address,
		"amount":  amount,
	})
}
