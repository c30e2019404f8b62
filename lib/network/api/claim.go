package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mutualnet/mutualpool/lib/common"
	"github.com/mutualnet/mutualpool/lib/common/keypair"
	"github.com/mutualnet/mutualpool/lib/errors"
	"github.com/mutualnet/mutualpool/lib/network/httputils"
	"github.com/mutualnet/mutualpool/lib/network/api/resource"
	"github.com/mutualnet/mutualpool/lib/pool"
)

func parseClaimID(r *http.Request) (uint64, error) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		return 0, errors.BadRequestParameter.Clone().SetData("error", err.Error())
	}
	return id, nil
}

func (api NetworkHandlerAPI) GetClaimHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseClaimID(r)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	claim, err := pool.GetClaim(api.storage, id)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, 200, resource.NewClaim(claim))
}

func (api NetworkHandlerAPI) GetClaimsHandler(w http.ResponseWriter, r *http.Request) {
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
		var claim pool.Claim
		if err := claim.Deserialize(value); err != nil {
			return false, err
		}

		cursor = string(key)
		if len(firstCursor) == 0 {
			firstCursor = cursor
		}
		rs = append(rs, resource.NewClaim(&claim))
		return true, nil
	}

	if err := api.storage.Walk(pool.ClaimPrefixID, p.WalkOption(), walkFunc); err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	list := p.ResourceList(rs, cursor)
	list.PrevLink = p.PrevLink(firstCursor)

	httputils.MustWriteJSON(w, 200, list)
}

type ClaimRequest struct {
	Administrator string        `json:"administrator"`
	Claimant      string        `json:"claimant"`
	Amount        common.Amount `json:"amount"`
	Evidence      string        `json:"evidence"`
}

func (api NetworkHandlerAPI) PostClaimHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req ClaimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputils.WriteJSONError(w, errors.BadRequestParameter.Clone().SetData("error", err.Error()))
		return
	}

	if !keypair.IsValidAddress(req.Claimant) {
		httputils.WriteJSONError(w, errors.InvalidAddress)
		return
	}

	id, err := api.pool.FileClaim(req.Administrator, req.Claimant, req.Amount, req.Evidence)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	claim, err := api.pool.GetClaim(id)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, 201, resource.NewClaim(claim))
}

type VoteRequest struct {
	Voter   string `json:"voter"`
	Support bool   `json:"support"`
}

func (api NetworkHandlerAPI) PostVoteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseClaimID(r)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	defer r.Body.Close()

	var req VoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputils.WriteJSONError(w, errors.BadRequestParameter.Clone().SetData("error", err.Error()))
		return
	}

	if !keypair.IsValidAddress(req.Voter) {
		httputils.WriteJSONError(w, errors.InvalidAddress)
		return
	}

	claim, err := api.pool.Vote(id, req.Voter, req.Support)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, 200, resource.NewClaim(claim))
}

func (api NetworkHandlerAPI) PostResolveHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseClaimID(r)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	claim, err := api.pool.Resolve(id)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, 200, resource.NewClaim(claim))
}
