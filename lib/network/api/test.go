package api

import (
	"net/http/httptest"

	"github.com/gorilla/mux"

	"github.com/mutualnet/mutualpool/lib/pool"
	"github.com/mutualnet/mutualpool/lib/transfer"
)

func prepareAPIServer() (*httptest.Server, *pool.Pool, *transfer.MemoryTransferrer, string) {
	p, tr, administrator := pool.TestMakePool()
	apiHandler := NetworkHandlerAPI{pool: p, storage: p.Storage()}

	router := mux.NewRouter()
	router.HandleFunc(GetPoolHandlerPattern, apiHandler.GetPoolHandler).Methods("GET")
	router.HandleFunc(GetContributionsHandlerPattern, apiHandler.GetContributionsHandler).Methods("GET")
	router.HandleFunc(GetContributionHandlerPattern, apiHandler.GetContributionHandler).Methods("GET")
	router.HandleFunc(PostDepositHandlerPattern, apiHandler.PostDepositHandler).Methods("POST")
	router.HandleFunc(PostWithdrawHandlerPattern, apiHandler.PostWithdrawHandler).Methods("POST")
	router.HandleFunc(GetClaimsHandlerPattern, apiHandler.GetClaimsHandler).Methods("GET")
	router.HandleFunc(GetClaimHandlerPattern, apiHandler.GetClaimHandler).Methods("GET")
	router.HandleFunc(PostClaimHandlerPattern, apiHandler.PostClaimHandler).Methods("POST")
	router.HandleFunc(PostVoteHandlerPattern, apiHandler.PostVoteHandler).Methods("POST")
	router.HandleFunc(PostResolveHandlerPattern, apiHandler.PostResolveHandler).Methods("POST")

	ts := httptest.NewServer(router)
	return ts, p, tr, administrator
}
