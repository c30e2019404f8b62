package api

import (
	"fmt"

	"github.com/mutualnet/mutualpool/lib/pool"
	"github.com/mutualnet/mutualpool/lib/storage"
)

const APIVersionV1 = "v1"

// API Endpoint patterns
const (
	GetPoolHandlerPattern          = "/pool"
	GetContributionsHandlerPattern = "/contributions"
	GetContributionHandlerPattern  = "/contributions/{id}"
	PostDepositHandlerPattern      = "/contributions/{id}/deposit"
	PostWithdrawHandlerPattern     = "/contributions/{id}/withdraw"
	GetClaimsHandlerPattern        = "/claims"
	GetClaimHandlerPattern         = "/claims/{id}"
	PostClaimHandlerPattern        = "/claims"
	PostVoteHandlerPattern         = "/claims/{id}/votes"
	PostResolveHandlerPattern      = "/claims/{id}/resolve"
)

const DefaultLimit uint64 = 100

type NetworkHandlerAPI struct {
	pool      *pool.Pool
	storage   *storage.LevelDBBackend
	urlPrefix string
	version   string
}

func NewNetworkHandlerAPI(p *pool.Pool, storage *storage.LevelDBBackend, urlPrefix string) *NetworkHandlerAPI {
	return &NetworkHandlerAPI{
		pool:      p,
		storage:   storage,
		urlPrefix: urlPrefix,
		version:   APIVersionV1,
	}
}

func (api NetworkHandlerAPI) HandlerURLPattern(pattern string) string {
	return fmt.Sprintf("%s/%s%s", api.urlPrefix, api.version, pattern)
}
