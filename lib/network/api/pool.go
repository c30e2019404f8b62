package api

import (
	"net/http"

	"github.com/mutualnet/mutualpool/lib/network/httputils"
	"github.com/mutualnet/mutualpool/lib/network/api/resource"
)

func (api NetworkHandlerAPI) GetPoolHandler(w http.ResponseWriter, r *http.Request) {
	ps, err := api.pool.State()
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, 200, resource.NewPool(ps))
}
