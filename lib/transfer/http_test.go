package transfer

import (
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mutualnet/mutualpool/lib/common"
	"github.com/mutualnet/mutualpool/lib/errors"
)

func TestHTTPTransferrer(t *testing.T) {
	var received transferMessage
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := ioutil.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &received))
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	tr := NewHTTPTransferrer(ts.URL, time.Second, nil)
	require.NoError(t, tr.Transfer("GTARGET", common.Amount(100)))
	require.Equal(t, "GTARGET", received.Address)
	require.Equal(t, common.Amount(100), received.Amount)
}

func TestHTTPTransferrerFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	tr := NewHTTPTransferrer(ts.URL, time.Second, &RetrySetting{MaxRetries: 1})
	err := tr.Transfer("GTARGET", common.Amount(100))
	require.Error(t, err)

	e, ok := err.(*errors.Error)
	require.True(t, ok)
	require.Equal(t, errors.TransferFailed.Code, e.Code)
}

func TestMemoryTransferrer(t *testing.T) {
	tr := NewMemoryTransferrer()
	require.NoError(t, tr.Transfer("GTARGET", common.Amount(30)))
	require.NoError(t, tr.Transfer("GTARGET", common.Amount(12)))
	require.Equal(t, common.Amount(42), tr.SentTo("GTARGET"))

	tr.FailWith(errors.New("settlement down"))
	err := tr.Transfer("GTARGET", common.Amount(1))
	require.Error(t, err)
	require.Equal(t, common.Amount(42), tr.SentTo("GTARGET"))
}
