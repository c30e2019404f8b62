package api

import (
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mutualnet/mutualpool/lib/common"
	"github.com/mutualnet/mutualpool/lib/common/keypair"
)

func postJSON(t *testing.T, url, body string) (*http.Response, map[string]interface{}) {
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := ioutil.ReadAll(resp.Body)
	require.NoError(t, err)

	var f interface{}
	common.MustUnmarshalJSON(raw, &f)
	return resp, f.(map[string]interface{})
}

func TestPostClaimHandler(t *testing.T) {
	ts, p, _, administrator := prepareAPIServer()
	defer ts.Close()

	_, err := p.Deposit(keypair.Random().Address(), common.Amount(1000))
	require.NoError(t, err)

	claimant := keypair.Random().Address()
	body := fmt.Sprintf(`{"administrator": %q, "claimant": %q, "amount": "400", "evidence": "storm damage"}`, administrator, claimant)

	resp, m := postJSON(t, ts.URL+PostClaimHandlerPattern, body)
	require.Equal(t, 201, resp.StatusCode)
	require.Equal(t, float64(1), m["id"])
	require.Equal(t, claimant, m["claimant"])
	require.Equal(t, "400", m["amount"])
	require.Equal(t, false, m["settled"])
}

func TestPostClaimHandlerNotAdministrator(t *testing.T) {
	ts, p, _, _ := prepareAPIServer()
	defer ts.Close()

	_, err := p.Deposit(keypair.Random().Address(), common.Amount(1000))
	require.NoError(t, err)

	body := fmt.Sprintf(`{"administrator": %q, "claimant": %q, "amount": "400", "evidence": "storm damage"}`,
		keypair.Random().Address(), keypair.Random().Address())

	resp, _ := postJSON(t, ts.URL+PostClaimHandlerPattern, body)
	require.Equal(t, 403, resp.StatusCode)
}

func TestGetClaimHandler(t *testing.T) {
	ts, p, _, administrator := prepareAPIServer()
	defer ts.Close()

	_, err := p.Deposit(keypair.Random().Address(), common.Amount(1000))
	require.NoError(t, err)

	claimant := keypair.Random().Address()
	id, err := p.FileClaim(administrator, claimant, common.Amount(400), "storm damage")
	require.NoError(t, err)

	resp, err := http.Get(ts.URL + strings.Replace(GetClaimHandlerPattern, "{id}", fmt.Sprintf("%d", id), -1))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, 200, resp.StatusCode)

	// unknown claim gives 404
	resp, err = http.Get(ts.URL + strings.Replace(GetClaimHandlerPattern, "{id}", "42", -1))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, 404, resp.StatusCode)
}

func TestPostVoteHandlerSettles(t *testing.T) {
	ts, p, tr, administrator := prepareAPIServer()
	defer ts.Close()

	contributor := keypair.Random().Address()
	_, err := p.Deposit(contributor, common.Amount(1000))
	require.NoError(t, err)

	claimant := keypair.Random().Address()
	id, err := p.FileClaim(administrator, claimant, common.Amount(400), "storm damage")
	require.NoError(t, err)

	url := ts.URL + strings.Replace(PostVoteHandlerPattern, "{id}", fmt.Sprintf("%d", id), -1)
	body := fmt.Sprintf(`{"voter": %q, "support": true}`, contributor)

	resp, m := postJSON(t, url, body)
	require.Equal(t, 200, resp.StatusCode)
	require.Equal(t, true, m["settled"])
	require.Equal(t, common.Amount(400), tr.SentTo(claimant))

	// voting again on the settled claim conflicts
	resp, _ = postJSON(t, url, body)
	require.Equal(t, 409, resp.StatusCode)
}

func TestPostResolveHandlerThresholdNotMet(t *testing.T) {
	ts, p, _, administrator := prepareAPIServer()
	defer ts.Close()

	_, err := p.Deposit(keypair.Random().Address(), common.Amount(1000))
	require.NoError(t, err)

	id, err := p.FileClaim(administrator, keypair.Random().Address(), common.Amount(400), "storm damage")
	require.NoError(t, err)

	url := ts.URL + strings.Replace(PostResolveHandlerPattern, "{id}", fmt.Sprintf("%d", id), -1)
	resp, err := http.Post(url, "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, 409, resp.StatusCode)
}

func TestGetClaimsHandler(t *testing.T) {
	ts, p, _, administrator := prepareAPIServer()
	defer ts.Close()

	_, err := p.Deposit(keypair.Random().Address(), common.Amount(1000))
	require.NoError(t, err)

	for i := 0; i < 7; i++ {
		_, err := p.FileClaim(administrator, keypair.Random().Address(), common.Amount(10), "damage")
		require.NoError(t, err)
	}

	resp, err := http.Get(ts.URL + GetClaimsHandlerPattern + "?limit=100")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, 200, resp.StatusCode)

	body, err := ioutil.ReadAll(resp.Body)
	require.NoError(t, err)

	var f interface{}
	common.MustUnmarshalJSON(body, &f)
	m := f.(map[string]interface{})
	records := m["_embedded"].(map[string]interface{})["records"].([]interface{})
	require.Equal(t, 7, len(records))

	for i, record := range records {
		entry := record.(map[string]interface{})
		require.Equal(t, float64(i+1), entry["id"])
	}
}

func TestGetPoolHandler(t *testing.T) {
	ts, p, _, administrator := prepareAPIServer()
	defer ts.Close()

	_, err := p.Deposit(keypair.Random().Address(), common.Amount(1000))
	require.NoError(t, err)

	resp, err := http.Get(ts.URL + GetPoolHandlerPattern)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, 200, resp.StatusCode)

	body, err := ioutil.ReadAll(resp.Body)
	require.NoError(t, err)

	var f interface{}
	common.MustUnmarshalJSON(body, &f)
	m := f.(map[string]interface{})
	require.Equal(t, administrator, m["administrator"])
	require.Equal(t, "1000", m["total"])
	require.Equal(t, float64(51), m["threshold"])
}
