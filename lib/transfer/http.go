package transfer

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/sethgrid/pester"

	"github.com/mutualnet/mutualpool/lib/common"
	"github.com/mutualnet/mutualpool/lib/errors"
)

type BackoffStrategy = pester.BackoffStrategy

type RetrySetting struct {
	MaxRetries  int
	Concurrency int
	Backoff     BackoffStrategy
}

// HTTPTransferrer settles transfers by POSTing to an external settlement
// endpoint. The request is retried according to `RetrySetting`; any
// non-2xx final response is surfaced as `TransferFailed`.
type HTTPTransferrer struct {
	endpoint string
	client   *pester.Client
}

func NewHTTPTransferrer(endpoint string, timeout time.Duration, retrySetting *RetrySetting) *HTTPTransferrer {
	client := pester.New()
	client.Timeout = timeout
	if retrySetting != nil {
		client.MaxRetries = retrySetting.MaxRetries
		client.Concurrency = retrySetting.Concurrency
		client.Backoff = retrySetting.Backoff
	}

	return &HTTPTransferrer{
		endpoint: endpoint,
		client:   client,
	}
}

type transferMessage struct {
	Address string        `json:"address"`
	Amount  common.Amount `json:"amount"`
}

func (t *HTTPTransferrer) Transfer(address string, amount common.Amount) error {
	body := common.MustMarshalJSON(transferMessage{Address: address, Amount: amount})

	response, err := t.client.Post(t.endpoint, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return errors.TransferFailed.Clone().SetData("error", err.Error())
	}
	defer response.Body.Close()

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		return errors.TransferFailed.Clone().SetData(
			"status", fmt.Sprintf("%d", response.StatusCode),
		)
	}

	return nil
}
