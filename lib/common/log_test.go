package common

import (
	"testing"

	logging "github.com/inconshreveable/log15"
	"github.com/stretchr/testify/require"
)

func TestSetLoggingFiltersByLevel(t *testing.T) {
	var records []*logging.Record
	handler := logging.FuncHandler(func(r *logging.Record) error {
		records = append(records, r)
		return nil
	})

	logger := logging.New()
	SetLogging(logger, logging.LvlWarn, handler)

	logger.Debug("dropped")
	logger.Error("kept")

	require.Len(t, records, 1)
	require.Equal(t, "kept", records[0].Msg)
}
