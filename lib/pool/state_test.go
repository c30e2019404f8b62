package pool

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mutualnet/mutualpool/lib/common"
	"github.com/mutualnet/mutualpool/lib/errors"
	"github.com/mutualnet/mutualpool/lib/storage"
)

func TestPoolStateSaveAndGet(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	_, err := GetPoolState(st)
	require.Equal(t, errors.PoolNotInitialized.Code, err.(*errors.Error).Code)

	administrator := testRandomAddress()
	ps := NewPoolState(administrator, common.Amount(100))
	require.Nil(t, ps.Save(st))

	fetched, err := GetPoolState(st)
	require.Nil(t, err)
	require.Equal(t, administrator, fetched.Administrator)
	require.Equal(t, common.Amount(100), fetched.MinimumContribution)
	require.Equal(t, DefaultThreshold, fetched.Threshold)
	require.Equal(t, common.Amount(0), fetched.Total)
	require.Equal(t, uint64(1), fetched.NextClaimID)
}

func TestPoolStateThreshold(t *testing.T) {
	ps := NewPoolState(testRandomAddress(), common.Amount(100))
	ps.Total = common.Amount(1000)

	// 50% is not enough, 51% is exactly enough
	require.False(t, ps.ThresholdReached(common.Amount(500)))
	require.True(t, ps.ThresholdReached(common.Amount(510)))
	require.True(t, ps.ThresholdReached(common.Amount(1000)))

	// an empty pool passes any tally, including zero
	ps.Total = common.Amount(0)
	require.True(t, ps.ThresholdReached(common.Amount(0)))
}

func TestPoolStateThresholdNoOverflow(t *testing.T) {
	ps := NewPoolState(testRandomAddress(), common.Amount(100))
	ps.Total = common.MaximumBalance

	require.True(t, ps.ThresholdReached(common.MaximumBalance))
	require.False(t, ps.ThresholdReached(common.Amount(0)))
}
