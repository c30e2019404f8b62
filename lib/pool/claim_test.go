package pool

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mutualnet/mutualpool/lib/common"
	"github.com/mutualnet/mutualpool/lib/errors"
	"github.com/mutualnet/mutualpool/lib/storage"
)

func TestClaimSaveAndGet(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	claim := NewClaim(1, testRandomAddress(), common.Amount(300), "broken window")
	err := claim.Save(st)
	require.Nil(t, err)

	fetched, err := GetClaim(st, 1)
	require.Nil(t, err)
	require.Equal(t, claim.Claimant, fetched.Claimant)
	require.Equal(t, claim.Amount, fetched.Amount)
	require.Equal(t, claim.Evidence, fetched.Evidence)
	require.False(t, fetched.Settled)
}

func TestClaimGetUnknown(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	_, err := GetClaim(st, 7)
	require.Equal(t, errors.ClaimNotFound.Code, err.(*errors.Error).Code)
}

func TestClaimRecordVote(t *testing.T) {
	claim := NewClaim(1, testRandomAddress(), common.Amount(300), "broken window")
	alice := testRandomAddress()
	bob := testRandomAddress()

	require.False(t, claim.HasVoted(alice))

	err := claim.RecordVote(alice, true, common.Amount(500))
	require.Nil(t, err)
	require.True(t, claim.HasVoted(alice))
	require.Equal(t, common.Amount(500), claim.VotesFor)

	err = claim.RecordVote(bob, false, common.Amount(200))
	require.Nil(t, err)
	require.Equal(t, common.Amount(200), claim.VotesAgainst)

	// a repeated vote is rejected without touching the tallies
	err = claim.RecordVote(alice, false, common.Amount(500))
	require.Equal(t, errors.AlreadyVoted.Code, err.(*errors.Error).Code)
	require.Equal(t, common.Amount(500), claim.VotesFor)
	require.Equal(t, common.Amount(200), claim.VotesAgainst)
}

func TestClaimKeyOrder(t *testing.T) {
	// keys must sort lexicographically in id order for the iterator
	require.True(t, GetClaimKey(2) < GetClaimKey(10))
	require.True(t, GetClaimKey(99) < GetClaimKey(100))
}
