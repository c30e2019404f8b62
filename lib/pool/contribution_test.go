package pool

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mutualnet/mutualpool/lib/common"
	"github.com/mutualnet/mutualpool/lib/storage"
)

func TestSaveNewContribution(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	c := TestMakeContribution()
	err := c.Save(st)
	require.Nil(t, err)

	exists, err := ExistsContribution(st, c.Address)
	require.Nil(t, err)
	require.Equal(t, exists, true, "Contribution does not exists")
}

func TestSaveExistingContribution(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	c := TestMakeContribution()
	c.Save(st)

	err := c.Deposit(common.Amount(100))
	require.Nil(t, err)

	err = c.Save(st)
	require.Nil(t, err)

	fetched, _ := GetContribution(st, c.Address)
	require.Equal(t, c.GetBalance(), fetched.GetBalance())
}

func TestSortMultipleContributions(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	var createdOrder []string
	for i := 0; i < 50; i++ {
		c := TestMakeContribution()
		c.Save(st)

		createdOrder = append(createdOrder, c.Address)
	}

	var saved []string
	iterFunc, closeFunc := GetContributionAddressesByCreated(st, false)
	for {
		address, hasNext := iterFunc()
		if !hasNext {
			break
		}

		saved = append(saved, address)
	}
	closeFunc()

	require.Equal(t, len(createdOrder), len(saved))
	for i, a := range createdOrder {
		require.Equal(t, a, saved[i], "Contributions are not saved in the order they are created")
	}
}

func TestContributionWithdrawUnderflow(t *testing.T) {
	c := NewContribution(testRandomAddress(), common.Amount(10))

	err := c.Withdraw(common.Amount(11))
	require.NotNil(t, err)
	require.Equal(t, common.Amount(10), c.GetBalance())
}
