package pool

import (
	"github.com/mutualnet/mutualpool/lib/common"
	"github.com/mutualnet/mutualpool/lib/common/keypair"
	"github.com/mutualnet/mutualpool/lib/storage"
	"github.com/mutualnet/mutualpool/lib/transfer"
)

var testMinimumContribution = common.Amount(100)

func testRandomAddress() string {
	return keypair.Random().Address()
}

func TestMakeContribution() *Contribution {
	return NewContribution(testRandomAddress(), testMinimumContribution)
}

// TestMakePool sets up an initialized pool on in-memory storage with a
// recording transfer backend.
func TestMakePool() (*Pool, *transfer.MemoryTransferrer, string) {
	st := storage.NewTestStorage()
	administrator := testRandomAddress()

	if err := Setup(st, administrator, testMinimumContribution); err != nil {
		panic(err)
	}

	tr := transfer.NewMemoryTransferrer()
	p, err := NewPool(st, tr, nil)
	if err != nil {
		panic(err)
	}

	return p, tr, administrator
}
