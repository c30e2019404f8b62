package transfer

import (
	"sync"

	"github.com/mutualnet/mutualpool/lib/common"
	"github.com/mutualnet/mutualpool/lib/errors"
)

// MemoryTransferrer settles transfers in process. It records every
// successful transfer and can be told to fail, which is how the rollback
// path is exercised in tests.
type MemoryTransferrer struct {
	sync.Mutex

	Sent     map[string]common.Amount
	failWith error
}

func NewMemoryTransferrer() *MemoryTransferrer {
	return &MemoryTransferrer{
		Sent: map[string]common.Amount{},
	}
}

func (t *MemoryTransferrer) Transfer(address string, amount common.Amount) error {
	t.Lock()
	defer t.Unlock()

	if t.failWith != nil {
		return errors.TransferFailed.Clone().SetData("error", t.failWith.Error())
	}

	t.Sent[address] = t.Sent[address].MustAdd(amount)
	return nil
}

// FailWith makes every following Transfer fail with the given error;
// a nil err restores normal operation.
func (t *MemoryTransferrer) FailWith(err error) {
	t.Lock()
	defer t.Unlock()

	t.failWith = err
}

func (t *MemoryTransferrer) SentTo(address string) common.Amount {
	t.Lock()
	defer t.Unlock()

	return t.Sent[address]
}
