package pool

import (
	"github.com/mutualnet/mutualpool/lib/storage"
)

// AccessControl answers the two authorization questions the operations
// need. There are no roles beyond these two, no delegation and no
// multi-admin.
type AccessControl struct {
	administrator string
}

func NewAccessControl(administrator string) *AccessControl {
	return &AccessControl{administrator: administrator}
}

func (ac *AccessControl) IsAdministrator(address string) bool {
	return ac.administrator == address
}

// IsContributor holds iff the address currently has a positive balance in
// the ledger; withdrawing strips contributor status immediately.
func (ac *AccessControl) IsContributor(st *storage.LevelDBBackend, address string) (bool, error) {
	exists, err := ExistsContribution(st, address)
	if err != nil || !exists {
		return false, err
	}

	c, err := GetContribution(st, address)
	if err != nil {
		return false, err
	}

	return c.GetBalance() > 0, nil
}
