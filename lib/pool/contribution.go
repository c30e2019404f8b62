package pool

import (
	"encoding/json"
	"fmt"

	"github.com/mutualnet/mutualpool/lib/common"
	"github.com/mutualnet/mutualpool/lib/storage"
)

// Contribution is the ledger record of one contributor. the storage should
// support,
//  * find by `Address`:
// 	- key: `Address`: value: `Contribution`
//  * get list by created order:
//
// models
//  * 'address'
// 	- 'cb-address-<Contribution.Address>': `Contribution`
//  * 'created'
// 	- 'cb-created-<sequential uuid1>': `Contribution.Address`

const ContributionPrefixAddress string = "cb-address-"
const ContributionPrefixCreated string = "cb-created-"

type Contribution struct {
	Address string
	Balance common.Amount
}

func NewContribution(address string, balance common.Amount) *Contribution {
	return &Contribution{
		Address: address,
		Balance: balance,
	}
}

func (c *Contribution) String() string {
	return string(common.MustJSONMarshal(c))
}

func (c *Contribution) Serialize() (encoded []byte, err error) {
	encoded, err = common.EncodeJSONValue(c)
	return
}

func (c *Contribution) Deserialize(encoded []byte) (err error) {
	return common.DecodeJSONValue(encoded, c)
}

func (c *Contribution) Save(st *storage.LevelDBBackend) (err error) {
	key := GetContributionKey(c.Address)

	var exists bool
	exists, err = st.Has(key)
	if err != nil {
		return
	}

	if exists {
		err = st.Set(key, c)
	} else {
		if err = st.New(key, c); err != nil {
			return
		}
		createdKey := GetContributionCreatedKey(common.GetUniqueIDFromUUID())
		err = st.New(createdKey, c.Address)
	}

	return
}

func (c *Contribution) GetBalance() common.Amount {
	return c.Balance
}

// Add fund to a contribution
//
// If the amount would make the balance overflow the maximum pool balance,
// an `error` is returned.
func (c *Contribution) Deposit(fund common.Amount) error {
	if val, err := c.GetBalance().Add(fund); err != nil {
		return err
	} else {
		c.Balance = val
	}
	return nil
}

// Remove fund from a contribution
//
// If the amount would make the balance go negative, an `error` is returned.
func (c *Contribution) Withdraw(fund common.Amount) error {
	if val, err := c.GetBalance().Sub(fund); err != nil {
		return err
	} else {
		c.Balance = val
	}
	return nil
}

func GetContributionKey(address string) string {
	return fmt.Sprintf("%s%s", ContributionPrefixAddress, address)
}

func GetContributionCreatedKey(created string) string {
	return fmt.Sprintf("%s%s", ContributionPrefixCreated, created)
}

func ExistsContribution(st *storage.LevelDBBackend, address string) (bool, error) {
	return st.Has(GetContributionKey(address))
}

func GetContribution(st *storage.LevelDBBackend, address string) (c *Contribution, err error) {
	if err = st.Get(GetContributionKey(address), &c); err != nil {
		return
	}

	return
}

func GetContributionAddressesByCreated(st *storage.LevelDBBackend, reverse bool) (func() (string, bool), func()) {
	iterFunc, closeFunc := st.GetIterator(ContributionPrefixCreated, reverse)

	return (func() (string, bool) {
			item, hasNext := iterFunc()
			if !hasNext {
				return "", false
			}

			var address string
			json.Unmarshal(item.Value, &address)
			return address, hasNext
		}), (func() {
			closeFunc()
		})
}

func GetContributionsByCreated(st *storage.LevelDBBackend, reverse bool) (func() (*Contribution, bool), func()) {
	iterFunc, closeFunc := GetContributionAddressesByCreated(st, reverse)

	return (func() (*Contribution, bool) {
			address, hasNext := iterFunc()
			if !hasNext {
				return nil, false
			}

			c, err := GetContribution(st, address)
			if err != nil {
				return nil, false
			}
			return c, hasNext
		}), (func() {
			closeFunc()
		})
}
