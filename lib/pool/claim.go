package pool

import (
	"fmt"

	"github.com/mutualnet/mutualpool/lib/common"
	"github.com/mutualnet/mutualpool/lib/errors"
	"github.com/mutualnet/mutualpool/lib/storage"
)

// Claim is a request to pay a specified amount to a specified claimant,
// subject to contributor vote. the storage should support,
//  * find by `ID`:
// 	- key: zero-padded `ID`: value: `Claim`
//
// models
//  * 'id'
// 	- 'cl-id-<%020d ID>': `Claim`
//
// The zero-padded key keeps the iterator in filing order.

const ClaimPrefixID string = "cl-id-"

type Claim struct {
	ID           uint64
	Claimant     string
	Amount       common.Amount
	Evidence     string
	Settled      bool
	VotesFor     common.Amount
	VotesAgainst common.Amount
	Voted        map[string]bool
}

func NewClaim(id uint64, claimant string, amount common.Amount, evidence string) *Claim {
	return &Claim{
		ID:       id,
		Claimant: claimant,
		Amount:   amount,
		Evidence: evidence,
		Settled:  false,
		Voted:    map[string]bool{},
	}
}

func (c *Claim) String() string {
	return string(common.MustJSONMarshal(c))
}

func (c *Claim) Serialize() (encoded []byte, err error) {
	encoded, err = common.EncodeJSONValue(c)
	return
}

func (c *Claim) Deserialize(encoded []byte) (err error) {
	return common.DecodeJSONValue(encoded, c)
}

func (c *Claim) Save(st *storage.LevelDBBackend) (err error) {
	key := GetClaimKey(c.ID)

	var exists bool
	exists, err = st.Has(key)
	if err != nil {
		return
	}

	if exists {
		err = st.Set(key, c)
	} else {
		err = st.New(key, c)
	}

	return
}

func (c *Claim) HasVoted(address string) bool {
	return c.Voted[address]
}

// RecordVote marks the address as having voted and adds its weight to the
// matching tally. The voted set lives inside the claim, a vote on one claim
// never affects another.
func (c *Claim) RecordVote(address string, support bool, weight common.Amount) error {
	if c.HasVoted(address) {
		return errors.AlreadyVoted
	}

	if c.Voted == nil {
		c.Voted = map[string]bool{}
	}
	c.Voted[address] = true

	if support {
		votesFor, err := c.VotesFor.Add(weight)
		if err != nil {
			return err
		}
		c.VotesFor = votesFor
	} else {
		votesAgainst, err := c.VotesAgainst.Add(weight)
		if err != nil {
			return err
		}
		c.VotesAgainst = votesAgainst
	}

	return nil
}

func GetClaimKey(id uint64) string {
	return fmt.Sprintf("%s%020d", ClaimPrefixID, id)
}

func ExistsClaim(st *storage.LevelDBBackend, id uint64) (bool, error) {
	return st.Has(GetClaimKey(id))
}

func GetClaim(st *storage.LevelDBBackend, id uint64) (c *Claim, err error) {
	if err = st.Get(GetClaimKey(id), &c); err != nil {
		if e, ok := err.(*errors.Error); ok && e.Code == errors.StorageRecordDoesNotExist.Code {
			err = errors.ClaimNotFound
		}
		return
	}

	return
}

func GetClaimsByID(st *storage.LevelDBBackend, reverse bool) (func() (*Claim, bool), func()) {
	iterFunc, closeFunc := st.GetIterator(ClaimPrefixID, reverse)

	return (func() (*Claim, bool) {
			item, hasNext := iterFunc()
			if !hasNext {
				return nil, false
			}

			var c Claim
			if err := c.Deserialize(item.Value); err != nil {
				return nil, false
			}
			return &c, hasNext
		}), (func() {
			closeFunc()
		})
}
