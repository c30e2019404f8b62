package pool

import (
	"github.com/mutualnet/mutualpool/lib/common"
	"github.com/mutualnet/mutualpool/lib/errors"
	"github.com/mutualnet/mutualpool/lib/storage"
)

// PoolState is the single record holding everything that is fixed at
// initialization plus the two running counters, stored under one key.
//
// models
//  * 'state'
// 	- 'ps-state': `PoolState`
const PoolStateKey string = "ps-state"

// DefaultThreshold is the approval threshold in percent of the pool total.
const DefaultThreshold uint64 = 51

type PoolState struct {
	Administrator       string
	MinimumContribution common.Amount
	Threshold           uint64
	Total               common.Amount
	NextClaimID         uint64
}

func NewPoolState(administrator string, minimumContribution common.Amount) *PoolState {
	return &PoolState{
		Administrator:       administrator,
		MinimumContribution: minimumContribution,
		Threshold:           DefaultThreshold,
		Total:               common.Amount(0),
		NextClaimID:         1,
	}
}

func (ps *PoolState) String() string {
	return string(common.MustJSONMarshal(ps))
}

func (ps *PoolState) Serialize() (encoded []byte, err error) {
	encoded, err = common.EncodeJSONValue(ps)
	return
}

func (ps *PoolState) Deserialize(encoded []byte) (err error) {
	return common.DecodeJSONValue(encoded, ps)
}

func (ps *PoolState) Save(st *storage.LevelDBBackend) (err error) {
	var exists bool
	exists, err = st.Has(PoolStateKey)
	if err != nil {
		return
	}

	if exists {
		err = st.Set(PoolStateKey, ps)
	} else {
		err = st.New(PoolStateKey, ps)
	}

	return
}

// ThresholdReached evaluates the approval threshold against the current
// pool total: approved iff `votesFor * 100 >= total * threshold`. Both
// products stay within uint64 because MaximumBalance bounds the amounts.
func (ps *PoolState) ThresholdReached(votesFor common.Amount) bool {
	return uint64(votesFor)*100 >= uint64(ps.Total)*ps.Threshold
}

func ExistsPoolState(st *storage.LevelDBBackend) (bool, error) {
	return st.Has(PoolStateKey)
}

func GetPoolState(st *storage.LevelDBBackend) (ps *PoolState, err error) {
	if err = st.Get(PoolStateKey, &ps); err != nil {
		if e, ok := err.(*errors.Error); ok && e.Code == errors.StorageRecordDoesNotExist.Code {
			err = errors.PoolNotInitialized
		}
		return
	}

	return
}
