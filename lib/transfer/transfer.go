//
// The value transfer primitive.
//
// The pool itself never holds the transferred value; settlement is done by
// an external backend. The pool calls `Transfer` as the very last step of
// `withdraw` and `resolve`, after its own state has been mutated inside a
// storage transaction; a failed transfer discards that transaction.
//
package transfer

import (
	"github.com/mutualnet/mutualpool/lib/common"
)

type Transferrer interface {
	Transfer(address string, amount common.Amount) error
}
