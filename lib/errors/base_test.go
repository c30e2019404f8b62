package errors

import (
	"fmt"
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/require"
)

func TestErrorsClone(t *testing.T) {
	require.Equal(t, ClaimNotFound, ClaimNotFound)

	e := ClaimNotFound
	e0 := ClaimNotFound.Clone()
	require.NotEqual(t, fmt.Sprintf("%p", e), fmt.Sprintf("%p", e0))

	{
		e0.SetData("showme", "killme")
		require.NotEqual(t, e.Data, e0.Data)
	}
}

func TestErrorsRLP(t *testing.T) {
	{
		_, err := rlp.EncodeToBytes(ClaimNotFound)
		require.NoError(t, err)
	}

	{ // with `SetData()`, the rlp encoded value must be different
		encoded, err := rlp.EncodeToBytes(ClaimNotFound)
		require.NoError(t, err)

		e := ClaimNotFound.Clone()
		e.SetData("findme", "killme")
		encoded0, err := rlp.EncodeToBytes(e)
		require.NoError(t, err)
		require.NotEqual(t, encoded, encoded0)
	}
}
