package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckBindString(t *testing.T) {
	require.NoError(t, CheckBindString("localhost:12345"))
	require.NoError(t, CheckBindString("0.0.0.0:80"))

	require.Error(t, CheckBindString("localhost"))
	require.Error(t, CheckBindString("localhost:0"))
	require.Error(t, CheckBindString("localhost:notaport"))
}
