package cmd

import (
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	cmdcommon "github.com/mutualnet/mutualpool/cmd/mutualpool/common"
	"github.com/mutualnet/mutualpool/lib/common"
	"github.com/mutualnet/mutualpool/lib/common/keypair"
	"github.com/mutualnet/mutualpool/lib/pool"
	"github.com/mutualnet/mutualpool/lib/storage"
)

func TestEstablishPool(t *testing.T) {
	kp := keypair.Random()

	flagName, err := EstablishPool(kp.Address(), "1,000.5", "memory://")
	require.Empty(t, flagName)
	require.NoError(t, err)
}

func TestEstablishPoolInvalidAddress(t *testing.T) {
	flagName, err := EstablishPool("not-an-address", "1000", "memory://")
	require.Equal(t, "<administrator public key>", flagName)
	require.Error(t, err)
}

func TestEstablishPoolInvalidMinimum(t *testing.T) {
	kp := keypair.Random()

	flagName, err := EstablishPool(kp.Address(), "0", "memory://")
	require.Equal(t, "--minimum", flagName)
	require.Error(t, err)
}

func TestEstablishPoolTwice(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	kp := keypair.Random()
	require.NoError(t, pool.Setup(st, kp.Address(), 1000))
	require.Error(t, pool.Setup(st, kp.Address(), 1000))
}

func TestParseFlagRateLimit(t *testing.T) {
	parse := func(t *testing.T, cmdline string) cmdcommon.ListFlags {
		testCmd := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)

		var fr cmdcommon.ListFlags
		testCmd.Var(&fr, "rate-limit-api", "")

		require.NoError(t, testCmd.Parse(strings.Fields(cmdline)))
		return fr
	}

	{ // weird value
		fr := parse(t, "--rate-limit-api=showme")
		_, err := parseFlagRateLimit(fr, common.RateLimitAPI)
		require.Error(t, err)
	}

	{ // valid value
		fr := parse(t, "--rate-limit-api=10-S")
		rule, err := parseFlagRateLimit(fr, common.RateLimitAPI)
		require.NoError(t, err)
		require.Equal(t, time.Second, rule.Default.Period)
		require.Equal(t, int64(10), rule.Default.Limit)
		require.Equal(t, 0, len(rule.ByIPAddress))
	}

	{ // multiple values, the last wins
		fr := parse(t, "--rate-limit-api=10-S --rate-limit-api=9-M")
		rule, err := parseFlagRateLimit(fr, common.RateLimitAPI)
		require.NoError(t, err)
		require.Equal(t, time.Minute, rule.Default.Period)
		require.Equal(t, int64(9), rule.Default.Limit)
	}

	{ // per-ip rate keeps the default rate for everyone else
		allowedIP := "1.2.3.4"
		fr := parse(t, fmt.Sprintf("--rate-limit-api=%s=8-S", allowedIP))
		rule, err := parseFlagRateLimit(fr, common.RateLimitAPI)
		require.NoError(t, err)
		require.Equal(t, common.RateLimitAPI.Period, rule.Default.Period)
		require.Equal(t, common.RateLimitAPI.Limit, rule.Default.Limit)
		require.Equal(t, 1, len(rule.ByIPAddress))
		require.Equal(t, time.Second, rule.ByIPAddress[allowedIP].Period)
		require.Equal(t, int64(8), rule.ByIPAddress[allowedIP].Limit)
	}

	{ // bad ip
		fr := parse(t, "--rate-limit-api=not-an-ip=8-S")
		_, err := parseFlagRateLimit(fr, common.RateLimitAPI)
		require.Error(t, err)
	}

	{ // lowercase period
		fr := parse(t, "--rate-limit-api=10-h")
		rule, err := parseFlagRateLimit(fr, common.RateLimitAPI)
		require.NoError(t, err)
		require.Equal(t, time.Hour, rule.Default.Period)
		require.Equal(t, int64(10), rule.Default.Limit)
	}
}

func TestParseFlagEndpoint(t *testing.T) {
	flagEndpointString = "http://localhost:12345"
	flagStorageConfigString = "memory://"

	parseFlagsRun()

	require.NotNil(t, poolEndpoint)
	require.Equal(t, "http", poolEndpoint.Scheme)
	require.Equal(t, "localhost:12345", poolEndpoint.Host)
	require.Equal(t, "memory", storageConfig.Scheme)
}
