package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/stellar/go/keypair"

	"github.com/mutualnet/mutualpool/lib/pool"

	mutualcommon "github.com/mutualnet/mutualpool/lib/common"
	"github.com/mutualnet/mutualpool/lib/storage"

	"github.com/mutualnet/mutualpool/cmd/mutualpool/common"
)

const (
	defaultMinimumContribution = "1,000.0000000"
)

var (
	flagMinimum string = mutualcommon.GetENVValue("MUTUALPOOL_MINIMUM_CONTRIBUTION", defaultMinimumContribution)
)

func init() {
	var initCmd = &cobra.Command{
		Use:   "init <administrator public key>",
		Short: "establish a new pool",
		Args:  cobra.ExactArgs(1),
		Run: func(c *cobra.Command, args []string) {
			flagName, err := EstablishPool(args[0], flagMinimum, flagStorageConfigString)
			if len(flagName) != 0 || err != nil {
				common.PrintFlagsError(c, flagName, err)
			}

			fmt.Println("successfully established the pool")
		},
	}

	initCmd.Flags().StringVar(&flagMinimum, "minimum", flagMinimum, "minimum contribution")
	initCmd.Flags().StringVar(&flagStorageConfigString, "storage", flagStorageConfigString, "storage uri")

	rootCmd.AddCommand(initCmd)
}

//
// Establish a new pool using the provided parameters
//
// This function is separate, and public, to allow it to be used from other
// commands (at the moment, only `run`) so it can provide the same behavior
// (defaults, error messages).
//
// Params:
//   addressStr = public address of the administrator
//   minimumStr = the minimum contribution
//                If not provided, a default value will be used
//   storage    = storage uri
//
// Returns:
//   If an error happened, returns a tuple of (string, error).
//   The string argument represent the name of the flag which errored,
//   and error is the more detailed error.
//   Note that only one needs be non-`nil` for it to be considered an error.
//
func EstablishPool(addressStr, minimumStr, storageString string) (string, error) {
	var err error
	var kp keypair.KP
	var minimum mutualcommon.Amount
	var storageConfig *storage.Config

	if kp, err = keypair.Parse(addressStr); err != nil {
		return "<administrator public key>", err
	}

	if len(minimumStr) == 0 {
		minimumStr = defaultMinimumContribution
	}

	if minimum, err = common.ParseAmountFromString(minimumStr); err != nil {
		return "--minimum", err
	}
	if minimum < 1 {
		return "--minimum", errors.New("minimum contribution must be positive")
	}

	// Use the default value
	if len(storageString) == 0 {
		// We try to get the env value first, before doing IO which could fail
		storageString = mutualcommon.GetENVValue("MUTUALPOOL_STORAGE", "")
		// No env, use the default (current directory)
		if len(storageString) == 0 {
			if currentDirectory, err := os.Getwd(); err == nil {
				if currentDirectory, err = filepath.Abs(currentDirectory); err == nil {
					storageString = fmt.Sprintf("file://%s/db", currentDirectory)
				}
			}
			if len(storageString) == 0 {
				return "--storage", err
			}
		}
	}

	if storageConfig, err = storage.NewConfigFromString(storageString); err != nil {
		return "--storage", err
	}

	st, err := storage.NewStorage(storageConfig)
	if err != nil {
		return "--storage", fmt.Errorf("failed to initialize storage: %v", err)
	}
	defer st.Close()

	if err = pool.Setup(st, kp.Address(), minimum); err != nil {
		return "<administrator public key>", err
	}

	return "", nil
}
