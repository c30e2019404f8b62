//
// Encapsulate Stellar's keypair package
//
// Provides additional wrapper and convenience functions,
// suited for usage within mutualpool
//
package keypair

import (
	stellar "github.com/stellar/go/keypair"
)

// Aliases to stellar types
type Full = stellar.Full
type KP = stellar.KP

// Aliases to stellar functions
var Master = stellar.Master
var Parse = stellar.Parse
var RandomCanFail = stellar.Random

// Random returns a new keypair and panics when generation fails
func Random() *Full {
	kp, err := RandomCanFail()
	if err != nil {
		panic(err)
	}
	return kp
}

// IsValidAddress checks whether the given string parses as a public address
func IsValidAddress(address string) bool {
	kp, err := Parse(address)
	if err != nil {
		return false
	}
	_, isFull := kp.(*Full)
	return !isFull
}
