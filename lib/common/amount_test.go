package common

import (
	"strconv"
	"testing"
)

var (
	maximumBalance    = uint64(MaximumBalance)
	maximumBalanceStr = strconv.FormatUint(maximumBalance, 10)
)

func TestAmount_Invariant(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("exceeds max allowable amount value.")
		}
	}()

	amount := Amount(maximumBalance + 1)
	amount.Invariant()
}

func TestAmount_Mult(t *testing.T) {
	val, err := Amount(100).MultUint64(50)
	if err != nil || val != Amount(5000) {
		t.Errorf("MultUint64 returned an error or a wrong result")
	}

	// overflow failure
	if _, err := MaximumBalance.MultUint64(2); err == nil {
		t.Errorf("Expected overflow error did not happen")
	}

	// the threshold arithmetic relies on `amount * 100` staying in range
	if _, err := MaximumBalance.MultUint64(100); err != nil {
		t.Errorf("MaximumBalance * 100 must not overflow: %v", err)
	}
}

func TestAmount_Uint64OutOfRange(t *testing.T) {
	amount, err := AmountFromString(maximumBalanceStr)

	if amount.String() != maximumBalanceStr {
		t.Errorf("invalid stringified value: %s", amount.String())
	}

	if err != nil {
		t.Errorf("failed to parse number for input string: %s, %v", maximumBalanceStr, err)
	}

	if uint64(amount) != uint64(maximumBalance) {
		t.Errorf("failed to parse number for input string: %s != %s", amount, maximumBalanceStr)
	}

	if data, err := amount.MarshalJSON(); err != nil {
		t.Errorf("marshal error: %v", err)
	} else {
		if string(data)[1:len(data)-1] != maximumBalanceStr {
			t.Errorf("unexpected marshal value. expected: %s, got: %s", maximumBalanceStr, data)
		}

		if err := amount.UnmarshalJSON(data); err != nil {
			t.Errorf("unmarshal error: %v", err)
		}
	}
}

func TestAmount_AddSub(t *testing.T) {
	a := Amount(100)

	if a.MustAdd(50) != Amount(150) {
		t.Errorf("Add returned a wrong result")
	}
	if a.MustSub(50) != Amount(50) {
		t.Errorf("Sub returned a wrong result")
	}

	if _, err := a.Sub(200); err == nil {
		t.Errorf("Expected underflow error did not happen")
	}
	if _, err := MaximumBalance.Add(1); err == nil {
		t.Errorf("Expected overflow error did not happen")
	}
}
