package observer

import (
	"github.com/GianlucaGuarini/go-observable"
)

var ContributionObserver = observable.New()
var ClaimObserver = observable.New()
