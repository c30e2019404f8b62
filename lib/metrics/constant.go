package metrics

const (
	Namespace     = "mutualpool"
	PoolSubsystem = "pool"
	APISubsystem  = "api"
)
