package metrics

var (
	Pool = NopPoolMetrics()
	API  = NopAPIMetrics()
)
