package metrics

func InitPrometheusMetrics() {
	Pool = PromPoolMetrics()
	API = PromAPIMetrics()
}
