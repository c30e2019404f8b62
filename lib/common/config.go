package common

import (
	"time"

	"github.com/ulule/limiter"
)

const (
	HTTPCacheMemoryAdapterName = "mem"
	HTTPCacheRedisAdapterName  = "redis"
	HTTPCachePoolSize          = 10000
)

// RateLimitAPI is the default rate limit for the public API routers.
var RateLimitAPI limiter.Rate = limiter.Rate{
	Period: 1 * time.Minute,
	Limit:  100,
}

type RateLimitRule struct {
	Default     limiter.Rate
	ByIPAddress map[string]limiter.Rate
}

func NewRateLimitRule(rate limiter.Rate) RateLimitRule {
	return RateLimitRule{
		Default:     rate,
		ByIPAddress: map[string]limiter.Rate{},
	}
}

// Config collects the serving knobs of a running node. The pool parameters
// themselves, administrator and minimum contribution, live in storage and
// are set once at init.
type Config struct {
	RateLimitRuleAPI RateLimitRule

	HTTPCacheAdapter    string
	HTTPCachePoolSize   int
	HTTPCacheRedisAddrs map[string]string
}

func NewConfig() Config {
	p := Config{}

	p.RateLimitRuleAPI = NewRateLimitRule(RateLimitAPI)
	p.HTTPCachePoolSize = HTTPCachePoolSize

	return p
}
