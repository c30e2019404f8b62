package httpcache

import (
	"github.com/go-redis/redis"

	"github.com/mutualnet/mutualpool/lib/common"
	"github.com/mutualnet/mutualpool/lib/errors"
)

func NewAdapter(cfg common.Config) (Adapter, error) {
	switch cfg.HTTPCacheAdapter {
	case common.HTTPCacheMemoryAdapterName:
		adapter := NewMemCacheAdapter(cfg.HTTPCachePoolSize)
		return adapter, nil
	case common.HTTPCacheRedisAdapterName:
		opt := RedisRingOptions(redis.RingOptions{
			Addrs: cfg.HTTPCacheRedisAddrs,
		})
		adapter := NewRedisCacheAdapter(&opt)
		return adapter, nil
	default:
		return nil, errors.New("adapter not found")
	}
}
