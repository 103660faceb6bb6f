package redis

import (
	"github.com/redis/go-redis/v9"
)

// Client is the go-redis universal client. Repositories depend on this
// rather than *redis.Client so single, cluster and test clients all fit.
type Client interface {
	redis.UniversalClient
}
