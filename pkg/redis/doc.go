// Package redis connects the go-redis client used to fan events out across
// back office instances. Redis is optional: with REDIS_URL unset,
// Config.Enabled reports false and events stay within one process.
package redis
