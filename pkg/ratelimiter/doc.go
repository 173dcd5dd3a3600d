// Package ratelimiter implements a token bucket used to cap how fast a single
// company can publish events.
//
// Every publish fans out to all open streams of the company, so one noisy
// integration can saturate the hub for everyone watching that tenant. Bucket
// limits requests per key; Middleware keys them by the tenant resolved for
// the request and answers 429 with Retry-After once the bucket is empty.
//
// MemoryStore keeps buckets in process. RedisStore keeps them in Redis so
// the limit holds across instances.
//
// Denied requests do not consume tokens.
package ratelimiter
