// Package requestid tags every request with a correlation id.
//
// Middleware reuses a well-formed X-Request-ID sent by the client or mints a
// UUIDv7, echoes it in the response header and stores it in the request
// context. LoggerExtractor feeds it into pkg/logger so every log line written
// while serving the request, including hub publish failures, carries it.
package requestid
