// Package httpserver runs the back office HTTP handler with graceful shutdown.
//
// Event streams never go idle, so plain http.Server.Shutdown would wait for
// them until its deadline. Server gives every request a base context that is
// cancelled as soon as shutdown starts; SSE handlers watching r.Context()
// return, and Shutdown completes once in-flight requests drain. Hooks
// registered with WithShutdownHook run at the same moment, which is where the
// event hub gets closed.
//
// WriteTimeout defaults to zero. Any positive value would cut long-lived
// event streams after that duration.
//
// HealthCheckHandler serves liveness and readiness probes.
package httpserver
