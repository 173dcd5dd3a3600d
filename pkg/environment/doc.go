// Package environment names the deployment environments the back office runs
// in and normalises the short aliases operators tend to put in APP_ENV.
package environment
