// Package health provides the liveness and readiness probes of the watch
// daemon. They are served next to the metrics endpoint:
//
//	GET /health   200 while the process runs
//	GET /ready    200 when the store answers and the last import succeeded
//	GET /version  build information
package health
