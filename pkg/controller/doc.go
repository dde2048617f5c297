// Package controller contains HTTP middlewares used by the lesson server.
//
// Provided middlewares:
//   - WithLogger: Attaches a request-scoped logger and request ID to the context and logs access info.
//   - WithMetrics: Observes request durations by route pattern.
//   - WithRecover: Turns a panicking handler into a 500 response.
package controller
