// Package http implements the local monitor API of the sync client.
//
// It exposes route wiring, request handlers, and middleware for the small
// REST surface a UI or operator uses to observe and steer the sync engine:
// engine status, the pending queue, open conflicts, manual conflict
// resolution, and on-demand cycle triggering. Request tracing and access
// logging are handled here before requests reach the service layer.
package http
