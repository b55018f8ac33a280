// Package server wires and runs the local monitor HTTP server.
//
// It provides orchestration for the monitor API lifecycle, including
// startup, signal handling, and graceful shutdown.
package server
