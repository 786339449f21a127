// Package errs defines custom error types and utilities.
//
// Its purpose is to give every failure a specific HTTP shape
// (status, message, body format) so the global error handler can
// answer clients consistently.
package errs
