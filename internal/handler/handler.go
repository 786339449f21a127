// Package handler is the first layer after the router.
//
// It binds requests through the validation package, calls the service
// layer and hands results or errors back to echo.
package handler
