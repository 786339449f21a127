// Package service contains the business logic.
//
// It sits between the handler and repository layers. For this API the
// logic is thin: most operations forward a repository read, and the
// auth service decides what counts as a successful login.
package service
