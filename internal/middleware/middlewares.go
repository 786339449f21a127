package middleware

import (
	"github.com/deppfellow/dogwalk/internal/server"
)

// Middlewares groups every middleware component so the router builds
// them once.
type Middlewares struct {
	Global          *GlobalMiddlewares
	Session         *SessionMiddleware
	ContextEnhancer *ContextEnhancer
	Tracing         *TracingMiddleware
}

func NewMiddlewares(s *server.Server) *Middlewares {
	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		Session:         NewSessionMiddleware(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, s.LoggerService.GetApplication()),
	}
}
