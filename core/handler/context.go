package handler

import (
	"context"
	"net/http"
)

// Context defines the contract for request contexts in the framework.
// Use router.Context for the default implementation.
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter

	// Param returns the decoded value of the named path parameter.
	Param(key string) string
	// Query returns the decoded value of the named query parameter.
	Query(key string) string
	// Wildcard returns the path tail captured by a trailing "*" segment,
	// or an empty string if the matched route had no wildcard.
	Wildcard() string

	SetValue(key, val any)
}

// RouteInfo carries the values extracted while matching a request path.
// The router passes it to the context factory on every request.
type RouteInfo struct {
	// Pattern is the registered route pattern that matched.
	Pattern string
	// Params maps parameter names to decoded path segment values.
	Params map[string]string
	// Query maps query keys to decoded values.
	Query map[string]string
	// Wildcard is the unmatched path tail captured by a "*" segment.
	Wildcard string
}
