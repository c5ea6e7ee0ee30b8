// Package handler defines the shared contracts between the router,
// middleware, and response layers: the request Context interface, the
// generic HandlerFunc, and the Middleware and ErrorHandler shapes.
//
// HTTP and WebSocket routes register the same HandlerFunc type; a WebSocket
// handler simply returns a Response that upgrades the connection.
package handler
