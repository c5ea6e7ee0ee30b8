// Package middleware provides cross-cutting request middleware for the
// router: request ID propagation and structured request logging. Middleware
// is generic over the handler context, so it composes with custom context
// types the same way it does with the default one.
//
//	r := router.New[*router.Context]()
//	r.Use(
//		middleware.RequestID[*router.Context](),
//		middleware.LoggingWithLogger[*router.Context](log),
//	)
package middleware
