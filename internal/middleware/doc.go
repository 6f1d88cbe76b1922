/*
Package middleware holds the gin middleware of the voting API.

# Request Logging

RequestLogger writes one structured slog line per request with method,
path, status, duration_ms and client_ip. 5xx responses log at error level
and 4xx at warn.

# Sessions

JWTAuthMiddleware reads "Authorization: Bearer <token>", verifies it and
stores the session on the gin context:

	auth := r.Group("/api/users", middleware.JWTAuthMiddleware(tokens))
	auth.GET("/me", func(c *gin.Context) {
		session, _ := middleware.Session(c)
		...
	})
*/
package middleware
