package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4" // import the Echo web framework to handle routing

    "github.com/iliyamo/session-booking/internal/handler"    // import the handlers that implement business logic
    "github.com/iliyamo/session-booking/internal/middleware" // import middleware for JWT authentication and role enforcement
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
    // The health endpoint is used by load balancers and monitoring
    // systems to verify that the service is up and running.
    e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the login endpoints.  Neither requires an
// existing token: students authenticate with their issued ID and email,
// the instructor with email and password.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
    g := e.Group("/v1/auth")
    g.POST("/login", a.StudentLogin)
    g.POST("/instructor/login", a.InstructorLogin)
}

// RegisterAvailability registers the read-only grid view.  The route is
// public: guests see capacity-derived availability, while a valid
// bearer token additionally yields the caller's booked flags.  The
// optional cache middleware (nil-safe) may be applied by the caller.
func RegisterAvailability(e *echo.Echo, av *handler.AvailabilityHandler, jwtSecret string, extra ...echo.MiddlewareFunc) {
    mws := append([]echo.MiddlewareFunc{middleware.OptionalJWT(jwtSecret)}, extra...)
    e.GET("/v1/sessions", av.GetAvailability, mws...)
}

// RegisterStudent registers the authenticated student booking flow
// under /v1.  All routes require a STUDENT token.
func RegisterStudent(e *echo.Echo, b *handler.BookingHandler, jwtSecret string) {
    g := e.Group("/v1")
    g.Use(middleware.JWTAuth(jwtSecret))
    g.Use(middleware.RequireRole("STUDENT"))
    g.POST("/bookings", b.CreateBooking)
    g.DELETE("/bookings/:id", b.CancelBooking)
    g.GET("/my-bookings", b.ListMyBookings)
}

// RegisterInstructor registers the staff surface under /v1/instructor.
// All routes require an INSTRUCTOR token.
func RegisterInstructor(e *echo.Echo, ih *handler.InstructorHandler, jwtSecret string) {
    g := e.Group("/v1/instructor")
    g.Use(middleware.JWTAuth(jwtSecret))
    g.Use(middleware.RequireRole("INSTRUCTOR"))
    g.GET("/enrollments", ih.ListEnrollments)
    g.GET("/enrollments/export", ih.ExportEnrollments)
    g.PATCH("/sessions/:id", ih.UpdateSession)
    g.POST("/students", ih.CreateStudent)
    g.GET("/students", ih.ListStudents)
    g.DELETE("/bookings", ih.ResetBookings)
}
