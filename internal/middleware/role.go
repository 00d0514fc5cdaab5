package middleware // middleware provides shared request processing for handlers

import (
    "net/http" // standard HTTP status codes

    "github.com/labstack/echo/v4"
)

// RequireRole returns a middleware that enforces that the
// authenticated caller holds one of the given roles.  The values
// correspond to the JWT's "role" claim, which JWTAuth stores in the
// context under "role".  Anglers book; STAFF and ADMIN additionally
// operate the gate, printing and weighing stations.  Rejections use
// the same failure envelope the handlers emit so station firmware
// parses one error shape everywhere.
func RequireRole(roles ...string) echo.MiddlewareFunc {
    allowed := make(map[string]bool, len(roles))
    for _, r := range roles {
        allowed[r] = true
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            role, ok := c.Get("role").(string)
            if !ok || !allowed[role] {
                return c.JSON(http.StatusForbidden, echo.Map{
                    "ok":    false,
                    "error": echo.Map{"kind": "forbidden", "message": "insufficient role"},
                })
            }
            return next(c)
        }
    }
}
