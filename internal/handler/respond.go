package handler // handler defines http handlers

import (
    "errors"  // errors provides sentinel values used in getUserID
    "strconv" // strconv converts strings to numeric types

    "github.com/labstack/echo/v4" // echo defines request context types
)

// Error kinds exposed in the response envelope.  Every endpoint
// returns either {"ok":true,"data":...} or
// {"ok":false,"error":{"kind":...,"message":...}} so callers can
// branch on kind without parsing messages.
const (
    kindValidation   = "validation"   // malformed input, no state change
    kindConflict     = "conflict"     // state-dependent, inspect and retry
    kindNotFound     = "not_found"    // unknown QR, booking, seat or rod
    kindTemporal     = "temporal"     // wrong day or day passed
    kindUnauthorized = "unauthorized" // missing or invalid token
    kindForbidden    = "forbidden"    // valid token, wrong owner or role
    kindInternal     = "internal"     // database or infrastructure failure
)

// respondOK wraps data in the success envelope.
func respondOK(c echo.Context, status int, data interface{}) error {
    return c.JSON(status, echo.Map{"ok": true, "data": data})
}

// respondErr wraps an error kind and message in the failure envelope.
func respondErr(c echo.Context, status int, kind, message string) error {
    return c.JSON(status, echo.Map{
        "ok":    false,
        "error": echo.Map{"kind": kind, "message": message},
    })
}

// getUserID extracts the user_id stored by the JWT middleware and
// converts it to uint64.  The claim arrives as whatever type the
// token encoder used, so all plausible representations are accepted.
func getUserID(c echo.Context) (uint64, error) {
    v := c.Get("user_id")
    switch t := v.(type) {
    case uint64:
        return t, nil
    case int:
        return uint64(t), nil
    case int64:
        return uint64(t), nil
    case float64:
        return uint64(t), nil
    case string:
        if n, err := strconv.ParseUint(t, 10, 64); err == nil {
            return n, nil
        }
    }
    return 0, errors.New("no user id in context")
}

// isStaff reports whether the caller's role allows operating scan,
// print and weighing stations.
func isStaff(c echo.Context) bool {
    role, _ := c.Get("role").(string)
    return role == "STAFF" || role == "ADMIN"
}
