package middleware

import (
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestRejectRateLimitedUsesEnvelope(t *testing.T) {
    e := echo.New()
    req := httptest.NewRequest(http.MethodPost, "/v1/checkins/scan", nil)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)

    require.NoError(t, rejectRateLimited(c, 3))
    assert.Equal(t, http.StatusTooManyRequests, rec.Code)
    assert.Equal(t, "3", rec.Header().Get("Retry-After"))

    var body struct {
        OK    bool `json:"ok"`
        Error struct {
            Kind       string `json:"kind"`
            Message    string `json:"message"`
            RetryAfter int    `json:"retry_after"`
        } `json:"error"`
    }
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
    assert.False(t, body.OK)
    assert.Equal(t, "rate_limited", body.Error.Kind)
    assert.Equal(t, "rate limit exceeded", body.Error.Message)
    assert.Equal(t, 3, body.Error.RetryAfter)
}
