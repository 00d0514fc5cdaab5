package handler

import (
    "encoding/json" // raw payload capture
    "io"            // bounded body read
    "net/http"      // HTTP status codes
    "time"          // timestamp formatting

    "github.com/labstack/echo/v4"

    "github.com/measaura/netlify-pond-booking-sub001/internal/model"
    "github.com/measaura/netlify-pond-booking-sub001/internal/repository"
)

// maxDevicePayload bounds webhook bodies; station firmware sends
// small status blobs and anything larger is noise.
const maxDevicePayload = 64 << 10

// WebhookHandler ingests status callbacks from venue hardware
// (gates, printers, scales).  Reports are informational: they are
// stored verbatim for operations review and never feed back into
// booking, check-in or weighing state.
type WebhookHandler struct {
    DeviceRepo *repository.DeviceRepo
}

// NewWebhookHandler constructs a WebhookHandler.
func NewWebhookHandler(deviceRepo *repository.DeviceRepo) *WebhookHandler {
    if deviceRepo == nil {
        panic("nil repository passed to NewWebhookHandler")
    }
    return &WebhookHandler{DeviceRepo: deviceRepo}
}

// deviceEnvelope is the minimal shape extracted from a report; the
// complete body is stored alongside it untouched.
type deviceEnvelope struct {
    DeviceID   string `json:"device_id"`
    DeviceType string `json:"device_type"`
    Status     string `json:"status"`
}

// Receive handles POST /v1/webhooks/devices.  Accepted reports are
// acknowledged with 202; the store happens before the acknowledgement
// so an accepted report is always durable.
func (h *WebhookHandler) Receive(c echo.Context) error {
    body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxDevicePayload))
    if err != nil {
        return respondErr(c, http.StatusBadRequest, kindValidation, "failed to read body")
    }
    var env deviceEnvelope
    if err := json.Unmarshal(body, &env); err != nil {
        return respondErr(c, http.StatusBadRequest, kindValidation, "body must be JSON")
    }
    if env.DeviceID == "" {
        return respondErr(c, http.StatusBadRequest, kindValidation, "device_id is required")
    }
    ev := model.DeviceEvent{
        DeviceID:   env.DeviceID,
        DeviceType: env.DeviceType,
        Status:     env.Status,
        Payload:    string(body),
    }
    if err := h.DeviceRepo.Record(c.Request().Context(), &ev); err != nil {
        return respondErr(c, http.StatusInternalServerError, kindInternal, "failed to store report")
    }
    return respondOK(c, http.StatusAccepted, echo.Map{
        "id":          ev.ID,
        "device_id":   ev.DeviceID,
        "received_at": ev.ReceivedAt.UTC().Format(time.RFC3339),
    })
}
