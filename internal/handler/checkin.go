package handler

import (
    "context"  // detached context for post-commit publishing
    "errors"   // for errors.Is comparisons
    "net/http" // HTTP status codes
    "strconv"  // formatting the scanning staff ID
    "time"     // date-gate comparisons

    "github.com/labstack/echo/v4"

    "github.com/measaura/netlify-pond-booking-sub001/internal/model"
    "github.com/measaura/netlify-pond-booking-sub001/internal/qr"
    "github.com/measaura/netlify-pond-booking-sub001/internal/queue"
    "github.com/measaura/netlify-pond-booking-sub001/internal/repository"
    queuepublisher "github.com/measaura/netlify-pond-booking-sub001/internal/service"
)

// CheckInHandler processes seat QR scans at the venue gate.  Scans
// are idempotent: the state transition is a single compare-and-swap
// UPDATE keyed on the SHARED status, so two stations scanning the
// same ticket produce exactly one fresh check-in and one duplicate
// acknowledgement.
type CheckInHandler struct {
    SeatRepo    *repository.SeatRepo
    CheckInRepo *repository.CheckInRepo
    RodPrefix   string // rod QR discriminator, rejected at this endpoint
}

// NewCheckInHandler constructs a CheckInHandler.
func NewCheckInHandler(seatRepo *repository.SeatRepo, checkInRepo *repository.CheckInRepo, rodPrefix string) *CheckInHandler {
    if seatRepo == nil || checkInRepo == nil {
        panic("nil repository passed to NewCheckInHandler")
    }
    return &CheckInHandler{SeatRepo: seatRepo, CheckInRepo: checkInRepo, RodPrefix: rodPrefix}
}

// scanInput is the request shape for POST /v1/checkins/scan.
type scanInput struct {
    QRCode    string `json:"qr_code"`
    StationID string `json:"station_id"`
}

// checkDay gates a scan on the booking's calendar day.  Comparison is
// date-only in UTC: a booking for today is scannable from midnight to
// midnight regardless of the slot's hours.
func checkDay(bookingDate, now time.Time) error {
    today := now.UTC().Format("2006-01-02")
    day := bookingDate.UTC().Format("2006-01-02")
    switch {
    case day > today:
        return repository.ErrWrongDay
    case day < today:
        return repository.ErrEventPassed
    default:
        return nil
    }
}

// Scan handles POST /v1/checkins/scan.  Duplicate scans are reported
// as a success variant carrying the original check-in time, and that
// answer is given even outside the booking's day so a station can
// always explain a ticket it has already admitted.
func (h *CheckInHandler) Scan(c echo.Context) error {
    staffID, err := getUserID(c)
    if err != nil {
        return respondErr(c, http.StatusUnauthorized, kindUnauthorized, "unauthorized")
    }
    var in scanInput
    if err := c.Bind(&in); err != nil {
        return respondErr(c, http.StatusBadRequest, kindValidation, "invalid request body")
    }
    if in.QRCode == "" {
        return respondErr(c, http.StatusBadRequest, kindValidation, "qr_code is required")
    }
    if qr.Route(in.QRCode, h.RodPrefix) == qr.KindRod {
        return respondErr(c, http.StatusBadRequest, kindValidation, "rod credential scanned at check-in; use the rod endpoints")
    }

    ctx := c.Request().Context()
    scan, err := h.SeatRepo.ResolveScanByQR(ctx, in.QRCode)
    if err != nil {
        if errors.Is(err, repository.ErrSeatNotFound) {
            return respondErr(c, http.StatusNotFound, kindNotFound, "unknown qr code")
        }
        return respondErr(c, http.StatusInternalServerError, kindInternal, "failed to resolve qr code")
    }
    if scan.BookingStatus != model.BookingActive {
        return respondErr(c, http.StatusConflict, kindConflict, "booking is not active")
    }
    if scan.Seat.AssignedTo == nil || scan.Seat.Status == model.SeatUnassigned {
        return respondErr(c, http.StatusConflict, kindConflict, repository.ErrSeatUnassigned.Error())
    }
    // A ticket that already admitted someone is acknowledged before
    // the date gate runs, so yesterday's ticket still gets a useful
    // answer instead of a temporal rejection.
    if scan.Seat.Status == model.SeatCheckedIn && scan.Seat.CheckedInAt != nil {
        return respondOK(c, http.StatusOK, alreadyCheckedInView(scan, *scan.Seat.CheckedInAt))
    }
    if err := checkDay(scan.BookingDate, time.Now()); err != nil {
        return respondErr(c, http.StatusConflict, kindTemporal, err.Error())
    }

    tx, err := h.SeatRepo.DB().BeginTx(ctx, nil)
    if err != nil {
        return respondErr(c, http.StatusInternalServerError, kindInternal, "failed to start transaction")
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    won, err := h.SeatRepo.CheckInTx(ctx, tx, scan.Seat.ID)
    if err != nil {
        return respondErr(c, http.StatusInternalServerError, kindInternal, "failed to check in")
    }
    if !won {
        // Lost the CAS race to a concurrent scan; report the winner's
        // timestamp instead of failing.
        at, err := h.SeatRepo.CheckInTimeTx(ctx, tx, scan.Seat.ID)
        if err != nil || at == nil {
            return respondErr(c, http.StatusConflict, kindConflict, "seat state changed during scan; rescan")
        }
        if err := tx.Commit(); err != nil {
            return respondErr(c, http.StatusInternalServerError, kindInternal, "failed to commit transaction")
        }
        committed = true
        return respondOK(c, http.StatusOK, alreadyCheckedInView(scan, *at))
    }
    audit, err := h.CheckInRepo.AppendTx(ctx, tx, scan.Seat.ID, *scan.Seat.AssignedTo, strconv.FormatUint(staffID, 10), in.StationID)
    if err != nil {
        return respondErr(c, http.StatusInternalServerError, kindInternal, "failed to record check-in")
    }
    if err := tx.Commit(); err != nil {
        return respondErr(c, http.StatusInternalServerError, kindInternal, "failed to commit transaction")
    }
    committed = true

    // Welcome notification is fire-and-forget; the check-in above is
    // already durable.
    go func(ev queue.CheckInWelcomeEvent) {
        pubCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        _ = queuepublisher.PublishNotification(pubCtx, queue.Notification{
            Kind:    queue.KindCheckInWelcome,
            CheckIn: &ev,
        })
    }(queue.CheckInWelcomeEvent{
        SeatID:      scan.Seat.ID,
        SeatNo:      scan.Seat.SeatNo,
        BookingRef:  scan.BookingRef,
        UserID:      *scan.Seat.AssignedTo,
        UserName:    strOrEmpty(scan.AssignedName),
        UserEmail:   strOrEmpty(scan.AssignedEmail),
        StationID:   in.StationID,
        CheckedInAt: audit.CheckedInAt.UTC().Format(time.RFC3339),
    })

    return respondOK(c, http.StatusOK, echo.Map{
        "result":        "checked_in",
        "seat_id":       scan.Seat.ID,
        "seat_no":       scan.Seat.SeatNo,
        "booking_ref":   scan.BookingRef,
        "user_id":       *scan.Seat.AssignedTo,
        "user_name":     strOrEmpty(scan.AssignedName),
        "checked_in_at": audit.CheckedInAt.UTC().Format(time.RFC3339),
    })
}

// alreadyCheckedInView is the duplicate-scan acknowledgement.  Its
// shape differs from the fresh check-in response on purpose: station
// UIs render the two cases differently.
func alreadyCheckedInView(scan *repository.ScanContext, at time.Time) echo.Map {
    view := echo.Map{
        "result":                "already_checked_in",
        "seat_id":               scan.Seat.ID,
        "seat_no":               scan.Seat.SeatNo,
        "booking_ref":           scan.BookingRef,
        "original_checkin_time": at.UTC().Format(time.RFC3339),
    }
    if scan.Seat.AssignedTo != nil {
        view["user_id"] = *scan.Seat.AssignedTo
        view["user_name"] = strOrEmpty(scan.AssignedName)
    }
    return view
}

// strOrEmpty unwraps an optional string column.
func strOrEmpty(s *string) string {
    if s == nil {
        return ""
    }
    return *s
}
