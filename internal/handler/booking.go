package handler

import (
    "database/sql" // for sentinel errors returned from repository
    "errors"       // for errors.Is comparisons
    "net/http"     // HTTP status codes
    "strconv"      // parsing path parameters
    "time"         // date validation

    "github.com/labstack/echo/v4"

    "github.com/measaura/netlify-pond-booking-sub001/internal/model"
    "github.com/measaura/netlify-pond-booking-sub001/internal/qr"
    "github.com/measaura/netlify-pond-booking-sub001/internal/repository"
    "github.com/measaura/netlify-pond-booking-sub001/internal/utils"
)

// BookingHandler groups the repositories required to create bookings,
// share seats and cancel reservations.  All methods assume JWT
// authentication has already run.  Capacity-sensitive operations run
// inside a transaction that locks the contention row (pond or event)
// first, so concurrent requests serialize and can never jointly
// exceed capacity.
type BookingHandler struct {
    BookingRepo *repository.BookingRepo
    SeatRepo    *repository.SeatRepo
    PondRepo    *repository.PondRepo
    EventRepo   *repository.EventRepo
    UserRepo    *repository.UserRepo
}

// NewBookingHandler constructs a BookingHandler with the provided
// repositories.  All dependencies must be non-nil.
func NewBookingHandler(bookingRepo *repository.BookingRepo, seatRepo *repository.SeatRepo, pondRepo *repository.PondRepo, eventRepo *repository.EventRepo, userRepo *repository.UserRepo) *BookingHandler {
    if bookingRepo == nil || seatRepo == nil || pondRepo == nil || eventRepo == nil || userRepo == nil {
        panic("nil repository passed to NewBookingHandler")
    }
    return &BookingHandler{
        BookingRepo: bookingRepo,
        SeatRepo:    seatRepo,
        PondRepo:    pondRepo,
        EventRepo:   eventRepo,
        UserRepo:    userRepo,
    }
}

// createBookingInput is the explicit request shape for POST
// /v1/bookings.  Validation happens once here; malformed data never
// reaches the repositories.
type createBookingInput struct {
    Type       string  `json:"type"`
    PondID     uint64  `json:"pond_id"`
    EventID    *uint64 `json:"event_id"`
    Date       string  `json:"date"` // YYYY-MM-DD
    TimeSlotID *uint64 `json:"time_slot_id"`
    SeatCount  uint32  `json:"seat_count"`
    PriceCents uint32  `json:"price_cents"`
}

// CreateBooking handles POST /v1/bookings.  It allocates seat_count
// BookingSeat rows with fresh unique QR codes inside one transaction.
// The capacity check and the seat insert are a single atomic unit:
// the pond (or event) row is locked FOR UPDATE before counting, so a
// concurrent booking for the same slot waits and then sees this
// booking's seats in its own count.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return respondErr(c, http.StatusUnauthorized, kindUnauthorized, "unauthorized")
    }
    var in createBookingInput
    if err := c.Bind(&in); err != nil {
        return respondErr(c, http.StatusBadRequest, kindValidation, "invalid request body")
    }
    if in.Type != model.BookingTypePond && in.Type != model.BookingTypeEvent {
        return respondErr(c, http.StatusBadRequest, kindValidation, "type must be POND or EVENT")
    }
    if in.SeatCount == 0 {
        return respondErr(c, http.StatusBadRequest, kindValidation, "seat_count must be positive")
    }
    date, err := time.ParseInLocation("2006-01-02", in.Date, time.UTC)
    if err != nil {
        return respondErr(c, http.StatusBadRequest, kindValidation, "date must be YYYY-MM-DD")
    }
    today := time.Now().UTC().Truncate(24 * time.Hour)
    if date.Before(today) {
        return respondErr(c, http.StatusBadRequest, kindValidation, "date is in the past")
    }

    ctx := c.Request().Context()
    rec := repository.BookingRecord{
        Reference:   utils.NewBookingReference(),
        Type:        in.Type,
        UserID:      userID,
        BookingDate: in.Date,
        SeatCount:   in.SeatCount,
        PriceCents:  in.PriceCents,
        Status:      model.BookingActive,
    }

    switch in.Type {
    case model.BookingTypePond:
        if in.PondID == 0 || in.TimeSlotID == nil || *in.TimeSlotID == 0 {
            return respondErr(c, http.StatusBadRequest, kindValidation, "pond_id and time_slot_id are required")
        }
        pond, err := h.PondRepo.GetByID(ctx, in.PondID)
        if err != nil {
            if errors.Is(err, sql.ErrNoRows) {
                return respondErr(c, http.StatusBadRequest, kindValidation, "unknown pond")
            }
            return respondErr(c, http.StatusInternalServerError, kindInternal, "database error")
        }
        if !pond.IsActive {
            return respondErr(c, http.StatusBadRequest, kindValidation, "pond is not accepting bookings")
        }
        if _, err := h.PondRepo.GetTimeSlot(ctx, *in.TimeSlotID); err != nil {
            if errors.Is(err, sql.ErrNoRows) {
                return respondErr(c, http.StatusBadRequest, kindValidation, "unknown time slot")
            }
            return respondErr(c, http.StatusInternalServerError, kindInternal, "database error")
        }
        rec.PondID = in.PondID
        rec.TimeSlotID = in.TimeSlotID
    case model.BookingTypeEvent:
        if in.EventID == nil || *in.EventID == 0 {
            return respondErr(c, http.StatusBadRequest, kindValidation, "event_id is required")
        }
        ev, err := h.EventRepo.GetByID(ctx, *in.EventID)
        if err != nil {
            if errors.Is(err, sql.ErrNoRows) {
                return respondErr(c, http.StatusBadRequest, kindValidation, "unknown event")
            }
            return respondErr(c, http.StatusInternalServerError, kindInternal, "database error")
        }
        if ev.EventDate.UTC().Format("2006-01-02") != in.Date {
            return respondErr(c, http.StatusBadRequest, kindValidation, "date does not match event date")
        }
        rec.PondID = ev.PondID
        rec.EventID = in.EventID
    }

    tx, err := h.BookingRepo.DB().BeginTx(ctx, nil)
    if err != nil {
        return respondErr(c, http.StatusInternalServerError, kindInternal, "failed to start transaction")
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    // Lock the contention row and check remaining capacity.  For pond
    // bookings the unit is (pond, date, slot); for events it is the
    // event's participant cap.
    var capacity, taken uint32
    switch in.Type {
    case model.BookingTypePond:
        capacity, err = h.PondRepo.LockForBookingTx(ctx, tx, rec.PondID)
        if err == nil {
            taken, err = h.PondRepo.CountBookedSeatsTx(ctx, tx, rec.PondID, *rec.TimeSlotID, rec.BookingDate)
        }
    case model.BookingTypeEvent:
        capacity, err = h.EventRepo.LockForBookingTx(ctx, tx, *rec.EventID)
        if err == nil {
            taken, err = h.EventRepo.CountEntriesTx(ctx, tx, *rec.EventID)
        }
    }
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return respondErr(c, http.StatusBadRequest, kindValidation, "unknown or inactive booking target")
        }
        return respondErr(c, http.StatusInternalServerError, kindInternal, "failed to check capacity")
    }
    if err := checkCapacity(capacity, taken, in.SeatCount); err != nil {
        return respondErr(c, http.StatusConflict, kindConflict, err.Error())
    }

    if err := h.BookingRepo.CreateTx(ctx, tx, &rec); err != nil {
        return respondErr(c, http.StatusInternalServerError, kindInternal, "failed to create booking")
    }
    seats := make([]repository.BookingSeatRecord, 0, in.SeatCount)
    for no := uint32(1); no <= in.SeatCount; no++ {
        code, err := qr.NewSeatQR(rec.ID, no)
        if err != nil {
            return respondErr(c, http.StatusInternalServerError, kindInternal, "failed to generate seat qr")
        }
        seats = append(seats, repository.BookingSeatRecord{
            BookingID: rec.ID,
            SeatNo:    no,
            QRCode:    code,
            Status:    model.SeatUnassigned,
        })
    }
    if err := h.BookingRepo.CreateSeatsBulkTx(ctx, tx, seats); err != nil {
        return respondErr(c, http.StatusInternalServerError, kindInternal, "failed to create seats")
    }
    if err := tx.Commit(); err != nil {
        return respondErr(c, http.StatusInternalServerError, kindInternal, "failed to commit transaction")
    }
    committed = true

    detail, err := h.BookingRepo.GetDetail(ctx, rec.ID)
    if err != nil {
        return respondErr(c, http.StatusInternalServerError, kindInternal, "failed to load booking")
    }
    return respondOK(c, http.StatusCreated, detail)
}

// checkCapacity rejects a request whose seats would not all fit in
// the remaining capacity.  Partial allocation is never attempted.
func checkCapacity(capacity, taken, requested uint32) error {
    if taken+requested > capacity {
        return repository.ErrCapacityExceeded
    }
    return nil
}

// checkShareable rejects re-sharing of an occupied seat.  Unoccupied
// seats (UNASSIGNED, SHARED, or CHECKED_OUT after a station reset)
// may be bound to a new recipient.
func checkShareable(seatStatus string) error {
    if seatStatus == model.SeatCheckedIn {
        return repository.ErrSeatAlreadyCheckedIn
    }
    return nil
}

// shareSeatInput is the request shape for seat sharing.
type shareSeatInput struct {
    SeatID uint64 `json:"seat_id"`
    Email  string `json:"email"`
}

// ShareSeat handles POST /v1/bookings/:id/seats/share.  It binds a
// seat to a recipient identified by email.  Seats are immutable once
// occupied: a checked-in seat cannot be re-shared.  An unoccupied
// seat may be re-shared, which simply re-binds it.
func (h *BookingHandler) ShareSeat(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return respondErr(c, http.StatusUnauthorized, kindUnauthorized, "unauthorized")
    }
    bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || bookingID == 0 {
        return respondErr(c, http.StatusBadRequest, kindValidation, "invalid booking id")
    }
    var in shareSeatInput
    if err := c.Bind(&in); err != nil {
        return respondErr(c, http.StatusBadRequest, kindValidation, "invalid request body")
    }
    if in.SeatID == 0 || in.Email == "" {
        return respondErr(c, http.StatusBadRequest, kindValidation, "seat_id and email are required")
    }
    ctx := c.Request().Context()

    recipient, err := h.UserRepo.GetByEmail(ctx, in.Email)
    if err != nil {
        if errors.Is(err, repository.ErrUnknownRecipient) {
            return respondErr(c, http.StatusNotFound, kindNotFound, "no account matches email")
        }
        return respondErr(c, http.StatusInternalServerError, kindInternal, "database error")
    }

    tx, err := h.BookingRepo.DB().BeginTx(ctx, nil)
    if err != nil {
        return respondErr(c, http.StatusInternalServerError, kindInternal, "failed to start transaction")
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    ownerID, status, err := h.BookingRepo.LockTx(ctx, tx, bookingID)
    if err != nil {
        if errors.Is(err, repository.ErrBookingNotFound) {
            return respondErr(c, http.StatusNotFound, kindNotFound, "booking not found")
        }
        return respondErr(c, http.StatusInternalServerError, kindInternal, "failed to load booking")
    }
    if ownerID != userID && !isStaff(c) {
        return respondErr(c, http.StatusForbidden, kindForbidden, "forbidden")
    }
    if status != model.BookingActive {
        return respondErr(c, http.StatusConflict, kindConflict, "booking is not active")
    }

    seatStatus, err := h.SeatRepo.LockForShareTx(ctx, tx, in.SeatID, bookingID)
    if err != nil {
        if errors.Is(err, repository.ErrSeatNotFound) {
            return respondErr(c, http.StatusNotFound, kindNotFound, "seat not found in booking")
        }
        return respondErr(c, http.StatusInternalServerError, kindInternal, "failed to load seat")
    }
    if err := checkShareable(seatStatus); err != nil {
        return respondErr(c, http.StatusConflict, kindConflict, err.Error())
    }
    if err := h.SeatRepo.ShareTx(ctx, tx, in.SeatID, recipient.ID, userID); err != nil {
        return respondErr(c, http.StatusInternalServerError, kindInternal, "failed to share seat")
    }
    if err := tx.Commit(); err != nil {
        return respondErr(c, http.StatusInternalServerError, kindInternal, "failed to commit transaction")
    }
    committed = true

    return respondOK(c, http.StatusOK, echo.Map{
        "seat_id":     in.SeatID,
        "assigned_to": recipient.ID,
        "email":       recipient.Email,
        "status":      model.SeatShared,
    })
}

// CancelBooking handles DELETE /v1/bookings/:id.  The booking is
// marked cancelled and its seats stop counting against capacity, but
// all rows are preserved for audit.
func (h *BookingHandler) CancelBooking(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return respondErr(c, http.StatusUnauthorized, kindUnauthorized, "unauthorized")
    }
    bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || bookingID == 0 {
        return respondErr(c, http.StatusBadRequest, kindValidation, "invalid booking id")
    }
    ctx := c.Request().Context()
    tx, err := h.BookingRepo.DB().BeginTx(ctx, nil)
    if err != nil {
        return respondErr(c, http.StatusInternalServerError, kindInternal, "failed to start transaction")
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    ownerID, status, err := h.BookingRepo.LockTx(ctx, tx, bookingID)
    if err != nil {
        if errors.Is(err, repository.ErrBookingNotFound) {
            return respondErr(c, http.StatusNotFound, kindNotFound, "booking not found")
        }
        return respondErr(c, http.StatusInternalServerError, kindInternal, "failed to load booking")
    }
    if ownerID != userID && !isStaff(c) {
        return respondErr(c, http.StatusForbidden, kindForbidden, "forbidden")
    }
    if status != model.BookingActive {
        return respondErr(c, http.StatusConflict, kindConflict, "booking is not active")
    }
    if err := h.BookingRepo.CancelTx(ctx, tx, bookingID); err != nil {
        return respondErr(c, http.StatusInternalServerError, kindInternal, "failed to cancel booking")
    }
    if err := tx.Commit(); err != nil {
        return respondErr(c, http.StatusInternalServerError, kindInternal, "failed to commit transaction")
    }
    committed = true
    return respondOK(c, http.StatusOK, echo.Map{"id": bookingID, "status": model.BookingCancelled})
}

// GetBooking handles GET /v1/bookings/:id and returns the booking
// with its seats.  Only the owner or staff may view it.
func (h *BookingHandler) GetBooking(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return respondErr(c, http.StatusUnauthorized, kindUnauthorized, "unauthorized")
    }
    bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || bookingID == 0 {
        return respondErr(c, http.StatusBadRequest, kindValidation, "invalid booking id")
    }
    detail, err := h.BookingRepo.GetDetail(c.Request().Context(), bookingID)
    if err != nil {
        if errors.Is(err, repository.ErrBookingNotFound) {
            return respondErr(c, http.StatusNotFound, kindNotFound, "booking not found")
        }
        return respondErr(c, http.StatusInternalServerError, kindInternal, "failed to load booking")
    }
    if detail.UserID != userID && !isStaff(c) {
        return respondErr(c, http.StatusForbidden, kindForbidden, "forbidden")
    }
    return respondOK(c, http.StatusOK, detail)
}

// ListMyBookings handles GET /v1/my-bookings for the authenticated
// angler.  Returns an empty list when no bookings exist.
func (h *BookingHandler) ListMyBookings(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return respondErr(c, http.StatusUnauthorized, kindUnauthorized, "unauthorized")
    }
    details, err := h.BookingRepo.ListByUser(c.Request().Context(), userID)
    if err != nil {
        return respondErr(c, http.StatusInternalServerError, kindInternal, "failed to load bookings")
    }
    return respondOK(c, http.StatusOK, echo.Map{"items": details})
}
