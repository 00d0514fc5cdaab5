package handler

import (
    "errors"   // for errors.Is comparisons
    "net/http" // HTTP status codes
    "strconv"  // formatting the issuing staff ID
    "time"     // timestamp formatting

    "github.com/labstack/echo/v4"

    "github.com/measaura/netlify-pond-booking-sub001/internal/model"
    "github.com/measaura/netlify-pond-booking-sub001/internal/qr"
    "github.com/measaura/netlify-pond-booking-sub001/internal/repository"
)

// RodHandler issues rod credentials at the printing station and
// serves rod status and history lookups.  Issuance locks the seat
// row FOR UPDATE before touching fishing_rods, so concurrent prints
// for the same seat serialize and the one-active-rod invariant holds
// even when no rod exists yet.
type RodHandler struct {
    SeatRepo  *repository.SeatRepo
    RodRepo   *repository.RodRepo
    RodPrefix string
}

// NewRodHandler constructs a RodHandler.
func NewRodHandler(seatRepo *repository.SeatRepo, rodRepo *repository.RodRepo, rodPrefix string) *RodHandler {
    if seatRepo == nil || rodRepo == nil {
        panic("nil repository passed to NewRodHandler")
    }
    return &RodHandler{SeatRepo: seatRepo, RodRepo: rodRepo, RodPrefix: rodPrefix}
}

// printInput is the request shape for POST /v1/rod-printing/print.
// QRCode is the SEAT ticket being presented; the response carries the
// newly generated rod QR.
type printInput struct {
    QRCode        string `json:"qr_code"`
    StationID     string `json:"station_id"`
    IsReplacement bool   `json:"is_replacement"`
}

// rodView is the JSON projection of a rod row.
type rodView struct {
    ID             uint64  `json:"id"`
    SeatID         uint64  `json:"seat_id"`
    UserID         uint64  `json:"user_id"`
    QRCode         string  `json:"qr_code"`
    Version        uint32  `json:"version"`
    Status         string  `json:"status"`
    PreviousQRCode *string `json:"previous_qr_code,omitempty"`
    VoidReason     *string `json:"void_reason,omitempty"`
    VoidedAt       *string `json:"voided_at,omitempty"`
    IssuedBy       string  `json:"issued_by"`
    StationID      string  `json:"station_id"`
    CreatedAt      string  `json:"created_at"`
}

func newRodView(r *model.FishingRod) rodView {
    v := rodView{
        ID:             r.ID,
        SeatID:         r.SeatID,
        UserID:         r.UserID,
        QRCode:         r.QRCode,
        Version:        r.Version,
        Status:         r.Status,
        PreviousQRCode: r.PreviousQRCode,
        VoidReason:     r.VoidReason,
        IssuedBy:       r.IssuedBy,
        StationID:      r.StationID,
        CreatedAt:      r.CreatedAt.UTC().Format(time.RFC3339),
    }
    if r.VoidedAt != nil {
        s := r.VoidedAt.UTC().Format(time.RFC3339)
        v.VoidedAt = &s
    }
    return v
}

// rodIssuance is the decision for the next rod printed for a seat:
// its version, the QR it supersedes, and whether the current rod has
// to be voided first.
type rodIssuance struct {
    Version    uint32
    PreviousQR *string
    VoidActive bool
}

// nextRodIssuance numbers the next rod for a seat.  A replacement
// continues from the active rod and chains back to its QR; with no
// active rod the chain continues past the highest version ever
// issued, so numbering stays monotonic even when every prior rod was
// voided.
func nextRodIssuance(active *model.FishingRod, maxVersion uint32) rodIssuance {
    if active != nil {
        return rodIssuance{Version: active.Version + 1, PreviousQR: &active.QRCode, VoidActive: true}
    }
    return rodIssuance{Version: maxVersion + 1}
}

// Print handles POST /v1/rod-printing/print.  A first print requires
// the seat to be checked in and to have no active rod; a replacement
// voids the current rod and issues the next version linked back to
// the voided QR.
func (h *RodHandler) Print(c echo.Context) error {
    staffID, err := getUserID(c)
    if err != nil {
        return respondErr(c, http.StatusUnauthorized, kindUnauthorized, "unauthorized")
    }
    var in printInput
    if err := c.Bind(&in); err != nil {
        return respondErr(c, http.StatusBadRequest, kindValidation, "invalid request body")
    }
    if in.QRCode == "" {
        return respondErr(c, http.StatusBadRequest, kindValidation, "qr_code is required")
    }
    if qr.Route(in.QRCode, h.RodPrefix) == qr.KindRod {
        return respondErr(c, http.StatusBadRequest, kindValidation, "rod credential presented; scan the seat ticket to print")
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
    if scan.Seat.Status != model.SeatCheckedIn || scan.Seat.AssignedTo == nil {
        return respondErr(c, http.StatusConflict, kindConflict, repository.ErrNotCheckedIn.Error())
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

    // The seat row is the serialization point: the ACTIVE rod lookup
    // locks nothing when the seat has no rod yet.
    if err := h.SeatRepo.LockIssuanceTx(ctx, tx, scan.Seat.ID); err != nil {
        return respondErr(c, http.StatusInternalServerError, kindInternal, "failed to lock seat")
    }
    active, err := h.RodRepo.ActiveForSeatTx(ctx, tx, scan.Seat.ID)
    if err != nil {
        return respondErr(c, http.StatusInternalServerError, kindInternal, "failed to load active rod")
    }
    if active != nil && !in.IsReplacement {
        return respondErr(c, http.StatusConflict, kindConflict, repository.ErrRodAlreadyIssued.Error())
    }

    var maxVersion uint32
    if active == nil {
        maxVersion, err = h.RodRepo.MaxVersionTx(ctx, tx, scan.Seat.ID)
        if err != nil {
            return respondErr(c, http.StatusInternalServerError, kindInternal, "failed to load rod history")
        }
    }
    plan := nextRodIssuance(active, maxVersion)
    if plan.VoidActive {
        if err := h.RodRepo.VoidTx(ctx, tx, active.ID, "REPLACED"); err != nil {
            return respondErr(c, http.StatusInternalServerError, kindInternal, "failed to void rod")
        }
    }

    rod := model.FishingRod{
        SeatID:         scan.Seat.ID,
        UserID:         *scan.Seat.AssignedTo,
        Status:         model.RodActive,
        Version:        plan.Version,
        PreviousQRCode: plan.PreviousQR,
        IssuedBy:       strconv.FormatUint(staffID, 10),
        StationID:      in.StationID,
    }
    rod.QRCode, err = qr.NewRodQR(h.RodPrefix, scan.Seat.BookingID, scan.Seat.SeatNo)
    if err != nil {
        return respondErr(c, http.StatusInternalServerError, kindInternal, "failed to generate rod qr")
    }
    if err := h.RodRepo.CreateTx(ctx, tx, &rod); err != nil {
        return respondErr(c, http.StatusInternalServerError, kindInternal, "failed to issue rod")
    }
    if err := tx.Commit(); err != nil {
        return respondErr(c, http.StatusInternalServerError, kindInternal, "failed to commit transaction")
    }
    committed = true

    return respondOK(c, http.StatusCreated, newRodView(&rod))
}

// Get handles GET /v1/rods/:qr and reports a rod's current status.
// Voided rods resolve too; a weighing station scanning a stale
// credential needs to see WHY it is refused.
func (h *RodHandler) Get(c echo.Context) error {
    code := c.Param("qr")
    if code == "" {
        return respondErr(c, http.StatusBadRequest, kindValidation, "qr code is required")
    }
    rod, err := h.RodRepo.ResolveByQR(c.Request().Context(), code)
    if err != nil {
        if errors.Is(err, repository.ErrRodNotFound) {
            return respondErr(c, http.StatusNotFound, kindNotFound, "rod not found")
        }
        return respondErr(c, http.StatusInternalServerError, kindInternal, "failed to load rod")
    }
    return respondOK(c, http.StatusOK, newRodView(rod))
}

// History handles GET /v1/rods/:qr/history and walks the full
// issuance chain of the seat the scanned rod belongs to, ordered by
// version.
func (h *RodHandler) History(c echo.Context) error {
    code := c.Param("qr")
    if code == "" {
        return respondErr(c, http.StatusBadRequest, kindValidation, "qr code is required")
    }
    ctx := c.Request().Context()
    rod, err := h.RodRepo.ResolveByQR(ctx, code)
    if err != nil {
        if errors.Is(err, repository.ErrRodNotFound) {
            return respondErr(c, http.StatusNotFound, kindNotFound, "rod not found")
        }
        return respondErr(c, http.StatusInternalServerError, kindInternal, "failed to load rod")
    }
    history, err := h.RodRepo.HistoryForSeat(ctx, rod.SeatID)
    if err != nil {
        return respondErr(c, http.StatusInternalServerError, kindInternal, "failed to load history")
    }
    views := make([]rodView, 0, len(history))
    for i := range history {
        views = append(views, newRodView(&history[i]))
    }
    return respondOK(c, http.StatusOK, echo.Map{"seat_id": rod.SeatID, "rods": views})
}
