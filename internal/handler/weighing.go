package handler

import (
    "context"  // detached context for post-commit side effects
    "errors"   // for errors.Is comparisons
    "net/http" // HTTP status codes
    "strconv"  // formatting the weighing operator ID
    "time"     // timestamp formatting

    "github.com/labstack/echo/v4"

    "github.com/measaura/netlify-pond-booking-sub001/internal/cache"
    "github.com/measaura/netlify-pond-booking-sub001/internal/model"
    "github.com/measaura/netlify-pond-booking-sub001/internal/qr"
    "github.com/measaura/netlify-pond-booking-sub001/internal/queue"
    "github.com/measaura/netlify-pond-booking-sub001/internal/repository"
    queuepublisher "github.com/measaura/netlify-pond-booking-sub001/internal/service"
    "github.com/measaura/netlify-pond-booking-sub001/internal/utils"
)

// WeighingHandler records catches scanned at the weighing station.
// The catch insert is the only critical write; stats upkeep,
// achievement evaluation, cache invalidation and notifications all
// run after commit and are allowed to fail without affecting the
// recorded catch.
type WeighingHandler struct {
    RodRepo   *repository.RodRepo
    EventRepo *repository.EventRepo
    CatchRepo *repository.CatchRepo
    StatsRepo *repository.StatsRepo
    Cache     *cache.LeaderboardCache
    RodPrefix string
}

// NewWeighingHandler constructs a WeighingHandler.  Cache may wrap a
// nil Redis client; it degrades to a no-op.
func NewWeighingHandler(rodRepo *repository.RodRepo, eventRepo *repository.EventRepo, catchRepo *repository.CatchRepo, statsRepo *repository.StatsRepo, lbCache *cache.LeaderboardCache, rodPrefix string) *WeighingHandler {
    if rodRepo == nil || eventRepo == nil || catchRepo == nil || statsRepo == nil {
        panic("nil repository passed to NewWeighingHandler")
    }
    return &WeighingHandler{
        RodRepo:   rodRepo,
        EventRepo: eventRepo,
        CatchRepo: catchRepo,
        StatsRepo: statsRepo,
        Cache:     lbCache,
        RodPrefix: rodPrefix,
    }
}

// Upper bounds for a single scale reading.  Weights and lengths are
// stored as uint32 grams and millimetres; a glitched scale reporting
// past these would overflow the conversion and record garbage.
const (
    maxWeightKg = 500
    maxLengthCm = 1000
)

// checkMeasurements validates a scale reading before normalization.
func checkMeasurements(weightKg float64, lengthCm *float64) error {
    if weightKg <= 0 {
        return errors.New("weight_kg must be positive")
    }
    if weightKg > maxWeightKg {
        return errors.New("weight_kg exceeds the supported range")
    }
    if lengthCm != nil {
        if *lengthCm <= 0 {
            return errors.New("length_cm must be positive")
        }
        if *lengthCm > maxLengthCm {
            return errors.New("length_cm exceeds the supported range")
        }
    }
    return nil
}

// recordInput is the request shape for POST /v1/weighing/record.
// Weight arrives in kilograms and length in centimetres as reported
// by the scale; both are normalized to integer minor units before
// storage.
type recordInput struct {
    QRCode   string   `json:"qr_code"`
    WeightKg float64  `json:"weight_kg"`
    LengthCm *float64 `json:"length_cm"`
    Species  *string  `json:"species"`
    GameID   *uint64  `json:"game_id"`
    ScaleID  *string  `json:"scale_id"`
    Notes    *string  `json:"notes"`
    Verified bool     `json:"verified"`
}

// catchView is the JSON projection of a recorded catch.
type catchView struct {
    ID          uint64  `json:"id"`
    RodID       uint64  `json:"rod_id"`
    UserID      uint64  `json:"user_id"`
    EventID     *uint64 `json:"event_id,omitempty"`
    GameID      *uint64 `json:"game_id,omitempty"`
    WeightGrams uint32   `json:"weight_grams"`
    WeightKg    float64  `json:"weight_kg"`
    LengthMM    *uint32  `json:"length_mm,omitempty"`
    LengthCm    *float64 `json:"length_cm,omitempty"`
    Species     *string  `json:"species,omitempty"`
    Verified    bool    `json:"verified"`
    CaughtAt    string  `json:"caught_at"`
    CurrentRank *uint32 `json:"current_rank,omitempty"`
}

// achievementsMet filters the rule table down to the rules the given
// aggregates satisfy.  Pure; unlock bookkeeping happens elsewhere.
func achievementsMet(stats *model.UserStats, rules []model.Achievement) []model.Achievement {
    met := make([]model.Achievement, 0)
    for _, rule := range rules {
        var value uint64
        switch rule.ThresholdType {
        case model.ThresholdTotalCatches:
            value = stats.TotalCatches
        case model.ThresholdTotalWeight:
            value = stats.TotalWeightGrams
        case model.ThresholdBiggestCatch:
            value = uint64(stats.BiggestGrams)
        default:
            continue
        }
        if value >= rule.ThresholdValue {
            met = append(met, rule)
        }
    }
    return met
}

// Record handles POST /v1/weighing/record.  The scanned QR must be an
// ACTIVE rod bound to a checked-in seat; event catches are attributed
// to a game and answered with the angler's live rank.
func (h *WeighingHandler) Record(c echo.Context) error {
    operatorID, err := getUserID(c)
    if err != nil {
        return respondErr(c, http.StatusUnauthorized, kindUnauthorized, "unauthorized")
    }
    var in recordInput
    if err := c.Bind(&in); err != nil {
        return respondErr(c, http.StatusBadRequest, kindValidation, "invalid request body")
    }
    if in.QRCode == "" {
        return respondErr(c, http.StatusBadRequest, kindValidation, "qr_code is required")
    }
    if qr.Route(in.QRCode, h.RodPrefix) != qr.KindRod {
        return respondErr(c, http.StatusBadRequest, kindValidation, "seat ticket presented; scan the rod credential to weigh")
    }
    if err := checkMeasurements(in.WeightKg, in.LengthCm); err != nil {
        return respondErr(c, http.StatusBadRequest, kindValidation, err.Error())
    }

    ctx := c.Request().Context()
    wc, err := h.RodRepo.ResolveWeighByQR(ctx, in.QRCode)
    if err != nil {
        if errors.Is(err, repository.ErrRodNotFound) {
            return respondErr(c, http.StatusNotFound, kindNotFound, "rod not found")
        }
        return respondErr(c, http.StatusInternalServerError, kindInternal, "failed to resolve rod")
    }
    if wc.Rod.Status != model.RodActive {
        return respondErr(c, http.StatusConflict, kindConflict, repository.ErrRodNotActive.Error())
    }
    if !wc.SeatCheckedIn || wc.SeatStatus != model.SeatCheckedIn {
        return respondErr(c, http.StatusConflict, kindConflict, repository.ErrNotCheckedIn.Error())
    }

    rec := model.CatchRecord{
        RodID:       wc.Rod.ID,
        UserID:      wc.Rod.UserID,
        WeightGrams: utils.WeightToGrams(in.WeightKg),
        Species:     in.Species,
        Verified:    in.Verified,
        WeighedBy:   strconv.FormatUint(operatorID, 10),
        ScaleID:     in.ScaleID,
        Notes:       in.Notes,
    }
    if in.LengthCm != nil {
        mm := utils.LengthToMM(*in.LengthCm)
        rec.LengthMM = &mm
    }

    // Event catches must land in a game so boards can be scoped.
    if wc.BookingType == model.BookingTypeEvent && wc.EventID != nil {
        games, err := h.EventRepo.ListGames(ctx, *wc.EventID)
        if err != nil {
            return respondErr(c, http.StatusInternalServerError, kindInternal, "failed to load event games")
        }
        if len(games) == 0 {
            return respondErr(c, http.StatusConflict, kindConflict, repository.ErrNoGameConfigured.Error())
        }
        gameID := games[0].ID
        if in.GameID != nil {
            if _, err := h.EventRepo.GetGame(ctx, *wc.EventID, *in.GameID); err != nil {
                return respondErr(c, http.StatusBadRequest, kindValidation, "unknown game for event")
            }
            gameID = *in.GameID
        }
        rec.EventID = wc.EventID
        rec.GameID = &gameID
    }

    tx, err := h.RodRepo.DB().BeginTx(ctx, nil)
    if err != nil {
        return respondErr(c, http.StatusInternalServerError, kindInternal, "failed to start transaction")
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()
    if err := h.CatchRepo.CreateTx(ctx, tx, &rec); err != nil {
        return respondErr(c, http.StatusInternalServerError, kindInternal, "failed to record catch")
    }
    if err := tx.Commit(); err != nil {
        return respondErr(c, http.StatusInternalServerError, kindInternal, "failed to commit transaction")
    }
    committed = true

    view := catchView{
        ID:          rec.ID,
        RodID:       rec.RodID,
        UserID:      rec.UserID,
        EventID:     rec.EventID,
        GameID:      rec.GameID,
        WeightGrams: rec.WeightGrams,
        WeightKg:    utils.GramsToKg(rec.WeightGrams),
        LengthMM:    rec.LengthMM,
        Species:     rec.Species,
        Verified:    rec.Verified,
        CaughtAt:    rec.CaughtAt.UTC().Format(time.RFC3339Nano),
    }
    if rec.LengthMM != nil {
        cm := utils.MMToCm(*rec.LengthMM)
        view.LengthCm = &cm
    }

    // Live rank is answered synchronously so the station display can
    // show it on the receipt; failure degrades to a rank-less reply.
    if rec.EventID != nil && rec.GameID != nil {
        if rank, err := h.CatchRepo.RankOfCatch(ctx, *rec.EventID, *rec.GameID, &rec); err == nil {
            view.CurrentRank = &rank
        } else {
            c.Logger().Errorf("rank lookup failed for catch %d: %v", rec.ID, err)
        }
        h.Cache.Invalidate(ctx,
            h.Cache.EventKey(*rec.EventID, nil),
            h.Cache.EventKey(*rec.EventID, rec.GameID),
        )
    }

    // Aggregates and achievements are derived data; errors are logged
    // and never surfaced to the station.
    if err := h.StatsRepo.ApplyCatch(ctx, rec.UserID, rec.WeightGrams); err != nil {
        c.Logger().Errorf("stats update failed for user %d: %v", rec.UserID, err)
    } else {
        h.evaluateAchievements(ctx, c, rec.UserID)
    }

    go func(ev queue.CatchRecordedEvent) {
        pubCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        _ = queuepublisher.PublishNotification(pubCtx, queue.Notification{
            Kind:  queue.KindCatchRecorded,
            Catch: &ev,
        })
    }(queue.CatchRecordedEvent{
        CatchID:     rec.ID,
        UserID:      rec.UserID,
        EventID:     rec.EventID,
        GameID:      rec.GameID,
        WeightGrams: rec.WeightGrams,
        CurrentRank: view.CurrentRank,
        CaughtAt:    rec.CaughtAt.UTC().Format(time.RFC3339Nano),
    })

    return respondOK(c, http.StatusCreated, view)
}

// evaluateAchievements unlocks every rule the user's fresh aggregates
// satisfy and announces each first-time unlock.  The unique key on
// user_achievements makes re-evaluation after every catch safe.
func (h *WeighingHandler) evaluateAchievements(ctx context.Context, c echo.Context, userID uint64) {
    stats, err := h.StatsRepo.Get(ctx, userID)
    if err != nil {
        c.Logger().Errorf("stats read failed for user %d: %v", userID, err)
        return
    }
    rules, err := h.StatsRepo.ListAchievements(ctx)
    if err != nil {
        c.Logger().Errorf("achievement rules read failed: %v", err)
        return
    }
    for _, rule := range achievementsMet(stats, rules) {
        unlock, err := h.StatsRepo.Unlock(ctx, userID, rule.ID)
        if err != nil {
            c.Logger().Errorf("achievement unlock failed for user %d rule %s: %v", userID, rule.Code, err)
            continue
        }
        if unlock == nil {
            continue
        }
        go func(ev queue.AchievementUnlockedEvent) {
            pubCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
            defer cancel()
            _ = queuepublisher.PublishNotification(pubCtx, queue.Notification{
                Kind:        queue.KindAchievementUnlocked,
                Achievement: &ev,
            })
        }(queue.AchievementUnlockedEvent{
            UserID:          userID,
            AchievementCode: rule.Code,
            AchievementName: rule.Name,
            UnlockedAt:      unlock.UnlockedAt.UTC().Format(time.RFC3339),
        })
    }
}
