package handler

import (
    "context"  // helper signatures below take the request context
    "net/http" // HTTP status codes
    "strconv"  // parsing query parameters
    "time"     // board timestamps

    "github.com/labstack/echo/v4"

    "github.com/measaura/netlify-pond-booking-sub001/internal/cache"
    "github.com/measaura/netlify-pond-booking-sub001/internal/leaderboard"
    "github.com/measaura/netlify-pond-booking-sub001/internal/repository"
)

// LeaderboardHandler serves the public standings.  Boards are always
// recomputed from catch records; the Redis cache in front only bounds
// how often that replay happens, never what it produces.
type LeaderboardHandler struct {
    CatchRepo *repository.CatchRepo
    UserRepo  *repository.UserRepo
    Cache     *cache.LeaderboardCache
}

// NewLeaderboardHandler constructs a LeaderboardHandler.
func NewLeaderboardHandler(catchRepo *repository.CatchRepo, userRepo *repository.UserRepo, lbCache *cache.LeaderboardCache) *LeaderboardHandler {
    if catchRepo == nil || userRepo == nil {
        panic("nil repository passed to NewLeaderboardHandler")
    }
    return &LeaderboardHandler{CatchRepo: catchRepo, UserRepo: userRepo, Cache: lbCache}
}

// Overall handles GET /v1/leaderboard/overall: every catch ever
// recorded, ranked by total weight.
func (h *LeaderboardHandler) Overall(c echo.Context) error {
    ctx := c.Request().Context()
    key := h.Cache.OverallKey()
    if board := h.Cache.Get(ctx, key); board != nil {
        return respondOK(c, http.StatusOK, board)
    }
    rows, err := h.CatchRepo.AllRows(ctx)
    if err != nil {
        return respondErr(c, http.StatusInternalServerError, kindInternal, "failed to load catches")
    }
    entries := leaderboard.Overall(rows)
    if err := h.fillNames(ctx, entries); err != nil {
        return respondErr(c, http.StatusInternalServerError, kindInternal, "failed to load angler names")
    }
    board := &leaderboard.Board{
        Scope:       "overall",
        GeneratedAt: time.Now().UTC().Format(time.RFC3339),
        Entries:     entries,
    }
    h.Cache.Set(ctx, key, board)
    return respondOK(c, http.StatusOK, board)
}

// Event handles GET /v1/leaderboard/event?event_id=&game_id=.  The
// game filter is optional; without it the board spans every game of
// the event.
func (h *LeaderboardHandler) Event(c echo.Context) error {
    eventID, err := strconv.ParseUint(c.QueryParam("event_id"), 10, 64)
    if err != nil || eventID == 0 {
        return respondErr(c, http.StatusBadRequest, kindValidation, "event_id is required")
    }
    var gameID *uint64
    if raw := c.QueryParam("game_id"); raw != "" {
        id, err := strconv.ParseUint(raw, 10, 64)
        if err != nil || id == 0 {
            return respondErr(c, http.StatusBadRequest, kindValidation, "invalid game_id")
        }
        gameID = &id
    }

    ctx := c.Request().Context()
    key := h.Cache.EventKey(eventID, gameID)
    if board := h.Cache.Get(ctx, key); board != nil {
        return respondOK(c, http.StatusOK, board)
    }
    rows, err := h.CatchRepo.RowsForEvent(ctx, eventID, gameID)
    if err != nil {
        return respondErr(c, http.StatusInternalServerError, kindInternal, "failed to load catches")
    }
    entries := leaderboard.ForEvent(rows)
    if err := h.fillNames(ctx, entries); err != nil {
        return respondErr(c, http.StatusInternalServerError, kindInternal, "failed to load angler names")
    }
    board := &leaderboard.Board{
        Scope:       "event",
        EventID:     &eventID,
        GameID:      gameID,
        GeneratedAt: time.Now().UTC().Format(time.RFC3339),
        Entries:     entries,
    }
    h.Cache.Set(ctx, key, board)
    return respondOK(c, http.StatusOK, board)
}

// fillNames resolves user IDs to display names in one IN query.
// Unknown IDs (deleted accounts) simply stay nameless.
func (h *LeaderboardHandler) fillNames(ctx context.Context, entries []leaderboard.Entry) error {
    if len(entries) == 0 {
        return nil
    }
    ids := make([]uint64, 0, len(entries))
    for i := range entries {
        ids = append(ids, entries[i].UserID)
    }
    names, err := h.UserRepo.NamesByIDs(ctx, ids)
    if err != nil {
        return err
    }
    for i := range entries {
        entries[i].Name = names[entries[i].UserID]
    }
    return nil
}
