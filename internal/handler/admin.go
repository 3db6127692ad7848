package handler

import (
    "net/http" // HTTP status codes
    "strconv"  // query parameter parsing
    "time"     // date-range parsing and sweep cutoffs

    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/stellarpath/cruise-booking/internal/service"
)

// AdminHandler serves the operator surface: cross-traveller booking
// and history searches, cruise-level cancellation with its cascade,
// cruise completion and the manual expiration sweep.  All routes sit
// behind RequireRole("ADMIN").
type AdminHandler struct {
    Lifecycle *service.BookingService
    Queries   *service.BookingQueryService
}

func NewAdminHandler(lifecycle *service.BookingService, queries *service.BookingQueryService) *AdminHandler {
    return &AdminHandler{Lifecycle: lifecycle, Queries: queries}
}

// SearchBookings handles GET /v1/admin/bookings.  Query parameters are
// optional and conjunctive: google_id, cruise_id, status, status_id,
// seat_number, from, to (RFC 3339).  When both status forms appear the
// name wins.
func (h *AdminHandler) SearchBookings(c echo.Context) error {
    q := service.BookingSearch{
        GoogleID:   c.QueryParam("google_id"),
        StatusName: c.QueryParam("status"),
    }
    if v := c.QueryParam("cruise_id"); v != "" {
        id, err := strconv.ParseUint(v, 10, 64)
        if err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid cruise_id"})
        }
        q.CruiseID = id
    }
    if v := c.QueryParam("status_id"); v != "" {
        id, err := strconv.ParseUint(v, 10, 64)
        if err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status_id"})
        }
        q.StatusID = id
    }
    if v := c.QueryParam("seat_number"); v != "" {
        n, err := strconv.ParseUint(v, 10, 32)
        if err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat_number"})
        }
        q.SeatNumber = uint32(n)
    }
    var ok bool
    if q.From, ok = queryTime(c, "from"); !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid from"})
    }
    if q.To, ok = queryTime(c, "to"); !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid to"})
    }

    views, err := h.Queries.Search(c.Request().Context(), q)
    if err != nil {
        return bookingError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"bookings": views, "count": len(views)})
}

// SearchHistory handles GET /v1/admin/booking-history with optional
// booking_id, previous_status, previous_status_id, new_status,
// new_status_id, from and to parameters.  Name forms win over id forms.
func (h *AdminHandler) SearchHistory(c echo.Context) error {
    q := service.HistorySearch{
        PreviousStatus: c.QueryParam("previous_status"),
        NewStatus:      c.QueryParam("new_status"),
    }
    if v := c.QueryParam("booking_id"); v != "" {
        id, err := strconv.ParseUint(v, 10, 64)
        if err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking_id"})
        }
        q.BookingID = id
    }
    if v := c.QueryParam("previous_status_id"); v != "" {
        id, err := strconv.ParseUint(v, 10, 64)
        if err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid previous_status_id"})
        }
        q.PreviousStatusID = &id
    }
    if v := c.QueryParam("new_status_id"); v != "" {
        id, err := strconv.ParseUint(v, 10, 64)
        if err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid new_status_id"})
        }
        q.NewStatusID = &id
    }
    var ok bool
    if q.From, ok = queryTime(c, "from"); !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid from"})
    }
    if q.To, ok = queryTime(c, "to"); !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid to"})
    }

    trail, err := h.Queries.SearchHistory(c.Request().Context(), q)
    if err != nil {
        return bookingError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"history": trail, "count": len(trail)})
}

// ListCruiseBookings handles GET /v1/cruises/:id/bookings, the manifest
// view operators use during boarding.
func (h *AdminHandler) ListCruiseBookings(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid cruise id"})
    }
    views, err := h.Queries.GetByCruise(c.Request().Context(), id)
    if err != nil {
        return bookingError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"cruise_id": id, "bookings": views})
}

// CancelCruise handles POST /v1/admin/cruises/:id/cancel.  The cruise
// is marked Cancelled and every active booking on it is cancelled in
// the same transaction.
func (h *AdminHandler) CancelCruise(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid cruise id"})
    }
    n, err := h.Lifecycle.CancelCruise(c.Request().Context(), id)
    if err != nil {
        return bookingError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"cruise_id": id, "cancelled_bookings": n})
}

// CompleteCruiseBookings handles POST /v1/admin/cruises/:id/complete.
// Paid bookings on the cruise become Completed; unpaid reservations
// are left for the expiration sweep.
func (h *AdminHandler) CompleteCruiseBookings(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid cruise id"})
    }
    n, err := h.Lifecycle.CompleteBookingsForCruise(c.Request().Context(), id)
    if err != nil {
        return bookingError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"cruise_id": id, "completed_bookings": n})
}

// ExpireBookings handles POST /v1/admin/bookings/expire.  An optional
// "cutoff" RFC 3339 parameter backdates the sweep; default is now.
func (h *AdminHandler) ExpireBookings(c echo.Context) error {
    cutoff := time.Now().UTC()
    if v := c.QueryParam("cutoff"); v != "" {
        t, err := time.Parse(time.RFC3339, v)
        if err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid cutoff"})
        }
        cutoff = t.UTC()
    }
    n, err := h.Lifecycle.ExpireBookings(c.Request().Context(), cutoff)
    if err != nil {
        return bookingError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"expired_bookings": n})
}

// queryTime parses an optional RFC 3339 query parameter.  The boolean
// is false only when a value was supplied but malformed.
func queryTime(c echo.Context, name string) (*time.Time, bool) {
    v := c.QueryParam(name)
    if v == "" {
        return nil, true
    }
    t, err := time.Parse(time.RFC3339, v)
    if err != nil {
        return nil, false
    }
    u := t.UTC()
    return &u, true
}
