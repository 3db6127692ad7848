package handler

import (
    "context"  // background contexts for post-commit event publishing
    "errors"   // sentinel error comparisons
    "net/http" // HTTP status codes
    "time"     // event timestamps

    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/stellarpath/cruise-booking/internal/model"
    "github.com/stellarpath/cruise-booking/internal/queue"
    "github.com/stellarpath/cruise-booking/internal/repository"
    "github.com/stellarpath/cruise-booking/internal/service"
    "github.com/stellarpath/cruise-booking/internal/service/queue_publisher"
)

// BookingHandler serves the traveller-facing booking surface: listing
// and reading own bookings, creating reservations, paying and
// cancelling.  Lifecycle writes go through the BookingService so every
// transition commits atomically with its history record; reads go
// through the query service.  After a successful write the handler
// publishes an advisory event to the broker; publish failures never
// affect the response.
type BookingHandler struct {
    Lifecycle *service.BookingService
    Queries   *service.BookingQueryService
}

func NewBookingHandler(lifecycle *service.BookingService, queries *service.BookingQueryService) *BookingHandler {
    return &BookingHandler{Lifecycle: lifecycle, Queries: queries}
}

// ListMy handles GET /v1/my-bookings.
func (h *BookingHandler) ListMy(c echo.Context) error {
    ident, ok := getIdentity(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    views, err := h.Queries.GetByUser(c.Request().Context(), ident.GoogleID)
    if err != nil {
        return bookingError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"bookings": views})
}

// Get handles GET /v1/bookings/:id.  Owners and admins only.
func (h *BookingHandler) Get(c echo.Context) error {
    ident, ok := getIdentity(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }
    view, err := h.Queries.GetByID(c.Request().Context(), id, ident)
    if err != nil {
        return bookingError(c, err)
    }
    return c.JSON(http.StatusOK, view)
}

// GetHistory handles GET /v1/bookings/:id/history.
func (h *BookingHandler) GetHistory(c echo.Context) error {
    ident, ok := getIdentity(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }
    trail, err := h.Queries.GetHistory(c.Request().Context(), id, ident)
    if err != nil {
        return bookingError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"booking_id": id, "history": trail})
}

// Create handles POST /v1/bookings.  The body names one cruise and one
// seat; on success the seat is Reserved until paid or the TTL runs out.
func (h *BookingHandler) Create(c echo.Context) error {
    ident, ok := getIdentity(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req service.SeatRequest
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if req.CruiseID == 0 || req.SeatNumber == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "cruise_id and seat_number required"})
    }
    booking, err := h.Lifecycle.CreateBooking(c.Request().Context(), ident.GoogleID, req)
    if err != nil {
        return bookingError(c, err)
    }
    h.publishEvent(queue.EventBookingCreated, booking, model.BookingReserved)
    return c.JSON(http.StatusCreated, echo.Map{
        "booking_id":         booking.ID,
        "cruise_id":          booking.CruiseID,
        "seat_number":        booking.SeatNumber,
        "status":             model.BookingReserved,
        "booking_expiration": booking.Expiration,
    })
}

// CreateBatch handles POST /v1/bookings/batch.  All seats are reserved
// in one transaction; one bad seat fails the whole batch.
func (h *BookingHandler) CreateBatch(c echo.Context) error {
    ident, ok := getIdentity(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var body struct {
        Seats []service.SeatRequest `json:"seats"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if len(body.Seats) == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "seats is required"})
    }
    for _, s := range body.Seats {
        if s.CruiseID == 0 || s.SeatNumber == 0 {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "cruise_id and seat_number required for every seat"})
        }
    }
    bookings, err := h.Lifecycle.CreateBookings(c.Request().Context(), ident.GoogleID, body.Seats)
    if err != nil {
        return bookingError(c, err)
    }
    out := make([]echo.Map, 0, len(bookings))
    for _, b := range bookings {
        h.publishEvent(queue.EventBookingCreated, b, model.BookingReserved)
        out = append(out, echo.Map{
            "booking_id":         b.ID,
            "cruise_id":          b.CruiseID,
            "seat_number":        b.SeatNumber,
            "status":             model.BookingReserved,
            "booking_expiration": b.Expiration,
        })
    }
    return c.JSON(http.StatusCreated, echo.Map{"bookings": out})
}

// Cancel handles DELETE /v1/bookings/:id.
func (h *BookingHandler) Cancel(c echo.Context) error {
    ident, ok := getIdentity(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }
    booking, err := h.Lifecycle.CancelBooking(c.Request().Context(), id, ident)
    if err != nil {
        return bookingError(c, err)
    }
    h.publishEvent(queue.EventBookingCancelled, booking, model.BookingCancelled)
    return c.JSON(http.StatusOK, echo.Map{"booking_id": booking.ID, "status": model.BookingCancelled})
}

// Pay handles POST /v1/bookings/:id/pay.
func (h *BookingHandler) Pay(c echo.Context) error {
    ident, ok := getIdentity(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }
    booking, err := h.Lifecycle.PayForBooking(c.Request().Context(), id, ident)
    if err != nil {
        return bookingError(c, err)
    }
    h.publishEvent(queue.EventBookingPaid, booking, model.BookingPaid)
    return c.JSON(http.StatusOK, echo.Map{"booking_id": booking.ID, "status": model.BookingPaid})
}

// publishEvent emits an advisory lifecycle event after the transaction
// has committed.  Runs detached from the request; failures are logged
// inside the publisher and otherwise ignored.
func (h *BookingHandler) publishEvent(eventType string, b *model.Booking, status string) {
    ev := queue.BookingLifecycleEvent{
        Type:       eventType,
        BookingID:  b.ID,
        GoogleID:   b.GoogleID,
        CruiseID:   b.CruiseID,
        SeatNumber: b.SeatNumber,
        Status:     status,
        OccurredAt: time.Now().UTC().Format(time.RFC3339),
    }
    go func() {
        ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        if view, err := h.Queries.GetByID(ctx, ev.BookingID, service.Identity{Admin: true}); err == nil {
            ev.Departure = view.Departure
            ev.Arrival = view.Arrival
            ev.Spaceship = view.Spaceship
        }
        _ = queue_publisher.PublishBookingEvent(ctx, ev)
    }()
}

// bookingError maps repository sentinels to HTTP responses.
func bookingError(c echo.Context, err error) error {
    switch {
    case errors.Is(err, repository.ErrBookingNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
    case errors.Is(err, repository.ErrCruiseNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "cruise not found"})
    case errors.Is(err, repository.ErrForbidden):
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    case errors.Is(err, repository.ErrSeatTaken):
        return c.JSON(http.StatusConflict, echo.Map{"error": "seat already taken"})
    case errors.Is(err, repository.ErrSeatOutOfRange):
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat number out of range"})
    case errors.Is(err, repository.ErrInvalidState):
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid state for this operation"})
    case errors.Is(err, repository.ErrStatusNotFound):
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
    case errors.Is(err, repository.ErrConflict):
        return c.JSON(http.StatusConflict, echo.Map{"error": "conflict"})
    default:
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
}
