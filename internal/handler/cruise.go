package handler

import (
    "errors"   // sentinel error comparisons
    "net/http" // HTTP status codes

    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/stellarpath/cruise-booking/internal/repository" // repository layer
    "github.com/stellarpath/cruise-booking/internal/service"    // availability calculator
)

// CruiseHandler serves the public browse surface: cruise listings,
// cruise detail and the free-seat calculation.  These endpoints need
// no session and sit behind the response cache middleware.
type CruiseHandler struct {
    Cruises      *repository.CruiseRepo
    Availability *service.AvailabilityService
}

func NewCruiseHandler(cruises *repository.CruiseRepo, availability *service.AvailabilityService) *CruiseHandler {
    return &CruiseHandler{Cruises: cruises, Availability: availability}
}

// ListCruises handles GET /v1/cruises.  Only Scheduled cruises are
// browsable; departed, finished and cancelled ones are not bookable
// and stay out of the public catalogue.
func (h *CruiseHandler) ListCruises(c echo.Context) error {
    cruises, err := h.Cruises.ListByStatus(c.Request().Context(), "Scheduled")
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"cruises": cruises})
}

// GetCruise handles GET /v1/cruises/:id.
func (h *CruiseHandler) GetCruise(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid cruise id"})
    }
    info, err := h.Cruises.GetInfoByID(c.Request().Context(), id)
    if err != nil {
        if errors.Is(err, repository.ErrCruiseNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "cruise not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, info)
}

// GetAvailableSeats handles GET /v1/cruises/:id/seats.  It returns the
// ascending list of seat numbers not held by any blocking booking.
func (h *CruiseHandler) GetAvailableSeats(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid cruise id"})
    }
    seats, err := h.Availability.AvailableSeats(c.Request().Context(), id)
    if err != nil {
        switch {
        case errors.Is(err, repository.ErrCruiseNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "cruise not found"})
        case errors.Is(err, repository.ErrInvalidState):
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "cruise is not open for booking"})
        default:
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
        }
    }
    return c.JSON(http.StatusOK, echo.Map{
        "cruise_id":       id,
        "available_seats": seats,
        "available_count": len(seats),
    })
}
