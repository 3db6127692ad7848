package handler

import (
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/stellarpath/cruise-booking/internal/service"
)

// getIdentity builds the caller identity from the claims SessionAuth
// stored in the context.  The boolean is false when no authenticated
// traveller is present.
func getIdentity(c echo.Context) (service.Identity, bool) {
    sub, ok := c.Get("google_id").(string)
    if !ok || sub == "" {
        return service.Identity{}, false
    }
    role, _ := c.Get("role").(string)
    return service.Identity{GoogleID: sub, Admin: role == "ADMIN"}, true
}

// pathID parses a positive numeric path parameter.
func pathID(c echo.Context, name string) (uint64, bool) {
    id, err := strconv.ParseUint(c.Param(name), 10, 64)
    if err != nil || id == 0 {
        return 0, false
    }
    return id, true
}
