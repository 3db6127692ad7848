package handler

import (
    "context"  // provides context with cancellation for DB calls
    "errors"   // sentinel error comparisons
    "net/http" // HTTP status codes and primitives
    "time"     // timeouts for DB calls

    "github.com/labstack/echo/v4" // Echo framework for HTTP routing

    "github.com/stellarpath/cruise-booking/internal/config"     // app configuration
    "github.com/stellarpath/cruise-booking/internal/repository" // DB repositories
    "github.com/stellarpath/cruise-booking/internal/utils"      // helper functions (verification, token issuing)
)

// IDTokenVerifier validates a Google-issued ID token and returns its
// identity claims.  Satisfied by utils.GoogleVerifier; tests supply a
// stub.
type IDTokenVerifier interface {
    Verify(ctx context.Context, rawToken string) (utils.GoogleClaims, error)
}

// AuthHandler bundles dependencies for auth endpoints.  Sign-in is
// federated: the client obtains a Google ID token and exchanges it
// here for a session/refresh token pair.  No passwords are stored.
type AuthHandler struct {
    Cfg      config.Config
    Users    *repository.UserRepo
    Tokens   *repository.TokenRepo
    Verifier IDTokenVerifier
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo, t *repository.TokenRepo, v IDTokenVerifier) *AuthHandler {
    return &AuthHandler{Cfg: cfg, Users: u, Tokens: t, Verifier: v}
}

// ----- DTOs -----

type googleLoginReq struct {
    IDToken string `json:"id_token"`
}
type refreshReq struct {
    RefreshToken string `json:"refresh_token"`
}

type tokenPart struct {
    Token   string    `json:"token"`
    Expires time.Time `json:"expires"`
}
type userPart struct {
    GoogleID string `json:"google_id"`
    Email    string `json:"email"`
    FullName string `json:"full_name"`
    Role     string `json:"role"`
}
type authResp struct {
    User    userPart  `json:"user"`
    Session tokenPart `json:"session"`
    Refresh tokenPart `json:"refresh"`
}

// GoogleLogin: verify the Google ID token, upsert the traveller and
// return a fresh token pair.
func (h *AuthHandler) GoogleLogin(c echo.Context) error {
    var req googleLoginReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if req.IDToken == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "id_token required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    claims, err := h.Verifier.Verify(ctx, req.IDToken)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid id token"})
    }

    u, err := h.Users.UpsertGoogle(ctx, claims.Subject, claims.Email, claims.Name)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "sign-in failed"})
    }
    if !u.IsActive {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "account disabled"})
    }

    return h.issuePair(c, ctx, u, http.StatusOK)
}

// Refresh: rotate the refresh token and return a new pair.  The old
// token is revoked even when it is about to expire anyway, so a
// leaked token can be replayed at most once.
func (h *AuthHandler) Refresh(c echo.Context) error {
    var req refreshReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if req.RefreshToken == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    hash := utils.HashRefreshRaw(req.RefreshToken)
    googleID, err := h.Tokens.ValidateRefresh(ctx, hash)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
    }
    u, err := h.Users.GetByGoogleID(ctx, googleID)
    if err != nil {
        if errors.Is(err, repository.ErrUserNotFound) {
            return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unknown user"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if !u.IsActive {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "account disabled"})
    }
    if err := h.Tokens.RevokeByHash(ctx, hash); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "revoke failed"})
    }

    return h.issuePair(c, ctx, u, http.StatusOK)
}

// Logout: revoke the presented refresh token.  Always returns 204 for
// a well-formed request so callers cannot probe which tokens exist.
func (h *AuthHandler) Logout(c echo.Context) error {
    var req refreshReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if req.RefreshToken == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    _ = h.Tokens.RevokeByHash(ctx, utils.HashRefreshRaw(req.RefreshToken))
    return c.NoContent(http.StatusNoContent)
}

// Me: return the authenticated traveller's profile.
func (h *AuthHandler) Me(c echo.Context) error {
    ident, ok := getIdentity(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    u, err := h.Users.GetByGoogleID(ctx, ident.GoogleID)
    if err != nil {
        if errors.Is(err, repository.ErrUserNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, userPart{
        GoogleID: u.GoogleID,
        Email:    u.Email,
        FullName: u.FullName,
        Role:     u.Role,
    })
}

// issuePair mints a session JWT plus a stored refresh token for the user.
func (h *AuthHandler) issuePair(c echo.Context, ctx context.Context, u repository.User, status int) error {
    session, err := utils.NewSessionToken(h.Cfg.JWTSecret, u.GoogleID, u.Role, h.Cfg.SessionTTLMin)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue session failed"})
    }
    refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue refresh failed"})
    }
    if err := h.Tokens.StoreRefresh(ctx, u.GoogleID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save refresh failed"})
    }

    return c.JSON(status, authResp{
        User:    userPart{GoogleID: u.GoogleID, Email: u.Email, FullName: u.FullName, Role: u.Role},
        Session: tokenPart{Token: session.Token, Expires: session.Exp},
        Refresh: tokenPart{Token: refresh.Raw, Expires: refresh.Exp}, // raw back to client
    })
}
