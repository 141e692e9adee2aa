package api

import (
	"net/http"

	"mate-storefront-layer/internal/domain"

	"github.com/go-chi/chi/v5"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type passwordResetRequest struct {
	Email string `json:"email"`
}

type passwordResetConfirmRequest struct {
	Password string `json:"password"`
}

// GetSession returns the device's current session, resolving it against
// the backend on first touch.
// @Summary Current session
// @Tags session
// @Produce json
// @Success 200 {object} domain.Session
// @Router /session [get]
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	deviceID := domain.DeviceIDFromContext(ctx)

	session := h.sessions.Current(ctx, deviceID)
	if session.IsLoading() {
		session = h.sessions.CheckAuthStatus(ctx, deviceID)
	}
	respondJSON(w, http.StatusOK, session)
}

// RefreshSession forces a fresh resolution against the backend.
// @Summary Re-resolve session
// @Tags session
// @Produce json
// @Success 200 {object} domain.Session
// @Router /session/refresh [post]
func (h *Handler) RefreshSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	deviceID := domain.DeviceIDFromContext(ctx)
	respondJSON(w, http.StatusOK, h.sessions.CheckAuthStatus(ctx, deviceID))
}

// Login signs the device in.
// @Summary Log in
// @Tags session
// @Accept json
// @Produce json
// @Success 200 {object} domain.Session
// @Failure 400 {object} errorBody
// @Router /session/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, err.Error())
		return
	}
	if req.Email == "" || req.Password == "" {
		respondBadRequest(w, "email and password are required")
		return
	}

	ctx := r.Context()
	deviceID := domain.DeviceIDFromContext(ctx)

	session, err := h.sessions.Login(ctx, deviceID, req.Email, req.Password)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, session)
}

// Logout signs the device out. The local session is cleared even when
// the backend call fails, so a failure still leaves the caller anonymous.
// @Summary Log out
// @Tags session
// @Produce json
// @Success 200 {object} domain.Session
// @Router /session/logout [post]
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	deviceID := domain.DeviceIDFromContext(ctx)

	if err := h.sessions.Logout(ctx, deviceID); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, h.sessions.Current(ctx, deviceID))
}

// Register creates an account. It does not sign the device in; the
// caller logs in separately afterwards.
// @Summary Register
// @Tags session
// @Accept json
// @Produce json
// @Success 201 {object} domain.User
// @Failure 400 {object} errorBody
// @Router /session/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var reg domain.Registration
	if err := decodeJSON(r, &reg); err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	ctx := r.Context()
	deviceID := domain.DeviceIDFromContext(ctx)

	user, err := h.sessions.Register(ctx, deviceID, reg)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, user)
}

// RequestPasswordReset starts password recovery.
// @Summary Request password reset
// @Tags session
// @Accept json
// @Success 200 {object} errorBody
// @Router /password-reset [post]
func (h *Handler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req passwordResetRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, err.Error())
		return
	}
	if req.Email == "" {
		respondBadRequest(w, "email is required")
		return
	}
	if err := h.accounts.RequestPasswordReset(r.Context(), req.Email); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, errorBody{Detail: "If the email exists, a reset link has been sent."})
}

// ConfirmPasswordReset completes password recovery with the emailed token.
// @Summary Confirm password reset
// @Tags session
// @Accept json
// @Success 200 {object} errorBody
// @Router /password-reset/{token} [post]
func (h *Handler) ConfirmPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req passwordResetConfirmRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, err.Error())
		return
	}
	if req.Password == "" {
		respondBadRequest(w, "a new password is required")
		return
	}
	token := chi.URLParam(r, "token")
	if err := h.accounts.ConfirmPasswordReset(r.Context(), token, req.Password); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, errorBody{Detail: "Password updated. You can now log in."})
}
