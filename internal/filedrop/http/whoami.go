package http

import (
	"errors"
	"net/http"

	"github.com/oatfile/filedrop/internal/filedrop/service"
	"github.com/oatfile/filedrop/pkg/dropsdk"
	"github.com/oatfile/filedrop/pkg/httpx"
	"github.com/oatfile/filedrop/pkg/slogx"
)

type WhoamiHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Get the authenticated user
//	@Description	Returns the profile of the user the bearer token was issued to.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dropsdk.UserResponse	"username, full_name, disabled"
//	@Failure		401	{object}	dropsdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		500	{object}	dropsdk.ErrorResponse	"Internal server error"
//	@Router			/users/me [get].
func (h *WhoamiHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	username := httpx.UsernameFromContext(ctx)
	if username == "" {
		dropsdk.ErrUnauthenticated.WriteError(w)
		return
	}

	user, err := h.AuthService.CurrentUser(ctx, username)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			// Token is valid but its subject no longer exists.
			dropsdk.ErrUserNotFound.WriteError(w)
			return
		}
		log.Warn("failed to load user", "username", username, "err", err)
		dropsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, dropsdk.UserResponse{
		Username: user.Username,
		FullName: user.FullName,
		Disabled: user.Disabled,
	})
}
