package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/oatfile/filedrop/internal/filedrop/service"
	"github.com/oatfile/filedrop/pkg/dropsdk"
	"github.com/oatfile/filedrop/pkg/httpx"
	"github.com/oatfile/filedrop/pkg/slogx"
)

// LoginHandler serves POST /login.
// Accepts application/x-www-form-urlencoded credentials.
type LoginHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Log in with username and password
//	@Description	Exchanges a username/password pair for a bearer access token.
//	@Description	Failed attempts return the same error regardless of whether the
//	@Description	username exists, the password is wrong, or the account is disabled.
//	@Tags			Auth
//	@Accept			application/x-www-form-urlencoded
//	@Produce		json
//	@Param			username	formData	string					true	"Username"
//	@Param			password	formData	string					true	"Password"
//	@Success		200			{object}	dropsdk.TokenResponse	"access_token, token_type"
//	@Failure		400			{object}	dropsdk.ErrorResponse	"error, error_description"
//	@Failure		401			{object}	dropsdk.ErrorResponse	"error, error_description"
//	@Failure		500			{object}	dropsdk.ErrorResponse	"error, error_description"
//	@Header			200			{string}	Cache-Control			"no-store"
//	@Router			/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if ct := r.Header.Get("Content-Type"); ct != "" &&
		!strings.HasPrefix(ct, "application/x-www-form-urlencoded") {
		dropsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	if err := r.ParseForm(); err != nil {
		dropsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	username := r.PostForm.Get("username")
	password := r.PostForm.Get("password")

	token, err := h.AuthService.Login(ctx, username, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			dropsdk.ErrInvalidCredentials.WriteError(w)
			return
		}
		log.Error("login failed", "err", err)
		dropsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, dropsdk.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}
