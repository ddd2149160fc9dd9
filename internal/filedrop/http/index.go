package http

import (
	"net/http"

	"github.com/oatfile/filedrop/pkg/dropsdk"
	"github.com/oatfile/filedrop/pkg/httpx"
)

// IndexHandler godoc
//
//	@Summary		Service index
//	@Description	Returns a short welcome message and the main endpoints.
//	@Tags			System
//	@Produce		json
//	@Success		200	{object}	dropsdk.IndexResponse	"message, endpoints"
//	@Router			/ [get].
func IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, dropsdk.IndexResponse{
			Message: "Welcome to FileDrop",
			Endpoints: map[string]string{
				"login":   "POST /login",
				"whoami":  "GET /users/me",
				"upload":  "POST /upload",
				"files":   "GET /get_files",
				"swagger": "GET /swagger/index.html",
			},
		})
	}
}
