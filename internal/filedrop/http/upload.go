package http

import (
	"errors"
	"net/http"

	"github.com/oatfile/filedrop/internal/filedrop/service"
	"github.com/oatfile/filedrop/pkg/dropsdk"
	"github.com/oatfile/filedrop/pkg/httpx"
	"github.com/oatfile/filedrop/pkg/slogx"
)

const (
	// MaxUploadBytes caps a single upload body.
	MaxUploadBytes = 64 << 20 // 64 MiB

	// multipartMemory is how much of the form is buffered in memory before
	// spilling to temp files.
	multipartMemory = 8 << 20
)

// UploadHandler serves POST /upload.
// Accepts a multipart form with a single "file" part.
type UploadHandler struct {
	FileService *service.FileService
}

// ServeHTTP godoc
//
//	@Summary		Upload a file
//	@Description	Stores the uploaded file under a newly generated id and records
//	@Description	it in the catalog. Uploading the same filename twice creates two
//	@Description	independent entries.
//	@Tags			Files
//	@Security		BearerAuth
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file	formData	file					true	"File content"
//	@Success		200		{object}	dropsdk.UploadResponse	"message, file_id, filename, uploaded_by"
//	@Failure		400		{object}	dropsdk.ErrorResponse	"Missing or unreadable file part"
//	@Failure		401		{object}	dropsdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		500		{object}	dropsdk.ErrorResponse	"Storage failure"
//	@Router			/upload [post].
func (h *UploadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	username := httpx.UsernameFromContext(ctx)
	if username == "" {
		dropsdk.ErrUnauthenticated.WriteError(w)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		dropsdk.ErrMissingFilePart.WriteError(w)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	part, header, err := r.FormFile("file")
	if err != nil {
		dropsdk.ErrMissingFilePart.WriteError(w)
		return
	}
	defer part.Close()

	rec, err := h.FileService.Save(ctx, part, header.Filename, username)
	if err != nil {
		if errors.Is(err, service.ErrConflict) {
			dropsdk.ErrStorageConflict.WriteError(w)
			return
		}
		log.Error("upload failed", "filename", header.Filename, "err", err)
		dropsdk.ErrStorage.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, dropsdk.UploadResponse{
		Message:    "File uploaded successfully",
		FileID:     rec.ID,
		Filename:   rec.Filename,
		UploadedBy: rec.UploadedBy,
	})
}
