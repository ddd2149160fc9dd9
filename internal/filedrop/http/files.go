package http

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/oatfile/filedrop/internal/filedrop/service"
	"github.com/oatfile/filedrop/pkg/dropsdk"
	"github.com/oatfile/filedrop/pkg/httpx"
	"github.com/oatfile/filedrop/pkg/slogx"
)

type ListFilesHandler struct {
	FileService *service.FileService
}

// ServeHTTP godoc
//
//	@Summary		List uploaded files
//	@Description	Returns every uploaded file in upload order, oldest first.
//	@Tags			Files
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dropsdk.FileSummary		"file_id, filename, uploaded_by, uploaded_at, size"
//	@Failure		401	{object}	dropsdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		500	{object}	dropsdk.ErrorResponse	"Internal server error"
//	@Router			/get_files [get].
func (h *ListFilesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	records, err := h.FileService.List(ctx)
	if err != nil {
		log.Error("failed to list files", "err", err)
		dropsdk.ErrServerError.WriteError(w)
		return
	}

	// An empty catalog serialises as [], not null.
	summaries := make([]dropsdk.FileSummary, 0, len(records))
	for _, rec := range records {
		summaries = append(summaries, dropsdk.FileSummary{
			FileID:     rec.ID,
			Filename:   rec.Filename,
			UploadedBy: rec.UploadedBy,
			UploadedAt: rec.UploadedAt,
			Size:       rec.Size,
		})
	}

	httpx.WriteJSON(w, http.StatusOK, summaries)
}

type DownloadHandler struct {
	FileService *service.FileService
}

// ServeHTTP godoc
//
//	@Summary		Download a file
//	@Description	Streams back the stored bytes for a file id.
//	@Tags			Files
//	@Security		BearerAuth
//	@Produce		octet-stream
//	@Param			id	path		string	true	"File id"
//	@Success		200	{file}		file
//	@Failure		401	{object}	dropsdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		404	{object}	dropsdk.ErrorResponse	"Unknown file id"
//	@Failure		500	{object}	dropsdk.ErrorResponse	"Internal server error"
//	@Router			/files/{id} [get].
func (h *DownloadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id := r.PathValue("id")

	rec, body, err := h.FileService.Open(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrFileNotFound) {
			dropsdk.ErrFileNotFound.WriteError(w)
			return
		}
		log.Error("failed to open file", "file_id", id, "err", err)
		dropsdk.ErrServerError.WriteError(w)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", strconv.FormatInt(rec.Size, 10))
	w.Header().Set("Content-Disposition",
		mime.FormatMediaType("attachment", map[string]string{"filename": rec.Filename}))

	if _, err := io.Copy(w, body); err != nil {
		log.Warn("download interrupted", "file_id", id, "err", err)
	}
}
