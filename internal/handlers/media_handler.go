package handlers

import (
	"context"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sero63211/daye-course-builder/internal/models"
	"go.uber.org/zap"
)

// MediaService is the interface that wraps methods for media file operations
type MediaService interface {
	// GetMetadataByID retrieves metadata of a stored file
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the file.
	//
	// Returns the metadata and an error if any.
	GetMetadataByID(ctx context.Context, id string) (*models.Metadata, error)
	// GetFileReader opens a stored file for reading
	//
	// "ctx" is the context for the request.
	// "filename" is the name of the file.
	// "mediaType" is the media category of the file.
	//
	// Returns a reader over the file and an error if any.
	GetFileReader(ctx context.Context, filename, mediaType string) (io.ReadCloser, error)
	// UploadFile stores a file and creates its metadata record
	//
	// "ctx" is the context for the request.
	// "reader" is the file contents.
	// "contentType" is the content type of the file.
	// "mediaType" is the media category of the file.
	// "baseURL" is the base URL for building the download URL.
	// "extension" is the file extension including the leading dot.
	//
	// Returns the download URL and an error if any.
	UploadFile(ctx context.Context, reader io.Reader, contentType, mediaType, baseURL, extension string) (string, error)
	// DeleteFile removes a stored file and its metadata record
	//
	// "ctx" is the context for the request.
	// "filename" is the name of the file.
	// "mediaType" is the media category of the file.
	//
	// Returns an error if any.
	DeleteFile(ctx context.Context, filename, mediaType string) error
	// InferExtensionFromContentType infers the file extension from a content type
	//
	// "contentType" is the content type to infer the extension from.
	//
	// Returns the extension, or empty string if it cannot be inferred.
	InferExtensionFromContentType(contentType string) string
	// IsValidMediaType checks if the media type is a known category
	//
	// "mediaType" is the media type to check.
	//
	// Returns true if the media type is valid, false otherwise.
	IsValidMediaType(mediaType string) bool
}

// MediaHandler handles HTTP requests for media operations
type MediaHandler struct {
	BaseHandler
	service MediaService
	baseURL string
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(svc MediaService, baseURL string, logger *zap.Logger) *MediaHandler {
	return &MediaHandler{
		service:     svc,
		baseURL:     baseURL,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterPublicRoutes registers metadata and download routes
func (h *MediaHandler) RegisterPublicRoutes(r chi.Router) {
	r.Route("/media", func(r chi.Router) {
		r.Get("/metadata/{id}", h.GetMetadata)
		r.Get("/{mediaType}/{filename}", h.DownloadFile)
	})
}

// RegisterManagementRoutes registers upload and delete routes. Mount them
// behind the API key middleware.
func (h *MediaHandler) RegisterManagementRoutes(r chi.Router) {
	r.Route("/media", func(r chi.Router) {
		r.Post("/{mediaType}", h.UploadFile)
		r.Delete("/{mediaType}/{filename}", h.DeleteFile)
	})
}

// GetMetadata handles GET /media/metadata/{id}
// @Summary Get file metadata
// @Description Get metadata of a stored media file
// @Tags media
// @Accept json
// @Produce json
// @Param id path string true "File ID"
// @Success 200 {object} models.Metadata "File metadata"
// @Failure 404 {object} map[string]string "Metadata not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /media/metadata/{id} [get]
func (h *MediaHandler) GetMetadata(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	metadata, err := h.service.GetMetadataByID(r.Context(), id)
	if err != nil {
		h.Logger.Error("failed to get metadata", zap.Error(err))
		errStatus := http.StatusInternalServerError
		if strings.Contains(err.Error(), "not found") {
			errStatus = http.StatusNotFound
		}
		h.RespondError(w, errStatus, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, metadata)
}

// DownloadFile handles GET /media/{mediaType}/{filename}
// @Summary Download a file
// @Description Stream a stored media file
// @Tags media
// @Produce octet-stream
// @Param mediaType path string true "Media type (step_image, step_audio)"
// @Param filename path string true "File name"
// @Success 200 {file} binary "File contents"
// @Failure 400 {object} map[string]string "Invalid media type"
// @Failure 404 {object} map[string]string "File not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /media/{mediaType}/{filename} [get]
func (h *MediaHandler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	mediaType := chi.URLParam(r, "mediaType")
	filename := chi.URLParam(r, "filename")

	if !h.service.IsValidMediaType(mediaType) {
		h.RespondError(w, http.StatusBadRequest, "invalid media type")
		return
	}

	metadata, err := h.service.GetMetadataByID(r.Context(), filename)
	if err != nil {
		h.Logger.Error("failed to get metadata for download", zap.Error(err))
		errStatus := http.StatusInternalServerError
		if strings.Contains(err.Error(), "not found") {
			errStatus = http.StatusNotFound
		}
		h.RespondError(w, errStatus, err.Error())
		return
	}

	reader, err := h.service.GetFileReader(r.Context(), filename, mediaType)
	if err != nil {
		h.Logger.Error("failed to open file", zap.Error(err))
		errStatus := http.StatusInternalServerError
		if os.IsNotExist(err) {
			errStatus = http.StatusNotFound
		}
		h.RespondError(w, errStatus, "file not found")
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", metadata.ContentType)
	if _, err := io.Copy(w, reader); err != nil {
		h.Logger.Error("failed to stream file", zap.Error(err))
	}
}

// UploadFile handles POST /media/{mediaType}
// @Summary Upload a file
// @Description Upload a media file and create its metadata record
// @Tags media
// @Accept multipart/form-data
// @Produce plain
// @Param mediaType path string true "Media type (step_image, step_audio)"
// @Param file formData file true "File to upload"
// @Success 201 {string} string "Download URL"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /media/{mediaType} [post]
func (h *MediaHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	mediaType := chi.URLParam(r, "mediaType")

	if !h.service.IsValidMediaType(mediaType) {
		h.RespondError(w, http.StatusBadRequest, "invalid media type")
		return
	}

	// Parse multipart form (limit to 50MB)
	if err := r.ParseMultipartForm(50 << 20); err != nil {
		h.Logger.Error("failed to parse multipart form", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, "failed to parse request")
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	extension := h.service.InferExtensionFromContentType(contentType)
	if extension == "" {
		h.RespondError(w, http.StatusBadRequest, "unsupported content type")
		return
	}

	downloadURL, err := h.service.UploadFile(r.Context(), file, contentType, mediaType, h.baseURL, extension)
	if err != nil {
		h.Logger.Error("failed to upload file", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to upload file")
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusCreated)
	w.Write([]byte(downloadURL))
}

// DeleteFile handles DELETE /media/{mediaType}/{filename}
// @Summary Delete a file
// @Description Delete a stored media file and its metadata record
// @Tags media
// @Accept json
// @Produce json
// @Param mediaType path string true "Media type (step_image, step_audio)"
// @Param filename path string true "File name"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid media type"
// @Failure 404 {object} map[string]string "File not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /media/{mediaType}/{filename} [delete]
func (h *MediaHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	mediaType := chi.URLParam(r, "mediaType")
	filename := chi.URLParam(r, "filename")

	if !h.service.IsValidMediaType(mediaType) {
		h.RespondError(w, http.StatusBadRequest, "invalid media type")
		return
	}

	if err := h.service.DeleteFile(r.Context(), filename, mediaType); err != nil {
		h.Logger.Error("failed to delete file", zap.Error(err))
		errStatus := http.StatusInternalServerError
		if strings.Contains(err.Error(), "not found") {
			errStatus = http.StatusNotFound
		}
		h.RespondError(w, errStatus, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
