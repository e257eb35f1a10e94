package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	authMiddleware "github.com/sero63211/daye-course-builder/internal/auth/middleware"
	"github.com/sero63211/daye-course-builder/internal/models"
	"go.uber.org/zap"
)

// ContentService is the interface that wraps methods for content item operations
type ContentService interface {
	// GetContentItems retrieves content items of an author, optionally filtered by type
	//
	// "ctx" is the context for the request.
	// "authorID" is the ID of the author.
	// "contentType" is the content type to filter by (optional, if nil all items are retrieved).
	//
	// Returns a list of content items and an error if any.
	GetContentItems(ctx context.Context, authorID int, contentType *models.ContentType) ([]models.ContentItemListItem, error)
	// GetContentItem retrieves a single content item
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the content item.
	// "authorID" is the ID of the author.
	//
	// Returns the content item and an error if any.
	GetContentItem(ctx context.Context, id string, authorID int) (*models.ContentItem, error)
	// CreateContentItem creates a new content item
	//
	// "ctx" is the context for the request.
	// "authorID" is the ID of the author.
	// "req" is the request to create a content item.
	//
	// Returns the ID of the created content item and an error if any.
	CreateContentItem(ctx context.Context, authorID int, req *models.CreateContentItemRequest) (string, error)
	// UpdateContentItem updates a content item
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the content item.
	// "authorID" is the ID of the author.
	// "req" is the request to update a content item.
	//
	// Returns an error if any.
	UpdateContentItem(ctx context.Context, id string, authorID int, req *models.UpdateContentItemRequest) error
	// DeleteContentItem deletes a content item
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the content item.
	// "authorID" is the ID of the author.
	//
	// Returns an error if any.
	DeleteContentItem(ctx context.Context, id string, authorID int) error
}

// ContentHandler handles HTTP requests for content item operations
type ContentHandler struct {
	BaseHandler
	service ContentService
}

// NewContentHandler creates a new content handler
func NewContentHandler(svc ContentService, logger *zap.Logger) *ContentHandler {
	return &ContentHandler{
		service:     svc,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all content handler routes
func (h *ContentHandler) RegisterRoutes(r chi.Router) {
	r.Route("/author/content", func(r chi.Router) {
		r.Get("/", h.GetContentItems)
		r.Post("/", h.CreateContentItem)
		r.Get("/{id}", h.GetContentItem)
		r.Patch("/{id}", h.UpdateContentItem)
		r.Delete("/{id}", h.DeleteContentItem)
	})
}

// getAuthorID extracts author ID from context
func (h *ContentHandler) getAuthorID(r *http.Request) (int, error) {
	authorID, ok := authMiddleware.GetAuthorID(r.Context())
	if !ok {
		return 0, fmt.Errorf("author ID not found in context")
	}
	return authorID, nil
}

// GetContentItems handles GET /content
// @Summary Get content items
// @Description Get list of content items for the authenticated author with optional content type filter
// @Tags content
// @Accept json
// @Produce json
// @Param contentType query string false "Content type (vocabulary, sentence, information)"
// @Success 200 {array} models.ContentItemListItem "List of content items"
// @Failure 400 {object} map[string]string "Invalid content type"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /author/content [get]
func (h *ContentHandler) GetContentItems(w http.ResponseWriter, r *http.Request) {
	authorID, err := h.getAuthorID(r)
	if err != nil {
		h.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	var contentType *models.ContentType
	if contentTypeStr := r.URL.Query().Get("contentType"); contentTypeStr != "" {
		ct := models.ContentType(contentTypeStr)
		contentType = &ct
	}

	items, err := h.service.GetContentItems(r.Context(), authorID, contentType)
	if err != nil {
		h.Logger.Error("failed to get content items", zap.Error(err))
		errStatus := http.StatusInternalServerError
		if strings.Contains(err.Error(), "invalid content type") {
			errStatus = http.StatusBadRequest
		}
		h.RespondError(w, errStatus, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, items)
}

// GetContentItem handles GET /content/{id}
// @Summary Get a content item
// @Description Get a single content item owned by the authenticated author
// @Tags content
// @Accept json
// @Produce json
// @Param id path string true "Content item ID"
// @Success 200 {object} models.ContentItem "Content item"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden - not item owner or not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /author/content/{id} [get]
func (h *ContentHandler) GetContentItem(w http.ResponseWriter, r *http.Request) {
	authorID, err := h.getAuthorID(r)
	if err != nil {
		h.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	id := chi.URLParam(r, "id")

	item, err := h.service.GetContentItem(r.Context(), id, authorID)
	if err != nil {
		h.Logger.Error("failed to get content item", zap.Error(err))
		errStatus := http.StatusInternalServerError
		if strings.Contains(err.Error(), "not found") || strings.Contains(err.Error(), "rights") {
			errStatus = http.StatusForbidden
		}
		h.RespondError(w, errStatus, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, item)
}

// CreateContentItem handles POST /content
// @Summary Create a content item
// @Description Create a new content item for the authenticated author
// @Tags content
// @Accept json
// @Produce json
// @Param request body models.CreateContentItemRequest true "Content item creation request"
// @Success 201 {object} map[string]any "Content item created successfully"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /author/content [post]
func (h *ContentHandler) CreateContentItem(w http.ResponseWriter, r *http.Request) {
	authorID, err := h.getAuthorID(r)
	if err != nil {
		h.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	var req models.CreateContentItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := h.service.CreateContentItem(r.Context(), authorID, &req)
	if err != nil {
		h.Logger.Error("failed to create content item", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusCreated, map[string]any{
		"id":      id,
		"message": "content item created successfully",
	})
}

// UpdateContentItem handles PATCH /content/{id}
// @Summary Update a content item
// @Description Update a content item owned by the authenticated author (partial update)
// @Tags content
// @Accept json
// @Produce json
// @Param id path string true "Content item ID"
// @Param request body models.UpdateContentItemRequest true "Content item update request"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden - not item owner or not found"
// @Router /author/content/{id} [patch]
func (h *ContentHandler) UpdateContentItem(w http.ResponseWriter, r *http.Request) {
	authorID, err := h.getAuthorID(r)
	if err != nil {
		h.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	id := chi.URLParam(r, "id")

	var req models.UpdateContentItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err = h.service.UpdateContentItem(r.Context(), id, authorID, &req)
	if err != nil {
		h.Logger.Error("failed to update content item", zap.Error(err))
		errStatus := http.StatusBadRequest
		if strings.Contains(err.Error(), "not found") || strings.Contains(err.Error(), "rights") {
			errStatus = http.StatusForbidden
		}
		h.RespondError(w, errStatus, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteContentItem handles DELETE /content/{id}
// @Summary Delete a content item
// @Description Delete a content item owned by the authenticated author
// @Tags content
// @Accept json
// @Produce json
// @Param id path string true "Content item ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden - not item owner or not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /author/content/{id} [delete]
func (h *ContentHandler) DeleteContentItem(w http.ResponseWriter, r *http.Request) {
	authorID, err := h.getAuthorID(r)
	if err != nil {
		h.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	id := chi.URLParam(r, "id")

	err = h.service.DeleteContentItem(r.Context(), id, authorID)
	if err != nil {
		h.Logger.Error("failed to delete content item", zap.Error(err))
		errStatus := http.StatusInternalServerError
		if strings.Contains(err.Error(), "not found") || strings.Contains(err.Error(), "rights") {
			errStatus = http.StatusForbidden
		}
		h.RespondError(w, errStatus, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
