package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	authMiddleware "github.com/sero63211/daye-course-builder/internal/auth/middleware"
	"github.com/sero63211/daye-course-builder/internal/editor"
	"github.com/sero63211/daye-course-builder/internal/models"
	"go.uber.org/zap"
)

// EditorService is the interface that wraps methods for lesson editing sessions
type EditorService interface {
	// OpenSession loads a lesson and opens an editing session over its steps
	//
	// "ctx" is the context for the request.
	// "lessonID" is the ID of the lesson.
	// "authorID" is the ID of the author.
	//
	// Returns the opened session and an error if any.
	OpenSession(ctx context.Context, lessonID, authorID int) (*editor.Session, error)
	// Session returns an open session, verifying it belongs to the author
	//
	// "sessionID" is the ID of the session.
	// "authorID" is the ID of the author.
	//
	// Returns the session and an error if any.
	Session(sessionID string, authorID int) (*editor.Session, error)
	// StageMedia puts an uploaded file into the session's staging store
	//
	// "sessionID" is the ID of the session.
	// "authorID" is the ID of the author.
	// "file" is the file to stage.
	//
	// Returns the staged handle and an error if any.
	StageMedia(sessionID string, authorID int, file editor.StagedFile) (string, error)
	// Commit uploads the session's staged media and persists the step list wholesale
	//
	// "ctx" is the context for the request.
	// "sessionID" is the ID of the session.
	// "authorID" is the ID of the author.
	//
	// Returns an error if any.
	Commit(ctx context.Context, sessionID string, authorID int) error
	// CloseSession discards a session and its staged media
	//
	// "sessionID" is the ID of the session.
	// "authorID" is the ID of the author.
	//
	// Returns an error if any.
	CloseSession(sessionID string, authorID int) error
}

// openSessionRequest is the body of a session open call
type openSessionRequest struct {
	LessonID int `json:"lessonId"`
}

// beginDraftRequest starts a draft: a type begins a new step, a step id
// re-opens a saved one
type beginDraftRequest struct {
	Type   models.StepType `json:"type,omitempty"`
	StepID string          `json:"stepId,omitempty"`
}

// changeDraftTypeRequest is the body of a draft type switch
type changeDraftTypeRequest struct {
	Type models.StepType `json:"type"`
}

// EditorHandler handles HTTP requests for lesson editing sessions
type EditorHandler struct {
	BaseHandler
	service EditorService
}

// NewEditorHandler creates a new editor handler
func NewEditorHandler(svc EditorService, logger *zap.Logger) *EditorHandler {
	return &EditorHandler{
		service:     svc,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all editor handler routes
func (h *EditorHandler) RegisterRoutes(r chi.Router) {
	r.Route("/author/editor/sessions", func(r chi.Router) {
		r.Post("/", h.OpenSession)
		r.Route("/{sessionId}", func(r chi.Router) {
			r.Get("/", h.GetSession)
			r.Delete("/", h.CloseSession)
			r.Post("/commit", h.Commit)
			r.Post("/media", h.StageMedia)
			r.Delete("/steps/{stepId}", h.DeleteStep)
			r.Route("/draft", func(r chi.Router) {
				r.Post("/", h.BeginDraft)
				r.Get("/", h.GetDraft)
				r.Put("/", h.SetDraftData)
				r.Patch("/type", h.ChangeDraftType)
				r.Post("/content", h.ApplyContent)
				r.Post("/save", h.SaveStep)
				r.Delete("/", h.DiscardDraft)
			})
		})
	})
}

// getAuthorID extracts author ID from context
func (h *EditorHandler) getAuthorID(r *http.Request) (int, error) {
	authorID, ok := authMiddleware.GetAuthorID(r.Context())
	if !ok {
		return 0, fmt.Errorf("author ID not found in context")
	}
	return authorID, nil
}

// getSession resolves the session of the request, responding on failure
func (h *EditorHandler) getSession(w http.ResponseWriter, r *http.Request) (*editor.Session, int, bool) {
	authorID, err := h.getAuthorID(r)
	if err != nil {
		h.RespondError(w, http.StatusUnauthorized, err.Error())
		return nil, 0, false
	}

	sessionID := chi.URLParam(r, "sessionId")
	session, err := h.service.Session(sessionID, authorID)
	if err != nil {
		errStatus := http.StatusForbidden
		if strings.Contains(err.Error(), "not found") {
			errStatus = http.StatusNotFound
		}
		h.RespondError(w, errStatus, err.Error())
		return nil, 0, false
	}
	return session, authorID, true
}

// respondDraft writes the current draft state of a session
func (h *EditorHandler) respondDraft(w http.ResponseWriter, session *editor.Session) {
	stepType, data, complete, err := session.Draft()
	if err != nil {
		h.RespondError(w, http.StatusConflict, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]any{
		"type":       stepType,
		"data":       data,
		"isComplete": complete,
	})
}

// OpenSession handles POST /editor/sessions
// @Summary Open an editing session
// @Description Open an editing session over a lesson owned by the authenticated author. All edits happen on a working copy until commit.
// @Tags editor
// @Accept json
// @Produce json
// @Param request body openSessionRequest true "Session open request"
// @Success 201 {object} map[string]any "Session opened"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden - not lesson owner or not found"
// @Router /author/editor/sessions [post]
func (h *EditorHandler) OpenSession(w http.ResponseWriter, r *http.Request) {
	authorID, err := h.getAuthorID(r)
	if err != nil {
		h.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	var req openSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.LessonID == 0 {
		h.RespondError(w, http.StatusBadRequest, "lessonId is required")
		return
	}

	session, err := h.service.OpenSession(r.Context(), req.LessonID, authorID)
	if err != nil {
		h.Logger.Error("failed to open editing session", zap.Error(err))
		errStatus := http.StatusForbidden
		if !strings.Contains(err.Error(), "not found") && !strings.Contains(err.Error(), "rights") {
			errStatus = http.StatusInternalServerError
		}
		h.RespondError(w, errStatus, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusCreated, map[string]any{
		"sessionId":      session.ID,
		"lessonId":       session.LessonID,
		"learningSteps":  session.Steps(),
		"learnedContent": session.LearnedContent(),
	})
}

// GetSession handles GET /editor/sessions/{sessionId}
// @Summary Get session state
// @Description Get the current working step list and learned content of an editing session
// @Tags editor
// @Accept json
// @Produce json
// @Param sessionId path string true "Session ID"
// @Success 200 {object} map[string]any "Session state"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden - not session owner"
// @Failure 404 {object} map[string]string "Session not found"
// @Router /author/editor/sessions/{sessionId} [get]
func (h *EditorHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	session, _, ok := h.getSession(w, r)
	if !ok {
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]any{
		"sessionId":      session.ID,
		"lessonId":       session.LessonID,
		"learningSteps":  session.Steps(),
		"learnedContent": session.LearnedContent(),
	})
}

// BeginDraft handles POST /editor/sessions/{sessionId}/draft
// @Summary Begin a step draft
// @Description Start a new step draft of the given type, or re-open a saved step by id for editing
// @Tags editor
// @Accept json
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param request body beginDraftRequest true "Draft begin request"
// @Success 200 {object} map[string]any "Draft state"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Session or step not found"
// @Router /author/editor/sessions/{sessionId}/draft [post]
func (h *EditorHandler) BeginDraft(w http.ResponseWriter, r *http.Request) {
	session, _, ok := h.getSession(w, r)
	if !ok {
		return
	}

	var req beginDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var err error
	if req.StepID != "" {
		_, err = session.OpenStep(req.StepID)
	} else {
		_, err = session.StartDraft(req.Type)
	}
	if err != nil {
		errStatus := http.StatusBadRequest
		if strings.Contains(err.Error(), "not found") {
			errStatus = http.StatusNotFound
		}
		h.RespondError(w, errStatus, err.Error())
		return
	}

	h.respondDraft(w, session)
}

// GetDraft handles GET /editor/sessions/{sessionId}/draft
// @Summary Get the current draft
// @Description Get the type, payload and completeness of the step currently being edited
// @Tags editor
// @Accept json
// @Produce json
// @Param sessionId path string true "Session ID"
// @Success 200 {object} map[string]any "Draft state"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 409 {object} map[string]string "No step is being edited"
// @Router /author/editor/sessions/{sessionId}/draft [get]
func (h *EditorHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	session, _, ok := h.getSession(w, r)
	if !ok {
		return
	}

	h.respondDraft(w, session)
}

// SetDraftData handles PUT /editor/sessions/{sessionId}/draft
// @Summary Replace the draft payload
// @Description Replace the draft payload with edited field values. The payload type must match the draft's step type.
// @Tags editor
// @Accept json
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param request body models.LearningStep true "Step payload envelope"
// @Success 200 {object} map[string]any "Draft state"
// @Failure 400 {object} map[string]string "Invalid request body or type mismatch"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 409 {object} map[string]string "No step is being edited"
// @Router /author/editor/sessions/{sessionId}/draft [put]
func (h *EditorHandler) SetDraftData(w http.ResponseWriter, r *http.Request) {
	session, _, ok := h.getSession(w, r)
	if !ok {
		return
	}

	var envelope models.LearningStep
	if err := json.NewDecoder(r.Body).Decode(&envelope); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := session.SetDraftData(envelope.Data); err != nil {
		errStatus := http.StatusBadRequest
		if strings.Contains(err.Error(), "no step is being edited") {
			errStatus = http.StatusConflict
		}
		h.RespondError(w, errStatus, err.Error())
		return
	}

	h.respondDraft(w, session)
}

// ChangeDraftType handles PATCH /editor/sessions/{sessionId}/draft/type
// @Summary Change the draft's step type
// @Description Switch the open draft to another step type. All edits made for the previous type are discarded.
// @Tags editor
// @Accept json
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param request body changeDraftTypeRequest true "Draft type change request"
// @Success 200 {object} map[string]any "Draft state"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 409 {object} map[string]string "No step is being edited"
// @Router /author/editor/sessions/{sessionId}/draft/type [patch]
func (h *EditorHandler) ChangeDraftType(w http.ResponseWriter, r *http.Request) {
	session, _, ok := h.getSession(w, r)
	if !ok {
		return
	}

	var req changeDraftTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if _, err := session.ChangeDraftType(req.Type); err != nil {
		errStatus := http.StatusBadRequest
		if strings.Contains(err.Error(), "no step is being edited") {
			errStatus = http.StatusConflict
		}
		h.RespondError(w, errStatus, err.Error())
		return
	}

	h.respondDraft(w, session)
}

// ApplyContent handles POST /editor/sessions/{sessionId}/draft/content
// @Summary Apply a content item to the draft
// @Description Copy the fields of a selected content item onto the draft payload
// @Tags editor
// @Accept json
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param request body models.ContentItem true "Selected content item"
// @Success 200 {object} map[string]any "Draft state"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 409 {object} map[string]string "No step is being edited"
// @Router /author/editor/sessions/{sessionId}/draft/content [post]
func (h *EditorHandler) ApplyContent(w http.ResponseWriter, r *http.Request) {
	session, _, ok := h.getSession(w, r)
	if !ok {
		return
	}

	var item models.ContentItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if _, err := session.ApplyContent(item); err != nil {
		h.RespondError(w, http.StatusConflict, err.Error())
		return
	}

	h.respondDraft(w, session)
}

// SaveStep handles POST /editor/sessions/{sessionId}/draft/save
// @Summary Save the draft into the step list
// @Description Commit the draft into the session's working step list. Completeness is the sole gate.
// @Tags editor
// @Accept json
// @Produce json
// @Param sessionId path string true "Session ID"
// @Success 200 {object} models.LearningStep "Saved step"
// @Failure 400 {object} map[string]string "Step is not complete"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 409 {object} map[string]string "No step is being edited"
// @Router /author/editor/sessions/{sessionId}/draft/save [post]
func (h *EditorHandler) SaveStep(w http.ResponseWriter, r *http.Request) {
	session, _, ok := h.getSession(w, r)
	if !ok {
		return
	}

	step, err := session.SaveStep()
	if err != nil {
		errStatus := http.StatusBadRequest
		if strings.Contains(err.Error(), "no step is being edited") {
			errStatus = http.StatusConflict
		}
		h.RespondError(w, errStatus, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, step)
}

// DiscardDraft handles DELETE /editor/sessions/{sessionId}/draft
// @Summary Discard the draft
// @Description Drop the open draft without saving
// @Tags editor
// @Accept json
// @Produce json
// @Param sessionId path string true "Session ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Session not found"
// @Router /author/editor/sessions/{sessionId}/draft [delete]
func (h *EditorHandler) DiscardDraft(w http.ResponseWriter, r *http.Request) {
	session, _, ok := h.getSession(w, r)
	if !ok {
		return
	}

	session.DiscardDraft()
	w.WriteHeader(http.StatusNoContent)
}

// DeleteStep handles DELETE /editor/sessions/{sessionId}/steps/{stepId}
// @Summary Delete a step
// @Description Remove a step from the session's working step list
// @Tags editor
// @Accept json
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param stepId path string true "Step ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Session or step not found"
// @Router /author/editor/sessions/{sessionId}/steps/{stepId} [delete]
func (h *EditorHandler) DeleteStep(w http.ResponseWriter, r *http.Request) {
	session, _, ok := h.getSession(w, r)
	if !ok {
		return
	}

	stepID := chi.URLParam(r, "stepId")
	if err := session.DeleteStep(stepID); err != nil {
		h.RespondError(w, http.StatusNotFound, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// StageMedia handles POST /editor/sessions/{sessionId}/media
// @Summary Stage a media file
// @Description Put an uploaded file into the session's staging store. The returned handle is attached to a step payload and replaced by a durable URL on commit.
// @Tags editor
// @Accept multipart/form-data
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param file formData file true "File to stage"
// @Success 201 {object} map[string]string "Staged handle"
// @Failure 400 {object} map[string]string "Invalid request or file missing"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Session not found"
// @Router /author/editor/sessions/{sessionId}/media [post]
func (h *EditorHandler) StageMedia(w http.ResponseWriter, r *http.Request) {
	session, authorID, ok := h.getSession(w, r)
	if !ok {
		return
	}

	// Parse multipart form (limit to 20MB)
	if err := r.ParseMultipartForm(20 << 20); err != nil {
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

	data, err := io.ReadAll(file)
	if err != nil {
		h.Logger.Error("failed to read uploaded file", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, "failed to read file")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	handle, err := h.service.StageMedia(session.ID, authorID, editor.StagedFile{
		Name:        fileHeader.Filename,
		ContentType: contentType,
		Data:        data,
	})
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusCreated, map[string]string{
		"handle": handle,
	})
}

// Commit handles POST /editor/sessions/{sessionId}/commit
// @Summary Commit the session
// @Description Upload staged media, rewrite step payloads to durable URLs and persist the step list wholesale
// @Tags editor
// @Accept json
// @Produce json
// @Param sessionId path string true "Session ID"
// @Success 200 {object} map[string]any "Committed step list"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden - not session owner"
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /author/editor/sessions/{sessionId}/commit [post]
func (h *EditorHandler) Commit(w http.ResponseWriter, r *http.Request) {
	session, authorID, ok := h.getSession(w, r)
	if !ok {
		return
	}

	if err := h.service.Commit(r.Context(), session.ID, authorID); err != nil {
		h.Logger.Error("failed to commit editing session", zap.Error(err))
		errStatus := http.StatusInternalServerError
		if strings.Contains(err.Error(), "not found") || strings.Contains(err.Error(), "rights") {
			errStatus = http.StatusForbidden
		}
		h.RespondError(w, errStatus, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]any{
		"learningSteps":  session.Steps(),
		"learnedContent": session.LearnedContent(),
	})
}

// CloseSession handles DELETE /editor/sessions/{sessionId}
// @Summary Close the session
// @Description Discard an editing session and release its staged media
// @Tags editor
// @Accept json
// @Produce json
// @Param sessionId path string true "Session ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Session not found"
// @Router /author/editor/sessions/{sessionId} [delete]
func (h *EditorHandler) CloseSession(w http.ResponseWriter, r *http.Request) {
	session, authorID, ok := h.getSession(w, r)
	if !ok {
		return
	}

	if err := h.service.CloseSession(session.ID, authorID); err != nil {
		h.RespondError(w, http.StatusForbidden, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
