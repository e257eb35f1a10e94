package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	authMiddleware "github.com/sero63211/daye-course-builder/internal/auth/middleware"
	"github.com/sero63211/daye-course-builder/internal/models"
	"go.uber.org/zap"
)

// LessonService is the interface that wraps methods for lesson operations
type LessonService interface {
	// GetLesson retrieves a lesson with its full step payloads
	//
	// "ctx" is the context for the request.
	// "lessonID" is the ID of the lesson.
	// "authorID" is the ID of the author.
	//
	// Returns the lesson and an error if any.
	GetLesson(ctx context.Context, lessonID, authorID int) (*models.Lesson, error)
	// GetLessonsForChapter retrieves lessons of a chapter without step payloads
	//
	// "ctx" is the context for the request.
	// "chapterID" is the ID of the chapter.
	// "authorID" is the ID of the author.
	//
	// Returns a list of lessons and an error if any.
	GetLessonsForChapter(ctx context.Context, chapterID, authorID int) ([]models.LessonListItem, error)
	// GetLessonsShortInfo retrieves a list of short lesson information for a chapter
	//
	// "ctx" is the context for the request.
	// "chapterID" is the ID of the chapter.
	// "authorID" is the ID of the author.
	//
	// Returns a list of short lesson information and an error if any.
	GetLessonsShortInfo(ctx context.Context, chapterID, authorID int) ([]models.LessonShortInfo, error)
	// CreateLesson creates a new lesson with empty steps
	//
	// "ctx" is the context for the request.
	// "authorID" is the ID of the author.
	// "req" is the request to create a lesson.
	//
	// Returns the ID of the created lesson and an error if any.
	CreateLesson(ctx context.Context, authorID int, req *models.CreateLessonRequest) (int, error)
	// UpdateLesson updates lesson metadata
	//
	// "ctx" is the context for the request.
	// "lessonID" is the ID of the lesson.
	// "authorID" is the ID of the author.
	// "req" is the request to update a lesson.
	//
	// Returns an error if any.
	UpdateLesson(ctx context.Context, lessonID, authorID int, req *models.UpdateLessonRequest) error
	// DeleteLesson deletes a lesson
	//
	// "ctx" is the context for the request.
	// "lessonID" is the ID of the lesson.
	// "authorID" is the ID of the author.
	//
	// Returns an error if any.
	DeleteLesson(ctx context.Context, lessonID, authorID int) error
	// SaveSteps replaces a lesson's learning steps and learned content wholesale
	//
	// "ctx" is the context for the request.
	// "lessonID" is the ID of the lesson.
	// "authorID" is the ID of the author.
	// "steps" is the full new list of learning steps.
	// "learned" is the full new list of learned content items.
	//
	// Returns an error if any.
	SaveSteps(ctx context.Context, lessonID, authorID int, steps []models.LearningStep, learned []models.ContentItem) error
}

// saveStepsRequest is the body of a wholesale step save
type saveStepsRequest struct {
	LearningSteps  []models.LearningStep `json:"learningSteps"`
	LearnedContent []models.ContentItem  `json:"learnedContent"`
}

// LessonHandler handles HTTP requests for lesson operations
type LessonHandler struct {
	BaseHandler
	service LessonService
}

// NewLessonHandler creates a new lesson handler
func NewLessonHandler(svc LessonService, logger *zap.Logger) *LessonHandler {
	return &LessonHandler{
		service:     svc,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all lesson handler routes
func (h *LessonHandler) RegisterRoutes(r chi.Router) {
	r.Route("/author/lessons", func(r chi.Router) {
		r.Post("/", h.CreateLesson)
		r.Get("/short", h.GetLessonsShortInfo)
		r.Get("/{id}", h.GetLesson)
		r.Patch("/{id}", h.UpdateLesson)
		r.Delete("/{id}", h.DeleteLesson)
		r.Put("/{id}/steps", h.SaveSteps)
	})
	r.Get("/author/chapters/{id}/lessons", h.GetLessonsForChapter)
}

// getAuthorID extracts author ID from context
func (h *LessonHandler) getAuthorID(r *http.Request) (int, error) {
	authorID, ok := authMiddleware.GetAuthorID(r.Context())
	if !ok {
		return 0, fmt.Errorf("author ID not found in context")
	}
	return authorID, nil
}

// GetLesson handles GET /lessons/{id}
// @Summary Get a lesson
// @Description Get lesson details including full learning step payloads and learned content
// @Tags lessons
// @Accept json
// @Produce json
// @Param id path int true "Lesson ID"
// @Success 200 {object} models.Lesson "Lesson with steps"
// @Failure 400 {object} map[string]string "Invalid lesson ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden - not lesson owner or not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /author/lessons/{id} [get]
func (h *LessonHandler) GetLesson(w http.ResponseWriter, r *http.Request) {
	authorID, err := h.getAuthorID(r)
	if err != nil {
		h.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	lessonIDStr := chi.URLParam(r, "id")
	lessonID, err := strconv.Atoi(lessonIDStr)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid lesson ID")
		return
	}

	lesson, err := h.service.GetLesson(r.Context(), lessonID, authorID)
	if err != nil {
		h.Logger.Error("failed to get lesson", zap.Error(err))
		errStatus := http.StatusInternalServerError
		if strings.Contains(err.Error(), "not found") || strings.Contains(err.Error(), "rights") {
			errStatus = http.StatusForbidden
		}
		h.RespondError(w, errStatus, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, lesson)
}

// GetLessonsForChapter handles GET /chapters/{id}/lessons
// @Summary Get lessons for a chapter
// @Description Get list of lessons in a chapter owned by the authenticated author, without step payloads
// @Tags lessons
// @Accept json
// @Produce json
// @Param id path int true "Chapter ID"
// @Success 200 {array} models.LessonListItem "List of lessons"
// @Failure 400 {object} map[string]string "Invalid chapter ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden - not chapter owner or not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /author/chapters/{id}/lessons [get]
func (h *LessonHandler) GetLessonsForChapter(w http.ResponseWriter, r *http.Request) {
	authorID, err := h.getAuthorID(r)
	if err != nil {
		h.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	chapterIDStr := chi.URLParam(r, "id")
	chapterID, err := strconv.Atoi(chapterIDStr)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid chapter ID")
		return
	}

	lessons, err := h.service.GetLessonsForChapter(r.Context(), chapterID, authorID)
	if err != nil {
		h.Logger.Error("failed to get lessons for chapter", zap.Error(err))
		errStatus := http.StatusInternalServerError
		if strings.Contains(err.Error(), "not found") || strings.Contains(err.Error(), "rights") {
			errStatus = http.StatusForbidden
		}
		h.RespondError(w, errStatus, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, lessons)
}

// GetLessonsShortInfo handles GET /lessons/short
// @Summary Get lessons short info
// @Description Get list of lessons with only ID and title for a chapter owned by the authenticated author (for select options)
// @Tags lessons
// @Accept json
// @Produce json
// @Param chapterId query int true "Chapter ID"
// @Success 200 {array} models.LessonShortInfo "List of lessons short info"
// @Failure 400 {object} map[string]string "Invalid chapter ID or missing chapterId parameter"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden - not chapter owner or not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /author/lessons/short [get]
func (h *LessonHandler) GetLessonsShortInfo(w http.ResponseWriter, r *http.Request) {
	authorID, err := h.getAuthorID(r)
	if err != nil {
		h.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	chapterIDStr := r.URL.Query().Get("chapterId")
	if chapterIDStr == "" {
		h.RespondError(w, http.StatusBadRequest, "chapterId query parameter is required")
		return
	}

	chapterID, err := strconv.Atoi(chapterIDStr)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid chapter ID")
		return
	}

	lessons, err := h.service.GetLessonsShortInfo(r.Context(), chapterID, authorID)
	if err != nil {
		h.Logger.Error("failed to get lessons short info", zap.Error(err))
		errStatus := http.StatusInternalServerError
		if strings.Contains(err.Error(), "not found") || strings.Contains(err.Error(), "rights") {
			errStatus = http.StatusForbidden
		}
		h.RespondError(w, errStatus, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, lessons)
}

// CreateLesson handles POST /lessons
// @Summary Create a lesson
// @Description Create a new lesson with empty steps in a chapter owned by the authenticated author
// @Tags lessons
// @Accept json
// @Produce json
// @Param request body models.CreateLessonRequest true "Lesson creation request"
// @Success 201 {object} map[string]any "Lesson created successfully"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden - chapter does not belong to author"
// @Failure 404 {object} map[string]string "Chapter not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /author/lessons [post]
func (h *LessonHandler) CreateLesson(w http.ResponseWriter, r *http.Request) {
	authorID, err := h.getAuthorID(r)
	if err != nil {
		h.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	var req models.CreateLessonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	lessonID, err := h.service.CreateLesson(r.Context(), authorID, &req)
	if err != nil {
		h.Logger.Error("failed to create lesson", zap.Error(err))
		errStatus := http.StatusBadRequest
		if strings.Contains(err.Error(), "not found") {
			errStatus = http.StatusNotFound
		} else if strings.Contains(err.Error(), "belong to you") {
			errStatus = http.StatusForbidden
		}
		h.RespondError(w, errStatus, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusCreated, map[string]any{
		"id":      lessonID,
		"message": "lesson created successfully",
	})
}

// UpdateLesson handles PATCH /lessons/{id}
// @Summary Update a lesson
// @Description Update lesson metadata in a chapter owned by the authenticated author (partial update)
// @Tags lessons
// @Accept json
// @Produce json
// @Param id path int true "Lesson ID"
// @Param request body models.UpdateLessonRequest true "Lesson update request"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden - not lesson owner or not found"
// @Router /author/lessons/{id} [patch]
func (h *LessonHandler) UpdateLesson(w http.ResponseWriter, r *http.Request) {
	authorID, err := h.getAuthorID(r)
	if err != nil {
		h.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	lessonIDStr := chi.URLParam(r, "id")
	lessonID, err := strconv.Atoi(lessonIDStr)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid lesson ID")
		return
	}

	var req models.UpdateLessonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err = h.service.UpdateLesson(r.Context(), lessonID, authorID, &req)
	if err != nil {
		h.Logger.Error("failed to update lesson", zap.Error(err))
		errStatus := http.StatusBadRequest
		if strings.Contains(err.Error(), "not found") || strings.Contains(err.Error(), "rights") {
			errStatus = http.StatusForbidden
		}
		h.RespondError(w, errStatus, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteLesson handles DELETE /lessons/{id}
// @Summary Delete a lesson
// @Description Delete a lesson in a chapter owned by the authenticated author
// @Tags lessons
// @Accept json
// @Produce json
// @Param id path int true "Lesson ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid lesson ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden - not lesson owner or not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /author/lessons/{id} [delete]
func (h *LessonHandler) DeleteLesson(w http.ResponseWriter, r *http.Request) {
	authorID, err := h.getAuthorID(r)
	if err != nil {
		h.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	lessonIDStr := chi.URLParam(r, "id")
	lessonID, err := strconv.Atoi(lessonIDStr)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid lesson ID")
		return
	}

	err = h.service.DeleteLesson(r.Context(), lessonID, authorID)
	if err != nil {
		h.Logger.Error("failed to delete lesson", zap.Error(err))
		errStatus := http.StatusInternalServerError
		if strings.Contains(err.Error(), "not found") || strings.Contains(err.Error(), "rights") {
			errStatus = http.StatusForbidden
		}
		h.RespondError(w, errStatus, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SaveSteps handles PUT /lessons/{id}/steps
// @Summary Save lesson steps
// @Description Replace the learning steps and learned content of a lesson wholesale. Every step must be complete.
// @Tags lessons
// @Accept json
// @Produce json
// @Param id path int true "Lesson ID"
// @Param request body saveStepsRequest true "Full step list and learned content"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid request body or incomplete step"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden - not lesson owner or not found"
// @Router /author/lessons/{id}/steps [put]
func (h *LessonHandler) SaveSteps(w http.ResponseWriter, r *http.Request) {
	authorID, err := h.getAuthorID(r)
	if err != nil {
		h.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	lessonIDStr := chi.URLParam(r, "id")
	lessonID, err := strconv.Atoi(lessonIDStr)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid lesson ID")
		return
	}

	var req saveStepsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err = h.service.SaveSteps(r.Context(), lessonID, authorID, req.LearningSteps, req.LearnedContent)
	if err != nil {
		h.Logger.Error("failed to save lesson steps", zap.Error(err))
		errStatus := http.StatusBadRequest
		if strings.Contains(err.Error(), "not found") || strings.Contains(err.Error(), "rights") {
			errStatus = http.StatusForbidden
		}
		h.RespondError(w, errStatus, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
