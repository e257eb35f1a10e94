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

// AuthoringService is the interface that wraps methods for course and chapter operations
type AuthoringService interface {
	// GetCourses retrieves a list of courses for an author
	//
	// "ctx" is the context for the request.
	// "authorID" is the ID of the author.
	//
	// Returns a list of courses and an error if any.
	GetCourses(ctx context.Context, authorID int) ([]models.CourseListItem, error)
	// GetCoursesShortInfo retrieves a list of short course information for an author
	//
	// "ctx" is the context for the request.
	// "authorID" is the ID of the author.
	//
	// Returns a list of short course information and an error if any.
	GetCoursesShortInfo(ctx context.Context, authorID int) ([]models.CourseShortInfo, error)
	// GetCourse retrieves a course with its chapters
	//
	// "ctx" is the context for the request.
	// "courseID" is the ID of the course.
	// "authorID" is the ID of the author.
	//
	// Returns the course, its chapters and an error if any.
	GetCourse(ctx context.Context, courseID, authorID int) (*models.Course, []models.Chapter, error)
	// CreateCourse creates a new course
	//
	// "ctx" is the context for the request.
	// "req" is the request to create a course.
	//
	// Returns the ID of the created course and an error if any.
	CreateCourse(ctx context.Context, req *models.CreateCourseRequest) (int, error)
	// UpdateCourse updates a course
	//
	// "ctx" is the context for the request.
	// "courseID" is the ID of the course.
	// "authorID" is the ID of the author.
	// "req" is the request to update a course.
	//
	// Returns an error if any.
	UpdateCourse(ctx context.Context, courseID, authorID int, req *models.UpdateCourseRequest) error
	// DeleteCourse deletes a course
	//
	// "ctx" is the context for the request.
	// "courseID" is the ID of the course.
	// "authorID" is the ID of the author.
	//
	// Returns an error if any.
	DeleteCourse(ctx context.Context, courseID, authorID int) error
	// CreateChapter creates a new chapter
	//
	// "ctx" is the context for the request.
	// "authorID" is the ID of the author.
	// "req" is the request to create a chapter.
	//
	// Returns the ID of the created chapter and an error if any.
	CreateChapter(ctx context.Context, authorID int, req *models.CreateChapterRequest) (int, error)
	// UpdateChapter updates a chapter
	//
	// "ctx" is the context for the request.
	// "chapterID" is the ID of the chapter.
	// "authorID" is the ID of the author.
	// "req" is the request to update a chapter.
	//
	// Returns an error if any.
	UpdateChapter(ctx context.Context, chapterID, authorID int, req *models.UpdateChapterRequest) error
	// DeleteChapter deletes a chapter
	//
	// "ctx" is the context for the request.
	// "chapterID" is the ID of the chapter.
	// "authorID" is the ID of the author.
	//
	// Returns an error if any.
	DeleteChapter(ctx context.Context, chapterID, authorID int) error
	// GetChaptersShortInfo retrieves a list of short chapter information for a course
	//
	// "ctx" is the context for the request.
	// "courseID" is the ID of the course.
	// "authorID" is the ID of the author.
	//
	// Returns a list of short chapter information and an error if any.
	GetChaptersShortInfo(ctx context.Context, courseID, authorID int) ([]models.ChapterShortInfo, error)
}

// CourseHandler handles HTTP requests for course and chapter operations
type CourseHandler struct {
	BaseHandler
	service AuthoringService
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(svc AuthoringService, logger *zap.Logger) *CourseHandler {
	return &CourseHandler{
		service:     svc,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all course handler routes
func (h *CourseHandler) RegisterRoutes(r chi.Router) {
	r.Route("/author/courses", func(r chi.Router) {
		r.Get("/", h.GetCourses)
		r.Post("/", h.CreateCourse)
		r.Get("/short", h.GetCoursesShortInfo)
		r.Get("/{id}", h.GetCourse)
		r.Get("/{id}/chapters/short", h.GetChaptersShortInfo)
		r.Patch("/{id}", h.UpdateCourse)
		r.Delete("/{id}", h.DeleteCourse)
	})
	r.Route("/author/chapters", func(r chi.Router) {
		r.Post("/", h.CreateChapter)
		r.Patch("/{id}", h.UpdateChapter)
		r.Delete("/{id}", h.DeleteChapter)
	})
}

// getAuthorID extracts author ID from context
func (h *CourseHandler) getAuthorID(r *http.Request) (int, error) {
	authorID, ok := authMiddleware.GetAuthorID(r.Context())
	if !ok {
		return 0, fmt.Errorf("author ID not found in context")
	}
	return authorID, nil
}

// GetCourses handles GET /courses
// @Summary Get list of courses
// @Description Get list of courses for the authenticated author
// @Tags courses
// @Accept json
// @Produce json
// @Success 200 {array} models.CourseListItem "List of courses"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /author/courses [get]
func (h *CourseHandler) GetCourses(w http.ResponseWriter, r *http.Request) {
	authorID, err := h.getAuthorID(r)
	if err != nil {
		h.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	courses, err := h.service.GetCourses(r.Context(), authorID)
	if err != nil {
		h.Logger.Error("failed to get courses", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, courses)
}

// GetCoursesShortInfo handles GET /courses/short
// @Summary Get courses short info
// @Description Get list of courses with only ID and title for the authenticated author (for select options)
// @Tags courses
// @Accept json
// @Produce json
// @Success 200 {array} models.CourseShortInfo "List of courses short info"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /author/courses/short [get]
func (h *CourseHandler) GetCoursesShortInfo(w http.ResponseWriter, r *http.Request) {
	authorID, err := h.getAuthorID(r)
	if err != nil {
		h.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	courses, err := h.service.GetCoursesShortInfo(r.Context(), authorID)
	if err != nil {
		h.Logger.Error("failed to get courses short info", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, courses)
}

// GetCourse handles GET /courses/{id}
// @Summary Get a course with its chapters
// @Description Get course details and list of chapters for a course owned by the authenticated author
// @Tags courses
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} map[string]any "Course with chapters"
// @Failure 400 {object} map[string]string "Invalid course ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden - not course owner or not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /author/courses/{id} [get]
func (h *CourseHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	authorID, err := h.getAuthorID(r)
	if err != nil {
		h.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	courseIDStr := chi.URLParam(r, "id")
	courseID, err := strconv.Atoi(courseIDStr)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid course ID")
		return
	}

	course, chapters, err := h.service.GetCourse(r.Context(), courseID, authorID)
	if err != nil {
		h.Logger.Error("failed to get course", zap.Error(err))
		errStatus := http.StatusInternalServerError
		if strings.Contains(err.Error(), "not found") || strings.Contains(err.Error(), "rights") {
			errStatus = http.StatusForbidden
		}
		h.RespondError(w, errStatus, err.Error())
		return
	}

	response := map[string]any{
		"course":   course,
		"chapters": chapters,
	}

	h.RespondJSON(w, http.StatusOK, response)
}

// CreateCourse handles POST /courses
// @Summary Create a course
// @Description Create a new course for the authenticated author
// @Tags courses
// @Accept json
// @Produce json
// @Param request body models.CreateCourseRequest true "Course creation request"
// @Success 201 {object} map[string]any "Course created successfully"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /author/courses [post]
func (h *CourseHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	authorID, err := h.getAuthorID(r)
	if err != nil {
		h.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	var req models.CreateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.AuthorID = authorID
	courseID, err := h.service.CreateCourse(r.Context(), &req)
	if err != nil {
		h.Logger.Error("failed to create course", zap.Error(err))
		errStatus := http.StatusBadRequest
		if strings.Contains(err.Error(), "not found") {
			errStatus = http.StatusNotFound
		}
		h.RespondError(w, errStatus, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusCreated, map[string]any{
		"id":      courseID,
		"message": "course created successfully",
	})
}

// UpdateCourse handles PATCH /courses/{id}
// @Summary Update a course
// @Description Update a course owned by the authenticated author (partial update)
// @Tags courses
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Param request body models.UpdateCourseRequest true "Course update request"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden - not course owner or not found"
// @Router /author/courses/{id} [patch]
func (h *CourseHandler) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	authorID, err := h.getAuthorID(r)
	if err != nil {
		h.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	courseIDStr := chi.URLParam(r, "id")
	courseID, err := strconv.Atoi(courseIDStr)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid course ID")
		return
	}

	var req models.UpdateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err = h.service.UpdateCourse(r.Context(), courseID, authorID, &req)
	if err != nil {
		h.Logger.Error("failed to update course", zap.Error(err))
		errStatus := http.StatusBadRequest
		if strings.Contains(err.Error(), "not found") || strings.Contains(err.Error(), "rights") {
			errStatus = http.StatusForbidden
		}
		h.RespondError(w, errStatus, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteCourse handles DELETE /courses/{id}
// @Summary Delete a course
// @Description Delete a course owned by the authenticated author
// @Tags courses
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid course ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden - not course owner or not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /author/courses/{id} [delete]
func (h *CourseHandler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	authorID, err := h.getAuthorID(r)
	if err != nil {
		h.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	courseIDStr := chi.URLParam(r, "id")
	courseID, err := strconv.Atoi(courseIDStr)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid course ID")
		return
	}

	err = h.service.DeleteCourse(r.Context(), courseID, authorID)
	if err != nil {
		h.Logger.Error("failed to delete course", zap.Error(err))
		errStatus := http.StatusInternalServerError
		if strings.Contains(err.Error(), "not found") || strings.Contains(err.Error(), "rights") {
			errStatus = http.StatusForbidden
		}
		h.RespondError(w, errStatus, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetChaptersShortInfo handles GET /courses/{id}/chapters/short
// @Summary Get chapters short info
// @Description Get list of chapters with only ID and title for a course owned by the authenticated author (for select options)
// @Tags courses
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {array} models.ChapterShortInfo "List of chapters short info"
// @Failure 400 {object} map[string]string "Invalid course ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden - not course owner or not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /author/courses/{id}/chapters/short [get]
func (h *CourseHandler) GetChaptersShortInfo(w http.ResponseWriter, r *http.Request) {
	authorID, err := h.getAuthorID(r)
	if err != nil {
		h.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	courseIDStr := chi.URLParam(r, "id")
	courseID, err := strconv.Atoi(courseIDStr)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid course ID")
		return
	}

	chapters, err := h.service.GetChaptersShortInfo(r.Context(), courseID, authorID)
	if err != nil {
		h.Logger.Error("failed to get chapters short info", zap.Error(err))
		errStatus := http.StatusInternalServerError
		if strings.Contains(err.Error(), "not found") || strings.Contains(err.Error(), "rights") {
			errStatus = http.StatusForbidden
		}
		h.RespondError(w, errStatus, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, chapters)
}

// CreateChapter handles POST /chapters
// @Summary Create a chapter
// @Description Create a new chapter in a course owned by the authenticated author
// @Tags chapters
// @Accept json
// @Produce json
// @Param request body models.CreateChapterRequest true "Chapter creation request"
// @Success 201 {object} map[string]any "Chapter created successfully"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden - course does not belong to author"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /author/chapters [post]
func (h *CourseHandler) CreateChapter(w http.ResponseWriter, r *http.Request) {
	authorID, err := h.getAuthorID(r)
	if err != nil {
		h.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	var req models.CreateChapterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	chapterID, err := h.service.CreateChapter(r.Context(), authorID, &req)
	if err != nil {
		h.Logger.Error("failed to create chapter", zap.Error(err))
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
		"id":      chapterID,
		"message": "chapter created successfully",
	})
}

// UpdateChapter handles PATCH /chapters/{id}
// @Summary Update a chapter
// @Description Update a chapter in a course owned by the authenticated author (partial update)
// @Tags chapters
// @Accept json
// @Produce json
// @Param id path int true "Chapter ID"
// @Param request body models.UpdateChapterRequest true "Chapter update request"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden - not chapter owner or not found"
// @Router /author/chapters/{id} [patch]
func (h *CourseHandler) UpdateChapter(w http.ResponseWriter, r *http.Request) {
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

	var req models.UpdateChapterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err = h.service.UpdateChapter(r.Context(), chapterID, authorID, &req)
	if err != nil {
		h.Logger.Error("failed to update chapter", zap.Error(err))
		errStatus := http.StatusBadRequest
		if strings.Contains(err.Error(), "not found") || strings.Contains(err.Error(), "rights") {
			errStatus = http.StatusForbidden
		}
		h.RespondError(w, errStatus, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteChapter handles DELETE /chapters/{id}
// @Summary Delete a chapter
// @Description Delete a chapter in a course owned by the authenticated author
// @Tags chapters
// @Accept json
// @Produce json
// @Param id path int true "Chapter ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid chapter ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden - not chapter owner or not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /author/chapters/{id} [delete]
func (h *CourseHandler) DeleteChapter(w http.ResponseWriter, r *http.Request) {
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

	err = h.service.DeleteChapter(r.Context(), chapterID, authorID)
	if err != nil {
		h.Logger.Error("failed to delete chapter", zap.Error(err))
		errStatus := http.StatusInternalServerError
		if strings.Contains(err.Error(), "not found") || strings.Contains(err.Error(), "rights") {
			errStatus = http.StatusForbidden
		}
		h.RespondError(w, errStatus, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
