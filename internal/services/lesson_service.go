package services

import (
	"context"
	"fmt"

	"github.com/sero63211/daye-course-builder/internal/models"
	"github.com/sero63211/daye-course-builder/internal/steps"
)

// LessonRepository defines methods for lesson data access
type LessonRepository interface {
	// GetByID retrieves a lesson by ID
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the lesson.
	//
	// Returns the lesson and an error if any.
	GetByID(ctx context.Context, id int) (*models.Lesson, error)
	// GetBySlug retrieves a lesson by slug
	//
	// "ctx" is the context for the request.
	// "slug" is the slug of the lesson.
	//
	// Returns the lesson and an error if any.
	GetBySlug(ctx context.Context, slug string) (*models.Lesson, error)
	// GetByChapterID retrieves lessons by chapter ID
	//
	// "ctx" is the context for the request.
	// "chapterID" is the ID of the chapter.
	//
	// Returns a list of lessons and an error if any.
	GetByChapterID(ctx context.Context, chapterID int) ([]models.LessonListItem, error)
	// GetShortInfoByChapterID retrieves short information about lessons by chapter ID
	//
	// "ctx" is the context for the request.
	// "chapterID" is the ID of the chapter (optional, if nil all lessons are retrieved).
	//
	// Returns a list of lesson short information and an error if any.
	GetShortInfoByChapterID(ctx context.Context, chapterID *int) ([]models.LessonShortInfo, error)
	// ExistsBySlug checks if a lesson with the given slug exists
	//
	// "ctx" is the context for the request.
	// "slug" is the slug of the lesson.
	//
	// Returns a boolean and an error if any.
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	// ExistsByTitleInChapter checks if a lesson with the given title exists in a chapter
	//
	// "ctx" is the context for the request.
	// "chapterID" is the ID of the chapter.
	// "title" is the title of the lesson.
	//
	// Returns a boolean and an error if any.
	ExistsByTitleInChapter(ctx context.Context, chapterID int, title string) (bool, error)
	// ExistsByOrderInChapter checks if a lesson with the given order exists in a chapter
	//
	// "ctx" is the context for the request.
	// "chapterID" is the ID of the chapter.
	// "order" is the order of the lesson.
	//
	// Returns a boolean and an error if any.
	ExistsByOrderInChapter(ctx context.Context, chapterID int, order int) (bool, error)
	// IncrementOrderForLessons increments the order of lessons in a chapter
	//
	// "ctx" is the context for the request.
	// "chapterID" is the ID of the chapter.
	// "order" is the order of the lesson.
	//
	// Returns an error if any.
	IncrementOrderForLessons(ctx context.Context, chapterID, order int) error
	// Create creates a new lesson
	//
	// "ctx" is the context for the request.
	// "lesson" is the lesson to create.
	//
	// Returns an error if any.
	Create(ctx context.Context, lesson *models.Lesson) error
	// Update updates lesson metadata
	//
	// "ctx" is the context for the request.
	// "lesson" is the lesson to update.
	//
	// Returns an error if any.
	Update(ctx context.Context, lesson *models.Lesson) error
	// ReplaceSteps replaces the learning steps and learned content of a lesson wholesale
	//
	// "ctx" is the context for the request.
	// "lessonID" is the ID of the lesson.
	// "steps" is the full new list of learning steps.
	// "learned" is the full new list of learned content items.
	//
	// Returns an error if any.
	ReplaceSteps(ctx context.Context, lessonID int, steps []models.LearningStep, learned []models.ContentItem) error
	// Delete deletes a lesson
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the lesson.
	//
	// Returns an error if any.
	Delete(ctx context.Context, id int) error
	// CheckOwnership checks if a lesson belongs to an author
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the lesson.
	// "authorID" is the ID of the author.
	//
	// Returns a boolean and an error if any.
	CheckOwnership(ctx context.Context, id, authorID int) (bool, error)
}

type lessonService struct {
	lessonRepo  LessonRepository
	chapterRepo ChapterRepository
	courseRepo  CourseRepository
}

// NewLessonService creates a new lesson service
func NewLessonService(lessonRepo LessonRepository, chapterRepo ChapterRepository, courseRepo CourseRepository) *lessonService {
	return &lessonService{
		lessonRepo:  lessonRepo,
		chapterRepo: chapterRepo,
		courseRepo:  courseRepo,
	}
}

// GetLesson retrieves a lesson with its full step payloads
func (s *lessonService) GetLesson(ctx context.Context, lessonID, authorID int) (*models.Lesson, error) {
	exists, err := s.lessonRepo.CheckOwnership(ctx, lessonID, authorID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("you do not have rights to manage this lesson")
	}

	return s.lessonRepo.GetByID(ctx, lessonID)
}

// GetLessonsForChapter retrieves lessons of a chapter without step payloads
func (s *lessonService) GetLessonsForChapter(ctx context.Context, chapterID, authorID int) ([]models.LessonListItem, error) {
	exists, err := s.chapterRepo.CheckOwnership(ctx, chapterID, authorID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("you do not have rights to manage this chapter")
	}

	return s.lessonRepo.GetByChapterID(ctx, chapterID)
}

// CreateLesson creates a new lesson with empty steps
func (s *lessonService) CreateLesson(ctx context.Context, authorID int, req *models.CreateLessonRequest) (int, error) {
	if err := s.validateCreateLesson(ctx, authorID, req); err != nil {
		return 0, err
	}

	// Handle order conflicts
	exists, err := s.lessonRepo.ExistsByOrderInChapter(ctx, req.ChapterID, req.Order)
	if err != nil {
		return 0, err
	}
	if exists {
		// Increment order for all lessons with order >= new order
		// We do it to insert the new lesson without breaking the order
		err = s.lessonRepo.IncrementOrderForLessons(ctx, req.ChapterID, req.Order)
		if err != nil {
			return 0, err
		}
	}

	lesson := &models.Lesson{
		Slug:      req.Slug,
		ChapterID: req.ChapterID,
		Title:     req.Title,
		Order:     req.Order,
	}

	err = s.lessonRepo.Create(ctx, lesson)
	if err != nil {
		return 0, fmt.Errorf("failed to create lesson: %w", err)
	}

	return lesson.ID, nil
}

func (s *lessonService) validateCreateLesson(ctx context.Context, authorID int, req *models.CreateLessonRequest) error {
	// Validate all fields are provided
	if req.Slug == "" || req.ChapterID == 0 || req.Title == "" || req.Order <= 0 {
		return fmt.Errorf("all fields are required and order must be greater than 0")
	}

	// Prepare for concurrent check
	errorChan := make(chan error, 3)

	// Check if chapter belongs to the author
	go func() {
		exists, err := s.chapterRepo.CheckOwnership(ctx, req.ChapterID, authorID)
		if err != nil {
			errorChan <- err
			return
		}
		if !exists {
			errorChan <- fmt.Errorf("chapter does not belong to you")
			return
		}
		errorChan <- nil
	}()

	// Check slug uniqueness
	go func() {
		exists, err := s.lessonRepo.ExistsBySlug(ctx, req.Slug)
		if err != nil {
			errorChan <- err
			return
		}
		if exists {
			errorChan <- fmt.Errorf("lesson with slug '%s' already exists", req.Slug)
			return
		}
		errorChan <- nil
	}()

	// Check title uniqueness within chapter
	go func() {
		exists, err := s.lessonRepo.ExistsByTitleInChapter(ctx, req.ChapterID, req.Title)
		if err != nil {
			errorChan <- err
			return
		}
		if exists {
			errorChan <- fmt.Errorf("lesson with title '%s' already exists in this chapter", req.Title)
			return
		}
		errorChan <- nil
	}()

	for range 3 {
		err := <-errorChan
		if err != nil {
			return err
		}
	}
	return nil
}

// UpdateLesson updates lesson metadata (partial update)
func (s *lessonService) UpdateLesson(ctx context.Context, lessonID, authorID int, req *models.UpdateLessonRequest) error {
	// Validate if any field is provided
	if req.Slug == "" && req.ChapterID == nil && req.Title == "" && req.Order == nil {
		return fmt.Errorf("at least one field must be provided")
	}

	// Get lesson to check ownership and current values
	lesson, err := s.lessonRepo.GetByID(ctx, lessonID)
	if err != nil {
		return fmt.Errorf("lesson not found")
	}

	exists, err := s.lessonRepo.CheckOwnership(ctx, lessonID, authorID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("you do not have rights to manage this lesson")
	}

	// Check if the new chapter belongs to the author
	chapterIDToCheck := lesson.ChapterID
	if req.ChapterID != nil && *req.ChapterID != lesson.ChapterID {
		exists, err := s.chapterRepo.CheckOwnership(ctx, *req.ChapterID, authorID)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("you do not have rights to manage this chapter")
		}
		chapterIDToCheck = *req.ChapterID
	}

	// Check slug uniqueness if provided
	if req.Slug != "" && req.Slug != lesson.Slug {
		exists, err := s.lessonRepo.ExistsBySlug(ctx, req.Slug)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("lesson with slug '%s' already exists", req.Slug)
		}
	}

	// Check title uniqueness if provided
	if req.Title != "" && req.Title != lesson.Title {
		exists, err := s.lessonRepo.ExistsByTitleInChapter(ctx, chapterIDToCheck, req.Title)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("lesson with title '%s' already exists in this chapter", req.Title)
		}
	}

	// Handle order conflicts if order is provided
	if req.Order != nil && *req.Order > 0 && *req.Order != lesson.Order {
		exists, err := s.lessonRepo.ExistsByOrderInChapter(ctx, chapterIDToCheck, *req.Order)
		if err != nil {
			return err
		}
		if exists {
			err = s.lessonRepo.IncrementOrderForLessons(ctx, chapterIDToCheck, *req.Order)
			if err != nil {
				return err
			}
		}
	} else if req.Order != nil && *req.Order <= 0 {
		return fmt.Errorf("order must be greater than 0")
	}

	updateLesson := &models.Lesson{
		ID:    lessonID,
		Slug:  req.Slug,
		Title: req.Title,
	}
	if chapterIDToCheck != lesson.ChapterID {
		updateLesson.ChapterID = chapterIDToCheck
	}
	if req.Order != nil {
		updateLesson.Order = *req.Order
	}

	return s.lessonRepo.Update(ctx, updateLesson)
}

// DeleteLesson deletes a lesson
func (s *lessonService) DeleteLesson(ctx context.Context, lessonID, authorID int) error {
	exists, err := s.lessonRepo.CheckOwnership(ctx, lessonID, authorID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("you do not have rights to manage this lesson")
	}

	return s.lessonRepo.Delete(ctx, lessonID)
}

// SaveSteps replaces a lesson's learning steps and learned content wholesale.
// Every step must be complete; a single incomplete step rejects the whole save.
func (s *lessonService) SaveSteps(ctx context.Context, lessonID, authorID int, learningSteps []models.LearningStep, learned []models.ContentItem) error {
	exists, err := s.lessonRepo.CheckOwnership(ctx, lessonID, authorID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("you do not have rights to manage this lesson")
	}

	for i := range learningSteps {
		if !steps.IsComplete(learningSteps[i].Data) {
			return fmt.Errorf("step %s is not complete", learningSteps[i].ID)
		}
		// Derived chat options are never trusted from the client
		steps.RefreshChatOptions(learningSteps[i].Data)
	}

	return s.lessonRepo.ReplaceSteps(ctx, lessonID, learningSteps, learned)
}

// GetLessonsShortInfo retrieves lessons with only ID and Title for a chapter
func (s *lessonService) GetLessonsShortInfo(ctx context.Context, chapterID, authorID int) ([]models.LessonShortInfo, error) {
	exists, err := s.chapterRepo.CheckOwnership(ctx, chapterID, authorID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("you do not have rights to manage this chapter")
	}

	return s.lessonRepo.GetShortInfoByChapterID(ctx, &chapterID)
}
