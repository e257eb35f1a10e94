package services

import (
	"context"
	"fmt"
	"slices"

	"github.com/sero63211/daye-course-builder/internal/models"
)

// CourseRepository defines methods for course data access
type CourseRepository interface {
	// GetByID retrieves a course by ID
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the course.
	//
	// Returns the course and an error if any.
	GetByID(ctx context.Context, id int) (*models.Course, error)
	// GetBySlug retrieves a course by slug
	//
	// "ctx" is the context for the request.
	// "slug" is the slug of the course.
	//
	// Returns the course and an error if any.
	GetBySlug(ctx context.Context, slug string) (*models.Course, error)
	// GetByAuthorID retrieves courses of an author
	//
	// "ctx" is the context for the request.
	// "authorID" is the ID of the author.
	//
	// Returns a list of courses and an error if any.
	GetByAuthorID(ctx context.Context, authorID int) ([]models.CourseListItem, error)
	// GetShortInfoByAuthorID retrieves short information about courses of an author
	//
	// "ctx" is the context for the request.
	// "authorID" is the ID of the author.
	//
	// Returns a list of course short information and an error if any.
	GetShortInfoByAuthorID(ctx context.Context, authorID int) ([]models.CourseShortInfo, error)
	// ExistsBySlug checks if a course with the given slug exists
	//
	// "ctx" is the context for the request.
	// "slug" is the slug of the course.
	//
	// Returns a boolean and an error if any.
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	// ExistsByTitleForAuthor checks if an author already has a course with the given title
	//
	// "ctx" is the context for the request.
	// "authorID" is the ID of the author.
	// "title" is the title of the course.
	//
	// Returns a boolean and an error if any.
	ExistsByTitleForAuthor(ctx context.Context, authorID int, title string) (bool, error)
	// Create creates a new course
	//
	// "ctx" is the context for the request.
	// "course" is the course to create.
	//
	// Returns an error if any.
	Create(ctx context.Context, course *models.Course) error
	// Update updates a course
	//
	// "ctx" is the context for the request.
	// "course" is the course to update.
	//
	// Returns an error if any.
	Update(ctx context.Context, course *models.Course) error
	// Delete deletes a course
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the course.
	//
	// Returns an error if any.
	Delete(ctx context.Context, id int) error
	// CheckOwnership checks if a course belongs to an author
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the course.
	// "authorID" is the ID of the author.
	//
	// Returns a boolean and an error if any.
	CheckOwnership(ctx context.Context, id, authorID int) (bool, error)
}

// ChapterRepository defines methods for chapter data access
type ChapterRepository interface {
	// GetByID retrieves a chapter by ID
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the chapter.
	//
	// Returns the chapter and an error if any.
	GetByID(ctx context.Context, id int) (*models.Chapter, error)
	// GetByCourseID retrieves chapters by course ID
	//
	// "ctx" is the context for the request.
	// "courseID" is the ID of the course.
	//
	// Returns a list of chapters and an error if any.
	GetByCourseID(ctx context.Context, courseID int) ([]models.Chapter, error)
	// GetShortInfoByCourseID retrieves short information about chapters by course ID
	//
	// "ctx" is the context for the request.
	// "courseID" is the ID of the course (optional, if nil all chapters are retrieved).
	//
	// Returns a list of chapter short information and an error if any.
	GetShortInfoByCourseID(ctx context.Context, courseID *int) ([]models.ChapterShortInfo, error)
	// ExistsByTitleInCourse checks if a chapter with the given title exists in a course
	//
	// "ctx" is the context for the request.
	// "courseID" is the ID of the course.
	// "title" is the title of the chapter.
	//
	// Returns a boolean and an error if any.
	ExistsByTitleInCourse(ctx context.Context, courseID int, title string) (bool, error)
	// ExistsByOrderInCourse checks if a chapter with the given order exists in a course
	//
	// "ctx" is the context for the request.
	// "courseID" is the ID of the course.
	// "order" is the order of the chapter.
	//
	// Returns a boolean and an error if any.
	ExistsByOrderInCourse(ctx context.Context, courseID int, order int) (bool, error)
	// IncrementOrderForChapters increments the order of chapters in a course
	//
	// "ctx" is the context for the request.
	// "courseID" is the ID of the course.
	// "order" is the order of the chapter.
	//
	// Returns an error if any.
	IncrementOrderForChapters(ctx context.Context, courseID, order int) error
	// Create creates a new chapter
	//
	// "ctx" is the context for the request.
	// "chapter" is the chapter to create.
	//
	// Returns an error if any.
	Create(ctx context.Context, chapter *models.Chapter) error
	// Update updates a chapter
	//
	// "ctx" is the context for the request.
	// "chapter" is the chapter to update.
	//
	// Returns an error if any.
	Update(ctx context.Context, chapter *models.Chapter) error
	// Delete deletes a chapter
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the chapter.
	//
	// Returns an error if any.
	Delete(ctx context.Context, id int) error
	// CheckOwnership checks if a chapter belongs to an author
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the chapter.
	// "authorID" is the ID of the author.
	//
	// Returns a boolean and an error if any.
	CheckOwnership(ctx context.Context, id, authorID int) (bool, error)
}

type authoringService struct {
	courseRepo  CourseRepository
	chapterRepo ChapterRepository
}

// NewAuthoringService creates a new authoring service
func NewAuthoringService(courseRepo CourseRepository, chapterRepo ChapterRepository) *authoringService {
	return &authoringService{
		courseRepo:  courseRepo,
		chapterRepo: chapterRepo,
	}
}

// GetCourses retrieves courses authored by the author
func (s *authoringService) GetCourses(ctx context.Context, authorID int) ([]models.CourseListItem, error) {
	return s.courseRepo.GetByAuthorID(ctx, authorID)
}

// GetCoursesShortInfo retrieves courses with only ID and Title
func (s *authoringService) GetCoursesShortInfo(ctx context.Context, authorID int) ([]models.CourseShortInfo, error) {
	return s.courseRepo.GetShortInfoByAuthorID(ctx, authorID)
}

// GetCourse retrieves a course with its chapters
func (s *authoringService) GetCourse(ctx context.Context, courseID, authorID int) (*models.Course, []models.Chapter, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, nil, fmt.Errorf("course not found")
	}

	if course.AuthorID != authorID {
		return nil, nil, fmt.Errorf("you do not have rights to manage this course")
	}

	chapters, err := s.chapterRepo.GetByCourseID(ctx, courseID)
	if err != nil {
		return nil, nil, err
	}

	return course, chapters, nil
}

// CreateCourse creates a new course
func (s *authoringService) CreateCourse(ctx context.Context, req *models.CreateCourseRequest) (int, error) {
	if err := s.validateCreateCourse(ctx, req); err != nil {
		return 0, err
	}

	course := &models.Course{
		Slug:        req.Slug,
		AuthorID:    req.AuthorID,
		Title:       req.Title,
		Description: req.Description,
		Language:    req.Language,
		Level:       req.Level,
	}

	err := s.courseRepo.Create(ctx, course)
	if err != nil {
		return 0, err
	}

	return course.ID, nil
}

func (s *authoringService) validateCreateCourse(ctx context.Context, req *models.CreateCourseRequest) error {
	// Validate all fields are provided
	if req.Slug == "" || req.Title == "" || req.Language == "" || req.Level == "" {
		return fmt.Errorf("all fields are required")
	}

	// Prepare for concurrent check
	errorChan := make(chan error, 3)

	// Validate language level
	go func() {
		if !s.isValidLanguageLevel(req.Level) {
			errorChan <- fmt.Errorf("invalid language level")
			return
		}
		errorChan <- nil
	}()
	// Check slug uniqueness
	go func() {
		exists, err := s.courseRepo.ExistsBySlug(ctx, req.Slug)
		if err != nil {
			errorChan <- err
			return
		}
		if exists {
			errorChan <- fmt.Errorf("course with slug '%s' already exists", req.Slug)
			return
		}
		errorChan <- nil
	}()
	// Check title uniqueness per author
	go func() {
		exists, err := s.courseRepo.ExistsByTitleForAuthor(ctx, req.AuthorID, req.Title)
		if err != nil {
			errorChan <- err
			return
		}
		if exists {
			errorChan <- fmt.Errorf("course with title '%s' already exists", req.Title)
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

// UpdateCourse updates a course (partial update)
func (s *authoringService) UpdateCourse(ctx context.Context, courseID, authorID int, req *models.UpdateCourseRequest) error {
	// Get course to check ownership
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return fmt.Errorf("course not found")
	}

	if course.AuthorID != authorID {
		return fmt.Errorf("you do not have rights to manage this course")
	}

	if err := s.validateUpdateCourse(ctx, course, req); err != nil {
		return err
	}

	updateCourse := &models.Course{
		ID: courseID,
	}
	if req.Slug != course.Slug {
		updateCourse.Slug = req.Slug
	}
	if req.Title != course.Title {
		updateCourse.Title = req.Title
	}
	if req.Description != course.Description {
		updateCourse.Description = req.Description
	}
	if req.Language != course.Language {
		updateCourse.Language = req.Language
	}
	if req.Level != course.Level {
		updateCourse.Level = req.Level
	}

	return s.courseRepo.Update(ctx, updateCourse)
}

// validateUpdateCourse validates the update course request
func (s *authoringService) validateUpdateCourse(ctx context.Context, course *models.Course, req *models.UpdateCourseRequest) error {
	// Validate if any field is provided
	if req.Slug == "" && req.Title == "" && req.Description == "" && req.Language == "" && req.Level == "" {
		return fmt.Errorf("at least one field must be provided")
	}

	// Prepare for concurrent check
	errorChan := make(chan error, 3)

	// Check slug uniqueness if provided
	go func() {
		if req.Slug != "" && req.Slug != course.Slug {
			exists, err := s.courseRepo.ExistsBySlug(ctx, req.Slug)
			if err != nil {
				errorChan <- err
				return
			}
			if exists {
				errorChan <- fmt.Errorf("course with slug '%s' already exists", req.Slug)
				return
			}
		}
		errorChan <- nil
	}()

	// Check title uniqueness if provided
	go func() {
		if req.Title != "" && req.Title != course.Title {
			exists, err := s.courseRepo.ExistsByTitleForAuthor(ctx, course.AuthorID, req.Title)
			if err != nil {
				errorChan <- err
				return
			}
			if exists {
				errorChan <- fmt.Errorf("course with title '%s' already exists", req.Title)
				return
			}
		}
		errorChan <- nil
	}()

	// Check language level if provided
	go func() {
		if req.Level != "" && req.Level != course.Level {
			if !s.isValidLanguageLevel(req.Level) {
				errorChan <- fmt.Errorf("invalid language level")
				return
			}
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

// DeleteCourse deletes a course
func (s *authoringService) DeleteCourse(ctx context.Context, courseID, authorID int) error {
	// Get course to check ownership
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return fmt.Errorf("course not found")
	}

	if course.AuthorID != authorID {
		return fmt.Errorf("you do not have rights to manage this course")
	}

	return s.courseRepo.Delete(ctx, courseID)
}

// CreateChapter creates a new chapter
func (s *authoringService) CreateChapter(ctx context.Context, authorID int, req *models.CreateChapterRequest) (int, error) {
	if err := s.validateCreateChapter(ctx, authorID, req); err != nil {
		return 0, err
	}

	// Handle order conflicts
	exists, err := s.chapterRepo.ExistsByOrderInCourse(ctx, req.CourseID, req.Order)
	if err != nil {
		return 0, err
	}
	if exists {
		// Increment order for all chapters with order >= new order
		// We do it to insert the new chapter without breaking the order
		err = s.chapterRepo.IncrementOrderForChapters(ctx, req.CourseID, req.Order)
		if err != nil {
			return 0, err
		}
	}

	chapter := &models.Chapter{
		CourseID: req.CourseID,
		Title:    req.Title,
		Order:    req.Order,
	}

	err = s.chapterRepo.Create(ctx, chapter)
	if err != nil {
		return 0, fmt.Errorf("failed to create chapter: %w", err)
	}

	return chapter.ID, nil
}

func (s *authoringService) validateCreateChapter(ctx context.Context, authorID int, req *models.CreateChapterRequest) error {
	// Validate all fields are provided
	if req.CourseID == 0 || req.Title == "" || req.Order <= 0 {
		return fmt.Errorf("all fields are required and order must be greater than 0")
	}

	// Prepare for concurrent check
	errorChan := make(chan error, 2)

	// Check if course belongs to the author
	go func() {
		exists, err := s.courseRepo.CheckOwnership(ctx, req.CourseID, authorID)
		if err != nil {
			errorChan <- err
			return
		}
		if !exists {
			errorChan <- fmt.Errorf("course does not belong to you")
			return
		}
		errorChan <- nil
	}()

	// Check title uniqueness within course
	go func() {
		exists, err := s.chapterRepo.ExistsByTitleInCourse(ctx, req.CourseID, req.Title)
		if err != nil {
			errorChan <- err
			return
		}
		if exists {
			errorChan <- fmt.Errorf("chapter with title '%s' already exists in this course", req.Title)
			return
		}
		errorChan <- nil
	}()

	for range 2 {
		err := <-errorChan
		if err != nil {
			return err
		}
	}
	return nil
}

// UpdateChapter updates a chapter (partial update)
func (s *authoringService) UpdateChapter(ctx context.Context, chapterID, authorID int, req *models.UpdateChapterRequest) error {
	// Validate if any field is provided
	if req.CourseID == nil && req.Title == "" && req.Order == nil {
		return fmt.Errorf("at least one field must be provided")
	}

	// Get chapter to check ownership
	chapter, err := s.chapterRepo.GetByID(ctx, chapterID)
	if err != nil {
		return fmt.Errorf("chapter not found")
	}

	exists, err := s.courseRepo.CheckOwnership(ctx, chapter.CourseID, authorID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("you do not have rights to manage this chapter")
	}

	// Check if the new course belongs to the author
	if req.CourseID != nil && *req.CourseID != chapter.CourseID {
		exists, err := s.courseRepo.CheckOwnership(ctx, *req.CourseID, authorID)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("you do not have rights to manage this course")
		}
	}

	courseIDToCheck := chapter.CourseID
	if req.CourseID != nil && *req.CourseID != chapter.CourseID {
		courseIDToCheck = *req.CourseID
	}

	// Check title uniqueness if provided
	if req.Title != "" && req.Title != chapter.Title {
		exists, err := s.chapterRepo.ExistsByTitleInCourse(ctx, courseIDToCheck, req.Title)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("chapter with title '%s' already exists in this course", req.Title)
		}
	}

	// Handle order conflicts if order is provided
	if req.Order != nil && *req.Order > 0 && *req.Order != chapter.Order {
		exists, err := s.chapterRepo.ExistsByOrderInCourse(ctx, courseIDToCheck, *req.Order)
		if err != nil {
			return err
		}
		if exists {
			// Increment order for all chapters with order >= new order
			err = s.chapterRepo.IncrementOrderForChapters(ctx, courseIDToCheck, *req.Order)
			if err != nil {
				return err
			}
		}
	} else if req.Order != nil && *req.Order <= 0 {
		return fmt.Errorf("order must be greater than 0")
	}

	updateChapter := &models.Chapter{
		ID:    chapterID,
		Title: req.Title,
	}
	if courseIDToCheck != chapter.CourseID {
		updateChapter.CourseID = courseIDToCheck
	}
	if req.Order != nil {
		updateChapter.Order = *req.Order
	}

	return s.chapterRepo.Update(ctx, updateChapter)
}

// DeleteChapter deletes a chapter
func (s *authoringService) DeleteChapter(ctx context.Context, chapterID, authorID int) error {
	exists, err := s.chapterRepo.CheckOwnership(ctx, chapterID, authorID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("you do not have rights to manage this chapter")
	}

	return s.chapterRepo.Delete(ctx, chapterID)
}

// GetChaptersShortInfo retrieves chapters with only ID and Title for a course
func (s *authoringService) GetChaptersShortInfo(ctx context.Context, courseID, authorID int) ([]models.ChapterShortInfo, error) {
	exists, err := s.courseRepo.CheckOwnership(ctx, courseID, authorID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("you do not have rights to manage this course")
	}

	return s.chapterRepo.GetShortInfoByCourseID(ctx, &courseID)
}

func (s *authoringService) isValidLanguageLevel(level models.LanguageLevel) bool {
	validLevels := []models.LanguageLevel{
		models.LanguageLevelA1,
		models.LanguageLevelA2,
		models.LanguageLevelB1,
		models.LanguageLevelB2,
		models.LanguageLevelC1,
		models.LanguageLevelC2,
	}
	return slices.Contains(validLevels, level)
}
