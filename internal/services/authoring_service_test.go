package services

import (
	"context"
	"errors"
	"testing"

	"github.com/sero63211/daye-course-builder/internal/models"
	"github.com/stretchr/testify/assert"
)

// mockCourseRepository is a mock implementation of CourseRepository
type mockCourseRepository struct {
	courses         []models.CourseListItem
	course          *models.Course
	courseShortInfo []models.CourseShortInfo
	existsBySlug    bool
	existsByTitle   bool
	err             error
	createErr       error
	updateErr       error
	deleteErr       error
	checkOwnership  bool
}

func (m *mockCourseRepository) GetByID(ctx context.Context, id int) (*models.Course, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.course, nil
}

func (m *mockCourseRepository) GetBySlug(ctx context.Context, slug string) (*models.Course, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.course, nil
}

func (m *mockCourseRepository) GetByAuthorID(ctx context.Context, authorID int) ([]models.CourseListItem, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.courses, nil
}

func (m *mockCourseRepository) GetShortInfoByAuthorID(ctx context.Context, authorID int) ([]models.CourseShortInfo, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.courseShortInfo, nil
}

func (m *mockCourseRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.existsBySlug, nil
}

func (m *mockCourseRepository) ExistsByTitleForAuthor(ctx context.Context, authorID int, title string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.existsByTitle, nil
}

func (m *mockCourseRepository) Create(ctx context.Context, course *models.Course) error {
	if m.createErr != nil {
		return m.createErr
	}
	course.ID = 1
	return m.err
}

func (m *mockCourseRepository) Update(ctx context.Context, course *models.Course) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	return m.err
}

func (m *mockCourseRepository) Delete(ctx context.Context, id int) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	return m.err
}

func (m *mockCourseRepository) CheckOwnership(ctx context.Context, id, authorID int) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.checkOwnership, nil
}

// mockChapterRepository is a minimal mock for testing
type mockChapterRepository struct {
	chapters       []models.Chapter
	chapter        *models.Chapter
	shortInfo      []models.ChapterShortInfo
	existsByTitle  bool
	existsByOrder  bool
	err            error
	createErr      error
	updateErr      error
	deleteErr      error
	checkOwnership bool
	incremented    bool
}

func (m *mockChapterRepository) GetByID(ctx context.Context, id int) (*models.Chapter, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.chapter, nil
}

func (m *mockChapterRepository) GetByCourseID(ctx context.Context, courseID int) ([]models.Chapter, error) {
	return m.chapters, m.err
}

func (m *mockChapterRepository) GetShortInfoByCourseID(ctx context.Context, courseID *int) ([]models.ChapterShortInfo, error) {
	return m.shortInfo, m.err
}

func (m *mockChapterRepository) ExistsByTitleInCourse(ctx context.Context, courseID int, title string) (bool, error) {
	return m.existsByTitle, m.err
}

func (m *mockChapterRepository) ExistsByOrderInCourse(ctx context.Context, courseID int, order int) (bool, error) {
	return m.existsByOrder, m.err
}

func (m *mockChapterRepository) IncrementOrderForChapters(ctx context.Context, courseID, order int) error {
	m.incremented = true
	return m.err
}

func (m *mockChapterRepository) Create(ctx context.Context, chapter *models.Chapter) error {
	if m.createErr != nil {
		return m.createErr
	}
	chapter.ID = 1
	return m.err
}

func (m *mockChapterRepository) Update(ctx context.Context, chapter *models.Chapter) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	return m.err
}

func (m *mockChapterRepository) Delete(ctx context.Context, id int) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	return m.err
}

func (m *mockChapterRepository) CheckOwnership(ctx context.Context, id, authorID int) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.checkOwnership, nil
}

func TestNewAuthoringService(t *testing.T) {
	courseRepo := &mockCourseRepository{}
	chapterRepo := &mockChapterRepository{}

	svc := NewAuthoringService(courseRepo, chapterRepo)

	assert.NotNil(t, svc)
	assert.Equal(t, courseRepo, svc.courseRepo)
	assert.Equal(t, chapterRepo, svc.chapterRepo)
}

func TestAuthoringService_GetCourses(t *testing.T) {
	tests := []struct {
		name          string
		mockRepo      *mockCourseRepository
		expectedError bool
		expectedCount int
	}{
		{
			name: "success",
			mockRepo: &mockCourseRepository{
				courses: []models.CourseListItem{
					{ID: 1, Title: "German for Beginners"},
					{ID: 2, Title: "German Next Steps"},
				},
			},
			expectedError: false,
			expectedCount: 2,
		},
		{
			name: "repository error",
			mockRepo: &mockCourseRepository{
				err: errors.New("database error"),
			},
			expectedError: true,
			expectedCount: 0,
		},
		{
			name: "empty result",
			mockRepo: &mockCourseRepository{
				courses: []models.CourseListItem{},
			},
			expectedError: false,
			expectedCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAuthoringService(tt.mockRepo, &mockChapterRepository{})
			ctx := context.Background()

			result, err := svc.GetCourses(ctx, 7)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, result)
				assert.Len(t, result, tt.expectedCount)
			}
		})
	}
}

func TestAuthoringService_CreateCourse(t *testing.T) {
	validRequest := func() *models.CreateCourseRequest {
		return &models.CreateCourseRequest{
			Slug:        "german-a1",
			AuthorID:    7,
			Title:       "German for Beginners",
			Description: "Basics of German",
			Language:    "de",
			Level:       models.LanguageLevelA1,
		}
	}

	tests := []struct {
		name          string
		request       *models.CreateCourseRequest
		mockRepo      *mockCourseRepository
		expectedError bool
		errorContains string
	}{
		{
			name:          "success",
			request:       validRequest(),
			mockRepo:      &mockCourseRepository{},
			expectedError: false,
		},
		{
			name: "missing fields",
			request: &models.CreateCourseRequest{
				Slug: "german-a1",
			},
			mockRepo:      &mockCourseRepository{},
			expectedError: true,
			errorContains: "all fields are required",
		},
		{
			name: "invalid language level",
			request: func() *models.CreateCourseRequest {
				req := validRequest()
				req.Level = "Z9"
				return req
			}(),
			mockRepo:      &mockCourseRepository{},
			expectedError: true,
			errorContains: "invalid language level",
		},
		{
			name:    "slug already exists",
			request: validRequest(),
			mockRepo: &mockCourseRepository{
				existsBySlug: true,
			},
			expectedError: true,
			errorContains: "already exists",
		},
		{
			name:    "title already exists for author",
			request: validRequest(),
			mockRepo: &mockCourseRepository{
				existsByTitle: true,
			},
			expectedError: true,
			errorContains: "already exists",
		},
		{
			name:    "repository create error",
			request: validRequest(),
			mockRepo: &mockCourseRepository{
				createErr: errors.New("database error"),
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAuthoringService(tt.mockRepo, &mockChapterRepository{})
			ctx := context.Background()

			id, err := svc.CreateCourse(ctx, tt.request)

			if tt.expectedError {
				assert.Error(t, err)
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}
				assert.Zero(t, id)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 1, id)
			}
		})
	}
}

func TestAuthoringService_UpdateCourse(t *testing.T) {
	ownedCourse := &models.Course{
		ID:       1,
		Slug:     "german-a1",
		AuthorID: 7,
		Title:    "German for Beginners",
		Language: "de",
		Level:    models.LanguageLevelA1,
	}

	tests := []struct {
		name          string
		authorID      int
		request       *models.UpdateCourseRequest
		mockRepo      *mockCourseRepository
		expectedError bool
		errorContains string
	}{
		{
			name:     "success",
			authorID: 7,
			request:  &models.UpdateCourseRequest{Title: "German A1"},
			mockRepo: &mockCourseRepository{
				course: ownedCourse,
			},
			expectedError: false,
		},
		{
			name:     "course not found",
			authorID: 7,
			request:  &models.UpdateCourseRequest{Title: "German A1"},
			mockRepo: &mockCourseRepository{
				err: errors.New("course not found"),
			},
			expectedError: true,
			errorContains: "course not found",
		},
		{
			name:     "not the owner",
			authorID: 8,
			request:  &models.UpdateCourseRequest{Title: "German A1"},
			mockRepo: &mockCourseRepository{
				course: ownedCourse,
			},
			expectedError: true,
			errorContains: "rights",
		},
		{
			name:     "no fields provided",
			authorID: 7,
			request:  &models.UpdateCourseRequest{},
			mockRepo: &mockCourseRepository{
				course: ownedCourse,
			},
			expectedError: true,
			errorContains: "at least one field",
		},
		{
			name:     "new slug already exists",
			authorID: 7,
			request:  &models.UpdateCourseRequest{Slug: "german-a2"},
			mockRepo: &mockCourseRepository{
				course:       ownedCourse,
				existsBySlug: true,
			},
			expectedError: true,
			errorContains: "already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAuthoringService(tt.mockRepo, &mockChapterRepository{})
			ctx := context.Background()

			err := svc.UpdateCourse(ctx, 1, tt.authorID, tt.request)

			if tt.expectedError {
				assert.Error(t, err)
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAuthoringService_DeleteCourse(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := &mockCourseRepository{
			course: &models.Course{ID: 1, AuthorID: 7},
		}
		svc := NewAuthoringService(repo, &mockChapterRepository{})

		err := svc.DeleteCourse(context.Background(), 1, 7)
		assert.NoError(t, err)
	})

	t.Run("not the owner", func(t *testing.T) {
		repo := &mockCourseRepository{
			course: &models.Course{ID: 1, AuthorID: 7},
		}
		svc := NewAuthoringService(repo, &mockChapterRepository{})

		err := svc.DeleteCourse(context.Background(), 1, 8)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "rights")
	})
}

func TestAuthoringService_CreateChapter(t *testing.T) {
	validRequest := func() *models.CreateChapterRequest {
		return &models.CreateChapterRequest{
			CourseID: 1,
			Title:    "Greetings",
			Order:    1,
		}
	}

	tests := []struct {
		name            string
		request         *models.CreateChapterRequest
		courseRepo      *mockCourseRepository
		chapterRepo     *mockChapterRepository
		expectedError   bool
		errorContains   string
		expectIncrement bool
	}{
		{
			name:          "success",
			request:       validRequest(),
			courseRepo:    &mockCourseRepository{checkOwnership: true},
			chapterRepo:   &mockChapterRepository{},
			expectedError: false,
		},
		{
			name: "missing fields",
			request: &models.CreateChapterRequest{
				Title: "Greetings",
			},
			courseRepo:    &mockCourseRepository{checkOwnership: true},
			chapterRepo:   &mockChapterRepository{},
			expectedError: true,
			errorContains: "required",
		},
		{
			name:          "course not owned",
			request:       validRequest(),
			courseRepo:    &mockCourseRepository{checkOwnership: false},
			chapterRepo:   &mockChapterRepository{},
			expectedError: true,
			errorContains: "does not belong to you",
		},
		{
			name:          "title already exists in course",
			request:       validRequest(),
			courseRepo:    &mockCourseRepository{checkOwnership: true},
			chapterRepo:   &mockChapterRepository{existsByTitle: true},
			expectedError: true,
			errorContains: "already exists",
		},
		{
			name:            "order conflict shifts later chapters",
			request:         validRequest(),
			courseRepo:      &mockCourseRepository{checkOwnership: true},
			chapterRepo:     &mockChapterRepository{existsByOrder: true},
			expectedError:   false,
			expectIncrement: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAuthoringService(tt.courseRepo, tt.chapterRepo)
			ctx := context.Background()

			id, err := svc.CreateChapter(ctx, 7, tt.request)

			if tt.expectedError {
				assert.Error(t, err)
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}
				assert.Zero(t, id)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 1, id)
			}
			assert.Equal(t, tt.expectIncrement, tt.chapterRepo.incremented)
		})
	}
}

func TestAuthoringService_UpdateChapter(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		courseRepo := &mockCourseRepository{checkOwnership: true}
		chapterRepo := &mockChapterRepository{
			chapter: &models.Chapter{ID: 1, CourseID: 1, Title: "Greetings", Order: 1},
		}
		svc := NewAuthoringService(courseRepo, chapterRepo)

		err := svc.UpdateChapter(context.Background(), 1, 7, &models.UpdateChapterRequest{Title: "Basics"})
		assert.NoError(t, err)
	})

	t.Run("no fields provided", func(t *testing.T) {
		svc := NewAuthoringService(&mockCourseRepository{}, &mockChapterRepository{})

		err := svc.UpdateChapter(context.Background(), 1, 7, &models.UpdateChapterRequest{})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "at least one field")
	})

	t.Run("not the owner", func(t *testing.T) {
		courseRepo := &mockCourseRepository{checkOwnership: false}
		chapterRepo := &mockChapterRepository{
			chapter: &models.Chapter{ID: 1, CourseID: 1, Title: "Greetings", Order: 1},
		}
		svc := NewAuthoringService(courseRepo, chapterRepo)

		err := svc.UpdateChapter(context.Background(), 1, 7, &models.UpdateChapterRequest{Title: "Basics"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "rights")
	})

	t.Run("invalid order", func(t *testing.T) {
		courseRepo := &mockCourseRepository{checkOwnership: true}
		chapterRepo := &mockChapterRepository{
			chapter: &models.Chapter{ID: 1, CourseID: 1, Title: "Greetings", Order: 1},
		}
		svc := NewAuthoringService(courseRepo, chapterRepo)

		order := 0
		err := svc.UpdateChapter(context.Background(), 1, 7, &models.UpdateChapterRequest{Order: &order})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "order must be greater than 0")
	})
}

func TestAuthoringService_DeleteChapter(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		chapterRepo := &mockChapterRepository{checkOwnership: true}
		svc := NewAuthoringService(&mockCourseRepository{}, chapterRepo)

		err := svc.DeleteChapter(context.Background(), 1, 7)
		assert.NoError(t, err)
	})

	t.Run("not the owner", func(t *testing.T) {
		chapterRepo := &mockChapterRepository{checkOwnership: false}
		svc := NewAuthoringService(&mockCourseRepository{}, chapterRepo)

		err := svc.DeleteChapter(context.Background(), 1, 7)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "rights")
	})
}

func TestAuthoringService_GetCourse(t *testing.T) {
	t.Run("success with chapters", func(t *testing.T) {
		courseRepo := &mockCourseRepository{
			course: &models.Course{ID: 1, AuthorID: 7, Title: "German for Beginners"},
		}
		chapterRepo := &mockChapterRepository{
			chapters: []models.Chapter{
				{ID: 1, CourseID: 1, Title: "Greetings", Order: 1},
			},
		}
		svc := NewAuthoringService(courseRepo, chapterRepo)

		course, chapters, err := svc.GetCourse(context.Background(), 1, 7)
		assert.NoError(t, err)
		assert.NotNil(t, course)
		assert.Len(t, chapters, 1)
	})

	t.Run("not the owner", func(t *testing.T) {
		courseRepo := &mockCourseRepository{
			course: &models.Course{ID: 1, AuthorID: 7},
		}
		svc := NewAuthoringService(courseRepo, &mockChapterRepository{})

		course, chapters, err := svc.GetCourse(context.Background(), 1, 8)
		assert.Error(t, err)
		assert.Nil(t, course)
		assert.Nil(t, chapters)
	})
}
