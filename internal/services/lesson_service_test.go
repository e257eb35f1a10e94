package services

import (
	"context"
	"testing"

	"github.com/sero63211/daye-course-builder/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLessonRepository is a minimal mock for testing
type mockLessonRepository struct {
	lessons        []models.LessonListItem
	lesson         *models.Lesson
	shortInfo      []models.LessonShortInfo
	existsBySlug   bool
	existsByTitle  bool
	existsByOrder  bool
	err            error
	createErr      error
	updateErr      error
	deleteErr      error
	replaceErr     error
	checkOwnership bool
	incremented    bool
	replacedSteps  []models.LearningStep
	replacedItems  []models.ContentItem
}

func (m *mockLessonRepository) GetByID(ctx context.Context, id int) (*models.Lesson, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.lesson, nil
}

func (m *mockLessonRepository) GetBySlug(ctx context.Context, slug string) (*models.Lesson, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.lesson, nil
}

func (m *mockLessonRepository) GetByChapterID(ctx context.Context, chapterID int) ([]models.LessonListItem, error) {
	return m.lessons, m.err
}

func (m *mockLessonRepository) GetShortInfoByChapterID(ctx context.Context, chapterID *int) ([]models.LessonShortInfo, error) {
	return m.shortInfo, m.err
}

func (m *mockLessonRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	return m.existsBySlug, m.err
}

func (m *mockLessonRepository) ExistsByTitleInChapter(ctx context.Context, chapterID int, title string) (bool, error) {
	return m.existsByTitle, m.err
}

func (m *mockLessonRepository) ExistsByOrderInChapter(ctx context.Context, chapterID int, order int) (bool, error) {
	return m.existsByOrder, m.err
}

func (m *mockLessonRepository) IncrementOrderForLessons(ctx context.Context, chapterID, order int) error {
	m.incremented = true
	return m.err
}

func (m *mockLessonRepository) Create(ctx context.Context, lesson *models.Lesson) error {
	if m.createErr != nil {
		return m.createErr
	}
	lesson.ID = 1
	return m.err
}

func (m *mockLessonRepository) Update(ctx context.Context, lesson *models.Lesson) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	return m.err
}

func (m *mockLessonRepository) ReplaceSteps(ctx context.Context, lessonID int, steps []models.LearningStep, learned []models.ContentItem) error {
	if m.replaceErr != nil {
		return m.replaceErr
	}
	m.replacedSteps = steps
	m.replacedItems = learned
	return m.err
}

func (m *mockLessonRepository) Delete(ctx context.Context, id int) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	return m.err
}

func (m *mockLessonRepository) CheckOwnership(ctx context.Context, id, authorID int) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.checkOwnership, nil
}

func TestNewLessonService(t *testing.T) {
	lessonRepo := &mockLessonRepository{}
	chapterRepo := &mockChapterRepository{}
	courseRepo := &mockCourseRepository{}

	svc := NewLessonService(lessonRepo, chapterRepo, courseRepo)

	assert.NotNil(t, svc)
	assert.Equal(t, lessonRepo, svc.lessonRepo)
	assert.Equal(t, chapterRepo, svc.chapterRepo)
	assert.Equal(t, courseRepo, svc.courseRepo)
}

func TestLessonService_GetLesson(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := &mockLessonRepository{
			checkOwnership: true,
			lesson: &models.Lesson{
				ID:    1,
				Title: "Greetings",
				LearningSteps: []models.LearningStep{
					{ID: "step-1", Type: models.StepTypeLessonInformation, Data: &models.LessonInformationData{Title: "Grammar", MainText: "Verbs go second."}},
				},
			},
		}
		svc := NewLessonService(repo, &mockChapterRepository{}, &mockCourseRepository{})

		lesson, err := svc.GetLesson(context.Background(), 1, 7)
		require.NoError(t, err)
		require.NotNil(t, lesson)
		assert.Len(t, lesson.LearningSteps, 1)
	})

	t.Run("not the owner", func(t *testing.T) {
		repo := &mockLessonRepository{checkOwnership: false}
		svc := NewLessonService(repo, &mockChapterRepository{}, &mockCourseRepository{})

		lesson, err := svc.GetLesson(context.Background(), 1, 8)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "rights")
		assert.Nil(t, lesson)
	})
}

func TestLessonService_GetLessonsForChapter(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		lessonRepo := &mockLessonRepository{
			lessons: []models.LessonListItem{
				{ID: 1, Title: "Greetings", StepCount: 4},
				{ID: 2, Title: "Numbers", StepCount: 0},
			},
		}
		chapterRepo := &mockChapterRepository{checkOwnership: true}
		svc := NewLessonService(lessonRepo, chapterRepo, &mockCourseRepository{})

		lessons, err := svc.GetLessonsForChapter(context.Background(), 3, 7)
		require.NoError(t, err)
		require.Len(t, lessons, 2)
		assert.Equal(t, 4, lessons[0].StepCount)
	})

	t.Run("chapter not owned", func(t *testing.T) {
		chapterRepo := &mockChapterRepository{checkOwnership: false}
		svc := NewLessonService(&mockLessonRepository{}, chapterRepo, &mockCourseRepository{})

		lessons, err := svc.GetLessonsForChapter(context.Background(), 3, 7)
		assert.Error(t, err)
		assert.Nil(t, lessons)
	})
}

func TestLessonService_CreateLesson(t *testing.T) {
	validRequest := func() *models.CreateLessonRequest {
		return &models.CreateLessonRequest{
			Slug:      "greetings",
			ChapterID: 3,
			Title:     "Greetings",
			Order:     1,
		}
	}

	tests := []struct {
		name            string
		request         *models.CreateLessonRequest
		lessonRepo      *mockLessonRepository
		chapterRepo     *mockChapterRepository
		expectedError   bool
		errorContains   string
		expectIncrement bool
	}{
		{
			name:          "success",
			request:       validRequest(),
			lessonRepo:    &mockLessonRepository{},
			chapterRepo:   &mockChapterRepository{checkOwnership: true},
			expectedError: false,
		},
		{
			name: "missing fields",
			request: &models.CreateLessonRequest{
				Title: "Greetings",
			},
			lessonRepo:    &mockLessonRepository{},
			chapterRepo:   &mockChapterRepository{checkOwnership: true},
			expectedError: true,
			errorContains: "required",
		},
		{
			name:          "chapter not owned",
			request:       validRequest(),
			lessonRepo:    &mockLessonRepository{},
			chapterRepo:   &mockChapterRepository{checkOwnership: false},
			expectedError: true,
			errorContains: "does not belong to you",
		},
		{
			name:          "slug already exists",
			request:       validRequest(),
			lessonRepo:    &mockLessonRepository{existsBySlug: true},
			chapterRepo:   &mockChapterRepository{checkOwnership: true},
			expectedError: true,
			errorContains: "already exists",
		},
		{
			name:            "order conflict shifts later lessons",
			request:         validRequest(),
			lessonRepo:      &mockLessonRepository{existsByOrder: true},
			chapterRepo:     &mockChapterRepository{checkOwnership: true},
			expectedError:   false,
			expectIncrement: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewLessonService(tt.lessonRepo, tt.chapterRepo, &mockCourseRepository{})
			ctx := context.Background()

			id, err := svc.CreateLesson(ctx, 7, tt.request)

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
			assert.Equal(t, tt.expectIncrement, tt.lessonRepo.incremented)
		})
	}
}

func TestLessonService_UpdateLesson(t *testing.T) {
	existing := &models.Lesson{ID: 1, Slug: "greetings", ChapterID: 3, Title: "Greetings", Order: 1}

	t.Run("success", func(t *testing.T) {
		repo := &mockLessonRepository{lesson: existing, checkOwnership: true}
		svc := NewLessonService(repo, &mockChapterRepository{checkOwnership: true}, &mockCourseRepository{})

		err := svc.UpdateLesson(context.Background(), 1, 7, &models.UpdateLessonRequest{Title: "Hello"})
		assert.NoError(t, err)
	})

	t.Run("no fields provided", func(t *testing.T) {
		svc := NewLessonService(&mockLessonRepository{}, &mockChapterRepository{}, &mockCourseRepository{})

		err := svc.UpdateLesson(context.Background(), 1, 7, &models.UpdateLessonRequest{})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "at least one field")
	})

	t.Run("not the owner", func(t *testing.T) {
		repo := &mockLessonRepository{lesson: existing, checkOwnership: false}
		svc := NewLessonService(repo, &mockChapterRepository{}, &mockCourseRepository{})

		err := svc.UpdateLesson(context.Background(), 1, 8, &models.UpdateLessonRequest{Title: "Hello"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "rights")
	})
}

func TestLessonService_SaveSteps(t *testing.T) {
	completeStep := models.LearningStep{
		ID:   "step-1",
		Type: models.StepTypeTrueFalse,
		Data: &models.TrueFalseData{Statement: "Der Hund ist ein Tier.", IsTrueStatement: true, CorrectAnswer: "true"},
	}
	incompleteStep := models.LearningStep{
		ID:   "step-2",
		Type: models.StepTypeTrueFalse,
		Data: &models.TrueFalseData{Statement: "Die Katze ist ein Tier."},
	}

	t.Run("success replaces steps wholesale", func(t *testing.T) {
		repo := &mockLessonRepository{checkOwnership: true}
		svc := NewLessonService(repo, &mockChapterRepository{}, &mockCourseRepository{})

		learned := []models.ContentItem{{ID: "c1", Text: "der Hund", ContentType: models.ContentTypeVocabulary}}
		err := svc.SaveSteps(context.Background(), 1, 7, []models.LearningStep{completeStep}, learned)
		require.NoError(t, err)
		require.Len(t, repo.replacedSteps, 1)
		assert.Equal(t, "step-1", repo.replacedSteps[0].ID)
		require.Len(t, repo.replacedItems, 1)
	})

	t.Run("single incomplete step rejects the whole save", func(t *testing.T) {
		repo := &mockLessonRepository{checkOwnership: true}
		svc := NewLessonService(repo, &mockChapterRepository{}, &mockCourseRepository{})

		err := svc.SaveSteps(context.Background(), 1, 7, []models.LearningStep{completeStep, incompleteStep}, nil)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not complete")
		assert.Nil(t, repo.replacedSteps)
	})

	t.Run("chat options are re-derived before persisting", func(t *testing.T) {
		repo := &mockLessonRepository{checkOwnership: true}
		svc := NewLessonService(repo, &mockChapterRepository{}, &mockCourseRepository{})

		chatStep := models.LearningStep{
			ID:   "step-3",
			Type: models.StepTypeFillInChat,
			Data: &models.FillInChatData{
				Title: "At the bakery",
				Conversations: []models.ChatMessage{
					{Speaker: "A", Message: "Guten ___!", MissingWord: &models.MissingWord{CorrectAnswer: "Morgen"}},
				},
				Options: []string{"stale", "options"},
			},
		}

		err := svc.SaveSteps(context.Background(), 1, 7, []models.LearningStep{chatStep}, nil)
		require.NoError(t, err)
		require.Len(t, repo.replacedSteps, 1)
		saved := repo.replacedSteps[0].Data.(*models.FillInChatData)
		assert.Equal(t, []string{"Morgen"}, saved.Options)
	})

	t.Run("not the owner", func(t *testing.T) {
		repo := &mockLessonRepository{checkOwnership: false}
		svc := NewLessonService(repo, &mockChapterRepository{}, &mockCourseRepository{})

		err := svc.SaveSteps(context.Background(), 1, 8, []models.LearningStep{completeStep}, nil)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "rights")
	})

	t.Run("empty step list is a valid save", func(t *testing.T) {
		repo := &mockLessonRepository{checkOwnership: true}
		svc := NewLessonService(repo, &mockChapterRepository{}, &mockCourseRepository{})

		err := svc.SaveSteps(context.Background(), 1, 7, nil, nil)
		assert.NoError(t, err)
	})
}

func TestLessonService_DeleteLesson(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := &mockLessonRepository{checkOwnership: true}
		svc := NewLessonService(repo, &mockChapterRepository{}, &mockCourseRepository{})

		err := svc.DeleteLesson(context.Background(), 1, 7)
		assert.NoError(t, err)
	})

	t.Run("not the owner", func(t *testing.T) {
		repo := &mockLessonRepository{checkOwnership: false}
		svc := NewLessonService(repo, &mockChapterRepository{}, &mockCourseRepository{})

		err := svc.DeleteLesson(context.Background(), 1, 7)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "rights")
	})
}
