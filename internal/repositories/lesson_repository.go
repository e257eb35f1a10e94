package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sero63211/daye-course-builder/internal/models"
)

type lessonRepository struct {
	db *sql.DB
}

// NewLessonRepository creates a new lesson repository
func NewLessonRepository(db *sql.DB) *lessonRepository {
	return &lessonRepository{
		db: db,
	}
}

// GetByID retrieves a lesson by its ID including steps and learned content
func (r *lessonRepository) GetByID(ctx context.Context, id int) (*models.Lesson, error) {
	query := `
		SELECT id, slug, chapter_id, title, ` + "`order`" + `, learning_steps, learned_content
		FROM lessons
		WHERE id = ?
		LIMIT 1
	`

	var lesson models.Lesson
	var stepsJSON, learnedJSON string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&lesson.ID,
		&lesson.Slug,
		&lesson.ChapterID,
		&lesson.Title,
		&lesson.Order,
		&stepsJSON,
		&learnedJSON,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("lesson not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lesson by id: %w", err)
	}

	if err := json.Unmarshal([]byte(stepsJSON), &lesson.LearningSteps); err != nil {
		return nil, fmt.Errorf("failed to unmarshal learning steps: %w", err)
	}
	if err := json.Unmarshal([]byte(learnedJSON), &lesson.LearnedContent); err != nil {
		return nil, fmt.Errorf("failed to unmarshal learned content: %w", err)
	}

	return &lesson, nil
}

// GetBySlug retrieves a lesson by its slug including steps and learned content
func (r *lessonRepository) GetBySlug(ctx context.Context, slug string) (*models.Lesson, error) {
	query := `
		SELECT id, slug, chapter_id, title, ` + "`order`" + `, learning_steps, learned_content
		FROM lessons
		WHERE slug = ?
		LIMIT 1
	`

	var lesson models.Lesson
	var stepsJSON, learnedJSON string
	err := r.db.QueryRowContext(ctx, query, slug).Scan(
		&lesson.ID,
		&lesson.Slug,
		&lesson.ChapterID,
		&lesson.Title,
		&lesson.Order,
		&stepsJSON,
		&learnedJSON,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("lesson not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lesson by slug: %w", err)
	}

	if err := json.Unmarshal([]byte(stepsJSON), &lesson.LearningSteps); err != nil {
		return nil, fmt.Errorf("failed to unmarshal learning steps: %w", err)
	}
	if err := json.Unmarshal([]byte(learnedJSON), &lesson.LearnedContent); err != nil {
		return nil, fmt.Errorf("failed to unmarshal learned content: %w", err)
	}

	return &lesson, nil
}

// GetByChapterID retrieves all lessons for a chapter without step payloads, sorted by order
func (r *lessonRepository) GetByChapterID(ctx context.Context, chapterID int) ([]models.LessonListItem, error) {
	query := `
		SELECT id, slug, title, ` + "`order`" + `, JSON_LENGTH(learning_steps) as step_count
		FROM lessons
		WHERE chapter_id = ?
		ORDER BY ` + "`order`" + `
	`

	rows, err := r.db.QueryContext(ctx, query, chapterID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lessons: %w", err)
	}
	defer rows.Close()

	var lessons []models.LessonListItem
	for rows.Next() {
		var lesson models.LessonListItem
		err := rows.Scan(
			&lesson.ID,
			&lesson.Slug,
			&lesson.Title,
			&lesson.Order,
			&lesson.StepCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lesson: %w", err)
		}
		lessons = append(lessons, lesson)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return lessons, nil
}

// GetShortInfoByChapterID retrieves lessons with only ID and Title for select options
func (r *lessonRepository) GetShortInfoByChapterID(ctx context.Context, chapterID *int) ([]models.LessonShortInfo, error) {
	var whereClause string
	var args []any
	if chapterID != nil {
		whereClause = "WHERE chapter_id = ?"
		args = append(args, *chapterID)
	}
	query := fmt.Sprintf(`
		SELECT id, title
		FROM lessons
		%s
		ORDER BY `+"`order`"+`
	`, whereClause)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query lessons: %w", err)
	}
	defer rows.Close()

	var lessons []models.LessonShortInfo
	for rows.Next() {
		var lesson models.LessonShortInfo
		err := rows.Scan(&lesson.ID, &lesson.Title)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lesson: %w", err)
		}
		lessons = append(lessons, lesson)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return lessons, nil
}

// ExistsBySlug checks if a lesson with the given slug exists
func (r *lessonRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM lessons WHERE slug = ?)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check lesson existence: %w", err)
	}

	return exists, nil
}

// ExistsByTitleInChapter checks if a lesson with the given title exists in the chapter
func (r *lessonRepository) ExistsByTitleInChapter(ctx context.Context, chapterID int, title string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM lessons WHERE chapter_id = ? AND title = ?)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, chapterID, title).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check lesson title existence: %w", err)
	}

	return exists, nil
}

// ExistsByOrderInChapter checks if a lesson with the given order exists in the chapter
func (r *lessonRepository) ExistsByOrderInChapter(ctx context.Context, chapterID int, order int) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM lessons WHERE chapter_id = ? AND ` + "`order`" + ` = ?)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, chapterID, order).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check lesson order existence: %w", err)
	}

	return exists, nil
}

// IncrementOrderForLessons increments order for all lessons in a chapter with order >= given order
func (r *lessonRepository) IncrementOrderForLessons(ctx context.Context, chapterID, order int) error {
	query := `
		UPDATE lessons
		SET ` + "`order`" + ` = ` + "`order`" + ` + 1
		WHERE chapter_id = ? AND ` + "`order`" + ` >= ?
	`

	_, err := r.db.ExecContext(ctx, query, chapterID, order)
	if err != nil {
		return fmt.Errorf("failed to increment lesson order: %w", err)
	}

	return nil
}

// Create creates a new lesson with empty steps and learned content
func (r *lessonRepository) Create(ctx context.Context, lesson *models.Lesson) error {
	if lesson.LearningSteps == nil {
		lesson.LearningSteps = []models.LearningStep{}
	}
	if lesson.LearnedContent == nil {
		lesson.LearnedContent = []models.ContentItem{}
	}

	stepsJSON, err := json.Marshal(lesson.LearningSteps)
	if err != nil {
		return fmt.Errorf("failed to marshal learning steps: %w", err)
	}
	learnedJSON, err := json.Marshal(lesson.LearnedContent)
	if err != nil {
		return fmt.Errorf("failed to marshal learned content: %w", err)
	}

	query := `
		INSERT INTO lessons (slug, chapter_id, title, ` + "`order`" + `, learning_steps, learned_content)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		lesson.Slug,
		lesson.ChapterID,
		lesson.Title,
		lesson.Order,
		string(stepsJSON),
		string(learnedJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to create lesson: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	lesson.ID = int(id)
	return nil
}

// Update updates lesson metadata (partial update), never the step payloads
func (r *lessonRepository) Update(ctx context.Context, lesson *models.Lesson) error {
	var setParts []string
	var args []any

	if lesson.Slug != "" {
		setParts = append(setParts, "slug = ?")
		args = append(args, lesson.Slug)
	}
	if lesson.ChapterID != 0 {
		setParts = append(setParts, "chapter_id = ?")
		args = append(args, lesson.ChapterID)
	}
	if lesson.Title != "" {
		setParts = append(setParts, "title = ?")
		args = append(args, lesson.Title)
	}
	if lesson.Order != 0 {
		setParts = append(setParts, "`order` = ?")
		args = append(args, lesson.Order)
	}

	if len(setParts) == 0 {
		return fmt.Errorf("no fields to update")
	}

	query := fmt.Sprintf(`
		UPDATE lessons
		SET %s
		WHERE id = ?
	`, strings.Join(setParts, ", "))

	args = append(args, lesson.ID)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update lesson: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("lesson not found")
	}

	return nil
}

// ReplaceSteps replaces the lesson's step list and learned content wholesale
func (r *lessonRepository) ReplaceSteps(ctx context.Context, lessonID int, steps []models.LearningStep, learned []models.ContentItem) error {
	if steps == nil {
		steps = []models.LearningStep{}
	}
	if learned == nil {
		learned = []models.ContentItem{}
	}

	stepsJSON, err := json.Marshal(steps)
	if err != nil {
		return fmt.Errorf("failed to marshal learning steps: %w", err)
	}
	learnedJSON, err := json.Marshal(learned)
	if err != nil {
		return fmt.Errorf("failed to marshal learned content: %w", err)
	}

	query := `
		UPDATE lessons
		SET learning_steps = ?, learned_content = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, string(stepsJSON), string(learnedJSON), lessonID)
	if err != nil {
		return fmt.Errorf("failed to replace lesson steps: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("lesson not found")
	}

	return nil
}

// Delete deletes a lesson by ID
func (r *lessonRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM lessons WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete lesson: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("lesson not found")
	}

	return nil
}

// CheckOwnership checks if a lesson belongs to an author
func (r *lessonRepository) CheckOwnership(ctx context.Context, id, authorID int) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM lessons WHERE id = ? AND chapter_id IN (SELECT id FROM chapters WHERE course_id IN (SELECT id FROM courses WHERE author_id = ?)))`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, id, authorID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check lesson ownership: %w", err)
	}

	return exists, nil
}
