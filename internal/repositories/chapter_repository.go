package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/sero63211/daye-course-builder/internal/models"
)

type chapterRepository struct {
	db *sql.DB
}

// NewChapterRepository creates a new chapter repository
func NewChapterRepository(db *sql.DB) *chapterRepository {
	return &chapterRepository{
		db: db,
	}
}

// GetByID retrieves a chapter by its ID
func (r *chapterRepository) GetByID(ctx context.Context, id int) (*models.Chapter, error) {
	query := `
		SELECT id, course_id, title, ` + "`order`" + `
		FROM chapters
		WHERE id = ?
		LIMIT 1
	`

	var chapter models.Chapter
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&chapter.ID,
		&chapter.CourseID,
		&chapter.Title,
		&chapter.Order,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("chapter not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get chapter by id: %w", err)
	}

	return &chapter, nil
}

// GetByCourseID retrieves all chapters for a course, sorted by order
func (r *chapterRepository) GetByCourseID(ctx context.Context, courseID int) ([]models.Chapter, error) {
	query := `
		SELECT id, title, ` + "`order`" + `
		FROM chapters
		WHERE course_id = ?
		ORDER BY ` + "`order`" + `
	`

	rows, err := r.db.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query chapters: %w", err)
	}
	defer rows.Close()

	var chapters []models.Chapter
	for rows.Next() {
		var chapter models.Chapter
		err := rows.Scan(
			&chapter.ID,
			&chapter.Title,
			&chapter.Order,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan chapter: %w", err)
		}
		chapters = append(chapters, chapter)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return chapters, nil
}

// GetShortInfoByCourseID retrieves chapters with only ID and Title for select options
func (r *chapterRepository) GetShortInfoByCourseID(ctx context.Context, courseID *int) ([]models.ChapterShortInfo, error) {
	var whereClause string
	var args []any
	if courseID != nil {
		whereClause = "WHERE course_id = ?"
		args = append(args, *courseID)
	}
	query := fmt.Sprintf(`
		SELECT id, title
		FROM chapters
		%s
		ORDER BY `+"`order`"+`
	`, whereClause)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query chapters: %w", err)
	}
	defer rows.Close()

	var chapters []models.ChapterShortInfo
	for rows.Next() {
		var chapter models.ChapterShortInfo
		err := rows.Scan(&chapter.ID, &chapter.Title)
		if err != nil {
			return nil, fmt.Errorf("failed to scan chapter: %w", err)
		}
		chapters = append(chapters, chapter)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return chapters, nil
}

// ExistsByTitleInCourse checks if a chapter with the given title exists in the course
func (r *chapterRepository) ExistsByTitleInCourse(ctx context.Context, courseID int, title string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM chapters WHERE course_id = ? AND title = ?)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, courseID, title).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check chapter title existence: %w", err)
	}

	return exists, nil
}

// ExistsByOrderInCourse checks if a chapter with the given order exists in the course
func (r *chapterRepository) ExistsByOrderInCourse(ctx context.Context, courseID int, order int) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM chapters WHERE course_id = ? AND ` + "`order`" + ` = ?)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, courseID, order).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check chapter order existence: %w", err)
	}

	return exists, nil
}

// IncrementOrderForChapters increments order for all chapters in a course with order >= given order
func (r *chapterRepository) IncrementOrderForChapters(ctx context.Context, courseID, order int) error {
	query := `
		UPDATE chapters
		SET ` + "`order`" + ` = ` + "`order`" + ` + 1
		WHERE course_id = ? AND ` + "`order`" + ` >= ?
	`

	_, err := r.db.ExecContext(ctx, query, courseID, order)
	if err != nil {
		return fmt.Errorf("failed to increment chapter order: %w", err)
	}

	return nil
}

// Create creates a new chapter
func (r *chapterRepository) Create(ctx context.Context, chapter *models.Chapter) error {
	query := `
		INSERT INTO chapters (course_id, title, ` + "`order`" + `)
		VALUES (?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		chapter.CourseID,
		chapter.Title,
		chapter.Order,
	)
	if err != nil {
		return fmt.Errorf("failed to create chapter: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	chapter.ID = int(id)
	return nil
}

// Update updates a chapter (partial update)
func (r *chapterRepository) Update(ctx context.Context, chapter *models.Chapter) error {
	var setParts []string
	var args []any

	if chapter.CourseID != 0 {
		setParts = append(setParts, "course_id = ?")
		args = append(args, chapter.CourseID)
	}
	if chapter.Title != "" {
		setParts = append(setParts, "title = ?")
		args = append(args, chapter.Title)
	}
	if chapter.Order != 0 {
		setParts = append(setParts, "`order` = ?")
		args = append(args, chapter.Order)
	}

	if len(setParts) == 0 {
		return fmt.Errorf("no fields to update")
	}

	query := fmt.Sprintf(`
		UPDATE chapters
		SET %s
		WHERE id = ?
	`, strings.Join(setParts, ", "))

	args = append(args, chapter.ID)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update chapter: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("chapter not found")
	}

	return nil
}

// Delete deletes a chapter by ID
func (r *chapterRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM chapters WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete chapter: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("chapter not found")
	}

	return nil
}

// CheckOwnership checks if a chapter belongs to an author
func (r *chapterRepository) CheckOwnership(ctx context.Context, id, authorID int) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM chapters WHERE id = ? AND course_id IN (SELECT id FROM courses WHERE author_id = ?))`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, id, authorID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check chapter ownership: %w", err)
	}

	return exists, nil
}
