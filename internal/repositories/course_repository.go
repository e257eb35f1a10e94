package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/sero63211/daye-course-builder/internal/models"
)

type courseRepository struct {
	db *sql.DB
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *sql.DB) *courseRepository {
	return &courseRepository{
		db: db,
	}
}

// GetByID retrieves a course by its ID
func (r *courseRepository) GetByID(ctx context.Context, id int) (*models.Course, error) {
	query := `
		SELECT id, slug, author_id, title, description, language, level
		FROM courses
		WHERE id = ?
		LIMIT 1
	`

	var course models.Course
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&course.ID,
		&course.Slug,
		&course.AuthorID,
		&course.Title,
		&course.Description,
		&course.Language,
		&course.Level,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("course not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get course by id: %w", err)
	}

	return &course, nil
}

// GetBySlug retrieves a course by its slug
func (r *courseRepository) GetBySlug(ctx context.Context, slug string) (*models.Course, error) {
	query := `
		SELECT id, slug, author_id, title, description, language, level
		FROM courses
		WHERE slug = ?
		LIMIT 1
	`

	var course models.Course
	err := r.db.QueryRowContext(ctx, query, slug).Scan(
		&course.ID,
		&course.Slug,
		&course.AuthorID,
		&course.Title,
		&course.Description,
		&course.Language,
		&course.Level,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("course not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get course by slug: %w", err)
	}

	return &course, nil
}

// GetByAuthorID retrieves all courses of an author
func (r *courseRepository) GetByAuthorID(ctx context.Context, authorID int) ([]models.CourseListItem, error) {
	query := `
		SELECT id, slug, title, language, level
		FROM courses
		WHERE author_id = ?
		ORDER BY title
	`

	rows, err := r.db.QueryContext(ctx, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	var courses []models.CourseListItem
	for rows.Next() {
		var course models.CourseListItem
		err := rows.Scan(
			&course.ID,
			&course.Slug,
			&course.Title,
			&course.Language,
			&course.Level,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return courses, nil
}

// GetShortInfoByAuthorID retrieves courses with only ID and Title for select options
func (r *courseRepository) GetShortInfoByAuthorID(ctx context.Context, authorID int) ([]models.CourseShortInfo, error) {
	query := `
		SELECT id, title
		FROM courses
		WHERE author_id = ?
		ORDER BY title
	`

	rows, err := r.db.QueryContext(ctx, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	var courses []models.CourseShortInfo
	for rows.Next() {
		var course models.CourseShortInfo
		err := rows.Scan(&course.ID, &course.Title)
		if err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return courses, nil
}

// ExistsBySlug checks if a course with the given slug exists
func (r *courseRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM courses WHERE slug = ?)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check course existence: %w", err)
	}

	return exists, nil
}

// ExistsByTitleForAuthor checks if an author already has a course with the given title
func (r *courseRepository) ExistsByTitleForAuthor(ctx context.Context, authorID int, title string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM courses WHERE author_id = ? AND title = ?)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, authorID, title).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check course title existence: %w", err)
	}

	return exists, nil
}

// Create creates a new course
func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	query := `
		INSERT INTO courses (slug, author_id, title, description, language, level)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		course.Slug,
		course.AuthorID,
		course.Title,
		course.Description,
		course.Language,
		course.Level,
	)
	if err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	course.ID = int(id)
	return nil
}

// Update updates a course (partial update)
func (r *courseRepository) Update(ctx context.Context, course *models.Course) error {
	var setParts []string
	var args []any

	if course.Slug != "" {
		setParts = append(setParts, "slug = ?")
		args = append(args, course.Slug)
	}
	if course.Title != "" {
		setParts = append(setParts, "title = ?")
		args = append(args, course.Title)
	}
	if course.Description != "" {
		setParts = append(setParts, "description = ?")
		args = append(args, course.Description)
	}
	if course.Language != "" {
		setParts = append(setParts, "language = ?")
		args = append(args, course.Language)
	}
	if course.Level != "" {
		setParts = append(setParts, "level = ?")
		args = append(args, course.Level)
	}

	if len(setParts) == 0 {
		return fmt.Errorf("no fields to update")
	}

	query := fmt.Sprintf(`
		UPDATE courses
		SET %s
		WHERE id = ?
	`, strings.Join(setParts, ", "))

	args = append(args, course.ID)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update course: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("course not found")
	}

	return nil
}

// Delete deletes a course by ID
func (r *courseRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM courses WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("course not found")
	}

	return nil
}

// CheckOwnership checks if a course belongs to an author
func (r *courseRepository) CheckOwnership(ctx context.Context, id, authorID int) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM courses WHERE id = ? AND author_id = ?)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, id, authorID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check course ownership: %w", err)
	}

	return exists, nil
}
