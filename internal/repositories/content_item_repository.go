package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sero63211/daye-course-builder/internal/models"
)

type contentItemRepository struct {
	db *sql.DB
}

// NewContentItemRepository creates a new content item repository
func NewContentItemRepository(db *sql.DB) *contentItemRepository {
	return &contentItemRepository{
		db: db,
	}
}

// GetByID retrieves a content item by its ID
func (r *contentItemRepository) GetByID(ctx context.Context, id string) (*models.ContentItem, error) {
	query := `
		SELECT id, author_id, title, text, translation, examples, image_url, audio_url, content_type
		FROM content_items
		WHERE id = ?
		LIMIT 1
	`

	var item models.ContentItem
	var examplesJSON string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID,
		&item.AuthorID,
		&item.Title,
		&item.Text,
		&item.Translation,
		&examplesJSON,
		&item.ImageURL,
		&item.AudioURL,
		&item.ContentType,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("content item not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get content item by id: %w", err)
	}

	if err := json.Unmarshal([]byte(examplesJSON), &item.Examples); err != nil {
		return nil, fmt.Errorf("failed to unmarshal examples: %w", err)
	}

	return &item, nil
}

// GetByAuthorID retrieves all content items of an author, optionally filtered by content type
func (r *contentItemRepository) GetByAuthorID(ctx context.Context, authorID int, contentType *models.ContentType) ([]models.ContentItemListItem, error) {
	var whereClause string
	args := []any{authorID}
	if contentType != nil {
		whereClause = "AND content_type = ?"
		args = append(args, *contentType)
	}
	query := fmt.Sprintf(`
		SELECT id, title, text, translation, content_type
		FROM content_items
		WHERE author_id = ? %s
		ORDER BY text
	`, whereClause)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query content items: %w", err)
	}
	defer rows.Close()

	var items []models.ContentItemListItem
	for rows.Next() {
		var item models.ContentItemListItem
		err := rows.Scan(
			&item.ID,
			&item.Title,
			&item.Text,
			&item.Translation,
			&item.ContentType,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan content item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return items, nil
}

// GetByIDs retrieves content items by a list of IDs
func (r *contentItemRepository) GetByIDs(ctx context.Context, ids []string) ([]models.ContentItem, error) {
	if len(ids) == 0 {
		return []models.ContentItem{}, nil
	}

	placeholders := strings.Repeat("?, ", len(ids)-1) + "?"
	query := fmt.Sprintf(`
		SELECT id, author_id, title, text, translation, examples, image_url, audio_url, content_type
		FROM content_items
		WHERE id IN (%s)
	`, placeholders)

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query content items: %w", err)
	}
	defer rows.Close()

	var items []models.ContentItem
	for rows.Next() {
		var item models.ContentItem
		var examplesJSON string
		err := rows.Scan(
			&item.ID,
			&item.AuthorID,
			&item.Title,
			&item.Text,
			&item.Translation,
			&examplesJSON,
			&item.ImageURL,
			&item.AudioURL,
			&item.ContentType,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan content item: %w", err)
		}
		if err := json.Unmarshal([]byte(examplesJSON), &item.Examples); err != nil {
			return nil, fmt.Errorf("failed to unmarshal examples: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return items, nil
}

// ExistsByTextForAuthor checks if an author already has a content item with the given text and type
func (r *contentItemRepository) ExistsByTextForAuthor(ctx context.Context, authorID int, text string, contentType models.ContentType) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM content_items WHERE author_id = ? AND text = ? AND content_type = ?)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, authorID, text, contentType).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check content item existence: %w", err)
	}

	return exists, nil
}

// Create creates a new content item. The caller provides the generated ID.
func (r *contentItemRepository) Create(ctx context.Context, item *models.ContentItem) error {
	if item.Examples == nil {
		item.Examples = []string{}
	}
	examplesJSON, err := json.Marshal(item.Examples)
	if err != nil {
		return fmt.Errorf("failed to marshal examples: %w", err)
	}

	query := `
		INSERT INTO content_items (id, author_id, title, text, translation, examples, image_url, audio_url, content_type)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		item.ID,
		item.AuthorID,
		item.Title,
		item.Text,
		item.Translation,
		string(examplesJSON),
		item.ImageURL,
		item.AudioURL,
		item.ContentType,
	)
	if err != nil {
		return fmt.Errorf("failed to create content item: %w", err)
	}

	return nil
}

// Update updates a content item (partial update)
func (r *contentItemRepository) Update(ctx context.Context, item *models.ContentItem) error {
	var setParts []string
	var args []any

	if item.Title != "" {
		setParts = append(setParts, "title = ?")
		args = append(args, item.Title)
	}
	if item.Text != "" {
		setParts = append(setParts, "text = ?")
		args = append(args, item.Text)
	}
	if item.Translation != "" {
		setParts = append(setParts, "translation = ?")
		args = append(args, item.Translation)
	}
	if item.Examples != nil {
		examplesJSON, err := json.Marshal(item.Examples)
		if err != nil {
			return fmt.Errorf("failed to marshal examples: %w", err)
		}
		setParts = append(setParts, "examples = ?")
		args = append(args, string(examplesJSON))
	}
	if item.ImageURL != "" {
		setParts = append(setParts, "image_url = ?")
		args = append(args, item.ImageURL)
	}
	if item.AudioURL != "" {
		setParts = append(setParts, "audio_url = ?")
		args = append(args, item.AudioURL)
	}
	if item.ContentType != "" {
		setParts = append(setParts, "content_type = ?")
		args = append(args, item.ContentType)
	}

	if len(setParts) == 0 {
		return fmt.Errorf("no fields to update")
	}

	query := fmt.Sprintf(`
		UPDATE content_items
		SET %s
		WHERE id = ?
	`, strings.Join(setParts, ", "))

	args = append(args, item.ID)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update content item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("content item not found")
	}

	return nil
}

// Delete deletes a content item by ID
func (r *contentItemRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM content_items WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete content item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("content item not found")
	}

	return nil
}

// CheckOwnership checks if a content item belongs to an author
func (r *contentItemRepository) CheckOwnership(ctx context.Context, id string, authorID int) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM content_items WHERE id = ? AND author_id = ?)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, id, authorID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check content item ownership: %w", err)
	}

	return exists, nil
}
