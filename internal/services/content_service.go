package services

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/sero63211/daye-course-builder/internal/models"
)

// ContentItemRepository defines methods for content item data access
type ContentItemRepository interface {
	// GetByID retrieves a content item by ID
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the content item.
	//
	// Returns the content item and an error if any.
	GetByID(ctx context.Context, id string) (*models.ContentItem, error)
	// GetByAuthorID retrieves content items of an author
	//
	// "ctx" is the context for the request.
	// "authorID" is the ID of the author.
	// "contentType" is the content type to filter by (optional, if nil all items are retrieved).
	//
	// Returns a list of content items and an error if any.
	GetByAuthorID(ctx context.Context, authorID int, contentType *models.ContentType) ([]models.ContentItemListItem, error)
	// GetByIDs retrieves content items by a list of IDs
	//
	// "ctx" is the context for the request.
	// "ids" is the list of content item IDs.
	//
	// Returns a list of content items and an error if any.
	GetByIDs(ctx context.Context, ids []string) ([]models.ContentItem, error)
	// ExistsByTextForAuthor checks if an author already has a content item with the given text and type
	//
	// "ctx" is the context for the request.
	// "authorID" is the ID of the author.
	// "text" is the text of the content item.
	// "contentType" is the type of the content item.
	//
	// Returns a boolean and an error if any.
	ExistsByTextForAuthor(ctx context.Context, authorID int, text string, contentType models.ContentType) (bool, error)
	// Create creates a new content item
	//
	// "ctx" is the context for the request.
	// "item" is the content item to create.
	//
	// Returns an error if any.
	Create(ctx context.Context, item *models.ContentItem) error
	// Update updates a content item
	//
	// "ctx" is the context for the request.
	// "item" is the content item to update.
	//
	// Returns an error if any.
	Update(ctx context.Context, item *models.ContentItem) error
	// Delete deletes a content item
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the content item.
	//
	// Returns an error if any.
	Delete(ctx context.Context, id string) error
	// CheckOwnership checks if a content item belongs to an author
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the content item.
	// "authorID" is the ID of the author.
	//
	// Returns a boolean and an error if any.
	CheckOwnership(ctx context.Context, id string, authorID int) (bool, error)
}

type contentService struct {
	contentRepo ContentItemRepository
}

// NewContentService creates a new content service
func NewContentService(contentRepo ContentItemRepository) *contentService {
	return &contentService{
		contentRepo: contentRepo,
	}
}

// GetContentItems retrieves content items of an author, optionally filtered by type
func (s *contentService) GetContentItems(ctx context.Context, authorID int, contentType *models.ContentType) ([]models.ContentItemListItem, error) {
	if contentType != nil && !s.isValidContentType(*contentType) {
		return nil, fmt.Errorf("invalid content type")
	}
	return s.contentRepo.GetByAuthorID(ctx, authorID, contentType)
}

// GetContentItem retrieves a single content item
func (s *contentService) GetContentItem(ctx context.Context, id string, authorID int) (*models.ContentItem, error) {
	item, err := s.contentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("content item not found")
	}

	if item.AuthorID != authorID {
		return nil, fmt.Errorf("you do not have rights to manage this content item")
	}

	return item, nil
}

// CreateContentItem creates a new content item
func (s *contentService) CreateContentItem(ctx context.Context, authorID int, req *models.CreateContentItemRequest) (string, error) {
	if err := s.validateCreateContentItem(ctx, authorID, req); err != nil {
		return "", err
	}

	item := &models.ContentItem{
		ID:          uuid.New().String(),
		AuthorID:    authorID,
		Title:       req.Title,
		Text:        req.Text,
		Translation: req.Translation,
		Examples:    req.Examples,
		ImageURL:    req.ImageURL,
		AudioURL:    req.AudioURL,
		ContentType: req.ContentType,
	}

	err := s.contentRepo.Create(ctx, item)
	if err != nil {
		return "", fmt.Errorf("failed to create content item: %w", err)
	}

	return item.ID, nil
}

func (s *contentService) validateCreateContentItem(ctx context.Context, authorID int, req *models.CreateContentItemRequest) error {
	// Text and type are the minimum for any content item
	if req.Text == "" || req.ContentType == "" {
		return fmt.Errorf("text and content type are required")
	}

	// Prepare for concurrent check
	errorChan := make(chan error, 2)

	// Validate content type
	go func() {
		if !s.isValidContentType(req.ContentType) {
			errorChan <- fmt.Errorf("invalid content type")
			return
		}
		errorChan <- nil
	}()

	// Check text uniqueness per author and type
	go func() {
		exists, err := s.contentRepo.ExistsByTextForAuthor(ctx, authorID, req.Text, req.ContentType)
		if err != nil {
			errorChan <- err
			return
		}
		if exists {
			errorChan <- fmt.Errorf("content item with text '%s' already exists", req.Text)
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

// UpdateContentItem updates a content item (partial update)
func (s *contentService) UpdateContentItem(ctx context.Context, id string, authorID int, req *models.UpdateContentItemRequest) error {
	// Validate if any field is provided
	if req.Title == "" && req.Text == "" && req.Translation == "" && req.Examples == nil &&
		req.ImageURL == "" && req.AudioURL == "" && req.ContentType == "" {
		return fmt.Errorf("at least one field must be provided")
	}

	item, err := s.contentRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("content item not found")
	}

	if item.AuthorID != authorID {
		return fmt.Errorf("you do not have rights to manage this content item")
	}

	if req.ContentType != "" && !s.isValidContentType(req.ContentType) {
		return fmt.Errorf("invalid content type")
	}

	typeToCheck := item.ContentType
	if req.ContentType != "" {
		typeToCheck = req.ContentType
	}

	// Check text uniqueness if provided
	if req.Text != "" && req.Text != item.Text {
		exists, err := s.contentRepo.ExistsByTextForAuthor(ctx, authorID, req.Text, typeToCheck)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("content item with text '%s' already exists", req.Text)
		}
	}

	updateItem := &models.ContentItem{
		ID:          id,
		Title:       req.Title,
		Text:        req.Text,
		Translation: req.Translation,
		Examples:    req.Examples,
		ImageURL:    req.ImageURL,
		AudioURL:    req.AudioURL,
		ContentType: req.ContentType,
	}

	return s.contentRepo.Update(ctx, updateItem)
}

// DeleteContentItem deletes a content item
func (s *contentService) DeleteContentItem(ctx context.Context, id string, authorID int) error {
	exists, err := s.contentRepo.CheckOwnership(ctx, id, authorID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("you do not have rights to manage this content item")
	}

	return s.contentRepo.Delete(ctx, id)
}

func (s *contentService) isValidContentType(contentType models.ContentType) bool {
	validTypes := []models.ContentType{
		models.ContentTypeVocabulary,
		models.ContentTypeSentence,
		models.ContentTypeInformation,
	}
	return slices.Contains(validTypes, contentType)
}
