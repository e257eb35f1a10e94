package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/sero63211/daye-course-builder/internal/editor"
	"github.com/sero63211/daye-course-builder/internal/models"
	"go.uber.org/zap"
)

type editorService struct {
	manager    *editor.Manager
	lessonRepo LessonRepository
	media      *MediaService
	baseURL    string
	logger     *zap.Logger
}

// NewEditorService creates a new editor service
func NewEditorService(manager *editor.Manager, lessonRepo LessonRepository, media *MediaService, baseURL string, logger *zap.Logger) *editorService {
	return &editorService{
		manager:    manager,
		lessonRepo: lessonRepo,
		media:      media,
		baseURL:    baseURL,
		logger:     logger,
	}
}

// OpenSession loads a lesson and opens an editing session over its steps
func (s *editorService) OpenSession(ctx context.Context, lessonID, authorID int) (*editor.Session, error) {
	exists, err := s.lessonRepo.CheckOwnership(ctx, lessonID, authorID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("you do not have rights to manage this lesson")
	}

	lesson, err := s.lessonRepo.GetByID(ctx, lessonID)
	if err != nil {
		return nil, fmt.Errorf("lesson not found")
	}

	return s.manager.Open(lessonID, authorID, lesson.LearningSteps, lesson.LearnedContent), nil
}

// Session returns an open session, verifying it belongs to the author
func (s *editorService) Session(sessionID string, authorID int) (*editor.Session, error) {
	session, err := s.manager.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if session.AuthorID != authorID {
		return nil, fmt.Errorf("you do not have rights to manage this editing session")
	}
	return session, nil
}

// StageMedia puts an uploaded file into the session's staging store and
// returns the staged handle to attach to a step payload
func (s *editorService) StageMedia(sessionID string, authorID int, file editor.StagedFile) (string, error) {
	session, err := s.Session(sessionID, authorID)
	if err != nil {
		return "", err
	}
	if len(file.Data) == 0 {
		return "", fmt.Errorf("file is empty")
	}
	if _, err := s.media.MediaTypeForContentType(file.ContentType); err != nil {
		return "", err
	}
	return session.Staging().Put(file), nil
}

// Commit uploads the session's staged media, persists the step list wholesale
// and releases the staging store. Staged references whose upload failed keep
// their handle and are reported in the log.
func (s *editorService) Commit(ctx context.Context, sessionID string, authorID int) error {
	session, err := s.Session(sessionID, authorID)
	if err != nil {
		return err
	}

	kept := session.FlushStagedMedia(func(file editor.StagedFile) (string, error) {
		mediaType, err := s.media.MediaTypeForContentType(file.ContentType)
		if err != nil {
			return "", err
		}
		extension := s.media.InferExtensionFromContentType(file.ContentType)
		return s.media.UploadFile(ctx, bytes.NewReader(file.Data), file.ContentType, string(mediaType), s.baseURL, extension)
	})
	for _, handle := range kept {
		s.logger.Warn("staged media was not uploaded, keeping reference",
			zap.String("session_id", sessionID),
			zap.Int("lesson_id", session.LessonID),
			zap.String("handle", handle),
		)
	}

	err = s.lessonRepo.ReplaceSteps(ctx, session.LessonID, session.Steps(), session.LearnedContent())
	if err != nil {
		return err
	}

	// Uploaded files were removed during the flush; what remains is either
	// unreferenced or failed to upload and stays for the next commit attempt.
	if len(kept) == 0 {
		session.Staging().Clear()
	}
	return nil
}

// CloseSession discards a session and its staged media
func (s *editorService) CloseSession(sessionID string, authorID int) error {
	if _, err := s.Session(sessionID, authorID); err != nil {
		return err
	}
	s.manager.Close(sessionID)
	return nil
}

// SessionSteps returns the current working step list of a session
func (s *editorService) SessionSteps(sessionID string, authorID int) ([]models.LearningStep, error) {
	session, err := s.Session(sessionID, authorID)
	if err != nil {
		return nil, err
	}
	return session.Steps(), nil
}
