package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sero63211/daye-course-builder/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupMetadataTestRepository creates a metadata repository with a mock database
func setupMetadataTestRepository(t *testing.T) (*metadataRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewMetadataRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestMetadataRepository_Create(t *testing.T) {
	tests := []struct {
		name          string
		metadata      *models.Metadata
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
	}{
		{
			name: "success",
			metadata: &models.Metadata{
				ID:          "photo.jpg",
				ContentType: "image/jpeg",
				Size:        2048,
				URL:         "http://localhost:8080/api/v1/media/step_image/photo.jpg",
				Type:        models.MediaTypeStepImage,
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO media_metadata`).
					WithArgs("photo.jpg", "image/jpeg", int64(2048), "http://localhost:8080/api/v1/media/step_image/photo.jpg", models.MediaTypeStepImage).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			expectedError: false,
		},
		{
			name: "database error",
			metadata: &models.Metadata{
				ID:   "photo.jpg",
				Type: models.MediaTypeStepImage,
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO media_metadata`).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupMetadataTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Create(context.Background(), tt.metadata)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestMetadataRepository_GetByID(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo, mock, cleanup := setupMetadataTestRepository(t)
		defer cleanup()

		rows := sqlmock.NewRows([]string{"content_type", "size", "url", "type"}).
			AddRow("audio/mpeg", 4096, "http://localhost:8080/api/v1/media/step_audio/clip.mp3", "step_audio")
		mock.ExpectQuery(`SELECT.*FROM media_metadata.*WHERE id = \?`).
			WithArgs("clip.mp3").
			WillReturnRows(rows)

		metadata, err := repo.GetByID(context.Background(), "clip.mp3")
		require.NoError(t, err)
		assert.Equal(t, "clip.mp3", metadata.ID)
		assert.Equal(t, models.MediaTypeStepAudio, metadata.Type)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("metadata not found", func(t *testing.T) {
		repo, mock, cleanup := setupMetadataTestRepository(t)
		defer cleanup()

		mock.ExpectQuery(`SELECT.*FROM media_metadata.*WHERE id = \?`).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		metadata, err := repo.GetByID(context.Background(), "missing")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "metadata not found")
		assert.Nil(t, metadata)
	})
}

func TestMetadataRepository_DeleteByID(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo, mock, cleanup := setupMetadataTestRepository(t)
		defer cleanup()

		mock.ExpectExec(`DELETE FROM media_metadata WHERE id = \?`).
			WithArgs("photo.jpg").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.DeleteByID(context.Background(), "photo.jpg")
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("metadata not found", func(t *testing.T) {
		repo, mock, cleanup := setupMetadataTestRepository(t)
		defer cleanup()

		mock.ExpectExec(`DELETE FROM media_metadata WHERE id = \?`).
			WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.DeleteByID(context.Background(), "missing")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "metadata not found")
	})
}
