// internal/services/upload_service_test.go
package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/threadcart/threadcart-backend/internal/config"
)

func TestDownloadURLFallsBackToStoredURL(t *testing.T) {
	db, mock := newMockDB(t)
	storage, err := NewStorageService(&config.Config{})
	assert.NoError(t, err)
	svc := NewUploadService(db, storage)

	id := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "uploads"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "url", "key"}).
			AddRow(id.String(), "http://localhost:8080/uploads/products/x.jpg", "products/x.jpg"))

	// Without an S3 client there is nothing to presign, so the stored
	// public URL is returned as-is
	url, err := svc.DownloadURL(id)
	assert.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/products/x.jpg", url)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDownloadURLUnknownUpload(t *testing.T) {
	db, mock := newMockDB(t)
	storage, err := NewStorageService(&config.Config{})
	assert.NoError(t, err)
	svc := NewUploadService(db, storage)

	mock.ExpectQuery(`SELECT \* FROM "uploads"`).
		WillReturnError(gorm.ErrRecordNotFound)

	_, err = svc.DownloadURL(uuid.New())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "upload not found")
}
