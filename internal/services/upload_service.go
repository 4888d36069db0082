// internal/services/upload_service.go
package services

import (
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/threadcart/threadcart-backend/internal/models"
)

// UploadService records catalog media pushed to object storage and serves the
// browseable upload history.
type UploadService struct {
	db      *gorm.DB
	storage *StorageService
}

type UploadPage struct {
	Uploads    []models.Upload `json:"uploads"`
	NextCursor *uuid.UUID      `json:"next_cursor"`
}

func NewUploadService(db *gorm.DB, storage *StorageService) *UploadService {
	return &UploadService{db: db, storage: storage}
}

func (s *UploadService) UploadSingle(file multipart.File, header *multipart.FileHeader) (*UploadResult, error) {
	options := s.storage.GetDefaultUploadOptions("products")
	return s.storage.UploadFile(file, header, options)
}

// UploadMany pushes each file to storage and records the resulting URLs in
// the uploads table.
func (s *UploadService) UploadMany(files []*multipart.FileHeader) ([]string, error) {
	options := s.storage.GetDefaultUploadOptions("products")

	uploads := make([]models.Upload, 0, len(files))
	urls := make([]string, 0, len(files))

	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", header.Filename, err)
		}

		result, err := s.storage.UploadFile(file, header, options)
		file.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to upload %s: %w", header.Filename, err)
		}

		uploads = append(uploads, models.Upload{URL: result.URL, Key: result.Key})
		urls = append(urls, result.URL)
	}

	if len(uploads) > 0 {
		if err := s.db.Create(&uploads).Error; err != nil {
			return nil, fmt.Errorf("failed to record uploads: %w", err)
		}
	}

	return urls, nil
}

// History returns previously uploaded media newest first, keyed by an opaque
// cursor (the id of the last row of the prior page).
func (s *UploadService) History(cursor *uuid.UUID, limit int) (*UploadPage, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := s.db.Model(&models.Upload{}).Order("created_at DESC")

	if cursor != nil {
		var anchor models.Upload
		if err := s.db.First(&anchor, "id = ?", *cursor).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errors.New("cursor not found")
			}
			return nil, fmt.Errorf("database error: %w", err)
		}
		query = query.Where("created_at < ?", anchor.CreatedAt)
	}

	var uploads []models.Upload
	if err := query.Limit(limit).Find(&uploads).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch uploads: %w", err)
	}

	page := &UploadPage{Uploads: uploads}
	if len(uploads) == limit {
		last := uploads[len(uploads)-1].ID
		page.NextCursor = &last
	}

	return page, nil
}

// DownloadURL resolves a recorded upload to a fetchable link. Against S3 the
// link is presigned and short-lived; local storage falls back to the stored
// public URL.
func (s *UploadService) DownloadURL(id uuid.UUID) (string, error) {
	var upload models.Upload
	if err := s.db.First(&upload, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", errors.New("upload not found")
		}
		return "", fmt.Errorf("database error: %w", err)
	}

	if url, err := s.storage.GeneratePresignedURL(upload.Key, 15*time.Minute); err == nil {
		return url, nil
	}

	return upload.URL, nil
}

// SetProfileImage uploads a new profile image for the user and removes the
// previous object from storage.
func (s *UploadService) SetProfileImage(userID uuid.UUID, file multipart.File, header *multipart.FileHeader) (string, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", errors.New("user not found")
		}
		return "", fmt.Errorf("database error: %w", err)
	}

	if err := s.storage.ValidateImage(file); err != nil {
		return "", err
	}

	options := s.storage.GetDefaultUploadOptions("profiles")
	result, err := s.storage.UploadFile(file, header, options)
	if err != nil {
		return "", err
	}

	if user.Image != "" {
		// Old object removal is best effort; the new image already won
		if err := s.storage.DeleteFile(user.Image); err != nil {
			logrus.WithError(err).Warn("Failed to delete previous profile image")
		}
	}

	if err := s.db.Model(&user).Update("image", result.Key).Error; err != nil {
		return "", fmt.Errorf("failed to update profile image: %w", err)
	}

	return result.URL, nil
}
