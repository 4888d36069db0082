// internal/models/upload.go
package models

// Upload records every file pushed to object storage so the admin UI can
// browse previously uploaded media.
type Upload struct {
	BaseModel
	URL string `json:"url" gorm:"type:text;not null"`
	Key string `json:"key" gorm:"type:text;not null"`
}
