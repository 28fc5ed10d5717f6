package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/alex-pober/actslaw-rag/internal/enum"
	"github.com/alex-pober/actslaw-rag/internal/utils"
)

// CaseDocument caches the metadata of one upstream case document so
// repeat views do not re-hit the upstream listing endpoint.
type CaseDocument struct {
	ID         string `gorm:"type:varchar(50);primaryKey"`
	CaseNumber string `gorm:"type:varchar(50);index;not null"`
	DocumentID string `gorm:"type:varchar(100);uniqueIndex;not null"`

	FileName    string `gorm:"type:varchar(500)"`
	Description string `gorm:"type:varchar(1000)"`
	Category    string `gorm:"type:varchar(255)"`

	// DeclaredContentType is what the upstream API reported; DetectedKind
	// is what signature sniffing concluded on last view.
	DeclaredContentType string           `gorm:"type:varchar(255)"`
	DetectedKind        enum.ContentKind `gorm:"type:varchar(50)"`
	SizeBytes           int              `gorm:"default:0"`

	LastViewedAt *time.Time `gorm:"column:last_viewed_at;type:timestamp"`
	CreatedAt    time.Time  `gorm:"column:created_at;type:timestamp;default:current_timestamp" json:"createdAt"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;type:timestamp;default:current_timestamp" json:"updatedAt"`
}

func (CaseDocument) TableName() string {
	return "case_documents"
}

func (d *CaseDocument) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = utils.GenerateNanoIDWithPrefix("doc", 12)
	}
	d.CreatedAt = utils.Now()
	return nil
}
