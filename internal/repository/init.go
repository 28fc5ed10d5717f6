package repository

import (
	"gorm.io/gorm"

	"github.com/alex-pober/actslaw-rag/interfaces"
)

type Repositories struct {
	CaseDocumentRepository interfaces.CaseDocumentRepository
}

func InitRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		CaseDocumentRepository: NewCaseDocumentRepository(db),
	}
}
