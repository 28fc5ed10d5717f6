package services

import (
	"time"

	"github.com/alex-pober/actslaw-rag/config"
	"github.com/alex-pober/actslaw-rag/dto"
	"github.com/alex-pober/actslaw-rag/interfaces"
	"github.com/alex-pober/actslaw-rag/internal/cache"
	"github.com/alex-pober/actslaw-rag/internal/logger"
	"github.com/alex-pober/actslaw-rag/services/content"
	"github.com/alex-pober/actslaw-rag/services/eml"
	"github.com/alex-pober/actslaw-rag/services/msg"
	"github.com/alex-pober/actslaw-rag/services/smartadvocate"
)

type Services struct {
	ContentCache      *cache.Cache[*dto.DocumentContent]
	ContentCacheTTL   time.Duration
	HandleStore       interfaces.RenderHandleStore
	ContentClassifier interfaces.ContentClassifier
	MSGParser         interfaces.EmailParser
	EMLParser         interfaces.EmailParser
	SmartAdvocate     interfaces.CaseDocumentClient
}

func InitServices(cfg *config.Config, log logger.Logger) (*Services, error) {
	cacheSize := cfg.ContentConfig.CacheSize
	if cacheSize <= 0 {
		cacheSize = 256
	}
	contentCache, err := cache.New[*dto.DocumentContent](cacheSize)
	if err != nil {
		return nil, err
	}

	cacheTTL := time.Duration(cfg.ContentConfig.CacheTTLMinutes) * time.Minute
	if cacheTTL <= 0 {
		cacheTTL = 15 * time.Minute
	}

	handleStore := content.NewHandleStore()

	services := Services{
		ContentCache:      contentCache,
		ContentCacheTTL:   cacheTTL,
		HandleStore:       handleStore,
		ContentClassifier: content.NewClassifierService(handleStore, log),
		MSGParser:         msg.NewParser(log),
		EMLParser:         eml.NewParser(log),
		SmartAdvocate:     smartadvocate.NewSmartAdvocateService(log, cfg.SmartAdvocateConfig),
	}

	return &services, nil
}
