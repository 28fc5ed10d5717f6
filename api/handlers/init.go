package handlers

import (
	"github.com/alex-pober/actslaw-rag/internal/logger"
	"github.com/alex-pober/actslaw-rag/internal/repository"
	"github.com/alex-pober/actslaw-rag/services"
)

type Handlers struct {
	Documents *DocumentsHandler
	Render    *RenderHandler
}

func InitHandlers(svcs *services.Services, repos *repository.Repositories, log logger.Logger) *Handlers {
	return &Handlers{
		Documents: NewDocumentsHandler(svcs, repos, log),
		Render:    NewRenderHandler(svcs.HandleStore, log),
	}
}
