package interfaces

import (
	"context"
	"time"

	"github.com/alex-pober/actslaw-rag/dto"
)

// ContentClassifier converts a fetched payload into exactly one
// DocumentContent. Classification never fails; the worst case is the
// unknown kind.
type ContentClassifier interface {
	Classify(ctx context.Context, input dto.ClassifyInput) *dto.DocumentContent
}

// RenderableHandle is an addressable reference to binary content usable
// by a presentation layer without re-transmitting the bytes.
type RenderableHandle struct {
	ID          string
	Data        []byte
	ContentType string
	FileName    string
	CreatedAt   time.Time
}

// RenderHandleStore owns the lifecycle of renderable handles. The
// classifier creates at most one handle per call; the rendering layer
// releases it when the viewer closes, and the janitor sweeps leaks.
type RenderHandleStore interface {
	Create(data []byte, contentType, fileName string) *RenderableHandle
	Get(id string) (*RenderableHandle, error)
	Release(id string) bool
	ReleaseExpired(olderThan time.Duration) int
	Len() int
}
