package errors

import "github.com/pkg/errors"

var (
	// transport errors, retryable by the caller
	ErrFetchFailed       = errors.New("failed to fetch document content from upstream")
	ErrConnectionTimeout = errors.New("connection timeout")

	// document errors
	ErrDocumentNotFound   = errors.New("document not found")
	ErrNotAnEmailDocument = errors.New("document is not an outlook message")
	ErrAttachmentNotFound = errors.New("attachment not found in message")

	// render handle errors
	ErrHandleNotFound = errors.New("renderable handle not found or released")
)
