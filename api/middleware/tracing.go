package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/alex-pober/actslaw-rag/internal/tracing"
)

// TracingMiddleware creates a new span for each request and adds common tags
func TracingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracing.StartHttpServerTracerSpanWithHeader(
			c.Request.Context(),
			c.Request.Method+" "+c.FullPath(),
			c.Request.Header,
		)
		defer span.Finish()

		tracing.TagComponentRest(span)
		tracing.SetDefaultServiceSpanTags(ctx, span)

		if caseID := c.Param("caseID"); caseID != "" {
			tracing.TagCase(span, caseID)
		}
		if docID := c.Param("docID"); docID != "" {
			tracing.TagDocument(span, docID)
		}

		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if c.Writer.Status() >= 400 {
			span.SetTag("error", true)
			span.LogKV("http.status_code", c.Writer.Status())
		}
	}
}
