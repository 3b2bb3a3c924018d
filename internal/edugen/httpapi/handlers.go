package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/neurobridge-edugen/internal/edugen/contract"
)

// Generator is the part of the gateway the handlers depend on.
type Generator interface {
	GenerateMCQ(ctx context.Context, req contract.MCQRequest) (json.RawMessage, error)
	GenerateLessonPlan(ctx context.Context, req contract.LessonPlanRequest) (*contract.NCERTLessonPlan, error)
}

type handlers struct {
	gen          Generator
	exposeDetail bool
}

func (h *handlers) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Server is running"})
}

func (h *handlers) generateMCQ(c *gin.Context) {
	var body contract.MCQBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}

	out, err := h.gen.GenerateMCQ(c.Request.Context(), body.Request())
	if err != nil {
		h.respondGenerationError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", out)
}

func (h *handlers) generateLessonPlan(c *gin.Context) {
	var req contract.LessonPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	plan, err := h.gen.GenerateLessonPlan(c.Request.Context(), req)
	if err != nil {
		h.respondGenerationError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func handleHealthz(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func handleReadyz(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// limitBody caps how much of a request body handlers may read.
func limitBody(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if n > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		}
		c.Next()
	}
}
