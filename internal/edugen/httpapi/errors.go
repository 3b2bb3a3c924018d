package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/neurobridge-edugen/internal/edugen/contract"
	"github.com/yungbote/neurobridge-edugen/internal/edugen/engine"
	"github.com/yungbote/neurobridge-edugen/internal/edugen/gateway"
	"github.com/yungbote/neurobridge-edugen/internal/platform/ctxutil"
)

const genericGenerationDetail = "content generation failed"

type validationBody struct {
	Detail []contract.Detail `json:"detail"`
}

type errorBody struct {
	Detail    string `json:"detail"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// respondBindError answers a failed ShouldBindJSON: 413 for an oversized
// body, 422 with field details for everything else.
func respondBindError(c *gin.Context, err error) {
	_ = c.Error(err)

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, errorBody{
			Detail:    "request body too large",
			Code:      "request_too_large",
			RequestID: ctxutil.RequestID(c.Request.Context()),
		})
		return
	}

	ve := contract.NewValidationError(err)
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, validationBody{Detail: ve.Details})
}

// respondGenerationError maps gateway failures to HTTP. The raw cause is
// only put in the body when exposeDetail is set.
func (h *handlers) respondGenerationError(c *gin.Context, err error) {
	_ = c.Error(err)
	reqID := ctxutil.RequestID(c.Request.Context())

	if errors.Is(err, gateway.ErrNotImplemented) {
		c.AbortWithStatusJSON(http.StatusNotImplemented, errorBody{
			Detail: err.Error(),
			Code:   "not_implemented",
		})
		return
	}

	ge := engine.Wrap(err)
	detail := ge.Error()
	if !h.exposeDetail {
		detail = genericGenerationDetail
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, errorBody{
		Detail:    detail,
		Code:      string(ge.Code),
		RequestID: reqID,
	})
}

func handleNoRoute(c *gin.Context) {
	c.JSON(http.StatusNotFound, errorBody{Detail: "Not Found"})
}

func handleNoMethod(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, errorBody{Detail: "Method Not Allowed"})
}
