package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hirebase/internal/domain/link"
	"hirebase/internal/infrastructure/http/v1/dto"
)

// LinkHandler handles recruitment link endpoints.
type LinkHandler struct {
	*ResourceHandler[*link.Link, dto.CreateLinkRequest, dto.UpdateLinkRequest]
	service *link.Service
}

// NewLinkHandler creates a new link handler.
func NewLinkHandler(base *BaseHandler, service *link.Service) *LinkHandler {
	return &LinkHandler{
		ResourceHandler: NewResourceHandler(base, ResourceHandlerConfig[*link.Link, dto.CreateLinkRequest, dto.UpdateLinkRequest]{
			Service:    service.RecordService,
			EntityName: "link",
			MapCreateDTO: func(req dto.CreateLinkRequest) (*link.Link, error) {
				return req.ToLink()
			},
			MapUpdateDTO: func(req dto.UpdateLinkRequest, existing *link.Link) (*link.Link, error) {
				return req.Apply(existing), nil
			},
			FilterKeys: []string{"status", "campaign_id"},
		}),
		service: service,
	}
}

// Expire handles POST /links/:id/expire.
func (h *LinkHandler) Expire(c *gin.Context) {
	h.applyAction(c, link.ActionExpire)
}

// Revoke handles POST /links/:id/revoke.
func (h *LinkHandler) Revoke(c *gin.Context) {
	h.applyAction(c, link.ActionRevoke)
}

// Activate handles POST /links/:id/activate.
func (h *LinkHandler) Activate(c *gin.Context) {
	h.applyAction(c, link.ActionActivate)
}

func (h *LinkHandler) applyAction(c *gin.Context, action link.Action) {
	linkID, ok := h.recordID(c)
	if !ok {
		return
	}

	l, err := h.service.ApplyAction(c.Request.Context(), linkID, action)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}
