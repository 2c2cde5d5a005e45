package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hirebase/internal/domain/convocatoria"
	"hirebase/internal/domain/intake"
	"hirebase/internal/domain/link"
	"hirebase/internal/infrastructure/http/v1/dto"
)

// PublicHandler serves the unauthenticated applicant-facing endpoints.
type PublicHandler struct {
	*BaseHandler
	intake        *intake.Service
	links         *link.Service
	convocatorias *convocatoria.Service
}

// NewPublicHandler creates a new public handler.
func NewPublicHandler(
	base *BaseHandler,
	intakeSvc *intake.Service,
	links *link.Service,
	convocatorias *convocatoria.Service,
) *PublicHandler {
	return &PublicHandler{
		BaseHandler:   base,
		intake:        intakeSvc,
		links:         links,
		convocatorias: convocatorias,
	}
}

// GetLink handles GET /public/links/:token. It exposes only whether the
// link currently accepts applications.
func (h *PublicHandler) GetLink(c *gin.Context) {
	l, err := h.links.GetByToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		h.Error(c, err)
		return
	}

	open := l.Usable(time.Now()) == nil
	c.JSON(http.StatusOK, gin.H{
		"token": l.Token,
		"name":  l.Name,
		"open":  open,
	})
}

// GetConvocatoria handles GET /public/convocatorias/:token.
func (h *PublicHandler) GetConvocatoria(c *gin.Context) {
	conv, err := h.convocatorias.GetByToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromConvocatoria(conv))
}

// SubmitApplication handles POST /public/applications.
func (h *PublicHandler) SubmitApplication(c *gin.Context) {
	var app intake.Application
	if !h.BindJSON(c, &app) {
		return
	}

	result, err := h.intake.Submit(c.Request.Context(), app)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}
