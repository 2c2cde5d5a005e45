package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hirebase/internal/domain/convocatoria"
	"hirebase/internal/infrastructure/http/v1/dto"
)

// ConvocatoriaHandler handles convocatoria endpoints.
type ConvocatoriaHandler struct {
	*ResourceHandler[*convocatoria.Convocatoria, dto.CreateConvocatoriaRequest, dto.UpdateConvocatoriaRequest]
	service *convocatoria.Service
}

// NewConvocatoriaHandler creates a new convocatoria handler.
func NewConvocatoriaHandler(base *BaseHandler, service *convocatoria.Service) *ConvocatoriaHandler {
	return &ConvocatoriaHandler{
		ResourceHandler: NewResourceHandler(base, ResourceHandlerConfig[*convocatoria.Convocatoria, dto.CreateConvocatoriaRequest, dto.UpdateConvocatoriaRequest]{
			Service:    service.RecordService,
			EntityName: "convocatoria",
			MapCreateDTO: func(req dto.CreateConvocatoriaRequest) (*convocatoria.Convocatoria, error) {
				return req.ToConvocatoria()
			},
			MapUpdateDTO: func(req dto.UpdateConvocatoriaRequest, existing *convocatoria.Convocatoria) (*convocatoria.Convocatoria, error) {
				return req.Apply(existing), nil
			},
			FilterKeys: []string{"status", "campaign_id"},
		}),
		service: service,
	}
}

// Close handles POST /convocatorias/:id/close.
func (h *ConvocatoriaHandler) Close(c *gin.Context) {
	convocatoriaID, ok := h.recordID(c)
	if !ok {
		return
	}

	conv, err := h.service.Close(c.Request.Context(), convocatoriaID)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, conv)
}
