package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hirebase/internal/domain/candidate"
	"hirebase/internal/infrastructure/http/v1/dto"
)

// CandidateHandler handles candidate endpoints.
type CandidateHandler struct {
	*ResourceHandler[*candidate.Candidate, dto.CreateCandidateRequest, dto.UpdateCandidateRequest]
	service *candidate.Service
}

// NewCandidateHandler creates a new candidate handler.
func NewCandidateHandler(base *BaseHandler, service *candidate.Service) *CandidateHandler {
	return &CandidateHandler{
		ResourceHandler: NewResourceHandler(base, ResourceHandlerConfig[*candidate.Candidate, dto.CreateCandidateRequest, dto.UpdateCandidateRequest]{
			Service:    service.RecordService,
			EntityName: "candidate",
			MapCreateDTO: func(req dto.CreateCandidateRequest) (*candidate.Candidate, error) {
				return req.ToCandidate()
			},
			MapUpdateDTO: func(req dto.UpdateCandidateRequest, existing *candidate.Candidate) (*candidate.Candidate, error) {
				return req.Apply(existing), nil
			},
			FilterKeys: []string{"stage", "campaign_id", "flagged"},
		}),
		service: service,
	}
}

// MoveStage handles POST /candidates/:id/stage.
func (h *CandidateHandler) MoveStage(c *gin.Context) {
	candidateID, ok := h.recordID(c)
	if !ok {
		return
	}

	var req dto.StageRequest
	if !h.BindJSON(c, &req) {
		return
	}

	cand, err := h.service.MoveStage(c.Request.Context(), candidateID, req.Stage)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, cand)
}

// ReceiveDocument handles POST /candidates/:id/documents/receive.
func (h *CandidateHandler) ReceiveDocument(c *gin.Context) {
	candidateID, ok := h.recordID(c)
	if !ok {
		return
	}

	var req dto.ReceiveDocumentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	cand, err := h.service.ReceiveDocument(c.Request.Context(), candidateID, req.Name)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, cand)
}
