package handlers

import (
	"hirebase/internal/domain/campaign"
	"hirebase/internal/infrastructure/http/v1/dto"
)

// CampaignHandler handles campaign endpoints.
type CampaignHandler struct {
	*ResourceHandler[*campaign.Campaign, dto.CreateCampaignRequest, dto.UpdateCampaignRequest]
}

// NewCampaignHandler creates a new campaign handler.
func NewCampaignHandler(base *BaseHandler, service *campaign.Service) *CampaignHandler {
	return &CampaignHandler{
		ResourceHandler: NewResourceHandler(base, ResourceHandlerConfig[*campaign.Campaign, dto.CreateCampaignRequest, dto.UpdateCampaignRequest]{
			Service:    service.RecordService,
			EntityName: "campaign",
			MapCreateDTO: func(req dto.CreateCampaignRequest) (*campaign.Campaign, error) {
				return req.ToCampaign(), nil
			},
			MapUpdateDTO: func(req dto.UpdateCampaignRequest, existing *campaign.Campaign) (*campaign.Campaign, error) {
				return req.Apply(existing), nil
			},
			FilterKeys: []string{"status"},
		}),
	}
}
