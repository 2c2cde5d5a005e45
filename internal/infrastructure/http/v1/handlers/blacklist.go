package handlers

import (
	"hirebase/internal/domain/blacklist"
	"hirebase/internal/infrastructure/http/v1/dto"
)

// BlacklistHandler handles blacklist endpoints.
type BlacklistHandler struct {
	*ResourceHandler[*blacklist.Entry, dto.CreateBlacklistEntryRequest, dto.UpdateBlacklistEntryRequest]
}

// NewBlacklistHandler creates a new blacklist handler.
func NewBlacklistHandler(base *BaseHandler, service *blacklist.Service) *BlacklistHandler {
	return &BlacklistHandler{
		ResourceHandler: NewResourceHandler(base, ResourceHandlerConfig[*blacklist.Entry, dto.CreateBlacklistEntryRequest, dto.UpdateBlacklistEntryRequest]{
			Service:    service.RecordService,
			EntityName: "blacklist entry",
			MapCreateDTO: func(req dto.CreateBlacklistEntryRequest) (*blacklist.Entry, error) {
				return req.ToEntry(), nil
			},
			MapUpdateDTO: func(req dto.UpdateBlacklistEntryRequest, existing *blacklist.Entry) (*blacklist.Entry, error) {
				return req.Apply(existing), nil
			},
			FilterKeys: []string{"kind"},
		}),
	}
}
