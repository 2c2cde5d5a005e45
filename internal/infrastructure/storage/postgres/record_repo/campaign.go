package record_repo

import (
	"hirebase/internal/domain/campaign"
	"hirebase/internal/infrastructure/storage/postgres"
)

const campaignTable = "campaigns"

// CampaignRepo implements campaign.Repository.
type CampaignRepo struct {
	*BaseRecordRepo[*campaign.Campaign]
}

// NewCampaignRepo creates a new campaign repository.
func NewCampaignRepo(txManager *postgres.TxManager) *CampaignRepo {
	return &CampaignRepo{
		BaseRecordRepo: NewBaseRecordRepo(
			txManager,
			campaignTable,
			[]string{"name", "description"},
			func() *campaign.Campaign { return &campaign.Campaign{} },
		),
	}
}
