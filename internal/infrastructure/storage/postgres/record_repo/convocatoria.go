package record_repo

import (
	"context"

	"hirebase/internal/domain/convocatoria"
	"hirebase/internal/infrastructure/storage/postgres"
)

const convocatoriaTable = "convocatorias"

// ConvocatoriaRepo implements convocatoria.Repository.
type ConvocatoriaRepo struct {
	*BaseRecordRepo[*convocatoria.Convocatoria]
}

// NewConvocatoriaRepo creates a new convocatoria repository.
func NewConvocatoriaRepo(txManager *postgres.TxManager) *ConvocatoriaRepo {
	return &ConvocatoriaRepo{
		BaseRecordRepo: NewBaseRecordRepo(
			txManager,
			convocatoriaTable,
			[]string{"title", "token"},
			func() *convocatoria.Convocatoria { return &convocatoria.Convocatoria{} },
		),
	}
}

// GetByToken resolves a convocatoria by its public token.
func (r *ConvocatoriaRepo) GetByToken(ctx context.Context, token string) (*convocatoria.Convocatoria, error) {
	return r.GetBy(ctx, "token", token)
}
