package agency

import (
	"context"
	"log/slog"

	"github.com/atifsayed22/bookit/domain"
	"github.com/atifsayed22/bookit/store"
)

type GetAgencyUC struct {
	log      *slog.Logger
	agencies store.AgencyStore
}

func NewGetAgencyUC(log *slog.Logger, agencies store.AgencyStore) *GetAgencyUC {
	return &GetAgencyUC{log: log, agencies: agencies}
}

func (uc *GetAgencyUC) Invoke(ctx context.Context, agencyID string) (*domain.Agency, error) {
	return Load(ctx, uc.agencies, agencyID)
}
