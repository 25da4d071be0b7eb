package agency

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/atifsayed22/bookit/domain"
	"github.com/atifsayed22/bookit/store"
)

type GetAllAgenciesUC struct {
	log      *slog.Logger
	agencies store.AgencyStore
}

func NewGetAllAgenciesUC(log *slog.Logger, agencies store.AgencyStore) *GetAllAgenciesUC {
	return &GetAllAgenciesUC{log: log, agencies: agencies}
}

// Invoke returns one page of agencies ordered by name.
func (uc *GetAllAgenciesUC) Invoke(ctx context.Context, page store.Page) ([]*domain.Agency, error) {
	agencies, err := uc.agencies.ListAgencies(ctx, page)
	if err != nil {
		uc.log.Error(fmt.Sprintf("[get-all-agencies-uc] Database query failed: %v", err))
		return nil, fmt.Errorf("failed to list agencies: %w", err)
	}

	uc.log.Debug(fmt.Sprintf("[get-all-agencies-uc] Retrieved %d agencies.", len(agencies)))
	return agencies, nil
}
