package tourpackage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/atifsayed22/bookit/applications/agency"
	"github.com/atifsayed22/bookit/domain"
	"github.com/atifsayed22/bookit/store"
)

type GetAgencyPackagesUC struct {
	log      *slog.Logger
	agencies store.AgencyStore
	packages store.PackageStore
}

func NewGetAgencyPackagesUC(log *slog.Logger, agencies store.AgencyStore, packages store.PackageStore) *GetAgencyPackagesUC {
	return &GetAgencyPackagesUC{log: log, agencies: agencies, packages: packages}
}

// Invoke lists the packages of one agency, oldest first.
func (uc *GetAgencyPackagesUC) Invoke(ctx context.Context, agencyID string, page store.Page) ([]*domain.Package, error) {
	if _, err := agency.Load(ctx, uc.agencies, agencyID); err != nil {
		return nil, err
	}

	pkgs, err := uc.packages.ListPackagesByAgency(ctx, agencyID, page)
	if err != nil {
		uc.log.Error(fmt.Sprintf("[get-agency-packages-uc] Database query failed for agency %s: %v", agencyID, err))
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}
	return pkgs, nil
}
