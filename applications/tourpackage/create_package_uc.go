package tourpackage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/atifsayed22/bookit/applications/agency"
	"github.com/atifsayed22/bookit/applications/auth"
	"github.com/atifsayed22/bookit/apperror"
	"github.com/atifsayed22/bookit/domain"
	"github.com/atifsayed22/bookit/store"
	"github.com/atifsayed22/bookit/validations"

	"github.com/google/uuid"
)

type CreatePackageUC struct {
	log      *slog.Logger
	agencies store.AgencyStore
	packages store.PackageStore
	now      func() time.Time
}

func NewCreatePackageUC(log *slog.Logger, agencies store.AgencyStore, packages store.PackageStore) *CreatePackageUC {
	return &CreatePackageUC{log: log, agencies: agencies, packages: packages, now: time.Now}
}

func (uc *CreatePackageUC) Invoke(ctx context.Context, p auth.Principal, agencyID string, payload []byte) (*domain.Package, error) {
	uc.log.Info(fmt.Sprintf("[create-package-uc] Creating package for agency %s.", agencyID))

	if _, err := agency.LoadManaged(ctx, uc.agencies, p, agencyID); err != nil {
		return nil, err
	}

	var req validations.PackageRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		uc.log.Warn(fmt.Sprintf("[create-package-uc] Failed to unmarshal payload: %v", err))
		return nil, apperror.Invalid("body", "request body is not valid JSON")
	}
	if err := validations.Struct(req); err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	pkg := &domain.Package{
		PackageID: uuid.New().String(),
		AgencyID:  agencyID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	apply(pkg, req)

	if err := uc.packages.CreatePackage(ctx, pkg); err != nil {
		uc.log.Error(fmt.Sprintf("[create-package-uc] Failed to insert package %s: %v", pkg.PackageID, err))
		return nil, fmt.Errorf("failed to create package: %w", err)
	}

	uc.log.Info(fmt.Sprintf("[create-package-uc] Package %s (%s) created for agency %s.", pkg.PackageID, pkg.Kind, agencyID))
	return pkg, nil
}
