package tourpackage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/atifsayed22/bookit/applications/agency"
	"github.com/atifsayed22/bookit/applications/auth"
	"github.com/atifsayed22/bookit/apperror"
	"github.com/atifsayed22/bookit/domain"
	"github.com/atifsayed22/bookit/store"
	"github.com/atifsayed22/bookit/validations"
)

type UpdatePackageUC struct {
	log      *slog.Logger
	agencies store.AgencyStore
	packages store.PackageStore
	now      func() time.Time
}

func NewUpdatePackageUC(log *slog.Logger, agencies store.AgencyStore, packages store.PackageStore) *UpdatePackageUC {
	return &UpdatePackageUC{log: log, agencies: agencies, packages: packages, now: time.Now}
}

// Invoke replaces the editable fields of a package. The owning agency is
// fixed at creation.
func (uc *UpdatePackageUC) Invoke(ctx context.Context, p auth.Principal, packageID string, payload []byte) (*domain.Package, error) {
	pkg, err := Load(ctx, uc.packages, packageID)
	if err != nil {
		return nil, err
	}
	if _, err := agency.LoadManaged(ctx, uc.agencies, p, pkg.AgencyID); err != nil {
		return nil, err
	}

	var req validations.PackageRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return nil, apperror.Invalid("body", "request body is not valid JSON")
	}
	if err := validations.Struct(req); err != nil {
		return nil, err
	}

	apply(pkg, req)
	pkg.UpdatedAt = uc.now().UTC()

	if err := uc.packages.UpdatePackage(ctx, pkg); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.New(apperror.NotFound, "package %s not found", packageID)
		}
		uc.log.Error(fmt.Sprintf("[update-package-uc] Failed to update package %s: %v", packageID, err))
		return nil, fmt.Errorf("failed to update package: %w", err)
	}

	uc.log.Info(fmt.Sprintf("[update-package-uc] Package %s updated. Status: %s", packageID, pkg.Status))
	return pkg, nil
}
