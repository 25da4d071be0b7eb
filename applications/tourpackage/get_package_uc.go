package tourpackage

import (
	"context"
	"log/slog"

	"github.com/atifsayed22/bookit/domain"
	"github.com/atifsayed22/bookit/store"
)

type GetPackageUC struct {
	log      *slog.Logger
	packages store.PackageStore
}

func NewGetPackageUC(log *slog.Logger, packages store.PackageStore) *GetPackageUC {
	return &GetPackageUC{log: log, packages: packages}
}

func (uc *GetPackageUC) Invoke(ctx context.Context, packageID string) (*domain.Package, error) {
	return Load(ctx, uc.packages, packageID)
}
