package tourpackage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/atifsayed22/bookit/apperror"
	"github.com/atifsayed22/bookit/domain"
	"github.com/atifsayed22/bookit/store"
	"github.com/atifsayed22/bookit/validations"
)

// Load fetches a package and turns a missing record into a NotFound error.
func Load(ctx context.Context, packages store.PackageStore, packageID string) (*domain.Package, error) {
	p, err := packages.GetPackage(ctx, packageID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperror.New(apperror.NotFound, "package %s not found", packageID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch package: %w", err)
	}
	return p, nil
}

// apply copies a validated request onto pkg.
func apply(pkg *domain.Package, req validations.PackageRequest) {
	pkg.Name = strings.TrimSpace(req.Name)
	pkg.Description = req.Description
	pkg.Kind = domain.PackageKind(req.Kind)
	pkg.Price = req.Price
	pkg.DurationMinutes = req.DurationMinutes
	pkg.DurationDays = req.DurationDays
	pkg.PromoCode = strings.TrimSpace(req.PromoCode)
	pkg.PromoDiscount = req.PromoDiscount
	pkg.PromoCodeActive = req.PromoCodeActive && pkg.PromoCode != ""

	pkg.Status = req.Status
	if pkg.Status == "" {
		pkg.Status = domain.PackageActive
	}
}
