package agency

import (
	"context"
	"errors"
	"fmt"

	"github.com/atifsayed22/bookit/applications/auth"
	"github.com/atifsayed22/bookit/apperror"
	"github.com/atifsayed22/bookit/domain"
	"github.com/atifsayed22/bookit/store"
)

// CanManage reports whether p may write to agency a or act on its bookings.
// Admins act as any agency.
func CanManage(p auth.Principal, a *domain.Agency) bool {
	return p.IsAdmin() || (p.Role == auth.RoleAgencyOwner && a.OwnerID == p.UserID)
}

// Load fetches an agency and turns a missing record into a NotFound error.
func Load(ctx context.Context, agencies store.AgencyStore, agencyID string) (*domain.Agency, error) {
	a, err := agencies.GetAgency(ctx, agencyID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperror.New(apperror.NotFound, "agency %s not found", agencyID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch agency: %w", err)
	}
	return a, nil
}

// LoadManaged is Load plus the CanManage check.
func LoadManaged(ctx context.Context, agencies store.AgencyStore, p auth.Principal, agencyID string) (*domain.Agency, error) {
	a, err := Load(ctx, agencies, agencyID)
	if err != nil {
		return nil, err
	}
	if !CanManage(p, a) {
		return nil, apperror.New(apperror.Forbidden, "you do not manage agency %s", agencyID)
	}
	return a, nil
}
