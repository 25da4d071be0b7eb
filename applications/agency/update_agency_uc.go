package agency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/atifsayed22/bookit/applications/auth"
	"github.com/atifsayed22/bookit/apperror"
	"github.com/atifsayed22/bookit/domain"
	"github.com/atifsayed22/bookit/store"
	"github.com/atifsayed22/bookit/validations"
)

type UpdateAgencyUC struct {
	log      *slog.Logger
	agencies store.AgencyStore
	now      func() time.Time
}

func NewUpdateAgencyUC(log *slog.Logger, agencies store.AgencyStore) *UpdateAgencyUC {
	return &UpdateAgencyUC{log: log, agencies: agencies, now: time.Now}
}

// Invoke replaces the editable fields of an agency. Ownership and creation
// time are kept.
func (uc *UpdateAgencyUC) Invoke(ctx context.Context, p auth.Principal, agencyID string, payload []byte) (*domain.Agency, error) {
	a, err := LoadManaged(ctx, uc.agencies, p, agencyID)
	if err != nil {
		return nil, err
	}

	var req validations.AgencyRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return nil, apperror.Invalid("body", "request body is not valid JSON")
	}
	if err := validations.Struct(req); err != nil {
		return nil, err
	}

	a.Name = strings.TrimSpace(req.Name)
	a.Description = req.Description
	a.Email = req.Email
	a.Phone = req.Phone
	a.Address = req.Address
	if req.Active != nil {
		a.Active = *req.Active
	}
	a.UpdatedAt = uc.now().UTC()

	if err := uc.agencies.UpdateAgency(ctx, a); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.New(apperror.NotFound, "agency %s not found", agencyID)
		}
		uc.log.Error(fmt.Sprintf("[update-agency-uc] Failed to update agency %s: %v", agencyID, err))
		return nil, fmt.Errorf("failed to update agency: %w", err)
	}

	uc.log.Info(fmt.Sprintf("[update-agency-uc] Agency %s updated by %s.", agencyID, p.UserID))
	return a, nil
}
