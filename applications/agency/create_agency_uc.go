package agency

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/atifsayed22/bookit/applications/auth"
	"github.com/atifsayed22/bookit/apperror"
	"github.com/atifsayed22/bookit/domain"
	"github.com/atifsayed22/bookit/store"
	"github.com/atifsayed22/bookit/validations"

	"github.com/google/uuid"
)

type CreateAgencyUC struct {
	log      *slog.Logger
	agencies store.AgencyStore
	now      func() time.Time
}

func NewCreateAgencyUC(log *slog.Logger, agencies store.AgencyStore) *CreateAgencyUC {
	return &CreateAgencyUC{log: log, agencies: agencies, now: time.Now}
}

// Invoke creates an agency owned by the caller. Only agency owners and
// admins may own agencies.
func (uc *CreateAgencyUC) Invoke(ctx context.Context, p auth.Principal, payload []byte) (*domain.Agency, error) {
	uc.log.Info(fmt.Sprintf("[create-agency-uc] Starting agency creation for user %s.", p.UserID))

	if p.Role != auth.RoleAgencyOwner && !p.IsAdmin() {
		return nil, apperror.New(apperror.Forbidden, "only agency owners can create agencies")
	}

	var req validations.AgencyRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		uc.log.Warn(fmt.Sprintf("[create-agency-uc] Failed to unmarshal payload: %v", err))
		return nil, apperror.Invalid("body", "request body is not valid JSON")
	}
	if err := validations.Struct(req); err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	a := &domain.Agency{
		AgencyID:    uuid.New().String(),
		OwnerID:     p.UserID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		Active:      req.Active == nil || *req.Active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.agencies.CreateAgency(ctx, a); err != nil {
		uc.log.Error(fmt.Sprintf("[create-agency-uc] Failed to insert agency %s: %v", a.AgencyID, err))
		return nil, fmt.Errorf("failed to create agency: %w", err)
	}

	uc.log.Info(fmt.Sprintf("[create-agency-uc] Agency %s created successfully. Name: %s", a.AgencyID, a.Name))
	return a, nil
}
