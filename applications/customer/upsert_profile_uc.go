package customer

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

type UpsertProfileUC struct {
	log       *slog.Logger
	customers store.CustomerStore
	now       func() time.Time
}

func NewUpsertProfileUC(log *slog.Logger, customers store.CustomerStore) *UpsertProfileUC {
	return &UpsertProfileUC{log: log, customers: customers, now: time.Now}
}

// Invoke creates or replaces the caller's profile. Booking statistics and the
// creation time survive an edit. Reservations already made keep the contact
// details they were booked with.
func (uc *UpsertProfileUC) Invoke(ctx context.Context, p auth.Principal, payload []byte) (*domain.Customer, error) {
	var req validations.ProfileRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return nil, apperror.Invalid("body", "request body is not valid JSON")
	}
	if err := validations.Struct(req); err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	c, err := uc.customers.GetCustomer(ctx, p.UserID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		c = &domain.Customer{UserID: p.UserID, CreatedAt: now}
	case err != nil:
		uc.log.Error(fmt.Sprintf("[upsert-profile-uc] Failed to fetch profile %s: %v", p.UserID, err))
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}

	c.FirstName = strings.TrimSpace(req.FirstName)
	c.LastName = strings.TrimSpace(req.LastName)
	c.Email = req.Email
	if c.Email == "" {
		c.Email = p.Email
	}
	c.Phone = req.Phone
	c.UpdatedAt = now

	if err := uc.customers.UpsertCustomer(ctx, c); err != nil {
		uc.log.Error(fmt.Sprintf("[upsert-profile-uc] Failed to save profile %s: %v", p.UserID, err))
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	uc.log.Info(fmt.Sprintf("[upsert-profile-uc] Profile %s saved.", p.UserID))
	return c, nil
}
