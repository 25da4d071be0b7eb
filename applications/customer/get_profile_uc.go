package customer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/atifsayed22/bookit/applications/auth"
	"github.com/atifsayed22/bookit/apperror"
	"github.com/atifsayed22/bookit/domain"
	"github.com/atifsayed22/bookit/store"
)

type GetProfileUC struct {
	log       *slog.Logger
	customers store.CustomerStore
}

func NewGetProfileUC(log *slog.Logger, customers store.CustomerStore) *GetProfileUC {
	return &GetProfileUC{log: log, customers: customers}
}

func (uc *GetProfileUC) Invoke(ctx context.Context, p auth.Principal) (*domain.Customer, error) {
	c, err := uc.customers.GetCustomer(ctx, p.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperror.New(apperror.NotFound, "no profile for user %s", p.UserID)
	}
	if err != nil {
		uc.log.Error(fmt.Sprintf("[get-profile-uc] Failed to fetch profile %s: %v", p.UserID, err))
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	return c, nil
}
