package booking

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/atifsayed22/bookit/applications/auth"
	"github.com/atifsayed22/bookit/apperror"
	"github.com/atifsayed22/bookit/domain"
	"github.com/atifsayed22/bookit/store"
)

type GetVoucherUC struct {
	log     *slog.Logger
	store   store.Store
	baseURL string
}

func NewGetVoucherUC(log *slog.Logger, s store.Store, baseURL string) *GetVoucherUC {
	return &GetVoucherUC{log: log, store: s, baseURL: strings.TrimRight(baseURL, "/")}
}

// Invoke renders the voucher of a confirmed reservation.
func (uc *GetVoucherUC) Invoke(ctx context.Context, p auth.Principal, reservationID string) (*domain.Reservation, []byte, error) {
	r, err := loadReservation(ctx, uc.store, reservationID)
	if err != nil {
		return nil, nil, err
	}
	if err := canView(ctx, uc.store, p, r); err != nil {
		return nil, nil, err
	}
	if r.Status != domain.StatusConfirmed {
		return nil, nil, apperror.New(apperror.InvalidTransition, "voucher available once confirmed (reservation is %s)", r.Status)
	}

	info := VoucherInfo{VerifyURL: fmt.Sprintf("%s/api/v1/reservations/%s", uc.baseURL, r.ReservationID)}
	if a, err := uc.store.GetAgency(ctx, r.AgencyID); err == nil {
		info.AgencyName, info.AgencyPhone, info.AgencyEmail = a.Name, a.Phone, a.Email
	} else {
		uc.log.Warn(fmt.Sprintf("[get-voucher-uc] agency fetch error for %s: %v", r.AgencyID, err))
	}

	pdfBytes, err := GenerateVoucherPDF(r, info)
	if err != nil {
		uc.log.Error(fmt.Sprintf("[get-voucher-uc] Failed to render voucher %s: %v", reservationID, err))
		return nil, nil, err
	}

	uc.log.Info(fmt.Sprintf("[get-voucher-uc] Voucher rendered for reservation %s (%d bytes).", reservationID, len(pdfBytes)))
	return r, pdfBytes, nil
}
