package customer

import (
	"context"
	"testing"
	"time"

	"github.com/atifsayed22/bookit/applications/auth"
	"github.com/atifsayed22/bookit/apperror"
	badgerstore "github.com/atifsayed22/bookit/db/badger"
	"github.com/atifsayed22/bookit/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileLifecycle(t *testing.T) {
	s, err := badgerstore.OpenInMemory(logger.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	ctx := context.Background()
	p := auth.Principal{UserID: "cust-1", Email: "ana@example.com", Role: auth.RoleCustomer}
	get := NewGetProfileUC(logger.Discard(), s)
	upsert := NewUpsertProfileUC(logger.Discard(), s)

	_, err = get.Invoke(ctx, p)
	assert.True(t, apperror.IsKind(err, apperror.NotFound))

	c, err := upsert.Invoke(ctx, p, []byte(`{"firstName":" Ana ","lastName":"Diaz","phone":"+1 555"}`))
	require.NoError(t, err)
	assert.Equal(t, "Ana Diaz", c.FullName())
	assert.Equal(t, p.Email, c.Email)

	found, err := s.IncrementBookingCount(ctx, p.UserID, time.Now())
	require.NoError(t, err)
	require.True(t, found)

	c, err = upsert.Invoke(ctx, p, []byte(`{"firstName":"Ana","lastName":"Ruiz","email":"ana.ruiz@example.com"}`))
	require.NoError(t, err)
	assert.Equal(t, 1, c.BookingCount)
	assert.NotNil(t, c.LastBookingAt)

	got, err := get.Invoke(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, "ana.ruiz@example.com", got.Email)
	assert.Equal(t, "Ana Ruiz", got.FullName())

	_, err = upsert.Invoke(ctx, p, []byte(`{"lastName":"x"}`))
	assert.True(t, apperror.IsKind(err, apperror.MissingField))
}
