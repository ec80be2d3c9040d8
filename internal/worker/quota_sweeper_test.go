package worker

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/superapp-gateway/internal/crypto"
	"github.com/dtroode/superapp-gateway/internal/mocks"
	"github.com/dtroode/superapp-gateway/internal/model"
	"github.com/dtroode/superapp-gateway/internal/repository/memory"
	"github.com/dtroode/superapp-gateway/internal/service"
	"github.com/dtroode/superapp-gateway/internal/testutil"
)

type purgerFunc func(ctx context.Context) (int64, error)

func (f purgerFunc) PurgeExpired(ctx context.Context) (int64, error) { return f(ctx) }

func TestQuotaSweeper_Sweep(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	cipher, err := crypto.NewCipher("sweeper")
	require.NoError(t, err)
	vault := service.NewVault(memory.NewCredentialRepository(), cipher, testutil.MakeNoopLogger(),
		service.WithVaultClock(func() time.Time { return now }))

	owner := uuid.New()
	var ids []uuid.UUID
	for i := 0; i < 5; i++ {
		c, err := vault.Register(ctx, model.RegisterCredentialParams{
			OwnerID: owner, Service: model.ServiceGoogle, PlaintextKey: "AIzaSyD-0123456789",
		})
		require.NoError(t, err)
		_, err = vault.ReportUsage(ctx, c, 10)
		require.NoError(t, err)
		ids = append(ids, c.ID)
	}

	sweeper := NewQuotaSweeper(vault, time.Hour, 2, testutil.MakeNoopLogger())

	reset, err := sweeper.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, reset)

	now = now.AddDate(0, 1, 0)
	reset, err = sweeper.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, reset)

	for _, id := range ids {
		c, err := vault.Get(ctx, owner, id)
		require.NoError(t, err)
		assert.Equal(t, int64(0), c.QuotaUsed)
		assert.Equal(t, now.AddDate(0, 1, 0), c.QuotaResetAt)
	}
}

func TestQuotaSweeper_SweepStopsOnPersistentFailure(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewCredentialStore(t)
	cipher := mocks.NewSecretCipher(t)
	vault := service.NewVault(store, cipher, testutil.MakeNoopLogger())

	stuck := model.Credential{ID: uuid.New(), IsActive: true}
	store.On("ListDueForReset", mock.Anything, mock.Anything, 1).Return([]model.Credential{stuck}, nil).Once()
	store.On("ResetDueQuota", mock.Anything, stuck.ID, mock.Anything, mock.Anything).Return(model.Credential{}, assert.AnError).Once()

	sweeper := NewQuotaSweeper(vault, time.Hour, 1, testutil.MakeNoopLogger())

	reset, err := sweeper.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, reset)
}

func TestQuotaSweeper_SkipsCredentialResetAfterListing(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	cipher, err := crypto.NewCipher("sweeper")
	require.NoError(t, err)
	store := memory.NewCredentialRepository()
	vault := service.NewVault(store, cipher, testutil.MakeNoopLogger(),
		service.WithVaultClock(func() time.Time { return now }))

	owner := uuid.New()
	c, err := vault.Register(ctx, model.RegisterCredentialParams{
		OwnerID: owner, Service: model.ServiceGoogle, PlaintextKey: "AIzaSyD-0123456789",
	})
	require.NoError(t, err)

	now = now.AddDate(0, 1, 0)
	due, err := vault.ListDueForReset(ctx, 10)
	require.NoError(t, err)
	require.Len(t, due, 1)

	// an admin reset lands between listing and the sweep, then new usage arrives
	admin, err := vault.ResetQuota(ctx, c)
	require.NoError(t, err)
	_, err = vault.ReportUsage(ctx, admin, 70)
	require.NoError(t, err)

	_, err = vault.ResetDueQuota(ctx, due[0])
	require.ErrorIs(t, err, model.ErrNotFound)

	got, err := vault.Get(ctx, owner, c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(70), got.QuotaUsed)
	assert.Equal(t, admin.QuotaResetAt, got.QuotaResetAt)

	sweeper := NewQuotaSweeper(vault, time.Hour, 10, testutil.MakeNoopLogger())
	reset, err := sweeper.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, reset)
}

func TestQuotaSweeper_StaleEntryIsSkipped(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewCredentialStore(t)
	vault := service.NewVault(store, mocks.NewSecretCipher(t), testutil.MakeNoopLogger())

	stale := model.Credential{ID: uuid.New(), IsActive: true}
	due := model.Credential{ID: uuid.New(), IsActive: true}
	store.On("ListDueForReset", mock.Anything, mock.Anything, 2).Return([]model.Credential{stale, due}, nil).Once()
	store.On("ResetDueQuota", mock.Anything, stale.ID, mock.Anything, mock.Anything).Return(model.Credential{}, model.ErrNotFound).Once()
	store.On("ResetDueQuota", mock.Anything, due.ID, mock.Anything, mock.Anything).Return(due, nil).Once()
	store.On("ListDueForReset", mock.Anything, mock.Anything, 2).Return(nil, nil).Once()

	sweeper := NewQuotaSweeper(vault, time.Hour, 2, testutil.MakeNoopLogger())

	reset, err := sweeper.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, reset)
}

func TestQuotaSweeper_RunPurgesAndStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	store := mocks.NewCredentialStore(t)
	vault := service.NewVault(store, mocks.NewSecretCipher(t), testutil.MakeNoopLogger())
	store.On("ListDueForReset", mock.Anything, mock.Anything, 500).Return(nil, nil)

	purged := make(chan struct{}, 1)
	sweeper := NewQuotaSweeper(vault, time.Hour, 0, testutil.MakeNoopLogger(),
		WithRevocationPurger(purgerFunc(func(context.Context) (int64, error) {
			select {
			case purged <- struct{}{}:
			default:
			}
			return 3, nil
		})))

	done := make(chan struct{})
	go func() {
		sweeper.Run(ctx)
		close(done)
	}()

	select {
	case <-purged:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not run on start")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}
