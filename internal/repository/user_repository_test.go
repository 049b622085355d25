package repository

import (
	"context"
	"testing"

	"github.com/newsdesk/internal/kv/memory"
	"github.com/newsdesk/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userStoreImplementations(t *testing.T) map[string]UserStore {
	t.Helper()
	store := memory.New(0)
	t.Cleanup(func() { _ = store.Close() })
	return map[string]UserStore{
		"gorm": NewUserRepository(setupRepositoryTestDB(t)),
		"kv":   NewKVUserRepository(store),
	}
}

func TestUserStores(t *testing.T) {
	for name, store := range userStoreImplementations(t) {
		store := store
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			user := &models.User{Email: " A@X.com ", PasswordHash: "hash"}
			require.NoError(t, store.Create(ctx, user))
			require.NotEmpty(t, user.ID)
			assert.Equal(t, "a@x.com", user.Email)

			byEmail, err := store.GetByEmail(ctx, "a@x.com")
			require.NoError(t, err)
			require.NotNil(t, byEmail)
			assert.Equal(t, user.ID, byEmail.ID)
			assert.Equal(t, "hash", byEmail.PasswordHash)

			byID, err := store.GetByID(ctx, user.ID)
			require.NoError(t, err)
			require.NotNil(t, byID)
			assert.Equal(t, "a@x.com", byID.Email)

			err = store.Create(ctx, &models.User{Email: "a@x.com", PasswordHash: "other"})
			assert.ErrorIs(t, err, ErrDuplicate)

			missing, err := store.GetByID(ctx, "missing")
			require.NoError(t, err)
			assert.Nil(t, missing)

			missing, err = store.GetByEmail(ctx, "nobody@x.com")
			require.NoError(t, err)
			assert.Nil(t, missing)

			users, err := store.ListByIDs(ctx, []string{user.ID, "missing"})
			require.NoError(t, err)
			require.Len(t, users, 1)
			assert.Equal(t, user.ID, users[0].ID)
		})
	}
}
