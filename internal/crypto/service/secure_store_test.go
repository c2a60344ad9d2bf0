package service

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/contacts/internal/crypto/domain"
	"github.com/allisson/contacts/internal/kvstore"
	"github.com/allisson/contacts/internal/kvstore/mocks"
)

type testRecord struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

func newTestSecureStore(t *testing.T, enabled bool) (*SecureStoreService, kvstore.Store) {
	t.Helper()

	store := newTestStore(t)
	keyStore := NewKeyStore(store, cryptoDomain.AESGCM, enabled, testLogger())
	secureStore := NewSecureStore(store, keyStore, NewAEADManager(), testLogger())

	return secureStore, store
}

func TestNewSecureStore(t *testing.T) {
	secureStore, _ := newTestSecureStore(t, true)
	assert.NotNil(t, secureStore)
}

func TestSecureStoreService_Encrypt(t *testing.T) {
	ctx := context.Background()

	t.Run("two encryptions of the same plaintext differ", func(t *testing.T) {
		secureStore, _ := newTestSecureStore(t, true)

		first, err := secureStore.Encrypt(ctx, "same plaintext")
		require.NoError(t, err)
		second, err := secureStore.Encrypt(ctx, "same plaintext")
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
		assert.Equal(t, "same plaintext", secureStore.Decrypt(ctx, first))
		assert.Equal(t, "same plaintext", secureStore.Decrypt(ctx, second))
	})

	t.Run("envelope is base64 of nonce plus ciphertext", func(t *testing.T) {
		secureStore, _ := newTestSecureStore(t, true)

		envelope, err := secureStore.Encrypt(ctx, "payload")
		require.NoError(t, err)

		data, err := base64.StdEncoding.DecodeString(envelope)
		require.NoError(t, err)
		// 12-byte nonce, ciphertext, 16-byte authentication tag.
		assert.Len(t, data, cryptoDomain.NonceSize+len("payload")+16)
	})

	t.Run("passthrough when encryption is disabled", func(t *testing.T) {
		secureStore, _ := newTestSecureStore(t, false)

		value, err := secureStore.Encrypt(ctx, "stays readable")
		require.NoError(t, err)
		assert.Equal(t, "stays readable", value)
	})
}

func TestSecureStoreService_Decrypt(t *testing.T) {
	ctx := context.Background()

	t.Run("round trips an encrypted value", func(t *testing.T) {
		secureStore, _ := newTestSecureStore(t, true)

		envelope, err := secureStore.Encrypt(ctx, `[{"name":"Alice"}]`)
		require.NoError(t, err)
		assert.Equal(t, `[{"name":"Alice"}]`, secureStore.Decrypt(ctx, envelope))
	})

	t.Run("returns non-envelope values as stored", func(t *testing.T) {
		secureStore, _ := newTestSecureStore(t, true)
		assert.Equal(t, `{"plain":"json"}`, secureStore.Decrypt(ctx, `{"plain":"json"}`))
	})

	t.Run("returns short base64 values as stored", func(t *testing.T) {
		secureStore, _ := newTestSecureStore(t, true)

		short := base64.StdEncoding.EncodeToString([]byte("tiny"))
		assert.Equal(t, short, secureStore.Decrypt(ctx, short))
	})

	t.Run("returns tampered envelopes as stored", func(t *testing.T) {
		secureStore, _ := newTestSecureStore(t, true)

		envelope, err := secureStore.Encrypt(ctx, "authentic value")
		require.NoError(t, err)

		data, err := base64.StdEncoding.DecodeString(envelope)
		require.NoError(t, err)
		data[len(data)-1] ^= 0xff
		tampered := base64.StdEncoding.EncodeToString(data)

		assert.Equal(t, tampered, secureStore.Decrypt(ctx, tampered))
	})

	t.Run("returns values as stored when the key is unavailable", func(t *testing.T) {
		secureStore, _ := newTestSecureStore(t, false)

		opaque := base64.StdEncoding.EncodeToString(make([]byte, 40))
		assert.Equal(t, opaque, secureStore.Decrypt(ctx, opaque))
	})
}

func TestSecureStoreService_SaveLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("round trips a record slice", func(t *testing.T) {
		secureStore, _ := newTestSecureStore(t, true)

		records := []testRecord{
			{Name: "张三", Phone: "13800138000"},
			{Name: "Alice", Phone: "555-0132"},
		}
		require.NoError(t, secureStore.Save(ctx, "records", records))

		var loaded []testRecord
		found, err := secureStore.Load(ctx, "records", &loaded)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, records, loaded)
	})

	t.Run("stored record is not plaintext", func(t *testing.T) {
		secureStore, store := newTestSecureStore(t, true)

		require.NoError(t, secureStore.Save(ctx, "records", []testRecord{{Name: "Alice"}}))

		raw, err := store.Get(ctx, "records")
		require.NoError(t, err)
		assert.NotContains(t, raw, `"name"`)
		assert.NotContains(t, raw, "Alice")
	})

	t.Run("stores readable json when encryption is disabled", func(t *testing.T) {
		secureStore, store := newTestSecureStore(t, false)

		require.NoError(t, secureStore.Save(ctx, "records", []testRecord{{Name: "Alice"}}))

		raw, err := store.Get(ctx, "records")
		require.NoError(t, err)
		assert.Contains(t, raw, `"name":"Alice"`)
	})

	t.Run("load of an absent key returns false without error", func(t *testing.T) {
		secureStore, _ := newTestSecureStore(t, true)

		var loaded []testRecord
		found, err := secureStore.Load(ctx, "missing", &loaded)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("load of a corrupt value returns ErrCorruptData", func(t *testing.T) {
		secureStore, store := newTestSecureStore(t, true)
		require.NoError(t, store.Set(ctx, "records", "%%not-json%%"))

		var loaded []testRecord
		_, err := secureStore.Load(ctx, "records", &loaded)
		assert.ErrorIs(t, err, cryptoDomain.ErrCorruptData)
	})

	t.Run("encrypted value without a key returns ErrCorruptData", func(t *testing.T) {
		store := newTestStore(t)
		enabledKeyStore := NewKeyStore(store, cryptoDomain.AESGCM, true, testLogger())
		writer := NewSecureStore(store, enabledKeyStore, NewAEADManager(), testLogger())
		require.NoError(t, writer.Save(context.Background(), "records", []testRecord{{Name: "Alice"}}))

		disabledKeyStore := NewKeyStore(store, cryptoDomain.AESGCM, false, testLogger())
		reader := NewSecureStore(store, disabledKeyStore, NewAEADManager(), testLogger())

		var loaded []testRecord
		_, err := reader.Load(ctx, "records", &loaded)
		assert.ErrorIs(t, err, cryptoDomain.ErrCorruptData)
	})

	t.Run("plaintext records stay loadable after encryption is enabled", func(t *testing.T) {
		secureStore, store := newTestSecureStore(t, true)
		require.NoError(t, store.Set(ctx, "records", `[{"name":"Alice","phone":"555-0132"}]`))

		var loaded []testRecord
		found, err := secureStore.Load(ctx, "records", &loaded)
		require.NoError(t, err)
		assert.True(t, found)
		require.Len(t, loaded, 1)
		assert.Equal(t, "Alice", loaded[0].Name)
	})

	t.Run("save propagates store write failure", func(t *testing.T) {
		store := &mocks.MockStore{}
		store.On("Get", mock.Anything, KeySlot).Return("", assert.AnError)
		store.On("Set", mock.Anything, "records", mock.AnythingOfType("string")).Return(assert.AnError)

		keyStore := NewKeyStore(store, cryptoDomain.AESGCM, true, testLogger())
		secureStore := NewSecureStore(store, keyStore, NewAEADManager(), testLogger())

		err := secureStore.Save(ctx, "records", []testRecord{{Name: "Alice"}})
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestSecureStoreService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the stored value", func(t *testing.T) {
		secureStore, _ := newTestSecureStore(t, true)

		require.NoError(t, secureStore.Save(ctx, "records", []testRecord{{Name: "Alice"}}))
		require.NoError(t, secureStore.Delete(ctx, "records"))

		var loaded []testRecord
		found, err := secureStore.Load(ctx, "records", &loaded)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("deleting an absent key is not an error", func(t *testing.T) {
		secureStore, _ := newTestSecureStore(t, true)
		assert.NoError(t, secureStore.Delete(ctx, "missing"))
	})
}
