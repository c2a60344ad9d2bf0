package app

import (
	"fmt"

	cryptoDomain "github.com/allisson/contacts/internal/crypto/domain"
	cryptoService "github.com/allisson/contacts/internal/crypto/service"
)

// AEADManager returns the AEAD manager service.
func (c *Container) AEADManager() cryptoService.AEADManager {
	c.aeadManagerInit.Do(func() {
		c.aeadManager = c.initAEADManager()
	})
	return c.aeadManager
}

// KeyStore returns the encryption key store service.
func (c *Container) KeyStore() (cryptoService.KeyStore, error) {
	var err error
	c.keyStoreInit.Do(func() {
		c.keyStore, err = c.initKeyStore()
		if err != nil {
			c.initErrors["keyStore"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["keyStore"]; exists {
		return nil, storedErr
	}
	return c.keyStore, nil
}

// SecureStore returns the encrypting store service.
func (c *Container) SecureStore() (cryptoService.SecureStore, error) {
	var err error
	c.secureStoreInit.Do(func() {
		c.secureStore, err = c.initSecureStore()
		if err != nil {
			c.initErrors["secureStore"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["secureStore"]; exists {
		return nil, storedErr
	}
	return c.secureStore, nil
}

// initAEADManager creates the AEAD manager service.
func (c *Container) initAEADManager() cryptoService.AEADManager {
	return cryptoService.NewAEADManager()
}

// initKeyStore creates the key store using the configured algorithm.
func (c *Container) initKeyStore() (cryptoService.KeyStore, error) {
	store, err := c.KVStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get kv store for key store: %w", err)
	}

	algorithm, err := cryptoDomain.ParseAlgorithm(c.config.EncryptionAlgorithm)
	if err != nil {
		return nil, fmt.Errorf("failed to parse encryption algorithm: %w", err)
	}

	return cryptoService.NewKeyStore(store, algorithm, c.config.EncryptionEnabled, c.Logger()), nil
}

// initSecureStore creates the secure store with its key store and AEAD manager.
func (c *Container) initSecureStore() (cryptoService.SecureStore, error) {
	store, err := c.KVStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get kv store for secure store: %w", err)
	}

	keyStore, err := c.KeyStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get key store for secure store: %w", err)
	}

	return cryptoService.NewSecureStore(store, keyStore, c.AEADManager(), c.Logger()), nil
}
