package app

import (
	"context"
	"fmt"
	"log/slog"

	contactsHTTP "github.com/allisson/contacts/internal/contacts/http"
	contactsRepository "github.com/allisson/contacts/internal/contacts/repository"
	"github.com/allisson/contacts/internal/translit"
)

// initContactRepository creates the contact repository, wires metrics and a
// change listener, and loads the stored collection into memory.
func (c *Container) initContactRepository() (contactsRepository.ContactRepository, error) {
	logger := c.Logger()

	secureStore, err := c.SecureStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get secure store for contact repository: %w", err)
	}

	repo := contactsRepository.NewContactRepository(secureStore, translit.Initials, logger)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for contact repository: %w", err)
		}
		repo = contactsRepository.NewContactRepositoryWithMetrics(repo, businessMetrics)
	}

	repo.Subscribe(func(ctx context.Context) {
		logger.Debug("contact collection changed", slog.Int("count", repo.Count(ctx)))
	})

	if err := repo.Load(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to load contact collection: %w", err)
	}

	return repo, nil
}

// contactHandler builds the HTTP handler for the contacts API.
func (c *Container) contactHandler() (*contactsHTTP.ContactHandler, error) {
	repo, err := c.ContactRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get contact repository for http handler: %w", err)
	}
	return contactsHTTP.NewContactHandler(repo, c.Logger()), nil
}
