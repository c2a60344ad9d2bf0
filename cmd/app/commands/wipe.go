package commands

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"strings"

	contactsRepository "github.com/allisson/contacts/internal/contacts/repository"
	cryptoService "github.com/allisson/contacts/internal/crypto/service"
	"github.com/allisson/contacts/internal/database"
	"github.com/allisson/contacts/internal/kvstore"
)

// RunWipe deletes the stored contact collection and the encryption key slot.
// Without yes the command asks for confirmation on the IOTuple reader. When a
// transaction manager is provided both deletes run in one transaction.
func RunWipe(
	ctx context.Context,
	store kvstore.Store,
	txManager database.TxManager,
	keyStore cryptoService.KeyStore,
	logger *slog.Logger,
	ioTuple IOTuple,
	yes bool,
) error {
	if !yes {
		fmt.Fprint(ioTuple.Writer, "This permanently deletes all contacts and the encryption key. Type 'yes' to continue: ")

		answer, err := bufio.NewReader(ioTuple.Reader).ReadString('\n')
		if err != nil && answer == "" {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if strings.TrimSpace(answer) != "yes" {
			fmt.Fprintln(ioTuple.Writer, "Aborted.")
			return nil
		}
	}

	wipe := func(ctx context.Context) error {
		if err := store.Delete(ctx, contactsRepository.CollectionKey); err != nil {
			return fmt.Errorf("failed to delete contact collection: %w", err)
		}
		if err := keyStore.Clear(ctx); err != nil {
			return fmt.Errorf("failed to clear encryption key: %w", err)
		}
		return nil
	}

	var err error
	if txManager != nil {
		err = txManager.WithTx(ctx, wipe)
	} else {
		err = wipe(ctx)
	}
	if err != nil {
		return err
	}

	logger.Info("wiped stored contacts and encryption key")
	fmt.Fprintln(ioTuple.Writer, "All contacts and the encryption key have been removed.")

	return nil
}
