package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	contactsDomain "github.com/allisson/contacts/internal/contacts/domain"
	"github.com/allisson/contacts/internal/contacts/export"
	contactsRepository "github.com/allisson/contacts/internal/contacts/repository"
)

// RunExport writes the contacts matching a category as a CSV document.
// With an output path the document is written to that file and a summary line
// goes to writer; without one the document itself goes to writer.
func RunExport(
	ctx context.Context,
	contactRepo contactsRepository.ContactRepository,
	logger *slog.Logger,
	writer io.Writer,
	category string,
	output string,
) error {
	parsed := contactsDomain.Category(category)
	if parsed != contactsDomain.CategoryAll && !parsed.IsValid() {
		return fmt.Errorf("invalid category: %q (valid options: office, personal, all)", category)
	}

	contacts := contactRepo.Filter(ctx, parsed, "")

	logger.Info("exporting contacts",
		slog.String("category", category),
		slog.Int("count", len(contacts)),
	)

	if output == "" {
		return export.Write(writer, contacts)
	}

	file, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := export.Write(file, contacts); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to write export: %w", err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}

	fmt.Fprintf(writer, "Exported %d contact(s) to %s\n", len(contacts), output)

	return nil
}
