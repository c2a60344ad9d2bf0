// Package export renders a contact list as a CSV document for download.
// The output targets spreadsheet applications: UTF-8 with a byte-order
// marker so non-ASCII names open correctly, and every field quoted so
// commas and quotes in free text survive.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	contactsDomain "github.com/allisson/contacts/internal/contacts/domain"
	apperrors "github.com/allisson/contacts/internal/errors"
)

// bom is the UTF-8 byte-order marker prefixed to every document.
const bom = "\xef\xbb\xbf"

// header is the fixed column order of the exported table.
var header = []string{"name", "phone", "address", "category"}

// Write renders contacts as a CSV document onto w.
func Write(w io.Writer, contacts []contactsDomain.Contact) error {
	var b strings.Builder
	b.WriteString(bom)
	writeRow(&b, header...)
	for _, contact := range contacts {
		writeRow(&b, contact.Name, contact.Phone, contact.Address, string(contact.Category))
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return apperrors.Wrap(err, "write csv document")
	}

	return nil
}

// writeRow appends one line with every field double-quoted. Quotes inside a
// field are doubled per the CSV convention.
func writeRow(b *strings.Builder, fields ...string) {
	for i, field := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(field, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}

// Filename returns the download name for a category export on the given
// date, such as "contacts_office_2026-08-25.csv". The wildcard category
// yields "contacts_all_<date>.csv".
func Filename(category contactsDomain.Category, now time.Time) string {
	return fmt.Sprintf("contacts_%s_%s.csv", category, now.Format("2006-01-02"))
}
