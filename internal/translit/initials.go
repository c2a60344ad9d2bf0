// Package translit maps text to lowercase phonetic initials for search
// matching. Latin letters and digits map to themselves, simplified Chinese
// characters map to the first letter of their Pinyin reading through a
// static GBK range table, and anything else maps to nothing.
//
// The table is a data asset, not an engine: GBK orders common simplified
// characters by Pinyin, so one boundary per initial letter is enough to
// classify the whole contiguous block.
package translit

import (
	"sort"

	"golang.org/x/text/encoding/simplifiedchinese"
)

// gbkInitials holds the first GBK code point of each Pinyin initial block.
// Codes between one boundary and the next share the boundary's initial.
// The blocks cover the contiguous "level 1" area, 0xB0A1 up to gbkTableEnd.
var gbkInitials = []struct {
	code    uint16
	initial byte
}{
	{0xB0A1, 'a'},
	{0xB0C5, 'b'},
	{0xB2C1, 'c'},
	{0xB4EE, 'd'},
	{0xB6EA, 'e'},
	{0xB7A2, 'f'},
	{0xB8C1, 'g'},
	{0xB9FE, 'h'},
	{0xBBF7, 'j'},
	{0xBFA6, 'k'},
	{0xC0AC, 'l'},
	{0xC2E8, 'm'},
	{0xC4C3, 'n'},
	{0xC5B6, 'o'},
	{0xC5BE, 'p'},
	{0xC6DA, 'q'},
	{0xC8BB, 'r'},
	{0xC8F6, 's'},
	{0xCBFA, 't'},
	{0xCDDA, 'w'},
	{0xCEF4, 'x'},
	{0xD1B9, 'y'},
	{0xD4D1, 'z'},
}

// gbkTableEnd is the first GBK code past the Pinyin-ordered area.
const gbkTableEnd = 0xD7FA

// Initials returns the phonetic initial of every recognizable character in
// text, concatenated in order. Unrecognized characters contribute nothing,
// so the result may be shorter than the input or empty.
func Initials(text string) string {
	encoder := simplifiedchinese.GBK.NewEncoder()

	out := make([]byte, 0, len(text))
	for _, r := range text {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			out = append(out, byte(r))
		case r >= 'A' && r <= 'Z':
			out = append(out, byte(r)+'a'-'A')
		case r < 128:
			// Punctuation and spaces carry no sound.
		default:
			encoded, err := encoder.Bytes([]byte(string(r)))
			if err != nil || len(encoded) != 2 {
				continue
			}
			if initial, ok := lookupGBK(uint16(encoded[0])<<8 | uint16(encoded[1])); ok {
				out = append(out, initial)
			}
		}
	}

	return string(out)
}

// lookupGBK classifies a two-byte GBK code into its Pinyin initial block.
func lookupGBK(code uint16) (byte, bool) {
	if code < gbkInitials[0].code || code >= gbkTableEnd {
		return 0, false
	}

	// Index of the last boundary at or below code.
	idx := sort.Search(len(gbkInitials), func(i int) bool {
		return gbkInitials[i].code > code
	}) - 1

	return gbkInitials[idx].initial, true
}
