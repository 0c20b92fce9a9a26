package services

import (
	"strconv"
	"strings"

	"github.com/MICROWAVE-web/EncarParsing/models"
)

// NormalizeID canonicalizes a raw listing identifier. The canonical key is
// the trimmed string form and drives all duplicate detection; the stored
// value is an int64 when the key is all digits, otherwise the key itself.
// Leading zeros stay part of the key even though the stored value is numeric,
// so "00042" and "42" are distinct identifiers.
//
// Returns ok=false when the identifier is absent or blank after trimming.
func NormalizeID(raw any) (key string, stored any, ok bool) {
	key = strings.TrimSpace(models.IDString(raw))
	if key == "" {
		return "", nil, false
	}

	stored = key
	if isDigits(key) {
		if n, err := strconv.ParseInt(key, 10, 64); err == nil {
			stored = n
		}
	}
	return key, stored, true
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
