package pagination

import (
	"encoding/base64"
	"fmt"
	"time"
)

const dateFormat = time.DateOnly

// EncodeDateBasedToken creates an opaque cursor from the last business day of a page.
func EncodeDateBasedToken(date time.Time) string {
	return base64.URLEncoding.EncodeToString([]byte(date.UTC().Format(dateFormat)))
}

// DecodeDateBasedToken decodes a cursor back into a midnight UTC business day.
func DecodeDateBasedToken(token string) (time.Time, error) {
	decodedBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}

	date, err := time.Parse(dateFormat, string(decodedBytes))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid pagination token format (date parse): %w", err)
	}

	return date, nil
}
