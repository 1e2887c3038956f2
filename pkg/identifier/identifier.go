package identifier

import (
	"net/http"
	"regexp"

	"github.com/google/uuid"

	"github.com/gradebench/webapp/pkg/apperror"
)

// uuid.Parse accepts several layouts (no hyphens, urn prefix, braces);
// the API only accepts the canonical hyphenated form.
var canonicalUUID = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[1-5][0-9a-fA-F]{3}-[89abAB][0-9a-fA-F]{3}-[0-9a-fA-F]{12}$`)

// Parse validates that raw is a canonical hyphenated UUID and returns it.
func Parse(raw string) (uuid.UUID, error) {
	if !canonicalUUID.MatchString(raw) {
		return uuid.Nil, apperror.New(http.StatusBadRequest, "invalid UUID format", nil)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperror.New(http.StatusBadRequest, "invalid UUID format", nil)
	}
	return id, nil
}
