package catalog

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/sabarishmetals/shopcore/lib/myerrors"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases the name, collapses every run of non-alphanumerics into
// a single hyphen and trims leading/trailing hyphens.
func Slugify(name string) string {
	slug := strings.ToLower(name)
	slug = nonAlphanumeric.ReplaceAllString(slug, "-")

	return strings.Trim(slug, "-")
}

const maxSlugProbes = 1000

// AllocateSlug derives a slug from desiredName and probes the exists-lookup
// for a collision-free variant: base, base-1, base-2, and so on. The lookup
// must be scoped to the entity type being named and must exclude the entity
// being renamed. Callers are expected to run probe and write in the same
// store transaction; the persistence layer remains the source of truth.
func AllocateSlug(c context.Context, desiredName string, exists func(c context.Context, slug string) (bool, error)) (string, error) {
	base := Slugify(desiredName)
	if base == "" {
		return "", myerrors.NewInvalidInputErrorf("cannot derive slug from %q", desiredName)
	}

	slug := base
	for counter := 1; counter <= maxSlugProbes; counter++ {
		found, err := exists(c, slug)
		if err != nil {
			return "", err
		}
		if !found {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, counter)
	}

	return "", myerrors.NewInternalError(fmt.Errorf("no free slug found for %q after %d probes", desiredName, maxSlugProbes))
}
