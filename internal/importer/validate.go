package importer

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/alexanderramin/cyclesync/internal/domain"
)

// ValidateCatalog checks every entry and returns all problems found.
func ValidateCatalog(c *Catalog) []error {
	var errs []error
	if len(c.Activities) == 0 {
		return []error{fmt.Errorf("catalog has no activities")}
	}

	seen := make(map[string]int, len(c.Activities))
	for i, a := range c.Activities {
		prefix := fmt.Sprintf("activities[%d]", i)
		id := strings.TrimSpace(a.ID)

		if id == "" {
			errs = append(errs, fmt.Errorf("%s.id is required", prefix))
		} else if first, dup := seen[id]; dup {
			errs = append(errs, fmt.Errorf("%s.id %q duplicates activities[%d]", prefix, id, first))
		} else {
			seen[id] = i
		}
		if strings.TrimSpace(a.Name) == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if _, err := domain.ParseActivityType(a.Type); err != nil {
			errs = append(errs, fmt.Errorf("%s.type: %w", prefix, err))
		}
		for j, p := range a.Phases {
			if _, err := domain.ParsePhase(p); err != nil {
				errs = append(errs, fmt.Errorf("%s.phases[%d]: %w", prefix, j, err))
			}
		}
		if a.DurationMinutes != nil && *a.DurationMinutes < 0 {
			errs = append(errs, fmt.Errorf("%s.duration_minutes must not be negative, got %d", prefix, *a.DurationMinutes))
		}
		if a.ArticleURL != "" {
			if u, err := url.Parse(a.ArticleURL); err != nil || u.Scheme == "" || u.Host == "" {
				errs = append(errs, fmt.Errorf("%s.article_url %q is not an absolute URL", prefix, a.ArticleURL))
			}
		}
	}
	return errs
}
