package repository

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/cyclesync/internal/domain"
)

// joinPhases stores a phase list as a comma-separated string.
func joinPhases(phases []domain.Phase) string {
	parts := make([]string, len(phases))
	for i, p := range phases {
		parts[i] = string(p)
	}
	return strings.Join(parts, ",")
}

func splitPhases(s string) ([]domain.Phase, error) {
	if s == "" {
		return nil, nil
	}
	var out []domain.Phase
	for _, part := range strings.Split(s, ",") {
		p, err := domain.ParsePhase(part)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Benefits are free text and may contain commas, so they go in as JSON.
func encodeBenefits(b []string) (string, error) {
	if len(b) == 0 {
		return "", nil
	}
	raw, err := json.Marshal(b)
	if err != nil {
		return "", fmt.Errorf("encoding benefits: %w", err)
	}
	return string(raw), nil
}

func decodeBenefits(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, fmt.Errorf("decoding benefits: %w", err)
	}
	return out, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func intToBool(i int) bool {
	return i != 0
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format(time.RFC3339)
}

func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return t, nil
}

func formatDate(t time.Time) string {
	return domain.DateOf(t).Format(domain.DateLayout)
}

// placeholders returns "?, ?, ?" for n arguments.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// nowUTC returns the current UTC time truncated to the stored precision.
func nowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
