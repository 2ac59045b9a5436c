package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// Dialects lists the migration subdirectories kept in lockstep.
var Dialects = []string{"postgres", "sqlite3"}

var nameSanitizeRe = regexp.MustCompile(`[^a-z0-9_]+`)

const migrationTemplate = `-- +goose Up
-- +goose StatementBegin
-- %[1]s (%[2]s)
-- +goose StatementEnd

-- +goose Down
-- +goose StatementBegin
-- rollback %[1]s (%[2]s)
-- +goose StatementEnd
`

// Create writes one goose SQL migration per dialect under root, all sharing
// the same version:
//
//	<root>/<dialect>/<YYYYMMDDHHMMSS>_<name>.sql
//
// Nothing is written when any of the target files already exists.
func Create(root, name string, now time.Time) ([]string, error) {
	if root == "" {
		return nil, fmt.Errorf("root is required")
	}
	safe := sanitizeName(name)
	if safe == "" {
		return nil, fmt.Errorf("name %q results in empty sanitized filename", name)
	}

	filename := fmt.Sprintf("%s_%s.sql", now.UTC().Format("20060102150405"), safe)
	paths := make([]string, 0, len(Dialects))
	for _, dialect := range Dialects {
		full := filepath.Join(DialectDir(root, dialect), filename)
		if _, err := os.Stat(full); err == nil {
			return nil, fmt.Errorf("migration already exists: %s", full)
		}
		paths = append(paths, full)
	}

	for i, dialect := range Dialects {
		if err := os.MkdirAll(DialectDir(root, dialect), 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %q: %w", DialectDir(root, dialect), err)
		}
		body := fmt.Sprintf(migrationTemplate, safe, dialect)
		if err := os.WriteFile(paths[i], []byte(body), 0o644); err != nil {
			return nil, fmt.Errorf("write migration %q: %w", paths[i], err)
		}
	}
	return paths, nil
}

func sanitizeName(name string) string {
	safe := strings.ToLower(strings.TrimSpace(name))
	safe = nameSanitizeRe.ReplaceAllString(safe, "_")
	return strings.Trim(safe, "_")
}
