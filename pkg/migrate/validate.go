package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

var sqlFileRe = regexp.MustCompile(`^(\d{14})_[a-z0-9_]+\.sql$`)

// Validate checks every dialect directory under root and requires all of
// them to carry the same set of migrations.
func Validate(root string) error {
	if root == "" {
		return fmt.Errorf("root is required")
	}

	var (
		reference     map[string]string
		referenceName string
	)
	for _, dialect := range Dialects {
		files, err := validateDialectDir(DialectDir(root, dialect))
		if err != nil {
			return fmt.Errorf("%s: %w", dialect, err)
		}
		if reference == nil {
			reference, referenceName = files, dialect
			continue
		}
		if missing := diffVersions(reference, files); len(missing) > 0 {
			return fmt.Errorf("%s is missing migrations present in %s: %s", dialect, referenceName, strings.Join(missing, ", "))
		}
		if extra := diffVersions(files, reference); len(extra) > 0 {
			return fmt.Errorf("%s has migrations missing from %s: %s", dialect, referenceName, strings.Join(extra, ", "))
		}
	}
	return nil
}

// validateDialectDir checks filenames and goose markers, returning
// filename by version.
func validateDialectDir(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %q: %w", dir, err)
	}

	files := map[string]string{}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".sql") {
			continue
		}

		m := sqlFileRe.FindStringSubmatch(name)
		if m == nil {
			return nil, fmt.Errorf("invalid migration filename %q (expected YYYYMMDDHHMMSS_name.sql)", name)
		}
		version := m[1]
		if prev, ok := files[version]; ok {
			return nil, fmt.Errorf("duplicate migration version %s in %q and %q", version, prev, name)
		}
		files[version] = name

		b, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read file %q: %w", name, err)
		}
		txt := string(b)
		up := strings.Index(txt, "-- +goose Up")
		down := strings.Index(txt, "-- +goose Down")
		switch {
		case up < 0:
			return nil, fmt.Errorf("migration %q missing \"-- +goose Up\"", name)
		case down < 0:
			return nil, fmt.Errorf("migration %q missing \"-- +goose Down\"", name)
		case down < up:
			return nil, fmt.Errorf("migration %q has Down before Up", name)
		}
	}
	return files, nil
}

// diffVersions returns filenames in a whose version is absent from b.
func diffVersions(a, b map[string]string) []string {
	var out []string
	for version, name := range a {
		if other, ok := b[version]; !ok || other != name {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}
