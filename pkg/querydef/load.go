package querydef

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

// Parse decodes a definition document. Unknown keys are rejected and every
// query must have a unique, non-empty name.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return nil, fmt.Errorf("parsing definitions: %w", err)
	}
	if err := f.validateNames(); err != nil {
		return nil, err
	}
	return &f, nil
}

// LoadFile reads and parses one definition file from fs.
func LoadFile(fs afero.Fs, path string) (*File, error) {
	b, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	f, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// LoadDir loads every *.yaml and *.yml file directly inside dir, in name
// order, and merges their queries. A name defined twice is an error.
func LoadDir(fs afero.Fs, dir string) (*File, error) {
	paths, err := DefinitionFiles(fs, dir)
	if err != nil {
		return nil, err
	}

	merged := &File{}
	for _, path := range paths {
		f, err := LoadFile(fs, path)
		if err != nil {
			return nil, err
		}
		merged.Queries = append(merged.Queries, f.Queries...)
	}
	if err := merged.validateNames(); err != nil {
		return nil, fmt.Errorf("%s: %w", dir, err)
	}
	return merged, nil
}

// DefinitionFiles lists the definition files directly inside dir, sorted.
func DefinitionFiles(fs afero.Fs, dir string) ([]string, error) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".yaml", ".yml":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func (f *File) validateNames() error {
	seen := make(map[string]bool, len(f.Queries))
	for i, q := range f.Queries {
		if q == nil {
			return invalid(fmt.Sprintf("queries[%d]", i), "empty query")
		}
		if q.Name == "" {
			return invalid(fmt.Sprintf("queries[%d]", i), "missing name")
		}
		if seen[q.Name] {
			return invalid(fmt.Sprintf("queries[%d]", i), "duplicate query name %q", q.Name)
		}
		seen[q.Name] = true
	}
	return nil
}
