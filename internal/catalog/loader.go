package catalog

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadFromFile reads a single JSON catalog file (the format Data
// marshals to) and builds a Catalog from it, the same load-then-index
// shape as the teacher's item.Loader.Load but without a database sync
// step: every template here is immutable process-wide data, never
// written back to Postgres.
func LoadFromFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file %s: %w", path, err)
	}

	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse catalog file %s: %w", path, err)
	}

	return Load(data)
}
