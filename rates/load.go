/*
load.go - YAML override loading

A rates file has the same shape as the Tables struct. Fields present in
the file replace the defaults; maps merge key by key, so a file that only
carries next year's CII entry leaves everything else untouched.
*/
package rates

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load returns the defaults overlaid with the YAML file at path. An empty
// path returns the defaults unchanged.
func Load(path string) (*Tables, error) {
	tables := Default()
	if path == "" {
		return tables, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rates file: %w", err)
	}
	if err := yaml.Unmarshal(raw, tables); err != nil {
		return nil, fmt.Errorf("parse rates file %s: %w", path, err)
	}
	if err := tables.Validate(); err != nil {
		return nil, fmt.Errorf("rates file %s: %w", path, err)
	}
	// Regime tables may reference slab tables by content in the file;
	// re-point the defaults if only SlabTables was overridden.
	if len(tables.Regime.New.Slabs) == 0 {
		tables.Regime.New = tables.SlabTables[tables.DefaultSlab]
	}
	return tables, nil
}
