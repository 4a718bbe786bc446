package content

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DataLoader loads content tables from JSON files. Each file overrides one
// section of the built-in catalog, so a content directory only needs to ship
// the tables it customizes.
type DataLoader struct {
	basePath string
}

// NewDataLoader creates a new data loader rooted at basePath.
func NewDataLoader(basePath string) *DataLoader {
	return &DataLoader{
		basePath: basePath,
	}
}

// LoadCatalog builds a catalog from the defaults plus any JSON overrides
// present under the base path. A missing directory yields the defaults.
func (dl *DataLoader) LoadCatalog() (*Catalog, error) {
	catalog := DefaultCatalog()

	if _, err := os.Stat(dl.basePath); os.IsNotExist(err) {
		return catalog, nil
	}

	if err := dl.loadSection("gathering.json", &catalog.Gathers); err != nil {
		return nil, err
	}
	if err := dl.loadSection("buildings.json", &catalog.Buildings); err != nil {
		return nil, err
	}
	if err := dl.loadSection("research.json", &catalog.Research); err != nil {
		return nil, err
	}
	if err := dl.loadSection("dungeons.json", &catalog.Dungeons); err != nil {
		return nil, err
	}
	if err := dl.loadSection("artifacts.json", &catalog.Artifacts); err != nil {
		return nil, err
	}
	if err := dl.loadSection("tuning.json", catalog); err != nil {
		return nil, err
	}

	return catalog, nil
}

// loadSection decodes one JSON file into dst when the file exists.
func (dl *DataLoader) loadSection(name string, dst interface{}) error {
	path := filepath.Join(dl.basePath, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", name, err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}

	return nil
}
