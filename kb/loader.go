package kb

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/siderealworks/astrocarto/model"
)

// locationFile is the on-disk shape of a location catalog.
type locationFile struct {
	Locations []model.Location `json:"locations"`
}

// LoadLocations reads a JSON location catalog and registers every entry
// in the store. Duplicate names in the file are an error.
func (s *Store) LoadLocations(path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading location catalog: %w", err)
	}

	var file locationFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return 0, fmt.Errorf("parsing location catalog %s: %w", path, err)
	}

	for i := range file.Locations {
		loc := file.Locations[i]
		if loc.Name == "" {
			return i, fmt.Errorf("location %d in %s has no name", i, path)
		}
		if loc.Lat < -90 || loc.Lat > 90 || loc.Lon < -180 || loc.Lon > 180 {
			return i, fmt.Errorf("location %q has out-of-range coordinates", loc.Name)
		}
		if err := s.AddLocation(&loc); err != nil {
			return i, err
		}
	}
	return len(file.Locations), nil
}
