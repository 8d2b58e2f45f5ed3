package query

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/leadfinder/internal/model"
)

// Preset is a saved search: a free-text query plus a filter set.
type Preset struct {
	Query   string            `yaml:"query"`
	Filters model.LeadFilters `yaml:"filters"`
}

// LoadPreset reads a YAML preset file.
//
//	query: analytics
//	filters:
//	  industry: Software
//	  min_budget: 20000
//	  date_from: 2025-01-01
func LoadPreset(path string) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "query: read preset %s", path)
	}

	var p Preset
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, eris.Wrap(err, "query: parse preset")
	}
	if p.Filters.Score != "" {
		if _, err := model.ParseScore(string(p.Filters.Score)); err != nil {
			return nil, eris.Wrap(err, "query: preset score")
		}
	}
	return &p, nil
}
