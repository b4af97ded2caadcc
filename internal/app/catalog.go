package app

import (
	"context"
	"sort"

	"yuwelongo/internal/domain"
)

// LevelCatalog loads the ordered list of playable levels.
type LevelCatalog struct {
	service         LevelService
	includeInactive bool
}

// NewLevelCatalog builds a catalog over service. Levels that are not active are
// dropped unless includeInactive is set.
func NewLevelCatalog(service LevelService, includeInactive bool) *LevelCatalog {
	return &LevelCatalog{service: service, includeInactive: includeInactive}
}

// Load returns the levels sorted ascending by their ordering key. An empty
// catalog is reported as domain.ErrNoLevelsAvailable.
func (c *LevelCatalog) Load(ctx context.Context) ([]domain.Level, error) {
	all, err := c.service.Levels(ctx)
	if err != nil {
		return nil, err
	}

	levels := make([]domain.Level, 0, len(all))
	for _, lvl := range all {
		if c.includeInactive || lvl.Playable() {
			levels = append(levels, lvl)
		}
	}
	if len(levels) == 0 {
		return nil, domain.ErrNoLevelsAvailable
	}

	sort.SliceStable(levels, func(i, j int) bool {
		return levels[i].Order < levels[j].Order
	})
	return levels, nil
}
