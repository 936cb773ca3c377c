// Package refresh harvests candidate text, turns it into a practice story
// and stores it as the newest content.
package refresh

import (
	"context"
	"errors"
)

// ErrNothingHarvested is returned when a source yields no usable text.
var ErrNothingHarvested = errors.New("nothing harvested")

// Harvest is raw source text plus the links it came from.
type Harvest struct {
	Title   string
	Text    string
	Sources []string
}

// Harvester collects candidate source text.
type Harvester interface {
	Harvest(ctx context.Context) (Harvest, error)
}
