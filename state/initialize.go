package state

import (
	"time"
)

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start: time.Now(),
		// Simple frame with a rule, used when an article has no cover image
		// and fallback cover generation is enabled. Title text is stamped on
		// top of the raster later.
		DefaultCoverSVG: []byte(`<svg viewBox="0 0 1200 800" xmlns="http://www.w3.org/2000/svg">
  <rect x="0" y="0" width="1200" height="800" fill="#f5f5f7"/>
  <rect x="40" y="40" width="1120" height="720" fill="none" stroke="#1d1d1f" stroke-width="3"/>
  <line x1="120" y1="400" x2="1080" y2="400" stroke="#1d1d1f" stroke-width="2"/>
  <circle cx="600" cy="400" r="14" fill="none" stroke="#1d1d1f" stroke-width="2"/>
</svg>`),
	}
}
