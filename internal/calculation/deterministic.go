package calculation

import "time"

// nowFunc is the as-of date used when a run is not given one.
var nowFunc = time.Now

// SetNowFunc overrides the clock (use only in tests).
func SetNowFunc(f func() time.Time) { nowFunc = f }

// seedFunc picks the Monte Carlo seed when a plan does not fix one.
var seedFunc = func() int64 { return time.Now().UnixNano() }

// SetSeedFunc overrides the seed provider (use only in tests).
func SetSeedFunc(f func() int64) { seedFunc = f }
