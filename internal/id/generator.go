package id

import (
	"time"

	fid "github.com/amterp/flexid"
)

var generator *fid.Generator

func init() {
	epoch := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	config := fid.NewConfig().
		WithEpoch(epoch).
		WithTickSize(10 * time.Millisecond).
		WithNumRandomChars(3)

	generator = fid.MustNewGenerator(config)
}

// RunPrefix marks ids that tag one generate run in log output.
const RunPrefix = "run_"

// NewRunID returns a new time-ordered run id.
func NewRunID() string {
	return RunPrefix + generator.MustGenerate()
}
