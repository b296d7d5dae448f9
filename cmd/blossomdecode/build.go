package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/blossomdecode/sparseblossom/dem"
	"github.com/blossomdecode/sparseblossom/graph"
)

const defaultResolution = 1000

// buildGraph reads the DEM file at path, feeds every instruction to a
// dem.Builder, and discretizes the result at rc's resolution. Shared by
// the decode and validate subcommands.
func buildGraph(rc *runContext, demPath string) (*graph.MatchingGraph, dem.Normalizer, error) {
	f, err := os.Open(demPath)
	if err != nil {
		return nil, dem.Normalizer{}, errors.Wrapf(err, "blossomdecode: opening %q", demPath)
	}
	defer f.Close()

	builder := dem.NewBuilder(dem.WithLogger(loggerFor(rc)))
	if err := loadMechanisms(builder, f); err != nil {
		return nil, dem.Normalizer{}, err
	}

	levels := rc.resolution
	if levels <= 0 {
		levels = defaultResolution
	}
	g, norm, err := builder.Discretize(levels)
	if err != nil {
		return nil, dem.Normalizer{}, errors.Wrap(err, "blossomdecode: discretize")
	}
	return g, norm, nil
}

// loggerFor adapts a runContext's logrus.Entry into the *logrus.Logger
// dem.WithLogger expects, preserving the run_id field via a dedicated
// hook rather than losing it.
func loggerFor(rc *runContext) *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(rc.log.Logger.GetLevel())
	logger.AddHook(runIDHook{entry: rc.log})
	return logger
}

// runIDHook copies the run_id field from the owning runContext's entry
// onto every record the adapted logger emits.
type runIDHook struct{ entry *logrus.Entry }

func (h runIDHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h runIDHook) Fire(e *logrus.Entry) error {
	for k, v := range h.entry.Data {
		if _, exists := e.Data[k]; !exists {
			e.Data[k] = v
		}
	}
	return nil
}
