package dem

import "github.com/sirupsen/logrus"

// builderConfig holds the resolved configuration for a Builder, assembled
// by applying BuilderOption values left to right over sane defaults.
type builderConfig struct {
	logger *logrus.Logger
}

// BuilderOption customizes a Builder at construction time. Per lvlath's
// 99-rules, option constructors validate and panic on meaningless input;
// Builder's own methods never panic.
type BuilderOption func(*builderConfig)

// WithLogger attaches the logrus.Logger used for Discretize's connectivity
// diagnostic (unreachable-detector warnings). Panics on nil; the default
// is logrus.StandardLogger().
func WithLogger(l *logrus.Logger) BuilderOption {
	if l == nil {
		panic("dem: WithLogger(nil)")
	}
	return func(c *builderConfig) {
		c.logger = l
	}
}

func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{logger: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
