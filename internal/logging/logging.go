// Package logging builds the process-wide zap logger.
package logging

import "go.uber.org/zap"

// New builds a logger for the given deployment environment at the given
// level. "production" gets the JSON encoder, everything else the
// development console encoder; an empty level means info. Output goes to
// stderr either way, keeping stdout free for data.
func New(env, level string) (*zap.Logger, error) {
	if level == "" {
		level = "info"
	}
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}

	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = lvl
	return cfg.Build()
}
