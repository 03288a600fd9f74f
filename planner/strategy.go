package planner

import (
	"errors"
	"fmt"
	"log"
)

// Strategy names accepted by New
const (
	StrategyGrid       = "grid"
	StrategyVisibility = "visibility"
	StrategyStraight   = "straight"
)

var ErrUnknownStrategy = errors.New("unknown planning strategy")

// New returns the planner registered under strategy. An empty name selects
// the grid planner. logger may be nil.
func New(strategy string, cfg Config, logger *log.Logger) (Planner, error) {
	switch strategy {
	case "", StrategyGrid:
		return &GridPlanner{Config: cfg, Logger: logger}, nil
	case StrategyVisibility:
		return &VisibilityPlanner{MaxWaypoints: cfg.MaxWaypoints, Logger: logger}, nil
	case StrategyStraight:
		return StraightPlanner{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
}
