package model

import (
	"strings"

	"github.com/oneconcern/datagit/pkg/errors"
)

// LogOrder is the order in which a history log yields commits
type LogOrder uint8

const (
	// Topological order yields children before their parents (default)
	Topological LogOrder = iota
	// Time order yields the most recent commits first
	Time
	// Reverse order yields parents before their children
	Reverse
)

// ErrInvalidOrder is returned when parsing an unknown log order
var ErrInvalidOrder = errors.New("invalid log order")

func (o LogOrder) String() string {
	switch o {
	case Topological:
		return "topological"
	case Time:
		return "time"
	case Reverse:
		return "reverse"
	default:
		return "unknown"
	}
}

// ParseLogOrder reads a log order name. The empty string is Topological.
func ParseLogOrder(s string) (LogOrder, error) {
	switch strings.ToLower(s) {
	case "", "topo", "topological":
		return Topological, nil
	case "time":
		return Time, nil
	case "reverse":
		return Reverse, nil
	default:
		return Topological, ErrInvalidOrder.Wrapf("%q (expected one of topological, time, reverse)", s)
	}
}
