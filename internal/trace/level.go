package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff    Level = iota // no tracing
	LevelError               // kept in the ring, dumped on failures
	LevelPhase               // driver commands and analysis passes
	LevelDetail              // plus one span per function
	LevelDebug               // plus statement-level points
)

var levelNames = [...]string{
	LevelOff:    "off",
	LevelError:  "error",
	LevelPhase:  "phase",
	LevelDetail: "detail",
	LevelDebug:  "debug",
}

// deepest is the innermost scope each level emits; zero emits nothing.
var deepest = [...]Scope{
	LevelPhase:  ScopePass,
	LevelDetail: ScopeFunc,
	LevelDebug:  ScopeNode,
}

func (l Level) String() string { return nameAt(levelNames[:], int(l)) }

// ParseLevel reads a level name; the empty string is LevelOff.
func ParseLevel(s string) (Level, error) {
	if s == "" {
		return LevelOff, nil
	}
	i, err := indexOfName("trace level", levelNames[:], s)
	return Level(i), err
}

// ShouldEmit reports whether events of scope pass at this level.
func (l Level) ShouldEmit(scope Scope) bool {
	return int(l) < len(deepest) && scope <= deepest[l]
}

func nameAt(names []string, i int) string {
	if i < 0 || i >= len(names) || names[i] == "" {
		return "unknown"
	}
	return names[i]
}

// indexOfName finds s (case-insensitively) among the non-empty names.
func indexOfName(what string, names []string, s string) (int, error) {
	var valid []string
	for i, n := range names {
		if n == "" {
			continue
		}
		if strings.EqualFold(n, s) {
			return i, nil
		}
		valid = append(valid, n)
	}
	return 0, fmt.Errorf("invalid %s: %q (expected: %s)", what, s, strings.Join(valid, "|"))
}
