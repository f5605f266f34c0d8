package model

import (
	"errors"
	"fmt"
)

// ErrInvalidLevel is returned when a raw string is not a known parental control level.
var ErrInvalidLevel = errors.New("invalid parental control level")

// Level defines a parental control classification.
type Level string

// Known levels, from least to most restrictive.
const (
	LevelU   = Level("U")
	LevelPG  = Level("PG")
	LevelA12 = Level("A12")
	LevelA15 = Level("A15")
	LevelA18 = Level("A18")
)

var ordinals = map[Level]int{
	LevelU:   0,
	LevelPG:  1,
	LevelA12: 2,
	LevelA15: 3,
	LevelA18: 4,
}

// Levels returns all known levels ordered from least to most restrictive.
func Levels() []Level {
	return []Level{LevelU, LevelPG, LevelA12, LevelA15, LevelA18}
}

// IsValidLevel reports whether raw exactly matches a known level name.
// Matching is case-sensitive: "u" is not a valid level.
func IsValidLevel(raw string) bool {
	_, ok := ordinals[Level(raw)]
	return ok
}

// LevelOf returns the level named by raw or ErrInvalidLevel.
func LevelOf(raw string) (Level, error) {
	if !IsValidLevel(raw) {
		return "", fmt.Errorf("%w: %q", ErrInvalidLevel, raw)
	}
	return Level(raw), nil
}

// Ordinal returns the position of the level in the restrictiveness ordering.
// Smaller values are less restrictive. Unknown levels return -1.
func Ordinal(l Level) int {
	o, ok := ordinals[l]
	if !ok {
		return -1
	}
	return o
}

// Permits reports whether a customer allowed up to l may watch content rated content.
func (l Level) Permits(content Level) bool {
	return Ordinal(content) <= Ordinal(l)
}

func (l Level) String() string {
	return string(l)
}

// Decision records the outcome of a single parental control check.
type Decision struct {
	CustomerLevel Level `json:"customerLevel"`
	MovieLevel    Level `json:"movieLevel"`
	Allowed       bool  `json:"allowed"`
}
