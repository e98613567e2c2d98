package model

import (
	"math"
	"strings"
)

// Display fit modes a playlist can request from the device.
const (
	FitContain  = "CONTAIN"
	FitCover    = "COVER"
	FitStretch  = "STRETCH"
	FitOriginal = "ORIGINAL"
)

// Slide transition types.
const (
	TransitionNone = "NONE"
	TransitionFade = "FADE"
)

const (
	maxTransitionMs     = 10000
	defaultTransitionMs = 1000
)

// NormalizeFitMode maps arbitrary input onto a known fit mode. Matching is
// case-insensitive; anything unrecognized (including absent input) falls back
// to CONTAIN.
func NormalizeFitMode(raw *string) string {
	if raw == nil {
		return FitContain
	}
	switch strings.ToUpper(*raw) {
	case FitContain, FitCover, FitStretch, FitOriginal:
		return strings.ToUpper(*raw)
	default:
		return FitContain
	}
}

// NormalizeTransition maps arbitrary transition input onto a known type and a
// duration in milliseconds. Unrecognized types fall back to NONE. The duration
// only matters for FADE: it defaults to 1000ms when unset or non-finite and is
// clamped to [0, 10000]. NONE always carries a zero duration.
func NormalizeTransition(rawType *string, rawMs *float64) (string, int) {
	transitionType := TransitionNone
	if rawType != nil && strings.EqualFold(*rawType, TransitionFade) {
		transitionType = TransitionFade
	}

	if transitionType != TransitionFade {
		return transitionType, 0
	}

	ms := float64(defaultTransitionMs)
	if rawMs != nil && !math.IsNaN(*rawMs) && !math.IsInf(*rawMs, 0) {
		ms = *rawMs
	}
	if ms < 0 {
		ms = 0
	}
	if ms > maxTransitionMs {
		ms = maxTransitionMs
	}
	return transitionType, int(ms)
}
