// Package trainingload scores runs by heart rate (TRIMP) and smooths daily scores into
// fitness (CTL), fatigue (ATL) and form (TSB).
package trainingload

import (
	"math"
	"strings"

	"github.com/eswan18/fitness-api-sub000/internal/apperr"
	"github.com/eswan18/fitness-api-sub000/internal/runs"
)

type Sex string

const (
	Male   Sex = "M"
	Female Sex = "F"
)

func ParseSex(s string) (Sex, error) {
	switch Sex(strings.ToUpper(strings.TrimSpace(s))) {
	case Male:
		return Male, nil
	case Female:
		return Female, nil
	}
	return "", apperr.Validation("sex", "must be M or F, got %q", s)
}

// Params describe the athlete the heart rates belong to.
type Params struct {
	MaxHR     float64
	RestingHR float64
	Sex       Sex
}

func (p Params) Validate() error {
	if p.MaxHR <= p.RestingHR {
		return apperr.Validation("max_hr", "max heart rate %.0f must be above resting heart rate %.0f", p.MaxHR, p.RestingHR)
	}
	if p.RestingHR < 0 {
		return apperr.Validation("resting_hr", "must not be negative")
	}
	if p.Sex != Male && p.Sex != Female {
		return apperr.Validation("sex", "must be M or F, got %q", p.Sex)
	}
	return nil
}

// TRIMP is the Banister training impulse of a run:
// minutes * hrRel * y, with hrRel the heart rate reserve fraction clamped to [0, 1]
// and y = 0.64e^(1.92 hrRel) for men, 0.86e^(1.67 hrRel) for women.
func TRIMP(run runs.Run, params Params) (float64, error) {
	if err := params.Validate(); err != nil {
		return 0, err
	}
	if run.AvgHeartRate == nil {
		return 0, apperr.Computation("run %s has no average heart rate", run.ID)
	}
	return trimp(*run.AvgHeartRate, run.Duration, params), nil
}

func trimp(avgHR, durationSeconds float64, params Params) float64 {
	hrRel := (avgHR - params.RestingHR) / (params.MaxHR - params.RestingHR)
	hrRel = math.Max(0, math.Min(1, hrRel))

	var y float64
	switch params.Sex {
	case Female:
		y = 0.86 * math.Exp(1.67*hrRel)
	default:
		y = 0.64 * math.Exp(1.92*hrRel)
	}

	return durationSeconds / 60 * hrRel * y
}
