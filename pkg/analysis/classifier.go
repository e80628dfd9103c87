// Package analysis holds the plant image coverage heuristic shared by the
// upload API and the CLI. Everything here is pure: no I/O, no package state.
package analysis

import (
	"errors"
	"math"
)

var ErrInvalidDimensions = errors.New("invalid image dimensions")

// Pixels whose alpha is below this are background and excluded from every ratio.
const alphaCutoff = 20

type HealthCondition string

const (
	Healthy  HealthCondition = "Healthy"
	Moderate HealthCondition = "Moderate"
	Stressed HealthCondition = "Stressed"
)

type GrowthStage string

const (
	Seedling   GrowthStage = "Seedling"
	Vegetative GrowthStage = "Vegetative"
	Flowering  GrowthStage = "Flowering"
	Maturation GrowthStage = "Maturation"
)

const (
	DiseaseDrought    = "Drought Stress"
	DiseaseNutrient   = "Nutrient Deficiency"
	DiseaseLeafScorch = "Leaf Scorch (placeholder)"
	UnknownPlant      = "Unknown (placeholder)"
)

var plantNames = [...]string{
	"Maize (placeholder)",
	"Wheat (placeholder)",
	"Soybean (placeholder)",
	"Tomato (placeholder)",
}

// PixelBuffer is a decoded raster: row-major RGBA quadruples.
type PixelBuffer struct {
	Pix    []byte
	Width  int
	Height int
}

type CoverageMetrics struct {
	GreenRatio float64 `json:"green_ratio"`
	DryRatio   float64 `json:"dry_ratio"`
}

type Result struct {
	GreenRatio       float64         `json:"green_ratio"`
	DryRatio         float64         `json:"dry_ratio"`
	HealthCondition  HealthCondition `json:"health_condition"`
	GrowthStage      GrowthStage     `json:"growth_stage"`
	PossibleDiseases []string        `json:"possible_diseases"`
	PlantName        string          `json:"plant_name"`
}

// Coverage counts greenish and dryish pixels over the opaque part of buf.
// The two predicates are independent counters, not a partition.
func Coverage(buf PixelBuffer) (CoverageMetrics, error) {
	if buf.Width <= 0 || buf.Height <= 0 {
		return CoverageMetrics{}, ErrInvalidDimensions
	}
	n := buf.Width * buf.Height * 4
	if len(buf.Pix) < n {
		return CoverageMetrics{}, ErrInvalidDimensions
	}

	var greenish, dryish, total int
	for i := 0; i < n; i += 4 {
		r, g, b, a := buf.Pix[i], buf.Pix[i+1], buf.Pix[i+2], buf.Pix[i+3]
		if a < alphaCutoff {
			continue
		}
		total++
		if g > r && g > b && g > 60 {
			greenish++
		}
		if r > g && r > b && r > 80 {
			dryish++
		}
	}

	if total == 0 {
		return CoverageMetrics{}, nil
	}
	return CoverageMetrics{
		GreenRatio: float64(greenish) / float64(total),
		DryRatio:   float64(dryish) / float64(total),
	}, nil
}

// Interpret maps coverage ratios onto the canned labels. Thresholds are
// evaluated in order and the first match wins.
func Interpret(m CoverageMetrics) Result {
	g, d := m.GreenRatio, m.DryRatio
	return Result{
		GreenRatio:       g,
		DryRatio:         d,
		HealthCondition:  healthOf(g, d),
		GrowthStage:      stageOf(g),
		PossibleDiseases: diseasesOf(g, d),
		PlantName:        plantNameOf(g),
	}
}

// Classify runs Coverage then Interpret.
func Classify(buf PixelBuffer) (Result, error) {
	m, err := Coverage(buf)
	if err != nil {
		return Result{}, err
	}
	return Interpret(m), nil
}

func healthOf(g, d float64) HealthCondition {
	switch {
	case g >= 0.6 && d < 0.2:
		return Healthy
	case g >= 0.35 && d < 0.35:
		return Moderate
	default:
		return Stressed
	}
}

func stageOf(g float64) GrowthStage {
	switch {
	case g > 0.65:
		return Vegetative
	case g > 0.5:
		return Flowering
	case g > 0.35:
		return Maturation
	default:
		return Seedling
	}
}

func diseasesOf(g, d float64) []string {
	out := []string{}
	if d > 0.35 {
		out = append(out, DiseaseDrought)
	}
	if g < 0.3 {
		out = append(out, DiseaseNutrient)
	}
	if g >= 0.3 && g < 0.5 && d >= 0.2 {
		out = append(out, DiseaseLeafScorch)
	}
	return out
}

// plantNameOf indexes the lookup table by floor(g*4). g == 1.0 lands on
// index 4, which is outside the table and falls through to UnknownPlant.
func plantNameOf(g float64) string {
	idx := int(math.Floor(g * float64(len(plantNames))))
	if idx < 0 || idx >= len(plantNames) {
		return UnknownPlant
	}
	return plantNames[idx]
}
