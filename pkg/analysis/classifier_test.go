package analysis

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, r, g, b, a byte) PixelBuffer {
	pix := make([]byte, 0, w*h*4)
	for i := 0; i < w*h; i++ {
		pix = append(pix, r, g, b, a)
	}
	return PixelBuffer{Pix: pix, Width: w, Height: h}
}

func TestClassify_Transparent(t *testing.T) {
	res, err := Classify(solid(8, 8, 0, 255, 0, 19))
	require.NoError(t, err)

	assert.Equal(t, 0.0, res.GreenRatio)
	assert.Equal(t, 0.0, res.DryRatio)
	assert.Equal(t, Stressed, res.HealthCondition)
	assert.Equal(t, Seedling, res.GrowthStage)
}

func TestClassify_AllGreen(t *testing.T) {
	res, err := Classify(solid(4, 3, 0, 255, 0, 255))
	require.NoError(t, err)

	assert.Equal(t, 1.0, res.GreenRatio)
	assert.Equal(t, 0.0, res.DryRatio)
	assert.Equal(t, Healthy, res.HealthCondition)
	assert.Equal(t, Vegetative, res.GrowthStage)
	assert.NotNil(t, res.PossibleDiseases)
	assert.Empty(t, res.PossibleDiseases)
	assert.Equal(t, UnknownPlant, res.PlantName, "g=1.0 must not index past the table")
}

func TestClassify_AllDry(t *testing.T) {
	res, err := Classify(solid(5, 5, 200, 50, 50, 255))
	require.NoError(t, err)

	assert.Equal(t, 0.0, res.GreenRatio)
	assert.Equal(t, 1.0, res.DryRatio)
	assert.Equal(t, Stressed, res.HealthCondition)
	assert.Contains(t, res.PossibleDiseases, DiseaseDrought)
	assert.Contains(t, res.PossibleDiseases, DiseaseNutrient)
	assert.NotContains(t, res.PossibleDiseases, DiseaseLeafScorch)
	assert.Equal(t, "Maize (placeholder)", res.PlantName)
}

func TestClassify_Idempotent(t *testing.T) {
	buf := solid(3, 3, 10, 120, 30, 255)
	buf.Pix[0], buf.Pix[1] = 220, 40

	a, err := Classify(buf)
	require.NoError(t, err)
	b, err := Classify(buf)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestClassify_InvalidDimensions(t *testing.T) {
	cases := []PixelBuffer{
		{Width: 0, Height: 4, Pix: make([]byte, 16)},
		{Width: 4, Height: 0, Pix: make([]byte, 16)},
		{Width: -1, Height: 1},
		{Width: 2, Height: 2, Pix: make([]byte, 15)},
	}
	for _, c := range cases {
		_, err := Classify(c)
		assert.ErrorIs(t, err, ErrInvalidDimensions)
	}
}

func TestCoverage_IgnoresTransparentInDenominator(t *testing.T) {
	// 1 green, 1 dry, 2 transparent, 1 neutral grey
	pix := []byte{
		0, 200, 0, 255,
		200, 0, 0, 255,
		0, 200, 0, 0,
		200, 0, 0, 10,
		90, 90, 90, 255,
	}
	m, err := Coverage(PixelBuffer{Pix: pix, Width: 5, Height: 1})
	require.NoError(t, err)
	assert.InDelta(t, 1.0/3, m.GreenRatio, 1e-12)
	assert.InDelta(t, 1.0/3, m.DryRatio, 1e-12)
}

func TestCoverage_PredicateEdges(t *testing.T) {
	// G must exceed 60 and R must exceed 80; ties with other channels do not count.
	pix := []byte{
		0, 60, 0, 255,
		80, 0, 0, 255,
		0, 61, 61, 255,
		81, 81, 0, 255,
	}
	m, err := Coverage(PixelBuffer{Pix: pix, Width: 2, Height: 2})
	require.NoError(t, err)
	assert.Equal(t, 0.0, m.GreenRatio)
	assert.Equal(t, 0.0, m.DryRatio)
}

func TestInterpret_Thresholds(t *testing.T) {
	cases := []struct {
		name     string
		g, d     float64
		health   HealthCondition
		stage    GrowthStage
		diseases []string
		plant    string
	}{
		{"healthy edge", 0.6, 0.19, Healthy, Flowering, []string{}, "Soybean (placeholder)"},
		{"dry blocks healthy", 0.7, 0.2, Moderate, Vegetative, []string{}, "Soybean (placeholder)"},
		{"moderate edge", 0.35, 0.34, Moderate, Seedling, []string{DiseaseLeafScorch}, "Wheat (placeholder)"},
		{"maturation", 0.4, 0.1, Moderate, Maturation, []string{}, "Wheat (placeholder)"},
		{"stressed", 0.34, 0.5, Stressed, Seedling, []string{DiseaseDrought, DiseaseLeafScorch}, "Wheat (placeholder)"},
		{"sparse", 0.1, 0.0, Stressed, Seedling, []string{DiseaseNutrient}, "Maize (placeholder)"},
		{"tomato", 0.99, 0.0, Healthy, Vegetative, []string{}, "Tomato (placeholder)"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := Interpret(CoverageMetrics{GreenRatio: tc.g, DryRatio: tc.d})
			assert.Equal(t, tc.health, res.HealthCondition)
			assert.Equal(t, tc.stage, res.GrowthStage)
			assert.Equal(t, tc.diseases, res.PossibleDiseases)
			assert.Equal(t, tc.plant, res.PlantName)
		})
	}
}

func TestEvaluateStress(t *testing.T) {
	d := EvaluateStress(0.25, 0.5)
	assert.True(t, d.Raise)
	assert.Equal(t, "medium", d.Severity)
	assert.Equal(t, 0.95, d.Confidence)
	assert.Equal(t, 0.5, d.AffectedArea)

	d = EvaluateStress(0.15, 0.1)
	assert.True(t, d.Raise)
	assert.Equal(t, "high", d.Severity)
	assert.InDelta(t, 0.95, d.Confidence, 1e-12)

	d = EvaluateStress(0.5, 0.7)
	assert.Equal(t, "high", d.Severity)

	d = EvaluateStress(0.8, 0.42)
	assert.True(t, d.Raise)
	assert.InDelta(t, 0.62, d.Confidence, 1e-9)

	assert.Equal(t, StressDecision{}, EvaluateStress(0.9, 0.0))

	assert.False(t, EvaluateStress(0.3, 0.4).Raise)
}

func TestRoundIndex(t *testing.T) {
	assert.Equal(t, 0.333, RoundIndex(1.0/3))
	assert.Equal(t, 0.667, RoundIndex(2.0/3))
}

func encodePNG(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecode_DownscalesLongSide(t *testing.T) {
	data := encodePNG(t, 1024, 256, color.NRGBA{R: 0, G: 255, B: 0, A: 255})

	buf, format, err := Decode(context.Background(), bytes.NewReader(data), DefaultMaxSide)
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 512, buf.Width)
	assert.Equal(t, 128, buf.Height)

	res, err := Classify(buf)
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.GreenRatio)
}

func TestDecode_SmallImageUntouched(t *testing.T) {
	data := encodePNG(t, 10, 20, color.NRGBA{R: 200, G: 50, B: 50, A: 255})

	buf, _, err := Decode(context.Background(), bytes.NewReader(data), DefaultMaxSide)
	require.NoError(t, err)
	assert.Equal(t, 10, buf.Width)
	assert.Equal(t, 20, buf.Height)
	assert.Len(t, buf.Pix, 10*20*4)
}

func TestDecode_Garbage(t *testing.T) {
	_, _, err := Decode(context.Background(), bytes.NewReader([]byte("not an image")), DefaultMaxSide)
	require.Error(t, err)
}

func TestDecode_HonorsDeadline(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, _, err := Decode(ctx, pr, DefaultMaxSide)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestScaledSize(t *testing.T) {
	w, h := scaledSize(2000, 1000, 512)
	assert.Equal(t, 512, w)
	assert.Equal(t, 256, h)

	w, h = scaledSize(300, 3000, 512)
	assert.Equal(t, 51, w)
	assert.Equal(t, 512, h)

	w, h = scaledSize(5000, 1, 512)
	assert.Equal(t, 512, w)
	assert.Equal(t, 1, h)

	w, h = scaledSize(800, 600, 0)
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)
}
