package img2ascii

import (
	"math"
	"sort"
)

// A Metric scores how well a glyph's ink mask matches a tile. Lower is
// better; 0 is a perfect match. Implementations must be deterministic:
// identical inputs always produce identical scores.
type Metric interface {
	Name() string
	Score(t *Tile, g *Glyph) float64
}

// metrics is the closed set of similarity metrics, keyed by the names
// the configuration surface accepts. Adding a metric means adding an
// entry here; nothing resolves metric names anywhere else.
var metrics = map[string]Metric{
	"fill": FillMetric{},
	"grad": GradMetric{},
}

// GetMetric resolves a metric by name.
func GetMetric(name string) (Metric, error) {
	m, ok := metrics[name]
	if !ok {
		return nil, &UnknownMetricError{Name: name}
	}
	return m, nil
}

// MetricNames returns the registered metric names, sorted.
func MetricNames() []string {
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FillMetric compares raw ink coverage: the mean absolute difference
// between the tile's luminance and the glyph's ink field. Dense glyphs
// match dark tiles, empty glyphs match bright ones.
type FillMetric struct{}

func (FillMetric) Name() string { return "fill" }

func (FillMetric) Score(t *Tile, g *Glyph) float64 {
	var sum float64
	for i, l := range t.Lum {
		sum += math.Abs(l - g.lum[i])
	}
	return sum / float64(len(t.Lum))
}

// GradMetric blends the fill comparison with gradient alignment: glyphs
// whose ink edges run in the same direction as the tile's luminance
// edges score better. When the tile carries no gradient fields (edge
// detection off) it reduces to the plain fill comparison, so flat
// regions still match on brightness.
type GradMetric struct{}

func (GradMetric) Name() string { return "grad" }

// sobelRange scales Sobel output back into the luminance range; the 3x3
// Sobel kernel sums to 4x the input step.
const sobelRange = 4.0

func (GradMetric) Score(t *Tile, g *Glyph) float64 {
	fill := FillMetric{}.Score(t, g)
	if t.Gx == nil {
		return fill
	}

	var sum float64
	for i := range t.Gx {
		dx := t.Gx[i] - g.gx[i]
		dy := t.Gy[i] - g.gy[i]
		sum += math.Sqrt(dx*dx + dy*dy)
	}
	grad := sum / float64(len(t.Gx)) / sobelRange

	return 0.5*fill + 0.5*grad
}
