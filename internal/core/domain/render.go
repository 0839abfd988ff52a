package domain

type PanelLayout string

const (
	LayoutSideBySide PanelLayout = "side_by_side"
	LayoutOverlay    PanelLayout = "overlay"
)

// RenderOptions parameterises the comparison scatter plot.
type RenderOptions struct {
	ScaleFactor float64
	MinSize     float64
	Jitter      float64
	MarginX     float64
	MarginY     float64
	Layout      PanelLayout
	WidthInch   float64
	HeightInch  float64
	DPI         int
	TitleSuffix string
}

func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		ScaleFactor: 1,
		MinSize:     350,
		Jitter:      0.3,
		MarginX:     10,
		MarginY:     5,
		Layout:      LayoutSideBySide,
		WidthInch:   22,
		HeightInch:  12,
		DPI:         96,
	}
}

// PointSize is the marker area for an income, never below MinSize.
func (o RenderOptions) PointSize(income float64) float64 {
	s := income * o.ScaleFactor
	if s < o.MinSize {
		return o.MinSize
	}
	return s
}
