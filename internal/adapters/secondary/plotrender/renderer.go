package plotrender

import (
	"fmt"
	"image/color"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sync"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"salary-bias-service/internal/core/domain"
)

var (
	colorRed  = color.NRGBA{R: 0xff, G: 0x4c, B: 0x4c, A: 0xd9}
	colorBlue = color.NRGBA{R: 0x4d, G: 0xa6, B: 0xff, A: 0xd9}
	colorGrid = color.NRGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xe6}
)

const gridLines = 5

// Renderer draws abstract comparison scatter plots: no tick labels, shared
// axis limits, point area proportional to income.
type Renderer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRenderer(rng *rand.Rand) *Renderer {
	return &Renderer{rng: rng}
}

type bounds struct {
	xMin, xMax, yMin, yMax float64
}

// Render writes one PNG to destination. The file appears only once fully
// written.
func (r *Renderer) Render(male, female []domain.EmployeeRecord, destination string, opts domain.RenderOptions) error {
	if len(male) == 0 || len(female) == 0 {
		return fmt.Errorf("%w: render needs both groups, have %d male and %d female",
			domain.ErrMalformedInput, len(male), len(female))
	}

	b := sharedBounds(male, female, opts)

	var row []*plot.Plot
	switch opts.Layout {
	case domain.LayoutOverlay:
		p := newPanel("Group Red vs Group Blue"+opts.TitleSuffix, b)
		if _, err := r.addGroup(p, male, colorRed, opts); err != nil {
			return err
		}
		if _, err := r.addGroup(p, female, colorBlue, opts); err != nil {
			return err
		}
		row = []*plot.Plot{p}
	default:
		left := newPanel("Group Red"+opts.TitleSuffix, b)
		if _, err := r.addGroup(left, male, colorRed, opts); err != nil {
			return err
		}
		right := newPanel("Group Blue"+opts.TitleSuffix, b)
		if _, err := r.addGroup(right, female, colorBlue, opts); err != nil {
			return err
		}
		row = []*plot.Plot{left, right}
	}

	for _, p := range row {
		p.X.Min, p.X.Max = b.xMin, b.xMax
		p.Y.Min, p.Y.Max = b.yMin, b.yMax
	}

	img := vgimg.NewWith(
		vgimg.UseWH(vg.Length(opts.WidthInch)*vg.Inch, vg.Length(opts.HeightInch)*vg.Inch),
		vgimg.UseDPI(opts.DPI),
	)
	dc := draw.New(img)
	dc.SetColor(color.White)
	dc.Fill(dc.Rectangle.Path())

	tiles := draw.Tiles{
		Rows:      1,
		Cols:      len(row),
		PadX:      vg.Inch,
		PadTop:    vg.Points(10),
		PadBottom: vg.Points(10),
		PadLeft:   vg.Points(10),
		PadRight:  vg.Points(10),
	}
	canvases := plot.Align([][]*plot.Plot{row}, tiles, dc)
	for j, p := range row {
		p.Draw(canvases[0][j])
	}

	return writeAtomic(destination, func(f *os.File) error {
		_, err := vgimg.PngCanvas{Canvas: img}.WriteTo(f)
		return err
	})
}

func newPanel(title string, b bounds) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(25)
	p.Title.Padding = vg.Points(10)
	p.BackgroundColor = color.White
	p.HideAxes()

	for i := 0; i < gridLines; i++ {
		y := b.yMin + float64(i)*(b.yMax-b.yMin)/float64(gridLines-1)
		l, err := plotter.NewLine(plotter.XYs{{X: b.xMin, Y: y}, {X: b.xMax, Y: y}})
		if err != nil {
			continue
		}
		l.LineStyle = draw.LineStyle{
			Color:  colorGrid,
			Width:  vg.Points(1),
			Dashes: []vg.Length{vg.Points(6), vg.Points(4)},
		}
		p.Add(l)
	}
	return p
}

// addGroup adds one scatter of records to p: x is experience, y is age plus
// jitter, marker area follows opts.PointSize.
func (r *Renderer) addGroup(p *plot.Plot, records []domain.EmployeeRecord, c color.Color, opts domain.RenderOptions) (*plotter.Scatter, error) {
	xys := make(plotter.XYs, len(records))
	radii := make([]vg.Length, len(records))
	for i, rec := range records {
		xys[i].X = float64(rec.TotalWorkingYears)
		xys[i].Y = float64(rec.Age) + r.jitter(opts.Jitter)
		// marker size is an area in points squared
		radii[i] = vg.Points(math.Sqrt(opts.PointSize(rec.MonthlyIncome)) / 2)
	}

	sc, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedInput, err)
	}
	sc.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		return draw.GlyphStyle{Color: c, Radius: radii[i], Shape: draw.CircleGlyph{}}
	}
	p.Add(sc)
	return sc, nil
}

func (r *Renderer) jitter(width float64) float64 {
	if width <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return (r.rng.Float64()*2 - 1) * width
}

func sharedBounds(male, female []domain.EmployeeRecord, opts domain.RenderOptions) bounds {
	b := bounds{
		xMin: math.Inf(1), xMax: math.Inf(-1),
		yMin: math.Inf(1), yMax: math.Inf(-1),
	}
	for _, group := range [][]domain.EmployeeRecord{male, female} {
		for _, rec := range group {
			x, y := float64(rec.TotalWorkingYears), float64(rec.Age)
			b.xMin = math.Min(b.xMin, x)
			b.xMax = math.Max(b.xMax, x)
			b.yMin = math.Min(b.yMin, y)
			b.yMax = math.Max(b.yMax, y)
		}
	}
	b.xMin -= opts.MarginX
	b.xMax += opts.MarginX
	b.yMin -= opts.MarginY
	b.yMax += opts.MarginY
	return b
}

func writeAtomic(destination string, write func(*os.File) error) error {
	dir := filepath.Dir(destination)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create image dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".render-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp image: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("encode image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp image: %w", err)
	}
	if err := os.Rename(tmp.Name(), destination); err != nil {
		return fmt.Errorf("save image: %w", err)
	}
	return nil
}
