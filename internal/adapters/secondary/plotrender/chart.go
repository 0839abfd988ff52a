package plotrender

import (
	"fmt"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"salary-bias-service/internal/core/domain"
)

// RenderPredictions draws one bar per stored evaluation.
func (r *Renderer) RenderPredictions(predictions []domain.ModelPrediction, destination string) error {
	if len(predictions) == 0 {
		return fmt.Errorf("%w: no predictions to chart", domain.ErrMalformedInput)
	}

	values := make(plotter.Values, len(predictions))
	labels := make([]string, len(predictions))
	for i, p := range predictions {
		values[i] = p.MeanAbsoluteError
		labels[i] = fmt.Sprintf("%s on %s (%s)", p.ModelType, p.TestDataset, p.Phase)
	}

	p := plot.New()
	p.Title.Text = "Model Evaluation on Swapped Gender Datasets"
	p.Y.Label.Text = "Mean Absolute Error"

	bars, err := plotter.NewBarChart(values, vg.Points(30))
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMalformedInput, err)
	}
	bars.Color = colorBlue
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = 0.785
	p.X.Tick.Label.XAlign = -1

	canvasWidth := vg.Length(len(predictions)) * vg.Inch * 1.5
	if canvasWidth < 10*vg.Inch {
		canvasWidth = 10 * vg.Inch
	}
	return writeAtomic(destination, func(f *os.File) error {
		w, err := p.WriterTo(canvasWidth, 6*vg.Inch, "png")
		if err != nil {
			return err
		}
		_, err = w.WriteTo(f)
		return err
	})
}
