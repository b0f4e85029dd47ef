package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"

	"github.com/piwi3910/rodcut/internal/model"
)

// Vertical spacing between rod outlines in drawing units (mm).
const dxfRowSpacing = 40.0

// ExportDXF writes the cutting plan as a DXF drawing: one rod outline per
// recipe line on a "RODS" layer, with the cut positions marked as vertical
// lines on a "CUTS" layer. Rod height is nominal; only the lengthwise
// positions matter to the saw.
func ExportDXF(path string, job model.Job, trial model.Trial) error {
	if len(trial.Recipe.Lines) == 0 {
		return fmt.Errorf("no recipe lines to export")
	}

	d := dxf.NewDrawing()

	if _, err := d.AddLayer("RODS", dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add RODS layer: %w", err)
	}
	if _, err := d.AddLayer("CUTS", color.Red, dxf.DefaultLineType, false); err != nil {
		return fmt.Errorf("failed to add CUTS layer: %w", err)
	}

	const rodH = 20.0
	rodW := float64(job.RodLength)

	for i, ln := range trial.Recipe.Lines {
		y := -float64(i) * dxfRowSpacing

		if err := d.ChangeLayer("RODS"); err != nil {
			return err
		}
		d.Line(0, y, 0, rodW, y, 0)
		d.Line(rodW, y, 0, rodW, y+rodH, 0)
		d.Line(rodW, y+rodH, 0, 0, y+rodH, 0)
		d.Line(0, y+rodH, 0, 0, y, 0)

		if err := d.ChangeLayer("CUTS"); err != nil {
			return err
		}
		x := 0.0
		for p, count := range ln.Pattern.Counts {
			for c := 0; c < count; c++ {
				x += float64(job.PieceLengths[p])
				if x < rodW {
					d.Line(x, y, 0, x, y+rodH, 0)
				}
			}
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save DXF: %w", err)
	}
	return nil
}
