package exporters

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// TextExporter writes a human-readable summary.
type TextExporter struct{}

func init() {
	RegisterExporter("text", &TextExporter{})
}

func (e *TextExporter) Export(report *Report, w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "Superstrate:\t%s\n", report.Superstrate)
	fmt.Fprintf(tw, "Substrate:\t%s\n", report.Substrate)
	fmt.Fprintf(tw, "Wavelength:\t%g m\n", report.Wavelength)
	fmt.Fprintf(tw, "AOI:\t%g deg\n", report.AOI)
	fmt.Fprintf(tw, "Layers:\t%d\n", len(report.Layers))
	fmt.Fprintf(tw, "Thickness:\t%.3f nm\n", report.Thickness)
	fmt.Fprintln(tw)

	if len(report.Layers) > 0 {
		fmt.Fprintln(tw, "#\tMaterial\tThickness (nm)\tn\tOptical (waves)")
		for _, row := range report.Layers {
			fmt.Fprintf(tw, "%d\t%s\t%.3f\t%.5f\t%.4f\n", row.Index, row.Material, row.Thickness, row.N, row.Optical)
		}
		fmt.Fprintln(tw)
	}

	fmt.Fprintf(tw, "Rs:\t%.10f\n", report.Rs)
	fmt.Fprintf(tw, "Rp:\t%.10f\n", report.Rp)
	fmt.Fprintf(tw, "Ts:\t%.4g ppm\n", (1-report.Rs)*1e6)
	fmt.Fprintf(tw, "Tp:\t%.4g ppm\n", (1-report.Rp)*1e6)

	if m := report.Mechanics; m != nil {
		fmt.Fprintln(tw)
		fmt.Fprintf(tw, "Y para:\t%.4e Pa\n", m.YPara)
		fmt.Fprintf(tw, "Y perp:\t%.4e Pa\n", m.YPerp)
		fmt.Fprintf(tw, "Phi para:\t%.4e\n", m.PhiPara)
		fmt.Fprintf(tw, "Phi perp:\t%.4e\n", m.PhiPerp)
		fmt.Fprintf(tw, "Sigma para:\t%.4f\n", m.SigmaPara)
		fmt.Fprintf(tw, "Sigma perp:\t%.4f\n", m.SigmaPerp)
	}

	if n := report.Noise; n != nil {
		fmt.Fprintln(tw)
		fmt.Fprintf(tw, "Effective phi:\t%.4e (beam %g m)\n", n.Phi, n.BeamSize)
		fmt.Fprintf(tw, "Brownian PSD:\t%.4e m^2/Hz at %g Hz, %g K\n", n.PSD, n.Frequency, n.Temperature)
	}

	return tw.Flush()
}
