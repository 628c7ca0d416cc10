package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/bibin-skaria/coatingtk/coating"
	"github.com/bibin-skaria/coatingtk/exporters"
	cerrors "github.com/bibin-skaria/coatingtk/internal/errors"
	"github.com/bibin-skaria/coatingtk/internal/logging"
	"github.com/bibin-skaria/coatingtk/layers"
	"github.com/bibin-skaria/coatingtk/materials"
)

var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		printError(cmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}

// printError reports err with its suggestion when it carries one.
func printError(w io.Writer, err error) {
	var coatingErr *cerrors.CoatingError
	if errors.As(err, &coatingErr) {
		fmt.Fprintf(w, "Error: %s\n", coatingErr.GetUserFriendlyMessage())
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}

type globalOptions struct {
	logLevel  string
	logFormat string
	materials []string
	catalog   string

	logger *logrus.Logger
}

// library builds the material library from every --materials file and the
// --catalog database, in that order.
func (g *globalOptions) library() (*materials.Library, error) {
	lib := materials.NewLibrary(g.logger)
	for _, path := range g.materials {
		if err := lib.LoadFile(path); err != nil {
			return nil, err
		}
	}

	if g.catalog != "" {
		catalog, err := materials.OpenCatalog(g.catalog, g.logger)
		if err != nil {
			return nil, err
		}
		defer catalog.Close()

		if err := catalog.LoadInto(lib); err != nil {
			return nil, err
		}
	}
	return lib, nil
}

func (g *globalOptions) loadCoating(path string) (*coating.Coating, error) {
	lib, err := g.library()
	if err != nil {
		return nil, err
	}
	return coating.Load(path, lib, coating.WithLogger(g.logger))
}

func newRootCommand() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "coatingtk",
		Short: "Coating toolkit - multilayer mirror coating design and analysis",
		Long: `coatingtk models multilayer dielectric mirror coatings. It computes the
reflectivity of a layer stack with the transfer-matrix method and the
effective mechanical properties and Brownian thermal noise of the coating.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.New(logging.Options{
				Level:  opts.logLevel,
				Format: logging.Format(opts.logFormat),
				Output: cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}
			opts.logger = logger
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "text", "Log format (text, json)")
	cmd.PersistentFlags().StringArrayVarP(&opts.materials, "materials", "m", []string{}, "Materials YAML file to load (repeatable)")
	cmd.PersistentFlags().StringVar(&opts.catalog, "catalog", "", "SQLite materials catalog to load")

	cmd.AddCommand(newInfoCommand(opts))
	cmd.AddCommand(newReflectivityCommand(opts))
	cmd.AddCommand(newMechanicsCommand(opts))
	cmd.AddCommand(newNoiseCommand(opts))
	cmd.AddCommand(newExportCommand(opts))
	cmd.AddCommand(newNewCommand(opts))
	cmd.AddCommand(newMaterialsCommand(opts))

	return cmd
}

func newInfoCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "info <design.yaml>",
		Short: "Show the layer structure of a coating design",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.loadCoating(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Superstrate: %s\n", c.Superstrate().Name)
			fmt.Fprintf(out, "Substrate: %s\n", c.Substrate().Name)
			fmt.Fprintf(out, "Lambda0: %g m\n", c.Lambda0)
			fmt.Fprintf(out, "AOI: %g deg\n", c.AOI)
			fmt.Fprintf(out, "Layers: %d\n", c.Len())
			fmt.Fprintf(out, "Thickness: %.3f nm\n", c.Thickness())

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for i, l := range c.Layers() {
				fmt.Fprintf(tw, "  %d\t%s\t%.3f nm\n", i, l.Material().Name, l.Thickness())
			}
			return tw.Flush()
		},
	}
}

// phaser is implemented by the transfer-matrix stack.
type phaser interface {
	Phase() (phis, phip, diff float64)
}

func newReflectivityCommand(opts *globalOptions) *cobra.Command {
	var (
		wavelength float64
		aoi        float64
		phase      bool
	)

	cmd := &cobra.Command{
		Use:   "reflectivity <design.yaml>",
		Short: "Compute s and p reflectivity",
		Long: `Compute the s and p power reflectivity of a coating design. The wavelength
defaults to the design's reference wavelength and the angle of incidence to
the design's AOI.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.loadCoating(args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("aoi") {
				aoi = c.AOI
			}

			rs, rp, err := c.R(wavelength, aoi)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Rs: %.10f\n", rs)
			fmt.Fprintf(out, "Rp: %.10f\n", rp)
			fmt.Fprintf(out, "Ts: %.4g ppm\n", (1-rs)*1e6)
			fmt.Fprintf(out, "Tp: %.4g ppm\n", (1-rp)*1e6)

			if phase {
				stack, err := c.CreateStack(wavelength, aoi)
				if err != nil {
					return err
				}
				p, ok := stack.(phaser)
				if !ok {
					return fmt.Errorf("optical engine does not report phase")
				}
				phis, phip, diff := p.Phase()
				fmt.Fprintf(out, "Phase s: %.6f rad\n", phis)
				fmt.Fprintf(out, "Phase p: %.6f rad\n", phip)
				fmt.Fprintf(out, "Phase difference: %.6f rad\n", diff)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&wavelength, "wavelength", 0, "Wavelength in m (default: design reference wavelength)")
	cmd.Flags().Float64Var(&aoi, "aoi", 0, "Angle of incidence in degrees (default: design AOI)")
	cmd.Flags().BoolVar(&phase, "phase", false, "Also print the reflection phase")

	return cmd
}

func newMechanicsCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "mechanics <design.yaml>",
		Short: "Compute the effective mechanical properties of the layer stack",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.loadCoating(args[0])
			if err != nil {
				return err
			}
			m, err := c.Mechanics()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Y para: %.6e Pa\n", m.YPara)
			fmt.Fprintf(out, "Y perp: %.6e Pa\n", m.YPerp)
			fmt.Fprintf(out, "Phi para: %.6e\n", m.PhiPara)
			fmt.Fprintf(out, "Phi perp: %.6e\n", m.PhiPerp)
			fmt.Fprintf(out, "Sigma para: %.6f\n", m.SigmaPara)
			fmt.Fprintf(out, "Sigma perp: %.6f\n", m.SigmaPerp)
			return nil
		},
	}
}

func newNoiseCommand(opts *globalOptions) *cobra.Command {
	var (
		frequency   float64
		beamSize    float64
		temperature float64
	)

	cmd := &cobra.Command{
		Use:   "noise <design.yaml>",
		Short: "Compute coating Brownian thermal noise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.loadCoating(args[0])
			if err != nil {
				return err
			}
			phi, err := c.Phi(beamSize)
			if err != nil {
				return err
			}
			psd, err := c.BrownianNoise(frequency, beamSize, temperature)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Effective phi: %.6e\n", phi)
			fmt.Fprintf(out, "PSD: %.6e m^2/Hz\n", psd)
			fmt.Fprintf(out, "ASD: %.6e m/rtHz\n", math.Sqrt(psd))
			return nil
		},
	}

	cmd.Flags().Float64Var(&frequency, "frequency", 100, "Frequency in Hz")
	cmd.Flags().Float64Var(&beamSize, "beam", 0.062, "Beam radius on the mirror in m")
	cmd.Flags().Float64Var(&temperature, "temperature", 290, "Temperature in K")

	return cmd
}

func newExportCommand(opts *globalOptions) *cobra.Command {
	var (
		format     string
		output     string
		reportOpts exporters.ReportOptions
	)

	cmd := &cobra.Command{
		Use:   "export <design.yaml>",
		Short: "Write a design report",
		Long: fmt.Sprintf(`Write a report of the design's layers, reflectivity, mechanics and noise.
Available formats: %s.`, strings.Join(exporters.ListExporters(), ", ")),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exporter, err := exporters.GetExporter(format)
			if err != nil {
				return err
			}
			c, err := opts.loadCoating(args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("aoi") {
				reportOpts.AOI = c.AOI
			}

			report, err := exporters.BuildReport(c, reportOpts)
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return cerrors.WrapError(err, "export")
				}
				defer f.Close()
				w = f
			}

			if err := exporter.Export(report, w); err != nil {
				return err
			}
			opts.logger.WithFields(logrus.Fields{"format": format, "output": output}).Debug("Exported report")
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().Float64Var(&reportOpts.Wavelength, "wavelength", 0, "Wavelength in m (default: design reference wavelength)")
	cmd.Flags().Float64Var(&reportOpts.AOI, "aoi", 0, "Angle of incidence in degrees (default: design AOI)")
	cmd.Flags().Float64Var(&reportOpts.Frequency, "frequency", 100, "Noise frequency in Hz (0 disables noise)")
	cmd.Flags().Float64Var(&reportOpts.BeamSize, "beam", 0.062, "Beam radius on the mirror in m")
	cmd.Flags().Float64Var(&reportOpts.Temperature, "temperature", 290, "Temperature in K")

	return cmd
}

func newNewCommand(opts *globalOptions) *cobra.Command {
	var (
		superstrate string
		substrate   string
		lambda0     float64
		aoi         float64
		wavelength  float64
		layerSpecs  []string
		capSpecs    []string
		repeat      int
		physical    bool
	)

	cmd := &cobra.Command{
		Use:   "new <design.yaml>",
		Short: "Create a coating design",
		Long: `Create a coating design from a repeated block of layers and write it to a
file. Layers are given as MATERIAL:THICKNESS. Thicknesses are optical
thicknesses in waves at --wavelength unless --physical is set, in which case
they are physical thicknesses in nm. --cap layers are added once, after the
repeated block.`,
		Example: `  coatingtk -m materials.yaml new etm.yaml \
    --layer "Silica Coating:0.27" --layer "Titanium Tantala Coating:0.23" \
    --repeat 17 --cap "Silica Coating:0.5"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			block, err := parseLayerSpecs(layerSpecs)
			if err != nil {
				return err
			}
			capping, err := parseLayerSpecs(capSpecs)
			if err != nil {
				return err
			}

			lib, err := opts.library()
			if err != nil {
				return err
			}
			c, err := coating.New(lib, superstrate, substrate, nil, lambda0,
				coating.WithAOI(aoi), coating.WithLogger(opts.logger))
			if err != nil {
				return err
			}

			if wavelength == 0 {
				wavelength = lambda0
			}
			add := func(specs []layers.Spec, n int) error {
				if !physical {
					return c.AddLayers(specs, wavelength, n)
				}
				ls := make([]layers.Layer, 0, len(specs))
				for _, spec := range specs {
					l, err := layers.New(lib, spec.Material, spec.Thickness)
					if err != nil {
						return err
					}
					ls = append(ls, l)
				}
				return c.AddLayersDirect(ls, n)
			}
			if err := add(block, repeat); err != nil {
				return err
			}
			if err := add(capping, 1); err != nil {
				return err
			}

			if err := c.Save(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s: %d layers, %.3f nm\n", args[0], c.Len(), c.Thickness())
			return nil
		},
	}

	cmd.Flags().StringVar(&superstrate, "superstrate", "Vacuum", "Incident medium")
	cmd.Flags().StringVar(&substrate, "substrate", "Silica Substrate", "Substrate material")
	cmd.Flags().Float64Var(&lambda0, "lambda0", 1064e-9, "Reference wavelength in m")
	cmd.Flags().Float64Var(&aoi, "aoi", 0, "Design angle of incidence in degrees")
	cmd.Flags().Float64Var(&wavelength, "wavelength", 0, "Wavelength the optical thicknesses refer to, in m (default: lambda0)")
	cmd.Flags().StringArrayVar(&layerSpecs, "layer", []string{}, "Layer in the repeated block as MATERIAL:THICKNESS (repeatable)")
	cmd.Flags().StringArrayVar(&capSpecs, "cap", []string{}, "Layer added once after the block as MATERIAL:THICKNESS (repeatable)")
	cmd.Flags().IntVar(&repeat, "repeat", 1, "Number of times the block is repeated")
	cmd.Flags().BoolVar(&physical, "physical", false, "Thicknesses are physical thicknesses in nm")

	return cmd
}

func newMaterialsCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "materials",
		Short: "Manage material definitions",
		Long:  "Commands for listing material definitions and storing them in a catalog.",
	}

	cmd.AddCommand(newMaterialsImportCommand(opts))
	cmd.AddCommand(newMaterialsListCommand(opts))
	cmd.AddCommand(newMaterialsShowCommand(opts))

	return cmd
}

func newMaterialsImportCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <materials.yaml>...",
		Short: "Store material definitions in the catalog",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.catalog == "" {
				return fmt.Errorf("--catalog is required")
			}

			var defs []materials.Definition
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return cerrors.WrapError(err, "import_materials")
				}
				parsed, err := materials.ParseDefinitions(data)
				if err != nil {
					return err
				}
				defs = append(defs, parsed...)
			}

			catalog, err := materials.OpenCatalog(opts.catalog, opts.logger)
			if err != nil {
				return err
			}
			defer catalog.Close()

			if err := catalog.SaveMaterials(defs); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d materials into %s\n", len(defs), opts.catalog)
			return nil
		},
	}
}

func newMaterialsListCommand(opts *globalOptions) *cobra.Command {
	var wavelength float64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the loaded materials",
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := opts.library()
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tN\tK\tY (Pa)\tSIGMA\tPHI")
			for _, name := range lib.Names() {
				m, err := lib.Material(name)
				if err != nil {
					return err
				}
				n := m.N(wavelength)
				fmt.Fprintf(tw, "%s\t%.5f\t%.3g\t%.4g\t%.4g\t%.4g\n", name, real(n), imag(n), m.Y, m.Sigma, m.Phi)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().Float64Var(&wavelength, "wavelength", 1064e-9, "Wavelength in m at which indices are shown")

	return cmd
}

func newMaterialsShowCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Print a material definition stored in the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.catalog == "" {
				return fmt.Errorf("--catalog is required")
			}

			catalog, err := materials.OpenCatalog(opts.catalog, opts.logger)
			if err != nil {
				return err
			}
			defer catalog.Close()

			def, err := catalog.Get(args[0])
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(def)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

// parseLayerSpecs parses MATERIAL:THICKNESS pairs. Material names may contain
// spaces and colons; the thickness follows the last colon.
func parseLayerSpecs(values []string) ([]layers.Spec, error) {
	specs := make([]layers.Spec, 0, len(values))
	for _, value := range values {
		i := strings.LastIndex(value, ":")
		if i <= 0 {
			return nil, fmt.Errorf("invalid layer %q, expected MATERIAL:THICKNESS", value)
		}
		thickness, err := strconv.ParseFloat(strings.TrimSpace(value[i+1:]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid thickness in layer %q: %v", value, err)
		}
		specs = append(specs, layers.Spec{Material: strings.TrimSpace(value[:i]), Thickness: thickness})
	}
	return specs, nil
}
