// Command frontmesh builds a mesh around a circular dead zone and draws it.
//
// The geometry comes from a YAML config (see the domain package) with a few
// fields overridable from the command line. The mesh is written as PNG or SVG
// depending on the output extension, colored by a quality metric.
package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/logrusorgru/aurora"
	imgcat "github.com/martinlindhe/imgcat/lib"
	"github.com/osuushi/frontmesh"
	"github.com/osuushi/frontmesh/domain"
	"github.com/osuushi/frontmesh/quality"
	"github.com/osuushi/frontmesh/render"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	app = kingpin.New("frontmesh", "Mesh a rectangle around a circular dead zone.")

	configPath = app.Flag("config", "YAML config file. Defaults to $"+domain.EnvConfigPath+" or ./frontmesh.yaml.").Short('c').String()
	dumpConfig = app.Flag("dump-config", "Print the effective config and exit.").Bool()

	lx         = app.Flag("lx", "Domain width.").Default("NaN").Float64()
	ly         = app.Flag("ly", "Domain height.").Default("NaN").Float64()
	cx         = app.Flag("cx", "Dead zone center x.").Default("NaN").Float64()
	cy         = app.Flag("cy", "Dead zone center y.").Default("NaN").Float64()
	radius     = app.Flag("radius", "Dead zone radius.").Default("NaN").Float64()
	boundary   = app.Flag("boundary-points", "Points on the dead zone circle.").Default("-1").Int()
	layers     = app.Flag("layers", "Number of front layers.").Default("-1").Int()
	iterations = app.Flag("iterations", "Maximum refinement passes.").Default("-1").Int()
	mode       = app.Flag("mode", "Triangulation mode.").Enum(domain.ModeDelaunay, domain.ModeConstrained)

	out      = app.Flag("out", "Output image, .png or .svg.").Short('o').Default("mesh.png").String()
	width    = app.Flag("width", "Output width in pixels.").Default("800").Int()
	metric   = app.Flag("quality", "Metric used to color triangles.").Default("orthogonality").Enum("orthogonality", "skewness")
	points   = app.Flag("points", "Draw mesh points.").Bool()
	showCat  = app.Flag("imgcat", "Show the PNG in the terminal.").Bool()
	verbose  = app.Flag("verbose", "Log every stage.").Short('v').Bool()
	noColors = app.Flag("no-color", "Plain summary output.").Bool()
)

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))

	logger, err := newLogger(*verbose)
	app.FatalIfError(err, "logger")
	defer logger.Sync()

	cfg, err := domain.Load(*configPath)
	app.FatalIfError(err, "config")
	applyOverrides(&cfg)
	app.FatalIfError(cfg.Validate(), "config")

	if *dumpConfig {
		data, err := cfg.Marshal()
		app.FatalIfError(err, "config")
		os.Stdout.Write(data)
		return
	}

	result, err := frontmesh.Build(cfg, frontmesh.WithLogger(logger))
	if result == nil {
		app.FatalIfError(err, "build")
	}
	if err != nil {
		// Refinement failed partway; the last good mesh is still worth drawing.
		logger.Warnw("refinement stopped", "error", err)
	}

	au := aurora.NewAurora(!*noColors)
	printSummary(au, "initial", result.Initial.VertexCount(), result.InitialRecords)
	if r := result.Refinement; r != nil && r.Iterations > 0 {
		printSummary(au, "refined", r.Mesh.VertexCount(), r.Records)
		status := au.Yellow("not converged")
		if r.Converged {
			status = au.Green("converged")
		}
		fmt.Printf("%d passes, %d points inserted, %s\n", r.Iterations, r.Inserted, status)
	}

	app.FatalIfError(write(result), "write %s", *out)
	if *showCat && strings.EqualFold(filepath.Ext(*out), ".png") {
		imgcat.CatFile(*out, os.Stdout)
	}
}

func newLogger(verbose bool) (*zap.SugaredLogger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
		logger, err = config.Build()
	}
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}

func applyOverrides(cfg *domain.Config) {
	floats := []struct {
		flag  *float64
		field *float64
	}{
		{lx, &cfg.Lx},
		{ly, &cfg.Ly},
		{cx, &cfg.CircleCenterX},
		{cy, &cfg.CircleCenterY},
		{radius, &cfg.CircleRadius},
	}
	for _, f := range floats {
		if !math.IsNaN(*f.flag) {
			*f.field = *f.flag
		}
	}
	ints := []struct {
		flag  *int
		field *int
	}{
		{boundary, &cfg.NumBoundaryPoints},
		{layers, &cfg.NumLayers},
		{iterations, &cfg.MaxRefineIterations},
	}
	for _, f := range ints {
		if *f.flag >= 0 {
			*f.field = *f.flag
		}
	}
	if *mode != "" {
		cfg.Triangulation.Mode = *mode
	}
}

func printSummary(au aurora.Aurora, label string, vertices int, records []quality.Record) {
	s := quality.Summarize(records)
	fmt.Printf("%s: %d vertices, %d triangles\n", au.Bold(label), vertices, s.Count)
	fmt.Printf("  skewness       min %s  mean %.3f  max %.3f\n",
		au.Cyan(fmt.Sprintf("%.3f", s.Skewness.Min)), s.Skewness.Mean, s.Skewness.Max)
	fmt.Printf("  orthogonality  min %s  mean %.2f  max %.2f\n",
		au.Cyan(fmt.Sprintf("%.2f", s.Orthogonality.Min)), s.Orthogonality.Mean, s.Orthogonality.Max)
}

func write(result *frontmesh.Result) error {
	m := result.Mesh()
	opts := render.Options{
		Width:      *width,
		ShowPoints: *points,
		Circle: &render.Circle{
			Center: result.Geometry.Center(),
			Radius: result.Geometry.Radius(),
		},
	}
	switch *metric {
	case "skewness":
		opts.Field = quality.Field(result.Records(), quality.SkewnessOf)
		opts.FieldMin, opts.FieldMax = 0, 1
	default:
		opts.Field = quality.Field(result.Records(), quality.OrthogonalityOf)
		opts.FieldMin, opts.FieldMax = 0, 60
	}

	switch strings.ToLower(filepath.Ext(*out)) {
	case ".png":
		return render.SavePNG(*out, m, opts)
	case ".svg":
		f, err := os.Create(*out)
		if err != nil {
			return err
		}
		render.SVG(f, m, opts)
		return f.Close()
	}
	return errors.Errorf("unsupported output format %q", filepath.Ext(*out))
}
