// Command grdplot renders one curve of a GRD measurement file to a chart
// artifact: an HTML line chart by default, or a PNG with -png.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/banshee-data/grdkit/internal/config"
	"github.com/banshee-data/grdkit/internal/grd"
	"github.com/banshee-data/grdkit/internal/report"
	"github.com/banshee-data/grdkit/internal/version"
)

var (
	curveNumber = flag.Int("curve", 0, "Curve number to plot (0 = most recent curve in the file)")
	xChannel    = flag.String("x", "", "Channel for the X axis (default: first channel)")
	outPath     = flag.String("out", "curve.html", "Output file path")
	asPNG       = flag.Bool("png", false, "Write a PNG instead of an HTML chart")
	configPath  = flag.String("config", "", "Optional plot config JSON file")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("grdplot %s\n", version.String())
		return
	}

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] file\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}
	path := flag.Arg(0)

	g, err := grd.ReadFile(path)
	if err != nil {
		log.Fatalf("failed to read %s: %v", path, err)
	}

	cfg := config.EmptyPlotConfig()
	if *configPath != "" {
		cfg, err = config.LoadPlotConfig(*configPath)
		if err != nil {
			log.Fatalf("failed to load plot config: %v", err)
		}
	}

	number := *curveNumber
	if number == 0 {
		latest, err := g.LatestCurve()
		if err != nil {
			log.Fatalf("%s holds no curves", path)
		}
		number = latest.Number
	}

	x := *xChannel
	if x == "" {
		if len(g.Names) == 0 {
			log.Fatalf("%s holds no axis description; pass -x explicitly", path)
		}
		x = g.Names[0]
	}

	if *asPNG {
		if err := report.SavePNG(*outPath, g, number, x); err != nil {
			log.Fatalf("failed to write PNG: %v", err)
		}
	} else {
		f, err := os.Create(*outPath)
		if err != nil {
			log.Fatalf("failed to create %s: %v", *outPath, err)
		}
		defer f.Close()
		if err := report.RenderHTML(f, g, number, x, cfg); err != nil {
			log.Fatalf("failed to render chart: %v", err)
		}
	}

	log.Printf("wrote %s (curve %d, x=%s)", *outPath, number, x)
}
