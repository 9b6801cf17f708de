// Command grdinfo prints the property summary of GRD measurement files:
// sample metadata, channel names and units, and per-curve properties.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/banshee-data/grdkit/internal/curvestats"
	"github.com/banshee-data/grdkit/internal/grd"
	"github.com/banshee-data/grdkit/internal/siformat"
	"github.com/banshee-data/grdkit/internal/version"
)

var (
	showStats   = flag.Bool("stats", false, "Print per-channel statistics for each curve")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("grdinfo %s\n", version.String())
		return
	}

	if flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "usage: %s file1 ...\n", os.Args[0])
		os.Exit(1)
	}

	for _, path := range flag.Args() {
		g, err := grd.ReadFile(path)
		if err != nil {
			log.Fatalf("failed to read %s: %v", path, err)
		}

		fmt.Printf("PROPERTIES OF %s:\n", path)
		fmt.Println(g)

		if *showStats {
			for _, c := range g.Curves {
				summaries, err := curvestats.SummarizeCurve(g, c.Number)
				if err != nil {
					log.Fatalf("failed to summarize curve %d of %s: %v", c.Number, path, err)
				}
				fmt.Printf("\nstatistics for curve %d (duration %s):\n",
					c.Number, siformat.Format(c.Duration, "s", 3))
				for _, s := range summaries {
					fmt.Println(s)
				}
			}
		}
		fmt.Println()
	}
	fmt.Println("done")
}
