// Command grdingest parses GRD measurement files and records them into a
// SQLite database for later querying.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/banshee-data/grdkit/internal/db"
	"github.com/banshee-data/grdkit/internal/grd"
	"github.com/banshee-data/grdkit/internal/version"
)

var (
	dbPath        = flag.String("db", "grd_data.db", "SQLite database path")
	migrationsDir = flag.String("migrations", "", "Run migrations from this directory before importing")
	showVersion   = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("grdingest %s\n", version.String())
		return
	}

	if flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] file1 ...\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	d, err := db.NewDB(*dbPath)
	if err != nil {
		log.Fatalf("failed to open database %s: %v", *dbPath, err)
	}
	defer d.Close()

	if *migrationsDir != "" {
		if err := d.MigrateUp(*migrationsDir); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	for _, path := range flag.Args() {
		g, err := grd.ReadFile(path)
		if err != nil {
			log.Fatalf("failed to read %s: %v", path, err)
		}
		fileID, err := d.RecordGraph(path, g)
		if err != nil {
			log.Fatalf("failed to record %s: %v", path, err)
		}
		log.Printf("recorded %s as file %d", path, fileID)
	}
}
