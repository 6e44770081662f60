package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/tgienger/dues/internal/models"
	"github.com/tgienger/dues/internal/tracker"
)

// runExport writes every course and deadline to a file or stdout
func runExport(m *tracker.Manager, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	format := fs.String("format", tracker.FormatJSON, "output format: json or yaml")
	out := fs.String("o", "-", "output file, - for stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}
	// checked before the output file is truncated
	if err := tracker.CheckFormat(*format); err != nil {
		return err
	}

	w := stdout
	if *out != "-" {
		f, err := os.Create(*out)
		if err != nil {
			return errors.Wrap(err, "export")
		}
		defer f.Close()
		w = f
	}

	if err := m.Export(w, *format, time.Now()); err != nil {
		return err
	}
	if *out != "-" {
		fmt.Fprintf(stdout, "Exported %d courses and %d deadlines to %s\n",
			len(m.Courses()), len(m.Deadlines()), *out)
	}
	return nil
}

// runSeed loads the demo data into an empty store
func runSeed(m *tracker.Manager, stdout io.Writer) error {
	seeded, err := tracker.Seed(m, models.Today())
	if err != nil {
		return errors.Wrap(err, "seed")
	}
	if !seeded {
		fmt.Fprintln(stdout, "Courses already exist, nothing seeded")
		return nil
	}
	fmt.Fprintf(stdout, "Seeded %d courses and %d deadlines\n", len(m.Courses()), len(m.Deadlines()))
	return nil
}
