// Command matinfo creates a new buffered matrix in the given directory,
// optionally sized with -rows and -cols (zero-filled columns), and prints
// its dimensions, buffer occupancy, and whole-matrix reductions in tabular
// form. Column files already present in the directory are not opened, and
// the files it creates are removed when it exits. It is a thin binding
// layer: it only calls the public
// bufferedmatrix API, never touches buffer or clash internals directly,
// demonstrating that the embedding layer described in §4.9 of the design
// has no business knowing how the engine works.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"

	bufferedmatrix "github.com/bmbolstad/BufferedMatrix"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "matinfo:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("matinfo", flag.ContinueOnError)
	dir := fs.String("dir", ".", "directory holding the matrix's column files")
	prefix := fs.String("prefix", bufferedmatrix.DefaultPrefix, "column filename prefix")
	rows := fs.Int("rows", 0, "row count of the new matrix (0 leaves it empty)")
	cols := fs.Int("cols", 0, "zero-filled columns to append (ignored when -rows is 0)")
	maxRows := fs.Int("maxrows", bufferedmatrix.DefaultMaxRows, "row buffer capacity")
	maxCols := fs.Int("maxcols", bufferedmatrix.DefaultMaxCols, "column buffer capacity")
	skipMissing := fs.Bool("skip-missing", true, "drop NaN values from reductions")
	if err := fs.Parse(args); err != nil {
		return err
	}

	m, err := bufferedmatrix.New(
		bufferedmatrix.WithDirectory(*dir),
		bufferedmatrix.WithPrefix(*prefix),
		bufferedmatrix.WithMaxRows(*maxRows),
		bufferedmatrix.WithMaxCols(*maxCols),
	)
	if err != nil {
		return err
	}
	defer m.Close()

	if *rows > 0 {
		if err := m.SetRows(*rows); err != nil {
			return err
		}
		for i := 0; i < *cols; i++ {
			if err := m.AddColumn(); err != nil {
				return err
			}
		}
	}

	stats := m.Stats()
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"metric", "value"})
	table.Append([]string{"rows", fmt.Sprint(stats.Rows)})
	table.Append([]string{"cols", fmt.Sprint(stats.Cols)})
	table.Append([]string{"buffered cols", fmt.Sprint(stats.BufferedCols)})
	table.Append([]string{"row buffer cols", fmt.Sprint(stats.RowBufferCols)})
	table.Append([]string{"row mode", fmt.Sprint(stats.RowModeActive)})
	table.Append([]string{"read only", fmt.Sprint(stats.ReadOnly)})
	table.Append([]string{"memory bytes", fmt.Sprint(stats.MemoryBytes)})
	table.Append([]string{"file bytes", fmt.Sprint(stats.FileBytes)})

	if stats.Rows > 0 && stats.Cols > 0 {
		table.Append([]string{"sum", fmt.Sprint(m.Sum(*skipMissing))})
		table.Append([]string{"mean", fmt.Sprint(m.Mean(*skipMissing))})
		table.Append([]string{"min", fmt.Sprint(m.Min(*skipMissing))})
		table.Append([]string{"max", fmt.Sprint(m.Max(*skipMissing))})
	}
	table.Render()
	return nil
}
