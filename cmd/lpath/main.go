// Lpath is a command-line tool for the labeltree codec: it parses
// label-paths or label-patterns and prints their canonical text or a hex
// dump of the binary record.
//
// Usage:
//
//	lpath [flags] [input ...]
//
// With no inputs and no -f, inputs are read line by line from stdin.
//
// Flags:
//
//	-q        Treat inputs as label-patterns instead of label-paths
//	-f path   Read newline-separated inputs from a file (mapped read-only)
//	-dump     Print a hex dump of the binary record instead of text
//	-workers  Parallel parsing for -f input (default: GOMAXPROCS)
package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"

	"github.com/labeltree/labeltree"
)

func main() {
	patternFlag := flag.Bool("q", false, "treat inputs as label-patterns")
	fileFlag := flag.String("f", "", "read inputs from a file")
	dumpFlag := flag.Bool("dump", false, "hex dump the binary record")
	workersFlag := flag.Int("workers", 0, "parallel parsing for -f input")
	flag.Parse()

	var inputs []string
	switch {
	case *fileFlag != "":
		var err error
		inputs, err = readInputFile(*fileFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lpath: %v\n", err)
			os.Exit(1)
		}
	case flag.NArg() > 0:
		inputs = flag.Args()
	default:
		sc := bufio.NewScanner(os.Stdin)
		for sc.Scan() {
			inputs = append(inputs, sc.Text())
		}
		if err := sc.Err(); err != nil {
			fmt.Fprintf(os.Stderr, "lpath: read stdin: %v\n", err)
			os.Exit(1)
		}
	}

	if err := run(inputs, *patternFlag, *dumpFlag, *workersFlag); err != nil {
		fmt.Fprintf(os.Stderr, "lpath: %v\n", err)
		os.Exit(1)
	}
}

// readInputFile maps the file read-only and splits it into lines. Large
// label lists are read without buffering the whole file through the heap
// twice.
func readInputFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if fi.Size() == 0 {
		return nil, nil
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mmap %s: %w", path, err)
	}
	defer m.Unmap()

	var inputs []string
	data := []byte(m)
	for len(data) > 0 {
		nl := bytes.IndexByte(data, '\n')
		if nl < 0 {
			inputs = append(inputs, string(data))
			break
		}
		inputs = append(inputs, string(data[:nl]))
		data = data[nl+1:]
	}
	return inputs, nil
}

func run(inputs []string, pattern, dump bool, workers int) error {
	ctx := context.Background()
	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	if pattern {
		parsed, err := labeltree.ParseLabelPatterns(ctx, inputs, workers)
		if err != nil {
			return err
		}
		for _, q := range parsed {
			if dump {
				fmt.Fprint(out, hex.Dump(q.Record()))
			} else {
				fmt.Fprintln(out, q.String())
			}
		}
		return nil
	}

	parsed, err := labeltree.ParseLabelPaths(ctx, inputs, workers)
	if err != nil {
		return err
	}
	for _, p := range parsed {
		if dump {
			fmt.Fprint(out, hex.Dump(p.Record()))
		} else {
			fmt.Fprintln(out, p.String())
		}
	}
	return nil
}
