// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Command jtext validates and reformats JSON text.
//
// Usage:
//
//	jtext check [-strict] [-stream] [file|-]
//	jtext fmt [-compact] [-stream] [-strict] [-decimals] [-escape-slash] [file|-]
//
// Input is read from the named file, or from stdin if the name is "-" or
// omitted. Non-UTF-8 Unicode encodings are detected and transcoded. The exit
// code is 0 on success, 2 if the input is invalid, 10 on an internal error.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/creachadair/jtext"
	"github.com/creachadair/jtext/charset"
	"github.com/creachadair/jtext/value"
)

const (
	exitSuccess  = 0
	exitInvalid  = 2
	exitInternal = 10
)

const usage = "usage: jtext <check|fmt> [options] [file|-]"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(stderr, usage)
		return exitInvalid
	}
	switch args[0] {
	case "check":
		return cmdCheck(args[1:], stdin, stderr)
	case "fmt":
		return cmdFmt(args[1:], stdin, stdout, stderr)
	default:
		fmt.Fprintf(stderr, "unknown command: %s\n%s\n", args[0], usage)
		return exitInvalid
	}
}

type flags struct {
	strict      bool
	stream      bool
	compact     bool
	decimals    bool
	escapeSlash bool
	input       string // "" or "-" means stdin
}

func parseFlags(args []string) (flags, error) {
	var f flags
	for _, arg := range args {
		switch arg {
		case "-strict":
			f.strict = true
		case "-stream":
			f.stream = true
		case "-compact":
			f.compact = true
		case "-decimals":
			f.decimals = true
		case "-escape-slash":
			f.escapeSlash = true
		case "-":
			f.input = "-"
		default:
			if strings.HasPrefix(arg, "-") {
				return flags{}, fmt.Errorf("unknown option: %s", arg)
			} else if f.input != "" {
				return flags{}, errors.New("multiple input files specified")
			}
			f.input = arg
		}
	}
	return f, nil
}

func (f flags) options() *jtext.Options {
	return &jtext.Options{
		Strict:      f.strict,
		UseDecimals: f.decimals,
		Streaming:   f.stream,
	}
}

// open returns a reader for the selected input, transcoded to UTF-8, and a
// cleanup that closes the underlying file (if any).
func (f flags) open(stdin io.Reader) (io.Reader, func(), error) {
	if f.input == "" || f.input == "-" {
		return charset.NewReader(stdin), func() {}, nil
	}
	fp, err := os.Open(f.input)
	if err != nil {
		return nil, nil, err
	}
	return charset.NewReader(fp), func() { fp.Close() }, nil
}

func cmdCheck(args []string, stdin io.Reader, stderr io.Writer) int {
	f, err := parseFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n%s\n", err, usage)
		return exitInvalid
	}
	r, done, err := f.open(stdin)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitInternal
	}
	defer done()

	p := jtext.NewParser(r, f.options())
	for {
		if _, err := p.Next(); err == io.EOF {
			return exitSuccess
		} else if err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return exitInvalid
		}
	}
}

func cmdFmt(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	f, err := parseFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n%s\n", err, usage)
		return exitInvalid
	}
	r, done, err := f.open(stdin)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitInternal
	}
	defer done()

	eopts := &value.EncodeOptions{Pretty: !f.compact, EscapeSlash: f.escapeSlash}
	d := value.NewStreamDecoder(r, f.options())
	nvals := 0
	for {
		v, err := d.Next()
		if err == io.EOF {
			if nvals == 0 && !f.stream {
				fmt.Fprintln(stderr, "error: no input value")
				return exitInvalid
			}
			return exitSuccess
		} else if err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return exitInvalid
		}
		if nvals > 0 && !f.stream {
			fmt.Fprintln(stderr, "error: trailing data after value")
			return exitInvalid
		}
		if err := value.Encode(stdout, v, eopts); err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return exitInternal
		}
		fmt.Fprintln(stdout)
		nvals++
	}
}
