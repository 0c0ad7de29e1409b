package main

import (
	"encoding/base64"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"jjavery/linewrap"

	"github.com/pborman/getopt/v2"
	"github.com/pborman/options"
	"golang.org/x/term"
)

type config struct {
	Help       bool   `getopt:"-h --help                 Display help"`
	Width      int    `getopt:"-w --width=bytes          Maximum line length in bytes"`
	LineEnding string `getopt:"-e --line-ending=string   Inserted between lines, Go escapes such as \\r\\n are unescaped"`
	Base64     bool   `getopt:"-b --base64               Base64-encode the input before wrapping"`
	Runes      bool   `getopt:"-r --runes                Never split multi-byte UTF-8 characters"`
	Output     string `getopt:"-o --output=path          Write to path instead of stdout"`
}

var isTerminal = func(in io.Reader) bool {
	file, ok := in.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

func main() {
	log.SetFlags(0)

	err := run(os.Args, os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		log.Fatal(err)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer, stderr io.Writer) (err error) {
	cfg := config{
		Width:      linewrap.MIMELineLength,
		LineEnding: `\n`,
	}

	set := getopt.New()
	err = options.RegisterSet("", &cfg, set)
	if err != nil {
		return err
	}
	set.SetParameters("[FILE]")

	err = set.Getopt(args, nil)
	if err != nil {
		set.PrintUsage(stderr)
		return err
	}

	if cfg.Help {
		set.PrintUsage(stderr)
		return nil
	}

	params := set.Args()
	if len(params) > 1 {
		set.PrintUsage(stderr)
		return fmt.Errorf("unexpected arguments: %q", params[1:])
	}

	if cfg.Width <= 0 {
		return fmt.Errorf("invalid width %d: %w", cfg.Width, linewrap.ErrLineLength)
	}

	lineEnding, err := parseLineEnding(cfg.LineEnding)
	if err != nil {
		return fmt.Errorf("invalid line ending %q: %w", cfg.LineEnding, err)
	}

	var in io.Reader = stdin
	if len(params) == 1 && params[0] != "-" {
		file, err := os.Open(params[0])
		if err != nil {
			return err
		}
		defer file.Close()

		in = file
	} else if isTerminal(stdin) {
		fmt.Fprint(stderr, "Reading from a terminal until EOF ( Ctrl+D )\n")
	}

	input, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	if cfg.Base64 {
		input = []byte(base64.StdEncoding.EncodeToString(input))
	}

	out := stdout
	if cfg.Output != "" {
		file, createErr := os.Create(cfg.Output)
		if createErr != nil {
			return createErr
		}
		defer func() {
			closeErr := file.Close()
			if err == nil {
				err = closeErr
			}
		}()

		out = file
	}

	if cfg.Runes {
		wrapped, err := linewrap.WrapStringRunes(string(input), cfg.Width, lineEnding)
		if err != nil {
			return err
		}

		_, err = io.WriteString(out, wrapped)
		if err != nil {
			return fmt.Errorf("writing output: %w", err)
		}

		return nil
	}

	err = linewrap.Wrap(input, cfg.Width, []byte(lineEnding), out)
	if err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	return nil
}

// parseLineEnding unescapes Go escapes. Values without a backslash, such as
// a CRLF passed by the shell, are used as given.
func parseLineEnding(s string) (string, error) {
	if !strings.Contains(s, `\`) {
		return s, nil
	}

	return strconv.Unquote(`"` + s + `"`)
}
