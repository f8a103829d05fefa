// Command kqlbridge is component K: a small CLI that reads a KQL query
// (flag, file, or stdin), transpiles it, and prints the resulting SQL.
// Grounded on sqldef's cmd/*def.go option parsing
// (github.com/jessevdk/go-flags) and trentm/go-ecslog's use of
// github.com/sirupsen/logrus for structured CLI logging around the one
// operation that actually does anything (spec.md §4.K). This is the only
// surface in the module that logs or touches stdout/stderr — the library
// packages stay synchronous and side-effect-free (spec.md §5).
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"

	"github.com/kqlbridge/kqlbridge/config"
	"github.com/kqlbridge/kqlbridge/errs"
	"github.com/kqlbridge/kqlbridge/format"
	"github.com/kqlbridge/kqlbridge/pipeline"
	_ "github.com/kqlbridge/kqlbridge/stages" // registers the stage sub-parsers
)

var log = logrus.New()

type options struct {
	Query  string `short:"q" long:"query" description:"KQL query text" value-name:"kql"`
	File   string `short:"f" long:"file" description:"Read the KQL query from this file" value-name:"path"`
	Config string `short:"c" long:"config" description:"YAML config file with operator/mask defaults" value-name:"path"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	log.SetOutput(stderr)

	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	parser.Usage = "[-q KQL | -f FILE] [-c CONFIG]"
	if _, err := parser.ParseArgs(args); err != nil {
		return 1
	}

	if opts.Config != "" {
		cfg, err := config.Load(opts.Config)
		if err != nil {
			log.WithError(err).Error("failed to load config")
			return 1
		}
		log.WithFields(logrus.Fields{
			"default_mask4": cfg.DefaultMask4,
			"default_mask6": cfg.DefaultMask6,
		}).Debug("loaded config")
	}

	query, err := readQuery(opts, stdin)
	if err != nil {
		log.WithError(err).Error("failed to read query")
		return 1
	}

	log.WithField("bytes", len(query)).Debug("transpiling query")
	out, err := pipeline.Dispatch(query)
	if err != nil {
		logDiagnostic(err)
		return 1
	}

	sql := format.String(out)
	fmt.Fprintln(stdout, sql)
	log.WithField("bytes", len(sql)).Debug("transpile complete")
	return 0
}

func readQuery(opts options, stdin io.Reader) (string, error) {
	switch {
	case opts.Query != "":
		return opts.Query, nil
	case opts.File != "":
		data, err := os.ReadFile(opts.File)
		if err != nil {
			return "", err
		}
		return string(data), nil
	default:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
}

func logDiagnostic(err error) {
	if kind, ok := errs.KindOf(err); ok {
		log.WithFields(logrus.Fields{"kind": kind.String()}).Error(err)
		return
	}
	log.Error(err)
}
