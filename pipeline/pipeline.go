// Package pipeline runs one enrichment: validate the output name and
// targets, load the input, merge samples, encode JSON and write it.
package pipeline

import (
	"context"
	"os"

	"github.com/vitalvas/oasamples/enrich"
	"github.com/vitalvas/oasamples/errors"
	"github.com/vitalvas/oasamples/logger"
	"github.com/vitalvas/oasamples/openapi"
	"github.com/vitalvas/oasamples/output"
	"github.com/vitalvas/oasamples/snippet"
)

// Options describes a run.
type Options struct {
	Input   string
	Output  string
	Targets []string

	// Generator defaults to the built-in template generator.
	Generator snippet.Generator
	// Logger defaults to a no-op logger.
	Logger *logger.Logger
}

// Result describes a finished run.
type Result struct {
	Output   string
	Document *openapi.Document
	Report   enrich.Report
}

// Run executes the whole pipeline. Configuration problems (output name,
// targets) are reported before the input is read.
func Run(ctx context.Context, opts Options) (*Result, error) {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	if err := output.CheckName(opts.Output); err != nil {
		return nil, err
	}

	targets, err := snippet.Resolve(opts.Targets, log)
	if err != nil {
		return nil, err
	}

	res, err := Enrich(opts.Input, targets, opts.Generator, log)
	if err != nil {
		return nil, err
	}

	data, err := res.Document.JSON()
	if err != nil {
		return nil, errors.Wrap(err, "encode document")
	}

	name, err := output.Resolve(opts.Output, res.Document)
	if err != nil {
		return nil, err
	}

	if err := output.WriteFile(ctx, name, data); err != nil {
		return nil, err
	}

	log.Success("document written",
		"output", name,
		"operations", res.Report.Operations,
		"samples_added", res.Report.SamplesAdded,
		"samples_skipped", res.Report.SamplesSkipped,
	)

	return &Result{Output: name, Document: res.Document, Report: res.Report}, nil
}

// Enrich loads input and merges samples for targets into it.
func Enrich(input string, targets snippet.TargetSet, gen snippet.Generator, log *logger.Logger) (*enrich.Result, error) {
	if log == nil {
		log = logger.Nop()
	}
	if gen == nil {
		gen = snippet.NewTemplateGenerator()
	}

	doc, err := load(input)
	if err != nil {
		return nil, err
	}
	log.Debug("document loaded", "input", input, "format", openapi.FormatFromPath(input).String())

	if v := doc.Version(); v != nil {
		log.Debug("document version", "version", v.String())
	}

	return enrich.New(gen, enrich.WithLogger(log)).Enrich(doc, targets)
}

func load(input string) (*openapi.Document, error) {
	data, err := os.ReadFile(input)
	if err != nil {
		return nil, errors.WithHint(
			errors.IO(errors.Wrapf(err, "read %s", input)),
			"check that the input file exists and is readable",
		)
	}

	doc, err := openapi.Parse(data, openapi.FormatFromPath(input))
	if err != nil {
		return nil, errors.WithHint(
			errors.Mark(errors.Wrapf(err, "parse %s", input), errors.ErrStructure),
			"files ending in .yml or .yaml are read as YAML, everything else as JSON",
		)
	}
	return doc, nil
}
