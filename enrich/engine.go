// Package enrich merges generated code samples into every operation of an
// OpenAPI document.
//
// Samples are merged positionally: the i-th snippet for an operation is
// written only when x-code-samples has no entry at index i. Existing entries
// are never replaced or reordered, so re-running with the same targets in the
// same order adds nothing.
package enrich

import (
	"strings"

	"github.com/vitalvas/oasamples/errors"
	"github.com/vitalvas/oasamples/logger"
	"github.com/vitalvas/oasamples/openapi"
	"github.com/vitalvas/oasamples/snippet"
)

// Engine walks a document and merges samples from a Generator.
type Engine struct {
	gen      snippet.Generator
	log      *logger.Logger
	onNotice NoticeFunc
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger notices are written to.
func WithLogger(l *logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithNoticeFunc registers an observer called for every notice.
func WithNoticeFunc(fn NoticeFunc) Option {
	return func(e *Engine) {
		e.onNotice = fn
	}
}

// New creates an Engine backed by gen.
func New(gen snippet.Generator, opts ...Option) *Engine {
	e := &Engine{
		gen: gen,
		log: logger.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Result is the enriched document together with what changed.
type Result struct {
	Document *openapi.Document
	Report   Report
}

// Enrich mutates doc in place and returns it. A document without a paths
// mapping fails with *MissingPropertyError before anything is touched;
// generator failures abort the run wrapped with the operation they hit.
func (e *Engine) Enrich(doc *openapi.Document, targets snippet.TargetSet) (*Result, error) {
	paths, ok := doc.Paths()
	if !ok {
		return nil, missingProperty("paths")
	}

	res := &Result{Document: doc}
	log := e.log.Named("enrich")

	for _, item := range paths.Items() {
		for _, op := range item.Operations() {
			if err := e.enrichOperation(doc, op, targets, &res.Report, log); err != nil {
				return nil, err
			}
			res.Report.Operations++
		}
	}

	log.Debug("enrichment finished",
		"operations", res.Report.Operations,
		"samples_added", res.Report.SamplesAdded,
		"samples_skipped", res.Report.SamplesSkipped,
	)
	return res, nil
}

func (e *Engine) enrichOperation(doc *openapi.Document, op *openapi.Operation, targets snippet.TargetSet, report *Report, log *logger.Logger) error {
	method := strings.ToUpper(op.Method)
	log = log.With("path", op.Path, "method", method)

	snippets, err := e.gen.Generate(doc, op.Path, op.Method, targets)
	if err != nil {
		return errors.Wrapf(err, "generate samples for %s %s", method, op.Path)
	}

	added, err := op.InitCodeSamples()
	if err != nil {
		return invalidField(op.Path, method, openapi.CodeSamplesKey, err)
	}
	if added {
		e.notify(log, report, Notice{Kind: NoticeFieldAdded, Path: op.Path, Method: method})
	} else {
		e.notify(log, report, Notice{Kind: NoticeFieldExists, Path: op.Path, Method: method})
	}

	// Surfaces a non-sequence x-code-samples even when there is nothing to write.
	if _, err := op.SampleCount(); err != nil {
		return invalidField(op.Path, method, openapi.CodeSamplesKey, err)
	}

	for i, s := range snippets {
		written, err := op.PutSample(i, openapi.Sample{Lang: s.Title, Source: s.Content})
		if err != nil {
			return invalidField(op.Path, method, openapi.CodeSamplesKey, err)
		}
		kind := NoticeSampleExists
		if written {
			kind = NoticeSampleAdded
		}
		e.notify(log, report, Notice{Kind: kind, Path: op.Path, Method: method, Index: i, Lang: s.Title})
	}
	return nil
}

func (e *Engine) notify(log *logger.Logger, report *Report, n Notice) {
	report.record(n.Kind)

	switch n.Kind {
	case NoticeFieldAdded:
		log.Info("field added", "field", openapi.CodeSamplesKey)
	case NoticeFieldExists:
		log.Warn("field already exists, keeping it", "field", openapi.CodeSamplesKey)
	case NoticeSampleAdded:
		log.Info("sample added", "index", n.Index, "lang", n.Lang)
	case NoticeSampleExists:
		log.Warn("field already exists, skipping", "index", n.Index, "lang", n.Lang)
	}

	if e.onNotice != nil {
		e.onNotice(n)
	}
}
