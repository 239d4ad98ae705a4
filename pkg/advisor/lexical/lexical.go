// Package lexical wraps the statistical text-analysis capabilities
// (sentence segmentation, tokenization, POS tagging, person finding)
// behind a pipeline that degrades gracefully when a capability is
// missing. A missing model is never an error: the pipeline falls back
// to documented heuristics and keeps working.
package lexical

import (
	"strings"

	"go.uber.org/zap"
)

// Span marks a half-open token range [Start, End).
type Span struct {
	Start int
	End   int
}

// Segmenter splits raw text into sentences.
type Segmenter interface {
	Sentences(text string) ([]string, error)
}

// Tokenizer splits a sentence into tokens.
type Tokenizer interface {
	Tokens(sentence string) ([]string, error)
}

// Tagger assigns a POS tag to each token, aligned 1:1.
type Tagger interface {
	Tags(tokens []string) ([]string, error)
}

// PersonFinder locates person-name token spans.
type PersonFinder interface {
	PersonSpans(tokens []string) ([]Span, error)
}

// resetter is implemented by finders that keep adaptive state across
// calls. The pipeline clears that state after every invocation so one
// question cannot contaminate the next.
type resetter interface {
	Reset()
}

// Options configures a Pipeline. Every capability is optional.
type Options struct {
	Segmenter    Segmenter
	Tokenizer    Tokenizer
	Tagger       Tagger
	PersonFinder PersonFinder
	Logger       *zap.Logger
}

// Pipeline is the lexical front end of question analysis.
type Pipeline struct {
	segmenter Segmenter
	tokenizer Tokenizer
	tagger    Tagger
	finder    PersonFinder
	log       *zap.Logger
}

// NewPipeline builds a pipeline from whatever capabilities loaded.
// Absent capabilities are logged once as warnings and replaced by
// fallbacks at call time.
func NewPipeline(opts Options) *Pipeline {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Segmenter == nil {
		log.Warn("sentence segmenter unavailable, treating input as one sentence")
	}
	if opts.Tokenizer == nil {
		log.Warn("tokenizer unavailable, falling back to whitespace split")
	}
	if opts.Tagger == nil {
		log.Warn("POS tagger unavailable, keyword extraction will degrade")
	}
	if opts.PersonFinder == nil {
		log.Warn("person finder unavailable, teacher names rely on pattern rules only")
	}
	return &Pipeline{
		segmenter: opts.Segmenter,
		tokenizer: opts.Tokenizer,
		tagger:    opts.Tagger,
		finder:    opts.PersonFinder,
		log:       log,
	}
}

// Sentences segments text. Without a segmenter the whole input is a
// single sentence.
func (p *Pipeline) Sentences(text string) []string {
	if p.segmenter == nil {
		return []string{text}
	}
	sents, err := p.segmenter.Sentences(text)
	if err != nil {
		p.log.Warn("sentence segmentation failed", zap.Error(err))
		return []string{text}
	}
	if len(sents) == 0 {
		return []string{text}
	}
	return sents
}

// Tokens tokenizes one sentence. Without a tokenizer it splits on runs
// of whitespace.
func (p *Pipeline) Tokens(sentence string) []string {
	if p.tokenizer == nil {
		return strings.Fields(sentence)
	}
	toks, err := p.tokenizer.Tokens(sentence)
	if err != nil {
		p.log.Warn("tokenization failed", zap.Error(err))
		return strings.Fields(sentence)
	}
	return toks
}

// Tags tags a token sequence. Without a tagger it returns nil, which
// consumers must treat as "no tags" rather than an error.
func (p *Pipeline) Tags(tokens []string) []string {
	if p.tagger == nil {
		return nil
	}
	tags, err := p.tagger.Tags(tokens)
	if err != nil {
		p.log.Warn("POS tagging failed", zap.Error(err))
		return nil
	}
	return tags
}

// PersonSpans finds person-name spans in tokens. Finders that carry
// adaptive state are reset after every call.
func (p *Pipeline) PersonSpans(tokens []string) []Span {
	if p.finder == nil {
		return nil
	}
	if r, ok := p.finder.(resetter); ok {
		defer r.Reset()
	}
	spans, err := p.finder.PersonSpans(tokens)
	if err != nil {
		p.log.Warn("person finding failed", zap.Error(err))
		return nil
	}
	return spans
}
