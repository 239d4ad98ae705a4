// Package advisor answers natural-language questions about an academic
// records database. A question flows one direction: lexical analysis,
// entity and intent recognition in parallel over the same tokens,
// keyword extraction, then routing to a single parameterized lookup
// whose rows are rendered back into prose.
package advisor

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/campuscore/advisor/pkg/advisor/entity"
	"github.com/campuscore/advisor/pkg/advisor/intent"
	"github.com/campuscore/advisor/pkg/advisor/keyword"
	"github.com/campuscore/advisor/pkg/advisor/lexical"
	"github.com/campuscore/advisor/pkg/advisor/route"
	"github.com/campuscore/advisor/pkg/advisor/session"
	"github.com/campuscore/advisor/pkg/advisor/store"
)

// EmptyQuestionPrompt is returned for empty or whitespace-only input.
const EmptyQuestionPrompt = "Please ask me a question about courses, teachers, majors, or schedules."

// Phraser optionally rewrites formatted lookup results as
// conversational prose. Implemented by the LLM client.
type Phraser interface {
	Phrase(ctx context.Context, question, results string) (string, error)
}

// FallbackAnswerer answers questions the structured lookups could not.
// Implemented by the knowledge base.
type FallbackAnswerer interface {
	Answer(ctx context.Context, question string) (string, error)
}

// Advisor is the question-answering engine.
type Advisor struct {
	pipeline   *lexical.Pipeline
	recognizer *entity.Recognizer
	extractor  *keyword.Extractor
	router     *route.Router
	store      store.Store
	phraser    Phraser
	fallback   FallbackAnswerer
	student    session.Student
	transcript *session.Transcript
	log        *zap.Logger
}

// Options configures an Advisor. Store is required; everything else
// has a working default.
type Options struct {
	Store     store.Store
	Pipeline  *lexical.Pipeline
	Stopwords []string
	Phraser   Phraser
	Fallback  FallbackAnswerer
	Student   session.Student
	Logger    *zap.Logger
}

// New creates an Advisor with the given dependencies.
func New(opts Options) *Advisor {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	pipeline := opts.Pipeline
	if pipeline == nil {
		h := lexical.Heuristic{}
		pipeline = lexical.NewPipeline(lexical.Options{
			Segmenter:    h,
			Tokenizer:    h,
			Tagger:       h,
			PersonFinder: h,
			Logger:       log,
		})
	}
	return &Advisor{
		pipeline:   pipeline,
		recognizer: entity.NewRecognizer(pipelineFinder{pipeline}),
		extractor:  keyword.NewExtractor(opts.Stopwords),
		router:     route.NewRouter(opts.Store, log),
		store:      opts.Store,
		phraser:    opts.Phraser,
		fallback:   opts.Fallback,
		student:    opts.Student,
		transcript: session.NewTranscript(),
		log:        log,
	}
}

// pipelineFinder adapts the pipeline's person capability to the
// recognizer's interface, keeping the reset-after-use discipline in
// one place.
type pipelineFinder struct {
	pipeline *lexical.Pipeline
}

func (f pipelineFinder) PersonSpans(tokens []string) []lexical.Span {
	return f.pipeline.PersonSpans(tokens)
}

// Analyze runs the lexical, entity, intent, and keyword stages and
// returns the resulting query descriptor. Intent is always set;
// entities and keywords may be empty.
func (a *Advisor) Analyze(text string) route.Descriptor {
	entities := entity.Bag{}
	var tokens, tags []string

	for _, sentence := range a.pipeline.Sentences(text) {
		sentTokens := a.pipeline.Tokens(sentence)
		for t, spans := range a.recognizer.Find(sentTokens) {
			entities[t] = append(entities[t], spans...)
		}
		tokens = append(tokens, sentTokens...)
		tags = append(tags, a.pipeline.Tags(sentTokens)...)
	}

	return route.Descriptor{
		Text:     text,
		Intent:   intent.Classify(text),
		Entities: entities,
		Keywords: a.extractor.Extract(tokens, tags),
		Student:  a.sessionStudentID(),
	}
}

// sessionStudentID renders the session student's ID for lookups, "" for
// an anonymous session.
func (a *Advisor) sessionStudentID() string {
	if a.student.ID == 0 {
		return ""
	}
	return strconv.Itoa(a.student.ID)
}

// Ask processes one question and returns the response text. Every
// failure path resolves to natural-language prose; the returned error
// is reserved for context cancellation.
func (a *Advisor) Ask(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return EmptyQuestionPrompt, nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	desc := a.Analyze(text)
	answer := a.router.Respond(ctx, desc)

	// Structured lookups found nothing: try the knowledge base.
	if answer == route.NoInformationMessage && a.fallback != nil {
		if grounded, err := a.fallback.Answer(ctx, text); err == nil && grounded != "" {
			answer = grounded
		} else if err != nil {
			a.log.Warn("knowledge fallback failed", zap.Error(err))
		}
	} else if a.phraser != nil {
		if phrased, err := a.phraser.Phrase(ctx, text, answer); err == nil && phrased != "" {
			answer = phrased
		} else if err != nil {
			a.log.Warn("phrasing failed, returning formatted answer", zap.Error(err))
		}
	}

	a.transcript.Append(text, answer)
	return answer, nil
}

// Student returns the session's student context.
func (a *Advisor) Student() session.Student {
	return a.student
}

// Transcript returns the session transcript.
func (a *Advisor) Transcript() *session.Transcript {
	return a.transcript
}
