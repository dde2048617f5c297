// Package lesson implements the pages of the course. Every page reads its parameters, runs a
// small simulation and returns a View that the web layer renders as HTML or JSON.
package lesson

import (
	"context"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/askiada/go-causality/pkg/discovery"
	"github.com/askiada/go-causality/pkg/logger"
	"github.com/askiada/go-causality/pkg/pipeline/model"
)

var (
	// ErrBadParameter is returned when a page parameter cannot be parsed or is not one of the
	// allowed values.
	ErrBadParameter = errors.New("lesson: bad parameter")
	// ErrUnknownLesson is returned for a slug no page answers to.
	ErrUnknownLesson = errors.New("lesson: unknown lesson")
)

// DefaultAlpha is the significance level of the discovery pages when Config.Alpha is not set.
const DefaultAlpha = 0.05

type runFunc func(ctx context.Context, b *Book, p *Params, v *View) error

// Lesson is one page of the course.
type Lesson struct {
	Slug    string
	Title   string
	Icon    string
	Summary string

	run runFunc
}

// Config tunes the engine behind the pages.
type Config struct {
	// Alpha is the default significance level of the discovery pages.
	Alpha float64
	// Discovery options are passed to every PC run.
	Discovery []discovery.Option
	// Pipeline options are attached to replicate sweeps.
	Pipeline []model.PipelineOption
}

// Book holds the ordered lessons.
type Book struct {
	cfg     Config
	lessons []Lesson
	bySlug  map[string]int
}

// New creates the course.
func New(cfg Config) *Book {
	if cfg.Alpha <= 0 || cfg.Alpha >= 1 {
		cfg.Alpha = DefaultAlpha
	}

	b := &Book{
		cfg: cfg,
		lessons: []Lesson{
			introduction,
			interventions,
			counterfactuals,
			mechanisms,
			confounding,
			markov,
			pcAlgorithm,
			hiddenConfounding,
			conclusion,
		},
	}

	b.bySlug = make(map[string]int, len(b.lessons))
	for i, l := range b.lessons {
		b.bySlug[l.Slug] = i
	}

	return b
}

// Lessons returns the pages in course order.
func (b *Book) Lessons() []Lesson {
	return append([]Lesson(nil), b.lessons...)
}

// Find returns the lesson for slug.
func (b *Book) Find(slug string) (Lesson, bool) {
	i, ok := b.bySlug[slug]
	if !ok {
		return Lesson{}, false
	}

	return b.lessons[i], true
}

// Run computes the page slug with the given form values. Missing values take their defaults and
// numbers are clamped to their range.
func (b *Book) Run(ctx context.Context, slug string, values url.Values) (*View, error) {
	i, ok := b.bySlug[slug]
	if !ok {
		return nil, errors.Wrap(ErrUnknownLesson, slug)
	}

	l := b.lessons[i]
	start := time.Now()

	v := &View{Slug: l.Slug, Title: l.Title, Icon: l.Icon, Index: i}
	if i > 0 {
		v.Previous = &b.lessons[i-1]
	}

	if i < len(b.lessons)-1 {
		v.Next = &b.lessons[i+1]
	}

	p := NewParams(values)

	if err := l.run(ctx, b, p, v); err != nil {
		return nil, errors.Wrapf(err, "unable to run %s", slug)
	}

	if err := p.Err(); err != nil {
		return nil, err
	}

	v.Fields = p.Fields()

	logger.Debug(ctx, "lesson computed",
		zap.String("lesson", slug),
		zap.Uint64("seed", v.Seed),
		zap.Duration("duration", time.Since(start)),
	)

	return v, nil
}
