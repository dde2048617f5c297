// Package web renders the course pages as HTML.
package web

import (
	"embed"
	"html/template"
	"io"
	"net/http"
	"net/url"

	"github.com/pkg/errors"

	"github.com/askiada/go-causality/internal/lesson"
)

//go:embed templates
var files embed.FS

const layout = "templates/layout.html"

// Renderer executes the embedded templates. It is safe for concurrent use.
type Renderer struct {
	index  *template.Template
	lesson *template.Template
	error  *template.Template
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	parse := func(page string) (*template.Template, error) {
		t, err := template.ParseFS(files, layout, "templates/"+page)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to parse %s", page)
		}

		return t, nil
	}

	var (
		r   Renderer
		err error
	)

	if r.index, err = parse("index.html"); err != nil {
		return nil, err
	}

	if r.lesson, err = parse("lesson.html"); err != nil {
		return nil, err
	}

	if r.error, err = parse("error.html"); err != nil {
		return nil, err
	}

	return &r, nil
}

type page struct {
	Lessons []lesson.Lesson
	Active  string
}

// Index renders the table of contents.
func (r *Renderer) Index(w io.Writer, lessons []lesson.Lesson) error {
	return r.execute(r.index, w, page{Lessons: lessons})
}

// Lesson renders a computed page. query is echoed in the export links so they reproduce the run.
func (r *Renderer) Lesson(w io.Writer, lessons []lesson.Lesson, v *lesson.View, query url.Values) error {
	data := struct {
		page
		View  *lesson.View
		Query template.URL
	}{
		page:  page{Lessons: lessons, Active: v.Slug},
		View:  v,
		Query: template.URL(withSeed(query, v).Encode()), //nolint: gosec
	}

	return r.execute(r.lesson, w, data)
}

// Error renders an error page.
func (r *Renderer) Error(w io.Writer, lessons []lesson.Lesson, status int, message string) error {
	data := struct {
		page
		Status     int
		StatusText string
		Message    string
	}{
		page:       page{Lessons: lessons},
		Status:     status,
		StatusText: http.StatusText(status),
		Message:    message,
	}

	return r.execute(r.error, w, data)
}

func (r *Renderer) execute(t *template.Template, w io.Writer, data any) error {
	return errors.Wrap(t.ExecuteTemplate(w, "layout", data), "unable to render page")
}

// withSeed pins the seed the page actually used, so the export links return the same sample.
func withSeed(query url.Values, v *lesson.View) url.Values {
	res := url.Values{}
	for _, f := range v.Fields {
		res.Set(f.Name, f.Value)
	}

	for k, vs := range query {
		if _, ok := res[k]; !ok {
			res[k] = vs
		}
	}

	return res
}
