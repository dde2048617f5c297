package api

import (
	"bytes"
	"context"
	"net/http"

	"github.com/go-faster/jx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/askiada/go-causality/internal/lesson"
	"github.com/askiada/go-causality/internal/web"
	"github.com/askiada/go-causality/pkg/logger"
)

const (
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeJSON = "application/json"
	contentTypeCSV  = "text/csv; charset=utf-8"
)

type handler struct {
	book     *lesson.Book
	renderer *web.Renderer
}

// statusOf maps lesson errors onto HTTP statuses.
func statusOf(err error) int {
	switch {
	case errors.Is(err, lesson.ErrUnknownLesson):
		return http.StatusNotFound
	case errors.Is(err, lesson.ErrBadParameter):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// message hides internal failures from the client.
func message(status int, err error) string {
	if status == http.StatusInternalServerError {
		return "the page could not be computed"
	}

	return err.Error()
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", contentTypeJSON)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (h *handler) index(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.renderer.Index(&buf, h.book.Lessons()); err != nil {
		h.htmlError(w, r, errors.Wrap(err, "unable to render index"))

		return
	}

	w.Header().Set("Content-Type", contentTypeHTML)
	_, _ = buf.WriteTo(w)
}

func (h *handler) page(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	v, err := h.book.Run(r.Context(), r.PathValue("slug"), query)
	if err != nil {
		h.htmlError(w, r, err)

		return
	}

	var buf bytes.Buffer
	if err := h.renderer.Lesson(&buf, h.book.Lessons(), v, query); err != nil {
		h.htmlError(w, r, errors.Wrapf(err, "unable to render %s", v.Slug))

		return
	}

	w.Header().Set("Content-Type", contentTypeHTML)
	_, _ = buf.WriteTo(w)
}

func (h *handler) list(w http.ResponseWriter, _ *http.Request) {
	e := jx.GetEncoder()
	defer jx.PutEncoder(e)

	e.Arr(func(e *jx.Encoder) {
		for _, l := range h.book.Lessons() {
			e.Obj(func(e *jx.Encoder) {
				e.Field("slug", func(e *jx.Encoder) { e.Str(l.Slug) })
				e.Field("title", func(e *jx.Encoder) { e.Str(l.Title) })
				e.Field("icon", func(e *jx.Encoder) { e.Str(l.Icon) })
				e.Field("summary", func(e *jx.Encoder) { e.Str(l.Summary) })
			})
		}
	})

	w.Header().Set("Content-Type", contentTypeJSON)
	_, _ = w.Write(e.Bytes())
}

func (h *handler) json(w http.ResponseWriter, r *http.Request) {
	v, err := h.book.Run(r.Context(), r.PathValue("slug"), r.URL.Query())
	if err != nil {
		h.jsonError(w, r, err)

		return
	}

	e := jx.GetEncoder()
	defer jx.PutEncoder(e)

	v.Encode(e)

	w.Header().Set("Content-Type", contentTypeJSON)
	_, _ = w.Write(e.Bytes())
}

func (h *handler) csv(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	v, err := h.book.Run(r.Context(), slug, r.URL.Query())
	if err != nil {
		h.jsonError(w, r, err)

		return
	}

	if v.Data == nil {
		h.jsonError(w, r, errors.Wrapf(lesson.ErrUnknownLesson, "%s has no dataset", slug))

		return
	}

	var buf bytes.Buffer
	if err := v.Data.WriteCSV(&buf); err != nil {
		h.jsonError(w, r, errors.Wrap(err, "unable to write csv"))

		return
	}

	w.Header().Set("Content-Type", contentTypeCSV)
	w.Header().Set("Content-Disposition", `attachment; filename="`+slug+`.csv"`)
	_, _ = buf.WriteTo(w)
}

func (h *handler) htmlError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	h.log(r, status, err)

	var buf bytes.Buffer
	if rerr := h.renderer.Error(&buf, h.book.Lessons(), status, message(status, err)); rerr != nil {
		logger.Error(r.Context(), "unable to render error page", zap.Error(rerr))
		http.Error(w, http.StatusText(status), status)

		return
	}

	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (h *handler) jsonError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	h.log(r, status, err)

	e := jx.GetEncoder()
	defer jx.PutEncoder(e)

	e.Obj(func(e *jx.Encoder) {
		e.Field("error", func(e *jx.Encoder) { e.Str(message(status, err)) })
	})

	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_, _ = w.Write(e.Bytes())
}

func (h *handler) log(r *http.Request, status int, err error) {
	if status >= http.StatusInternalServerError {
		logger.Error(r.Context(), "request failed", zap.String("path", r.URL.Path), zap.Error(err))

		return
	}

	logger.Debug(r.Context(), "request rejected", zap.String("path", r.URL.Path), zap.Error(err))
}
