package lesson

import (
	"math"
	"strconv"

	"github.com/go-faster/jx"

	"github.com/askiada/go-causality/pkg/cgraph"
	"github.com/askiada/go-causality/pkg/dataset"
	"github.com/askiada/go-causality/pkg/stats"
)

// Note levels, from the least to the most alarming.
const (
	NoteInfo    = "info"
	NoteSuccess = "success"
	NoteWarning = "warning"
	NoteError   = "error"
)

// View is the computed content of a page.
type View struct {
	Slug  string
	Title string
	Icon  string
	Index int
	// Seed drove every random draw of the page. Seeded is false for pages without randomness.
	Seed     uint64
	Seeded   bool
	Fields   []Field
	Sections []Section
	// Data is the main sample of the page, exported as CSV. It is nil on static pages.
	Data *dataset.Dataset

	Previous *Lesson
	Next     *Lesson
}

// Section is a block of a page.
type Section struct {
	Heading    string
	Paragraphs []string
	Equations  []string
	Notes      []Note
	Tables     []Table
	Graphs     []Graph
	Histograms []Histogram
	// Trace holds algorithm log lines.
	Trace []string
}

// Note is a highlighted message.
type Note struct {
	Level string
	Text  string
}

// Table is a small grid of formatted cells.
type Table struct {
	Caption string
	Header  []string
	Rows    [][]string
}

// Graph is a causal graph rendered as DOT.
type Graph struct {
	Title string
	DOT   string
	// Edges is the graph in the compact text form, for example "A --> B; B o-> C".
	Edges string
}

// Histogram is a binned sample.
type Histogram struct {
	Title string
	Bins  []Bin
}

// Bin is one bar of a histogram. Width is the bar length in percent of the tallest bar.
type Bin struct {
	Low   float64
	High  float64
	Count float64
	Width float64
}

func (v *View) add(s Section) {
	v.Sections = append(v.Sections, s)
}

func (v *View) seed(p *Params) uint64 {
	v.Seed = p.Seed()
	v.Seeded = true

	return v.Seed
}

func newHistogram(title string, xs []float64, bins int) (Histogram, error) {
	h, err := stats.Histogram(xs, bins)
	if err != nil {
		return Histogram{}, err
	}

	tallest := 0.0
	for _, c := range h.Counts {
		tallest = math.Max(tallest, c)
	}

	res := Histogram{Title: title, Bins: make([]Bin, len(h.Counts))}

	for i, c := range h.Counts {
		res.Bins[i] = Bin{Low: h.Edges[i], High: h.Edges[i+1], Count: c}
		if tallest > 0 {
			res.Bins[i].Width = 100 * c / tallest
		}
	}

	return res, nil
}

func dagGraph(title string, d *cgraph.DAG) (Graph, error) {
	dot, err := cgraph.DAGString(d)
	if err != nil {
		return Graph{}, err
	}

	return Graph{Title: title, DOT: dot, Edges: cgraph.AsMixed(d).String()}, nil
}

func mixedGraph(title string, m *cgraph.Mixed) (Graph, error) {
	dot, err := cgraph.MixedString(m)
	if err != nil {
		return Graph{}, err
	}

	return Graph{Title: title, DOT: dot, Edges: m.String()}, nil
}

func f2(x float64) string { return strconv.FormatFloat(x, 'f', 2, 64) }

func f3(x float64) string { return strconv.FormatFloat(x, 'f', 3, 64) }

func f4(x float64) string { return strconv.FormatFloat(x, 'f', 4, 64) }

// Encode writes the view as JSON. The dataset is not included, it is served as CSV.
func (v *View) Encode(e *jx.Encoder) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("slug", func(e *jx.Encoder) { e.Str(v.Slug) })
		e.Field("title", func(e *jx.Encoder) { e.Str(v.Title) })
		e.Field("icon", func(e *jx.Encoder) { e.Str(v.Icon) })

		if v.Seeded {
			e.Field("seed", func(e *jx.Encoder) { e.UInt64(v.Seed) })
		}

		e.Field("params", func(e *jx.Encoder) {
			e.Obj(func(e *jx.Encoder) {
				for _, f := range v.Fields {
					e.Field(f.Name, func(e *jx.Encoder) { e.Str(f.Value) })
				}
			})
		})
		e.Field("sections", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, s := range v.Sections {
					s.encode(e)
				}
			})
		})

		if v.Data != nil {
			e.Field("rows", func(e *jx.Encoder) { e.Int(v.Data.Len()) })
		}
	})
}

func (s Section) encode(e *jx.Encoder) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("heading", func(e *jx.Encoder) { e.Str(s.Heading) })
		encodeStrings(e, "paragraphs", s.Paragraphs)
		encodeStrings(e, "equations", s.Equations)
		encodeStrings(e, "trace", s.Trace)

		if len(s.Notes) > 0 {
			e.Field("notes", func(e *jx.Encoder) {
				e.Arr(func(e *jx.Encoder) {
					for _, n := range s.Notes {
						e.Obj(func(e *jx.Encoder) {
							e.Field("level", func(e *jx.Encoder) { e.Str(n.Level) })
							e.Field("text", func(e *jx.Encoder) { e.Str(n.Text) })
						})
					}
				})
			})
		}

		if len(s.Tables) > 0 {
			e.Field("tables", func(e *jx.Encoder) {
				e.Arr(func(e *jx.Encoder) {
					for _, t := range s.Tables {
						t.encode(e)
					}
				})
			})
		}

		if len(s.Graphs) > 0 {
			e.Field("graphs", func(e *jx.Encoder) {
				e.Arr(func(e *jx.Encoder) {
					for _, g := range s.Graphs {
						e.Obj(func(e *jx.Encoder) {
							e.Field("title", func(e *jx.Encoder) { e.Str(g.Title) })
							e.Field("edges", func(e *jx.Encoder) { e.Str(g.Edges) })
							e.Field("dot", func(e *jx.Encoder) { e.Str(g.DOT) })
						})
					}
				})
			})
		}

		if len(s.Histograms) > 0 {
			e.Field("histograms", func(e *jx.Encoder) {
				e.Arr(func(e *jx.Encoder) {
					for _, h := range s.Histograms {
						h.encode(e)
					}
				})
			})
		}
	})
}

func (t Table) encode(e *jx.Encoder) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("caption", func(e *jx.Encoder) { e.Str(t.Caption) })
		e.Field("header", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, h := range t.Header {
					e.Str(h)
				}
			})
		})
		e.Field("rows", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, row := range t.Rows {
					e.Arr(func(e *jx.Encoder) {
						for _, cell := range row {
							e.Str(cell)
						}
					})
				}
			})
		})
	})
}

func (h Histogram) encode(e *jx.Encoder) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("title", func(e *jx.Encoder) { e.Str(h.Title) })
		e.Field("edges", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for i, b := range h.Bins {
					if i == 0 {
						e.Float64(b.Low)
					}

					e.Float64(b.High)
				}
			})
		})
		e.Field("counts", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, b := range h.Bins {
					e.Float64(b.Count)
				}
			})
		})
	})
}

func encodeStrings(e *jx.Encoder, name string, values []string) {
	if len(values) == 0 {
		return
	}

	e.Field(name, func(e *jx.Encoder) {
		e.Arr(func(e *jx.Encoder) {
			for _, s := range values {
				e.Str(s)
			}
		})
	})
}
