package todo

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"todo-api/internal/model"
)

const (
	GroupByMonth = "month"
	GroupByYear  = "year"
)

// FilterOptions holds the recognized list-query parameters. A nil field means
// the parameter was not supplied; a non-nil empty string is still applied.
type FilterOptions struct {
	SearchKeyword *string
	Priority      *string
	Color         *string
	StartDate     *string
	EndDate       *string
	GroupBy       *string
}

func (o FilterOptions) empty() bool {
	return o.SearchKeyword == nil && o.Priority == nil && o.Color == nil &&
		o.StartDate == nil && o.EndDate == nil
}

// Projection is the reduced shape of a todo inside a group bucket.
type Projection struct {
	Title string `json:"todo_title"`
	Month int    `json:"month"`
	Year  int    `json:"year"`
}

// Result is either a filtered list of todos or, when grouping was requested,
// buckets keyed by the decimal month or year.
type Result struct {
	Todos  []model.Todo
	Groups map[string][]Projection
}

func (r Result) Grouped() bool {
	return r.Groups != nil
}

// Apply filters todos with every supplied predicate and optionally groups the
// survivors. An empty filtered set is ErrNoMatch, reported before the groupBy
// value is checked. Calendar fields are read in loc.
func Apply(todos []model.Todo, opts FilterOptions, loc *time.Location) (Result, error) {
	if loc == nil {
		loc = time.UTC
	}

	m := newMatcher(opts, loc)
	out := make([]model.Todo, 0, len(todos))
	for _, t := range todos {
		if m.match(t) {
			out = append(out, t)
		}
	}

	if len(out) == 0 {
		return Result{}, ErrNoMatch
	}

	if opts.GroupBy == nil {
		return Result{Todos: out}, nil
	}

	var key func(Projection) int
	switch *opts.GroupBy {
	case GroupByMonth:
		key = func(p Projection) int { return p.Month }
	case GroupByYear:
		key = func(p Projection) int { return p.Year }
	default:
		return Result{}, ErrInvalidGroupBy
	}

	groups := make(map[string][]Projection)
	for _, t := range out {
		ts := t.Timestamp.In(loc)
		p := Projection{Title: t.Title, Month: int(ts.Month()), Year: ts.Year()}
		k := strconv.Itoa(key(p))
		groups[k] = append(groups[k], p)
	}
	return Result{Groups: groups}, nil
}

type matcher struct {
	opts FilterOptions
	loc  *time.Location

	color   string
	colorOK bool
}

func newMatcher(opts FilterOptions, loc *time.Location) matcher {
	m := matcher{opts: opts, loc: loc}
	if opts.Color != nil {
		m.color, m.colorOK = KeywordHex(*opts.Color)
	}
	return m
}

func (m matcher) match(t model.Todo) bool {
	if m.opts.empty() {
		return true
	}
	if m.opts.SearchKeyword != nil && !strings.Contains(t.Title, *m.opts.SearchKeyword) {
		return false
	}
	if m.opts.Priority != nil && t.Priority != *m.opts.Priority {
		return false
	}
	if m.opts.Color != nil && (!m.colorOK || t.Color != m.color) {
		return false
	}
	if m.opts.StartDate != nil || m.opts.EndDate != nil {
		d := FilterDate(t.Timestamp, m.loc)
		if m.opts.StartDate != nil && *m.opts.StartDate > d {
			return false
		}
		if m.opts.EndDate != nil && *m.opts.EndDate < d {
			return false
		}
	}
	return true
}

// FilterDate renders the date used by startDate/endDate comparisons. The day
// component is day-of-month minus one, so the first of a month renders as 00.
func FilterDate(ts time.Time, loc *time.Location) string {
	t := ts.In(loc)
	return fmt.Sprintf("%d-%02d-%02d", t.Year(), int(t.Month()), t.Day()-1)
}
