package todo

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"todo-api/internal/model"
)

func ptr(s string) *string { return &s }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleTodos() []model.Todo {
	return []model.Todo{
		{ID: "a", Title: "A", Timestamp: day(2023, 1, 5), Priority: "low", Color: "#ff0000", Completed: false},
		{ID: "b", Title: "B", Timestamp: day(2023, 2, 10), Priority: "high", Color: "#00ff00", Completed: true},
	}
}

func titles(todos []model.Todo) []string {
	out := make([]string, 0, len(todos))
	for _, t := range todos {
		out = append(out, t.Title)
	}
	return out
}

func TestApply_NoOptionsReturnsAll(t *testing.T) {
	res, err := Apply(sampleTodos(), FilterOptions{}, time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Grouped() {
		t.Fatalf("expected plain list")
	}
	if got := titles(res.Todos); !reflect.DeepEqual(got, []string{"A", "B"}) {
		t.Fatalf("titles=%v", got)
	}
}

func TestApply_Predicates(t *testing.T) {
	todos := []model.Todo{
		{Title: "buy food", Priority: "high", Color: "#ff0000", Timestamp: day(2023, 3, 1)},
		{Title: "foo bar", Priority: "high", Color: "#00ff00", Timestamp: day(2023, 3, 2)},
		{Title: "Foo baz", Priority: "low", Color: "#ff0000", Timestamp: day(2023, 3, 3)},
		{Title: "walk", Priority: "high", Color: "#0000ff", Timestamp: day(2023, 3, 4)},
	}

	tests := []struct {
		name string
		opts FilterOptions
		want []string
	}{
		{"priority", FilterOptions{Priority: ptr("high")}, []string{"buy food", "foo bar", "walk"}},
		{"keyword is case sensitive", FilterOptions{SearchKeyword: ptr("foo")}, []string{"buy food", "foo bar"}},
		{"priority and keyword", FilterOptions{Priority: ptr("high"), SearchKeyword: ptr("foo")}, []string{"buy food", "foo bar"}},
		{"color keyword", FilterOptions{Color: ptr("red")}, []string{"buy food", "Foo baz"}},
		{"color and priority", FilterOptions{Color: ptr("red"), Priority: ptr("low")}, []string{"Foo baz"}},
		{"empty keyword matches all", FilterOptions{SearchKeyword: ptr("")}, []string{"buy food", "foo bar", "Foo baz", "walk"}},
		{"lime is 00ff00", FilterOptions{Color: ptr("lime")}, []string{"foo bar"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := Apply(todos, tc.opts, time.UTC)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := titles(res.Todos); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got=%v want=%v", got, tc.want)
			}
		})
	}
}

func TestApply_NoMatch(t *testing.T) {
	tests := []struct {
		name  string
		todos []model.Todo
		opts  FilterOptions
	}{
		{"keyword", sampleTodos(), FilterOptions{SearchKeyword: ptr("doesnotexist")}},
		{"empty store", nil, FilterOptions{}},
		{"unknown color keyword", sampleTodos(), FilterOptions{Color: ptr("notacolor")}},
		{"empty priority", sampleTodos(), FilterOptions{Priority: ptr("")}},
		{"no match wins over bad groupBy", sampleTodos(), FilterOptions{SearchKeyword: ptr("zzz"), GroupBy: ptr("bogus")}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Apply(tc.todos, tc.opts, time.UTC)
			if !errors.Is(err, ErrNoMatch) {
				t.Fatalf("expected ErrNoMatch, got %v", err)
			}
		})
	}
}

func TestApply_ColorComparisonIsExact(t *testing.T) {
	todos := []model.Todo{{Title: "upper", Color: "#FF0000", Timestamp: day(2023, 1, 1)}}
	if _, err := Apply(todos, FilterOptions{Color: ptr("red")}, time.UTC); !errors.Is(err, ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch, got %v", err)
	}
}

func TestApply_DateRangeUsesShiftedDay(t *testing.T) {
	todos := sampleTodos() // A derives 2023-01-04, B derives 2023-02-09

	tests := []struct {
		name string
		opts FilterOptions
		want []string
	}{
		{"end on shifted day keeps A", FilterOptions{EndDate: ptr("2023-01-04")}, []string{"A"}},
		{"start on stored day drops A", FilterOptions{StartDate: ptr("2023-01-05")}, []string{"B"}},
		{"start on shifted day keeps A", FilterOptions{StartDate: ptr("2023-01-04")}, []string{"A", "B"}},
		{"range", FilterOptions{StartDate: ptr("2023-01-01"), EndDate: ptr("2023-02-09")}, []string{"A", "B"}},
		{"range excludes B", FilterOptions{StartDate: ptr("2023-01-01"), EndDate: ptr("2023-02-08")}, []string{"A"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := Apply(todos, tc.opts, time.UTC)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := titles(res.Todos); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got=%v want=%v", got, tc.want)
			}
		})
	}
}

func TestFilterDate(t *testing.T) {
	tests := []struct {
		ts   time.Time
		loc  *time.Location
		want string
	}{
		{day(2023, 1, 5), time.UTC, "2023-01-04"},
		{day(2023, 2, 1), time.UTC, "2023-02-00"},
		{day(2023, 12, 31), time.UTC, "2023-12-30"},
		{time.Date(2023, 1, 5, 2, 0, 0, 0, time.UTC), time.FixedZone("EST", -5*3600), "2023-01-03"},
	}
	for _, tc := range tests {
		if got := FilterDate(tc.ts, tc.loc); got != tc.want {
			t.Fatalf("FilterDate(%s)=%q want %q", tc.ts, got, tc.want)
		}
	}
}

func TestApply_GroupByMonth(t *testing.T) {
	res, err := Apply(sampleTodos(), FilterOptions{GroupBy: ptr("month")}, time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string][]Projection{
		"1": {{Title: "A", Month: 1, Year: 2023}},
		"2": {{Title: "B", Month: 2, Year: 2023}},
	}
	if !reflect.DeepEqual(res.Groups, want) {
		t.Fatalf("groups=%v", res.Groups)
	}
}

func TestApply_GroupByYearKeepsOrder(t *testing.T) {
	todos := append(sampleTodos(), model.Todo{Title: "C", Timestamp: day(2024, 1, 5), Priority: "low"})

	res, err := Apply(todos, FilterOptions{GroupBy: ptr("year")}, time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string][]Projection{
		"2023": {{Title: "A", Month: 1, Year: 2023}, {Title: "B", Month: 2, Year: 2023}},
		"2024": {{Title: "C", Month: 1, Year: 2024}},
	}
	if !reflect.DeepEqual(res.Groups, want) {
		t.Fatalf("groups=%v", res.Groups)
	}
}

func TestApply_GroupAfterFilter(t *testing.T) {
	res, err := Apply(sampleTodos(), FilterOptions{Priority: ptr("high"), GroupBy: ptr("year")}, time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string][]Projection{"2023": {{Title: "B", Month: 2, Year: 2023}}}
	if !reflect.DeepEqual(res.Groups, want) {
		t.Fatalf("groups=%v", res.Groups)
	}
}

func TestApply_InvalidGroupBy(t *testing.T) {
	_, err := Apply(sampleTodos(), FilterOptions{GroupBy: ptr("bogus")}, time.UTC)
	if !errors.Is(err, ErrInvalidGroupBy) {
		t.Fatalf("expected ErrInvalidGroupBy, got %v", err)
	}
	if errors.Is(err, ErrNoMatch) {
		t.Fatalf("invalid groupBy must not look like no match")
	}
}

func TestKeywordHex(t *testing.T) {
	tests := map[string]string{
		"red":           "#ff0000",
		"white":         "#ffffff",
		"navy":          "#000080",
		"aqua":          "#00ffff",
		"grey":          "#808080",
		"rebeccapurple": "#663399",
	}
	for kw, want := range tests {
		got, ok := KeywordHex(kw)
		if !ok || got != want {
			t.Fatalf("KeywordHex(%q)=%q,%v want %q", kw, got, ok, want)
		}
	}
	if _, ok := KeywordHex("Red"); ok {
		t.Fatalf("keywords are matched exactly")
	}
}

func TestApply_CSSLevel4Keyword(t *testing.T) {
	todos := []model.Todo{
		{Title: "purple", Color: "#663399", Timestamp: day(2023, 4, 1)},
		{Title: "red", Color: "#ff0000", Timestamp: day(2023, 4, 2)},
	}

	res, err := Apply(todos, FilterOptions{Color: ptr("rebeccapurple")}, time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Todos) != 1 || res.Todos[0].Title != "purple" {
		t.Fatalf("got %+v", res.Todos)
	}
}
