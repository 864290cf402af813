package httpapi

import (
	"net/url"

	"todo-api/internal/todo"
)

// parseFilterOptions reads the recognized list parameters. A key that is
// present with an empty value still counts as supplied; other keys are ignored.
func parseFilterOptions(q url.Values) todo.FilterOptions {
	return todo.FilterOptions{
		SearchKeyword: firstValue(q, "searchKeyword"),
		Priority:      firstValue(q, "filterByPriority"),
		Color:         firstValue(q, "filterByColor"),
		StartDate:     firstValue(q, "startDate"),
		EndDate:       firstValue(q, "endDate"),
		GroupBy:       firstValue(q, "groupBy"),
	}
}

func firstValue(q url.Values, key string) *string {
	vs, ok := q[key]
	if !ok || len(vs) == 0 {
		return nil
	}
	v := vs[0]
	return &v
}
