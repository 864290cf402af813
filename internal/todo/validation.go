package todo

import (
	_ "embed"
	"encoding/json"
	"errors"
	"strings"
	"time"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"todo-api/internal/model"
)

//go:embed todo.schema.json
var todoSchemaJSON string

var todoSchema = jsonschema.MustCompileString("todo.schema.json", todoSchemaJSON)

// Fields in the order they are reported.
var fieldOrder = []string{"title", "timestamp", "color", "completed", "priority"}

var fieldMessages = map[string]string{
	"title":     "title is empty",
	"timestamp": "Invalid timestamp",
	"color":     "Invalid Color field",
	"completed": "Invalid completed status",
	"priority":  "priority is empty",
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every field of a request body that failed validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Input is a validated create/update body.
type Input struct {
	Title     string
	Timestamp time.Time
	Color     string
	Completed bool
	Priority  string
}

func (in Input) todo(id string) model.Todo {
	return model.Todo{
		ID:        id,
		Title:     in.Title,
		Timestamp: in.Timestamp,
		Color:     in.Color,
		Completed: in.Completed,
		Priority:  in.Priority,
	}
}

// ParseInput validates a JSON todo body against the todo schema and returns
// the normalized input. Timestamps without an explicit offset are read in loc.
// Any failure is a *ValidationError.
func ParseInput(body []byte, loc *time.Location) (Input, error) {
	if loc == nil {
		loc = time.UTC
	}

	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return Input{}, &ValidationError{Fields: []FieldError{{Field: "body", Message: "invalid JSON"}}}
	}

	bad := make(map[string]bool)
	if err := todoSchema.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			return Input{}, &ValidationError{Fields: []FieldError{{Field: "body", Message: err.Error()}}}
		}
		collectFieldErrors(ve, doc, bad)
	}
	if bad["body"] {
		return Input{}, &ValidationError{Fields: []FieldError{{Field: "body", Message: "body must be a JSON object"}}}
	}

	obj, _ := doc.(map[string]any)
	in := Input{
		Title:    strings.TrimSpace(stringField(obj, "title")),
		Color:    strings.TrimSpace(stringField(obj, "color")),
		Priority: strings.TrimSpace(stringField(obj, "priority")),
	}
	in.Completed, _ = obj["completed"].(bool)

	if !bad["timestamp"] {
		ts, err := parseTimestamp(stringField(obj, "timestamp"), loc)
		if err != nil {
			bad["timestamp"] = true
		}
		in.Timestamp = ts
	}

	if len(bad) > 0 {
		ve := &ValidationError{}
		for _, f := range fieldOrder {
			if bad[f] {
				ve.Fields = append(ve.Fields, FieldError{Field: f, Message: fieldMessages[f]})
			}
		}
		return Input{}, ve
	}
	return in, nil
}

func collectFieldErrors(ve *jsonschema.ValidationError, doc any, bad map[string]bool) {
	if len(ve.Causes) > 0 {
		for _, cause := range ve.Causes {
			collectFieldErrors(cause, doc, bad)
		}
		return
	}

	if field := topLevelField(ve.InstanceLocation); field != "" {
		if _, known := fieldMessages[field]; known {
			bad[field] = true
		}
		return
	}

	if strings.HasSuffix(ve.KeywordLocation, "/required") {
		obj, _ := doc.(map[string]any)
		for _, f := range fieldOrder {
			if _, ok := obj[f]; !ok {
				bad[f] = true
			}
		}
		return
	}

	bad["body"] = true
}

func topLevelField(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if i := strings.IndexByte(ptr, '/'); i >= 0 {
		ptr = ptr[:i]
	}
	ptr = strings.ReplaceAll(ptr, "~1", "/")
	return strings.ReplaceAll(ptr, "~0", "~")
}

func stringField(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}

var (
	offsetLayouts = []string{
		"2006-01-02T15:04:05Z07:00",
		"2006-01-02T15:04:05Z0700",
		"2006-01-02T15:04:05Z07",
		"2006-01-02T15:04Z07:00",
		"2006-01-02T15:04Z0700",
		"2006-01-02T15:04Z07",
		"2006-01-02T15Z07:00",
		"2006-01-02T15Z0700",
		"2006-01-02T15Z07",
		"2006-01-02Z07:00",
		"2006-01-02Z0700",
		"2006-01-02Z07",
	}
	localLayouts = []string{
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02T15",
		"2006-01-02",
		"2006-01",
		"2006",
	}
)

var errInvalidTimestamp = errors.New("invalid timestamp")

// parseTimestamp reads an ISO-8601 date or date-time. Reduced precision
// forms (2023, 2023-01) mean the first instant of that period. The result is
// in UTC.
func parseTimestamp(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) > 10 && s[10] == ' ' {
		s = s[:10] + "T" + s[11:]
	}
	if strings.HasSuffix(s, "z") {
		s = s[:len(s)-1] + "Z"
	}

	for _, layout := range offsetLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errInvalidTimestamp
}
