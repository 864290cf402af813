package todo

import "errors"

var (
	ErrNoMatch        = errors.New("could not find match")
	ErrInvalidGroupBy = errors.New("groupBy must be month or year")
)
