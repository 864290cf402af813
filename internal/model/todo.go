package model

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("not found")

type Todo struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	Timestamp time.Time `json:"timestamp"`
	Color     string    `json:"color"`
	Completed bool      `json:"completed"`
	Priority  string    `json:"priority"`
}
