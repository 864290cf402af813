package httpapi

import (
	"errors"
	"net/http"
	"time"

	"todo-api/internal/model"
	"todo-api/internal/todo"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// parseTodoBody reads and validates a create/update body. It writes the 400
// response itself and reports false when the body is rejected.
func (s *Server) parseTodoBody(w http.ResponseWriter, r *http.Request) (todo.Input, bool) {
	body, err := readTodoBody(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return todo.Input{}, false
	}

	in, err := s.service.ParseInput(body)
	if err != nil {
		var ve *todo.ValidationError
		if errors.As(err, &ve) {
			writeValidationError(w, ve)
			return todo.Input{}, false
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return todo.Input{}, false
	}
	return in, true
}

// storeFailure logs err and answers 500 with the underlying message.
func (s *Server) storeFailure(w http.ResponseWriter, r *http.Request, status string, err error) {
	requestLogger(s.logger, r).Error(status, map[string]any{"error": err.Error()})
	writeJSON(w, http.StatusInternalServerError, map[string]string{
		"status": status,
		"error":  err.Error(),
	})
}

func (s *Server) handleCreateTodo(w http.ResponseWriter, r *http.Request) {
	in, ok := s.parseTodoBody(w, r)
	if !ok {
		return
	}

	created, err := s.service.Create(r.Context(), in)
	if err != nil {
		s.storeFailure(w, r, "Error with adding todo", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status": "Todo Added",
		"_id":    created.ID,
	})
}

func (s *Server) handleListTodos(w http.ResponseWriter, r *http.Request) {
	todos, err := s.service.List(r.Context())
	if err != nil {
		s.storeFailure(w, r, "Error with getting todos", err)
		return
	}
	if todos == nil {
		todos = []model.Todo{}
	}
	writeJSON(w, http.StatusOK, todos)
}

func (s *Server) handleQueryTodos(w http.ResponseWriter, r *http.Request) {
	opts := parseFilterOptions(r.URL.Query())

	res, err := s.service.Query(r.Context(), opts)
	if err != nil {
		switch {
		case errors.Is(err, todo.ErrNoMatch):
			writeError(w, http.StatusBadRequest, "Could not find match")
		case errors.Is(err, todo.ErrInvalidGroupBy):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			s.storeFailure(w, r, "Error with getting todo", err)
		}
		return
	}

	if res.Grouped() {
		writeJSON(w, http.StatusOK, res.Groups)
		return
	}
	writeJSON(w, http.StatusOK, res.Todos)
}

func (s *Server) handleUpdateTodo(w http.ResponseWriter, r *http.Request) {
	in, ok := s.parseTodoBody(w, r)
	if !ok {
		return
	}

	if _, err := s.service.Update(r.Context(), r.PathValue("id"), in); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			writeError(w, http.StatusBadRequest, "Todo not found")
			return
		}
		s.storeFailure(w, r, "Error with updating todo", err)
		return
	}

	writeStatus(w, "Todo Updated")
}

func (s *Server) handleDeleteTodo(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Delete(r.Context(), r.PathValue("id")); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			writeError(w, http.StatusBadRequest, "Todo not found")
			return
		}
		s.storeFailure(w, r, "Error with deleting todo", err)
		return
	}

	writeStatus(w, "Todo deleted!")
}
