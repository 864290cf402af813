package httpapi

import (
	"io"
	"net/http"
	"time"

	"todo-api/internal/observability/jsonlog"
	"todo-api/internal/todo"
)

type Options struct {
	Logger         *jsonlog.Logger
	RequestTimeout time.Duration
}

type Server struct {
	service *todo.Service
	logger  *jsonlog.Logger
	handler http.Handler
}

func NewServer(service *todo.Service, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = jsonlog.New(io.Discard)
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 3 * time.Second
	}

	srv := &Server{
		service: service,
		logger:  opts.Logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", srv.handleHealth)
	mux.HandleFunc("GET /readyz", ReadyzHandler(service))

	mux.HandleFunc("POST /todo", srv.handleCreateTodo)
	mux.HandleFunc("GET /todos", srv.handleListTodos)
	mux.HandleFunc("GET /todo", srv.handleQueryTodos)
	mux.HandleFunc("PUT /todo/{id}", srv.handleUpdateTodo)
	mux.HandleFunc("DELETE /todo/{id}", srv.handleDeleteTodo)

	srv.handler = WithRequestID(
		Logging(opts.Logger)(
			Recover(opts.Logger)(
				Timeout(opts.RequestTimeout)(mux),
			),
		),
	)
	return srv
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}
