package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"capstone-blog/internal/blog"
	"capstone-blog/internal/metrics"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type Server struct {
	blog     *blog.Service
	logger   *zap.Logger
	metrics  *metrics.Metrics
	renderer *Renderer
	router   *mux.Router
	server   *http.Server
}

func NewServer(svc *blog.Service, logger *zap.Logger, m *metrics.Metrics) (*Server, error) {
	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}
	s := &Server{
		blog:     svc,
		logger:   logger,
		metrics:  m,
		renderer: renderer,
		router:   mux.NewRouter(),
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	// Static Files (CSS)
	s.router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", staticHandler())).Name("static")
	s.router.Handle("/metrics", s.metrics.Handler()).Methods("GET").Name("metrics")

	// App Routes
	s.router.HandleFunc("/", s.handleIndex).Methods("GET").Name("index")
	s.router.HandleFunc("/posts", s.handleCreate).Methods("POST").Name("create")
	s.router.HandleFunc("/posts/{id:[0-9]+}", s.handleShow).Methods("GET").Name("show")
	s.router.HandleFunc("/posts/{id:[0-9]+}/edit", s.handleEdit).Methods("GET").Name("edit")
	s.router.HandleFunc("/posts/{id:[0-9]+}", s.handleUpdate).Methods("PUT").Name("update")
	s.router.HandleFunc("/posts/{id:[0-9]+}", s.handleDelete).Methods("DELETE").Name("delete")

	// Anything unmatched, including a known path with the wrong method, is a 404 page
	s.router.NotFoundHandler = http.HandlerFunc(s.handleNotFound)
	s.router.MethodNotAllowedHandler = http.HandlerFunc(s.handleNotFound)
}

// Handler is the full middleware chain wrapped around the router.
func (s *Server) Handler() http.Handler {
	return methodOverride(s.instrument(s.router))
}

// Start launches the HTTP server
func (s *Server) Start(addr string) error {
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	s.logger.Info("Web server listening", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down
func (s *Server) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	out, err := s.blog.List(r.Context())
	s.respond(w, r, out, err)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	out, err := s.blog.Create(r.Context(), r.FormValue("title"), r.FormValue("content"))
	s.respond(w, r, out, err)
	s.refreshPostCount(r.Context())
}

func (s *Server) handleShow(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		s.handleNotFound(w, r)
		return
	}
	out, err := s.blog.Show(r.Context(), id)
	s.respond(w, r, out, err)
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		s.handleNotFound(w, r)
		return
	}
	out, err := s.blog.EditForm(r.Context(), id)
	s.respond(w, r, out, err)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		s.handleNotFound(w, r)
		return
	}
	out, err := s.blog.Update(r.Context(), id, r.FormValue("title"), r.FormValue("content"))
	s.respond(w, r, out, err)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		s.handleNotFound(w, r)
		return
	}
	out, err := s.blog.Delete(r.Context(), id)
	s.respond(w, r, out, err)
	s.refreshPostCount(r.Context())
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, s.blog.NotFound(), nil)
}

// respond turns an outcome into an HTTP response.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, out blog.Outcome, err error) {
	if err != nil {
		s.logger.Error("Request failed", zap.String("path", r.URL.Path), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	switch out.Kind {
	case blog.KindRedirect:
		http.Redirect(w, r, out.Location, http.StatusSeeOther)
		return
	case blog.KindNotFound:
		out = s.blog.NotFound()
	}

	if err := s.renderer.Render(w, httpStatus(out.Status), out); err != nil {
		s.logger.Error("Template error", zap.String("view", out.View), zap.Error(err))
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}

func (s *Server) refreshPostCount(ctx context.Context) {
	n, err := s.blog.Count(ctx)
	if err != nil {
		s.logger.Warn("Failed to count posts", zap.Error(err))
		return
	}
	s.metrics.Posts.Set(float64(n))
}

// postID parses the {id} route variable. Ids that overflow int64 are
// treated like any other unknown id.
func postID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
