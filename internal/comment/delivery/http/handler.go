package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	articledomain "github.com/pandamarket/api/internal/article/domain"
	"github.com/pandamarket/api/internal/comment/domain"
	"github.com/pandamarket/api/internal/comment/usecase/command"
	"github.com/pandamarket/api/internal/comment/usecase/query"
	"github.com/pandamarket/api/internal/middleware"
	productdomain "github.com/pandamarket/api/internal/product/domain"
	"github.com/pandamarket/api/kafka"
	"github.com/pandamarket/api/pkg/apperror"
)

// CommentHandler handles HTTP requests for comments on products and articles
type CommentHandler struct {
	createHandler *command.CreateCommentHandler
	updateHandler *command.UpdateCommentHandler
	deleteHandler *command.DeleteCommentHandler
	listHandler   *query.ListCommentsHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(
	comments domain.CommentRepository,
	products productdomain.ProductRepository,
	articles articledomain.ArticleRepository,
	publisher *kafka.Publisher,
) *CommentHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "comment_requests_total",
			Help: "Total number of comment endpoint requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "comment_request_duration_seconds",
			Help:    "Duration of comment endpoint requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &CommentHandler{
		createHandler:  command.NewCreateCommentHandler(comments, products, articles, publisher),
		updateHandler:  command.NewUpdateCommentHandler(comments),
		deleteHandler:  command.NewDeleteCommentHandler(comments),
		listHandler:    query.NewListCommentsHandler(comments),
		requestCounter: requestCounter,
		requestLatency: requestLatency,
	}
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (h *CommentHandler) metrics(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

func pathID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		return 0, apperror.Validation("invalid id")
	}
	return uint(id), nil
}

type createRequest struct {
	Content  string `json:"content"`
	ParentID *uint  `json:"parentId"`
}

// CreateForProduct handles POST /products/{id}/comments
func (h *CommentHandler) CreateForProduct(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, func(id uint, cmd *command.CreateCommentCommand) {
		cmd.ProductID = &id
	})
}

// CreateForArticle handles POST /articles/{id}/comments
func (h *CommentHandler) CreateForArticle(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, func(id uint, cmd *command.CreateCommentCommand) {
		cmd.ArticleID = &id
	})
}

func (h *CommentHandler) create(w http.ResponseWriter, r *http.Request, bind func(uint, *command.CreateCommentCommand)) {
	id, err := pathID(r)
	if err != nil {
		middleware.RespondError(w, err)
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.RespondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cmd := command.CreateCommentCommand{
		OwnerID:  middleware.UserID(r.Context()),
		ParentID: req.ParentID,
		Content:  req.Content,
	}
	bind(id, &cmd)

	comment, err := h.createHandler.Handle(r.Context(), cmd)
	if err != nil {
		middleware.RespondError(w, err)
		return
	}

	middleware.RespondJSON(w, http.StatusCreated, comment)
}

// ListForProduct handles GET /products/{id}/comments
func (h *CommentHandler) ListForProduct(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, func(id uint, q *query.ListCommentsQuery) {
		q.ProductID = &id
	})
}

// ListForArticle handles GET /articles/{id}/comments
func (h *CommentHandler) ListForArticle(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, func(id uint, q *query.ListCommentsQuery) {
		q.ArticleID = &id
	})
}

func (h *CommentHandler) list(w http.ResponseWriter, r *http.Request, bind func(uint, *query.ListCommentsQuery)) {
	id, err := pathID(r)
	if err != nil {
		middleware.RespondError(w, err)
		return
	}

	cursor, _ := strconv.ParseUint(r.URL.Query().Get("cursor"), 10, 32)
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	q := query.ListCommentsQuery{Cursor: uint(cursor), Limit: limit}
	bind(id, &q)

	result, err := h.listHandler.Handle(r.Context(), q)
	if err != nil {
		middleware.RespondError(w, err)
		return
	}

	middleware.RespondJSON(w, http.StatusOK, result)
}

// Update handles PATCH /comments/{id}
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.RespondError(w, err)
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.RespondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	comment, err := h.updateHandler.Handle(r.Context(), command.UpdateCommentCommand{
		ID:      id,
		UserID:  middleware.UserID(r.Context()),
		Content: req.Content,
	})
	if err != nil {
		middleware.RespondError(w, err)
		return
	}

	middleware.RespondJSON(w, http.StatusOK, comment)
}

// Delete handles DELETE /comments/{id}
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.RespondError(w, err)
		return
	}

	if err := h.deleteHandler.Handle(r.Context(), command.DeleteCommentCommand{
		ID:     id,
		UserID: middleware.UserID(r.Context()),
	}); err != nil {
		middleware.RespondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RegisterRoutes registers all comment routes
func (h *CommentHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/products/{id:[0-9]+}/comments", h.metrics("/products/{id}/comments", h.ListForProduct)).Methods("GET")
	router.HandleFunc("/articles/{id:[0-9]+}/comments", h.metrics("/articles/{id}/comments", h.ListForArticle)).Methods("GET")

	router.HandleFunc("/products/{id:[0-9]+}/comments", h.metrics("/products/{id}/comments", middleware.Auth(h.CreateForProduct))).Methods("POST")
	router.HandleFunc("/articles/{id:[0-9]+}/comments", h.metrics("/articles/{id}/comments", middleware.Auth(h.CreateForArticle))).Methods("POST")
	router.HandleFunc("/comments/{id:[0-9]+}", h.metrics("/comments/{id}", middleware.Auth(h.Update))).Methods("PATCH")
	router.HandleFunc("/comments/{id:[0-9]+}", h.metrics("/comments/{id}", middleware.Auth(h.Delete))).Methods("DELETE")
}
