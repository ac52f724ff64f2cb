package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pandamarket/api/internal/article/domain"
	"github.com/pandamarket/api/internal/article/usecase/command"
	"github.com/pandamarket/api/internal/article/usecase/query"
	"github.com/pandamarket/api/internal/favorite"
	"github.com/pandamarket/api/internal/middleware"
	"github.com/pandamarket/api/kafka"
	"github.com/pandamarket/api/pkg/apperror"
)

// ArticleHandler handles HTTP requests for free-board articles
type ArticleHandler struct {
	createHandler *command.CreateArticleHandler
	updateHandler *command.UpdateArticleHandler
	deleteHandler *command.DeleteArticleHandler
	likeHandler   *command.LikeArticleHandler
	unlikeHandler *command.UnlikeArticleHandler

	getHandler  *query.GetArticleHandler
	listHandler *query.ListArticlesHandler
	bestHandler *query.BestArticlesHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewArticleHandler creates a new article handler
func NewArticleHandler(repo domain.ArticleRepository, favorites favorite.Service, publisher *kafka.Publisher) *ArticleHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "article_requests_total",
			Help: "Total number of article endpoint requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "article_request_duration_seconds",
			Help:    "Duration of article endpoint requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &ArticleHandler{
		createHandler:  command.NewCreateArticleHandler(repo),
		updateHandler:  command.NewUpdateArticleHandler(repo),
		deleteHandler:  command.NewDeleteArticleHandler(repo),
		likeHandler:    command.NewLikeArticleHandler(repo, favorites, publisher),
		unlikeHandler:  command.NewUnlikeArticleHandler(repo, favorites, publisher),
		getHandler:     query.NewGetArticleHandler(repo, favorites),
		listHandler:    query.NewListArticlesHandler(repo, favorites),
		bestHandler:    query.NewBestArticlesHandler(repo, favorites),
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

func (h *ArticleHandler) metrics(endpoint string, next http.HandlerFunc) http.HandlerFunc {
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
		return 0, apperror.Validation("invalid article id")
	}
	return uint(id), nil
}

// Create handles POST /articles
func (h *ArticleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
		Image   string `json:"image"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.RespondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	article, err := h.createHandler.Handle(r.Context(), command.CreateArticleCommand{
		OwnerID: middleware.UserID(r.Context()),
		Title:   req.Title,
		Content: req.Content,
		Image:   req.Image,
	})
	if err != nil {
		middleware.RespondError(w, err)
		return
	}

	middleware.RespondJSON(w, http.StatusCreated, article)
}

// Get handles GET /articles/{id}
func (h *ArticleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.RespondError(w, err)
		return
	}

	article, err := h.getHandler.Handle(r.Context(), query.GetArticleQuery{
		ID:       id,
		ViewerID: middleware.UserID(r.Context()),
	})
	if err != nil {
		middleware.RespondError(w, err)
		return
	}

	middleware.RespondJSON(w, http.StatusOK, article)
}

// List handles GET /articles
func (h *ArticleHandler) List(w http.ResponseWriter, r *http.Request) {
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	result, err := h.listHandler.Handle(r.Context(), query.ListArticlesQuery{
		Offset:   offset,
		Limit:    limit,
		OrderBy:  r.URL.Query().Get("orderBy"),
		Keyword:  r.URL.Query().Get("keyword"),
		ViewerID: middleware.UserID(r.Context()),
	})
	if err != nil {
		middleware.RespondError(w, err)
		return
	}

	middleware.RespondJSON(w, http.StatusOK, result)
}

// Best handles GET /articles/best
func (h *ArticleHandler) Best(w http.ResponseWriter, r *http.Request) {
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))

	articles, err := h.bestHandler.Handle(r.Context(), query.BestArticlesQuery{
		Size:     size,
		ViewerID: middleware.UserID(r.Context()),
	})
	if err != nil {
		middleware.RespondError(w, err)
		return
	}

	middleware.RespondJSON(w, http.StatusOK, articles)
}

// Update handles PATCH /articles/{id}
func (h *ArticleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.RespondError(w, err)
		return
	}

	var req struct {
		Title   *string `json:"title"`
		Content *string `json:"content"`
		Image   *string `json:"image"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.RespondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	article, err := h.updateHandler.Handle(r.Context(), command.UpdateArticleCommand{
		ID:      id,
		UserID:  middleware.UserID(r.Context()),
		Title:   req.Title,
		Content: req.Content,
		Image:   req.Image,
	})
	if err != nil {
		middleware.RespondError(w, err)
		return
	}

	middleware.RespondJSON(w, http.StatusOK, article)
}

// Delete handles DELETE /articles/{id}
func (h *ArticleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.RespondError(w, err)
		return
	}

	if err := h.deleteHandler.Handle(r.Context(), command.DeleteArticleCommand{
		ID:     id,
		UserID: middleware.UserID(r.Context()),
	}); err != nil {
		middleware.RespondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Like handles POST /articles/{id}/like
func (h *ArticleHandler) Like(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.RespondError(w, err)
		return
	}

	article, err := h.likeHandler.Handle(r.Context(), command.LikeArticleCommand{
		ArticleID: id,
		UserID:    middleware.UserID(r.Context()),
	})
	if err != nil {
		middleware.RespondError(w, err)
		return
	}

	middleware.RespondJSON(w, http.StatusOK, article)
}

// Unlike handles DELETE /articles/{id}/unlike
func (h *ArticleHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.RespondError(w, err)
		return
	}

	article, err := h.unlikeHandler.Handle(r.Context(), command.UnlikeArticleCommand{
		ArticleID: id,
		UserID:    middleware.UserID(r.Context()),
	})
	if err != nil {
		middleware.RespondError(w, err)
		return
	}

	middleware.RespondJSON(w, http.StatusOK, article)
}

// RegisterRoutes registers all article routes
func (h *ArticleHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/articles", h.metrics("/articles", middleware.OptionalAuth(h.List))).Methods("GET")
	router.HandleFunc("/articles/best", h.metrics("/articles/best", middleware.OptionalAuth(h.Best))).Methods("GET")
	router.HandleFunc("/articles/{id:[0-9]+}", h.metrics("/articles/{id}", middleware.OptionalAuth(h.Get))).Methods("GET")

	router.HandleFunc("/articles", h.metrics("/articles", middleware.Auth(h.Create))).Methods("POST")
	router.HandleFunc("/articles/{id:[0-9]+}", h.metrics("/articles/{id}", middleware.Auth(h.Update))).Methods("PATCH")
	router.HandleFunc("/articles/{id:[0-9]+}", h.metrics("/articles/{id}", middleware.Auth(h.Delete))).Methods("DELETE")
	router.HandleFunc("/articles/{id:[0-9]+}/like", h.metrics("/articles/{id}/like", middleware.Auth(h.Like))).Methods("POST")
	router.HandleFunc("/articles/{id:[0-9]+}/unlike", h.metrics("/articles/{id}/unlike", middleware.Auth(h.Unlike))).Methods("DELETE")
}
