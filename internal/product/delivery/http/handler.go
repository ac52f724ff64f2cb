package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pandamarket/api/internal/favorite"
	"github.com/pandamarket/api/internal/middleware"
	"github.com/pandamarket/api/internal/product/domain"
	"github.com/pandamarket/api/internal/product/usecase/command"
	"github.com/pandamarket/api/internal/product/usecase/query"
	"github.com/pandamarket/api/kafka"
	"github.com/pandamarket/api/pkg/apperror"
)

// ProductHandler handles HTTP requests for products
type ProductHandler struct {
	// Command handlers
	createHandler *command.CreateProductHandler
	updateHandler *command.UpdateProductHandler
	deleteHandler *command.DeleteProductHandler
	likeHandler   *command.LikeProductHandler
	unlikeHandler *command.UnlikeProductHandler

	// Query handlers
	getHandler           *query.GetProductHandler
	listHandler          *query.ListProductsHandler
	bestHandler          *query.BestProductsHandler
	listOwnedHandler     *query.ListOwnedHandler
	listFavoritedHandler *query.ListFavoritedHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewProductHandler creates a new product handler
func NewProductHandler(repo domain.ProductRepository, favorites favorite.Service, publisher *kafka.Publisher) *ProductHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "product_requests_total",
			Help: "Total number of product endpoint requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "product_request_duration_seconds",
			Help:    "Duration of product endpoint requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &ProductHandler{
		createHandler:        command.NewCreateProductHandler(repo),
		updateHandler:        command.NewUpdateProductHandler(repo),
		deleteHandler:        command.NewDeleteProductHandler(repo),
		likeHandler:          command.NewLikeProductHandler(repo, favorites, publisher),
		unlikeHandler:        command.NewUnlikeProductHandler(repo, favorites, publisher),
		getHandler:           query.NewGetProductHandler(repo, favorites),
		listHandler:          query.NewListProductsHandler(repo, favorites),
		bestHandler:          query.NewBestProductsHandler(repo),
		listOwnedHandler:     query.NewListOwnedHandler(repo),
		listFavoritedHandler: query.NewListFavoritedHandler(repo),
		requestCounter:       requestCounter,
		requestLatency:       requestLatency,
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metrics wraps handlers with Prometheus metrics
func (h *ProductHandler) metrics(endpoint string, next http.HandlerFunc) http.HandlerFunc {
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
		return 0, apperror.Validation("invalid product id")
	}
	return uint(id), nil
}

// Create handles POST /products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string   `json:"name"`
		Description string   `json:"description"`
		Price       int64    `json:"price"`
		Images      []string `json:"images"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.RespondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.createHandler.Handle(r.Context(), command.CreateProductCommand{
		OwnerID:     middleware.UserID(r.Context()),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Images:      req.Images,
	})
	if err != nil {
		middleware.RespondError(w, err)
		return
	}

	middleware.RespondJSON(w, http.StatusCreated, product)
}

// Get handles GET /products/{id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.RespondError(w, err)
		return
	}

	product, err := h.getHandler.Handle(r.Context(), query.GetProductQuery{
		ID:       id,
		ViewerID: middleware.UserID(r.Context()),
	})
	if err != nil {
		middleware.RespondError(w, err)
		return
	}

	middleware.RespondJSON(w, http.StatusOK, product)
}

// List handles GET /products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	result, err := h.listHandler.Handle(r.Context(), query.ListProductsQuery{
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

// Best handles GET /products/best
func (h *ProductHandler) Best(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	products, err := h.bestHandler.Handle(r.Context(), query.BestProductsQuery{Limit: limit})
	if err != nil {
		middleware.RespondError(w, err)
		return
	}

	middleware.RespondJSON(w, http.StatusOK, products)
}

// Update handles PATCH /products/{id}
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.RespondError(w, err)
		return
	}

	var req struct {
		Name        *string   `json:"name"`
		Description *string   `json:"description"`
		Price       *int64    `json:"price"`
		Images      *[]string `json:"images"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.RespondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.updateHandler.Handle(r.Context(), command.UpdateProductCommand{
		ID:          id,
		UserID:      middleware.UserID(r.Context()),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Images:      req.Images,
	})
	if err != nil {
		middleware.RespondError(w, err)
		return
	}

	middleware.RespondJSON(w, http.StatusOK, product)
}

// Delete handles DELETE /products/{id}
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.RespondError(w, err)
		return
	}

	if err := h.deleteHandler.Handle(r.Context(), command.DeleteProductCommand{
		ID:     id,
		UserID: middleware.UserID(r.Context()),
	}); err != nil {
		middleware.RespondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Like handles POST /products/{id}/like
func (h *ProductHandler) Like(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.RespondError(w, err)
		return
	}

	product, err := h.likeHandler.Handle(r.Context(), command.LikeProductCommand{
		ProductID: id,
		UserID:    middleware.UserID(r.Context()),
	})
	if err != nil {
		middleware.RespondError(w, err)
		return
	}

	middleware.RespondJSON(w, http.StatusOK, product)
}

// Unlike handles DELETE /products/{id}/unlike
func (h *ProductHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.RespondError(w, err)
		return
	}

	product, err := h.unlikeHandler.Handle(r.Context(), command.UnlikeProductCommand{
		ProductID: id,
		UserID:    middleware.UserID(r.Context()),
	})
	if err != nil {
		middleware.RespondError(w, err)
		return
	}

	middleware.RespondJSON(w, http.StatusOK, product)
}

// ListOwned handles GET /users/me/products
func (h *ProductHandler) ListOwned(w http.ResponseWriter, r *http.Request) {
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	products, err := h.listOwnedHandler.Handle(r.Context(), query.ListOwnedQuery{
		OwnerID: middleware.UserID(r.Context()),
		Offset:  offset,
		Limit:   limit,
		Keyword: r.URL.Query().Get("keyword"),
	})
	if err != nil {
		middleware.RespondError(w, err)
		return
	}

	middleware.RespondJSON(w, http.StatusOK, products)
}

// ListFavorited handles GET /users/me/favorites
func (h *ProductHandler) ListFavorited(w http.ResponseWriter, r *http.Request) {
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	products, err := h.listFavoritedHandler.Handle(r.Context(), query.ListFavoritedQuery{
		UserID: middleware.UserID(r.Context()),
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		middleware.RespondError(w, err)
		return
	}

	middleware.RespondJSON(w, http.StatusOK, products)
}

// RegisterRoutes registers all product routes
func (h *ProductHandler) RegisterRoutes(router *mux.Router) {
	// Public routes (viewer decoration when a token is present)
	router.HandleFunc("/products", h.metrics("/products", middleware.OptionalAuth(h.List))).Methods("GET")
	router.HandleFunc("/products/best", h.metrics("/products/best", h.Best)).Methods("GET")
	router.HandleFunc("/products/{id:[0-9]+}", h.metrics("/products/{id}", middleware.OptionalAuth(h.Get))).Methods("GET")

	// Authenticated routes
	router.HandleFunc("/products", h.metrics("/products", middleware.Auth(h.Create))).Methods("POST")
	router.HandleFunc("/products/{id:[0-9]+}", h.metrics("/products/{id}", middleware.Auth(h.Update))).Methods("PATCH")
	router.HandleFunc("/products/{id:[0-9]+}", h.metrics("/products/{id}", middleware.Auth(h.Delete))).Methods("DELETE")
	router.HandleFunc("/products/{id:[0-9]+}/like", h.metrics("/products/{id}/like", middleware.Auth(h.Like))).Methods("POST")
	router.HandleFunc("/products/{id:[0-9]+}/unlike", h.metrics("/products/{id}/unlike", middleware.Auth(h.Unlike))).Methods("DELETE")

	// Caller-scoped listings
	router.HandleFunc("/users/me/products", h.metrics("/users/me/products", middleware.Auth(h.ListOwned))).Methods("GET")
	router.HandleFunc("/users/me/favorites", h.metrics("/users/me/favorites", middleware.Auth(h.ListFavorited))).Methods("GET")
}
