package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pandamarket/api/internal/middleware"
	"github.com/pandamarket/api/internal/user/domain"
	"github.com/pandamarket/api/internal/user/usecase/command"
	"github.com/pandamarket/api/internal/user/usecase/query"
)

// UserHandler handles HTTP requests for accounts and authentication
type UserHandler struct {
	registerHandler       *command.RegisterHandler
	loginHandler          *command.LoginHandler
	oauthHandler          *command.OAuthLoginHandler
	updateProfileHandler  *command.UpdateProfileHandler
	changePasswordHandler *command.ChangePasswordHandler
	getHandler            *query.GetUserHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewUserHandler creates a new user handler
func NewUserHandler(repo domain.UserRepository) *UserHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "user_requests_total",
			Help: "Total number of user endpoint requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "user_request_duration_seconds",
			Help:    "Duration of user endpoint requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &UserHandler{
		registerHandler:       command.NewRegisterHandler(repo),
		loginHandler:          command.NewLoginHandler(repo),
		oauthHandler:          command.NewOAuthLoginHandler(repo),
		updateProfileHandler:  command.NewUpdateProfileHandler(repo),
		changePasswordHandler: command.NewChangePasswordHandler(repo),
		getHandler:            query.NewGetUserHandler(repo),
		requestCounter:        requestCounter,
		requestLatency:        requestLatency,
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

func (h *UserHandler) metrics(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// Register handles POST /auth/register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Nickname string `json:"nickname"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.RespondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.registerHandler.Handle(r.Context(), command.RegisterCommand{
		Email:    req.Email,
		Nickname: req.Nickname,
		Password: req.Password,
	})
	if err != nil {
		middleware.RespondError(w, err)
		return
	}

	middleware.RespondJSON(w, http.StatusCreated, result)
}

// Login handles POST /auth/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.RespondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.loginHandler.Handle(r.Context(), command.LoginCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		middleware.RespondError(w, err)
		return
	}

	middleware.RespondJSON(w, http.StatusOK, result)
}

// OAuthLogin handles POST /auth/oauth
func (h *UserHandler) OAuthLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Provider   string `json:"provider"`
		ProviderID string `json:"providerId"`
		Nickname   string `json:"nickname"`
		Email      string `json:"email"`
		Image      string `json:"image"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.RespondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.oauthHandler.Handle(r.Context(), command.OAuthLoginCommand{
		Provider:   req.Provider,
		ProviderID: req.ProviderID,
		Nickname:   req.Nickname,
		Email:      req.Email,
		Image:      req.Image,
	})
	if err != nil {
		middleware.RespondError(w, err)
		return
	}

	middleware.RespondJSON(w, http.StatusOK, result)
}

// Me handles GET /users/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.getHandler.Handle(r.Context(), query.GetUserQuery{
		ID: middleware.UserID(r.Context()),
	})
	if err != nil {
		middleware.RespondError(w, err)
		return
	}

	middleware.RespondJSON(w, http.StatusOK, user)
}

// UpdateMe handles PATCH /users/me
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Nickname *string `json:"nickname"`
		Image    *string `json:"image"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.RespondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.updateProfileHandler.Handle(r.Context(), command.UpdateProfileCommand{
		UserID:   middleware.UserID(r.Context()),
		Nickname: req.Nickname,
		Image:    req.Image,
	})
	if err != nil {
		middleware.RespondError(w, err)
		return
	}

	middleware.RespondJSON(w, http.StatusOK, user)
}

// ChangePassword handles PATCH /users/me/password
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.RespondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.changePasswordHandler.Handle(r.Context(), command.ChangePasswordCommand{
		UserID:          middleware.UserID(r.Context()),
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	}); err != nil {
		middleware.RespondError(w, err)
		return
	}

	middleware.RespondMessage(w, http.StatusOK, "password updated")
}

// RegisterRoutes registers all auth and user routes
func (h *UserHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/auth/register", h.metrics("/auth/register", h.Register)).Methods("POST")
	router.HandleFunc("/auth/login", h.metrics("/auth/login", h.Login)).Methods("POST")
	router.HandleFunc("/auth/oauth", h.metrics("/auth/oauth", h.OAuthLogin)).Methods("POST")

	router.HandleFunc("/users/me", h.metrics("/users/me", middleware.Auth(h.Me))).Methods("GET")
	router.HandleFunc("/users/me", h.metrics("/users/me", middleware.Auth(h.UpdateMe))).Methods("PATCH")
	router.HandleFunc("/users/me/password", h.metrics("/users/me/password", middleware.Auth(h.ChangePassword))).Methods("PATCH")
}
