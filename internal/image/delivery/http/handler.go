package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pandamarket/api/internal/image"
	"github.com/pandamarket/api/internal/middleware"
	"github.com/pandamarket/api/pkg/apperror"
)

// ImageHandler handles image uploads
type ImageHandler struct {
	storage *image.DiskStorage

	uploadCounter  *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewImageHandler creates a new image handler
func NewImageHandler(storage *image.DiskStorage) *ImageHandler {
	uploadCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "image_uploads_total",
			Help: "Total number of image upload requests",
		},
		[]string{"status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "image_upload_duration_seconds",
			Help:    "Duration of image upload requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"status"},
	)

	prometheus.MustRegister(uploadCounter)
	prometheus.MustRegister(requestLatency)

	return &ImageHandler{
		storage:        storage,
		uploadCounter:  uploadCounter,
		requestLatency: requestLatency,
	}
}

// Upload handles POST /images/upload
func (h *ImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := http.StatusCreated
	defer func() {
		label := strconv.Itoa(status)
		h.uploadCounter.WithLabelValues(label).Inc()
		h.requestLatency.WithLabelValues(label).Observe(time.Since(start).Seconds())
	}()

	r.Body = http.MaxBytesReader(w, r.Body, image.MaxUploadSize+4096)
	if err := r.ParseMultipartForm(image.MaxUploadSize); err != nil {
		status = http.StatusBadRequest
		middleware.RespondMessage(w, status, "file exceeds the 5MB limit")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		status = http.StatusBadRequest
		middleware.RespondMessage(w, status, "image file is required")
		return
	}
	defer file.Close()

	url, err := h.storage.Save(header.Filename, file)
	if err != nil {
		status = apperror.Status(err)
		middleware.RespondError(w, err)
		return
	}

	middleware.RespondJSON(w, status, map[string]string{"url": url})
}

// RegisterRoutes registers the image routes
func (h *ImageHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/images/upload", middleware.Auth(h.Upload)).Methods("POST")
}
