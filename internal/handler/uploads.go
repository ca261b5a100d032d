package handler

import (
	"errors"
	"net/http"

	"flavis-be/internal/metrics"
	"flavis-be/internal/upload"
)

// handleUpload accepts one multipart file under the "file" field and
// answers the stored public URL. Size is capped twice: the multipart
// parse and the storage service both enforce the configured ceiling.
func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	// Headroom for multipart framing; the storage service enforces the
	// exact per-file ceiling.
	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.UploadMaxBytes+4096)
	if err := r.ParseMultipartForm(h.Cfg.UploadMaxBytes); err != nil {
		metrics.ReceiptUploads.WithLabelValues("too_large").Inc()
		jsonError(w, "file exceeds size limit", http.StatusRequestEntityTooLarge)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file field required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	url, err := h.Uploads.Save(r.Context(), header.Header.Get("Content-Type"), file)
	if err != nil {
		switch {
		case errors.Is(err, upload.ErrTooLarge):
			metrics.ReceiptUploads.WithLabelValues("too_large").Inc()
			jsonError(w, "file exceeds size limit", http.StatusRequestEntityTooLarge)
		case errors.Is(err, upload.ErrUnsupportedType):
			metrics.ReceiptUploads.WithLabelValues("bad_type").Inc()
			jsonError(w, "unsupported file type", http.StatusBadRequest)
		default:
			metrics.ReceiptUploads.WithLabelValues("error").Inc()
			jsonError(w, "internal error", http.StatusInternalServerError)
		}
		return
	}

	metrics.ReceiptUploads.WithLabelValues("accepted").Inc()
	jsonStatus(w, http.StatusCreated, map[string]string{"url": url})
}
