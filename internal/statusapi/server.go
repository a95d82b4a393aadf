package statusapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"transportkeys/internal/domain"
	"transportkeys/internal/observability"
)

// NewHandler serves the status API for km. If metrics is non-nil its
// handler is mounted at /metrics.
func NewHandler(km domain.KeyManager, log *observability.Logger, metrics *observability.Metrics) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/keysets", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, Summarise(km.KeySets()))
	})

	mux.HandleFunc("/rotate", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if err := km.RotateAll(); err != nil {
			log.Error(err, "rotate")
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, Summarise(km.KeySets()))
	})

	if metrics != nil {
		mux.Handle("/metrics", metrics.Handler())
	}
	return accessLog(log, mux)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

// accessLog records method, path, remote, status, bytes and duration.
func accessLog(log *observability.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Debug(fmt.Sprintf("%s %s from %s: %d %dB in %s",
			r.Method, r.URL.Path, r.RemoteAddr, rec.status, rec.bytes, time.Since(start)))
	})
}
