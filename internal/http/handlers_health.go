package httpx

import (
	"io"
	"net/http"
)

// healthHandler answers liveness and readiness probes. HEAD gets the status
// code only; GET gets a tiny JSON body.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	// A failed write means the probe hung up; there is nothing to report.
	_, _ = io.WriteString(w, `{"status":"ok","service":"rfm-ui-api"}`)
}
