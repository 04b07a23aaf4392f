package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCORSExposesErrorHeaders(t *testing.T) {
	h := corsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	tests := []struct {
		name       string
		method     string
		wantStatus int
	}{
		{"preflight", http.MethodOptions, http.StatusOK},
		{"call", http.MethodPost, http.StatusTeapot},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tt.method, "/chitwiser.v1.LedgerService/LogContribution", nil))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			exposed := rec.Header().Get("Access-Control-Expose-Headers")
			for _, h := range []string{"Chit-Error-Kind", "Chit-Error-Paid", "Chit-Error-Limit"} {
				if !strings.Contains(exposed, h) {
					t.Errorf("Access-Control-Expose-Headers = %q, missing %s", exposed, h)
				}
			}
		})
	}
}
