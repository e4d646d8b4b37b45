package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, metrics http.Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if metrics == nil {
		return
	}

	mux.Handle("GET /metrics", metrics)
}

func registerReportRoutes(mux *http.ServeMux, handler *Handler, limiter *IPRateLimiter) {
	mux.Handle("POST /v1/reports", RateLimit(limiter, http.HandlerFunc(handler.CreateReport)))
	mux.Handle("POST /v1/reports/mvp-chart", RateLimit(limiter, http.HandlerFunc(handler.CreateMVPChart)))
}
