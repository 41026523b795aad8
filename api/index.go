package handler

import (
	"net/http"

	"roost/config"
	"roost/di"
	"roost/shared/logger"
)

// Handler is the serverless entrypoint. The platform routes every request
// here, so the service graph is assembled lazily on first use.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	service := di.InitializeService()
	service.Handler().ServeHTTP(w, r)
}
