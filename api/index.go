package handler

import (
	"net/http"
	"sync"
	"villa/config"
	"villa/di"
	"villa/shared/logger"
	transport "villa/transport/http"
)

var (
	app     *transport.HTTP
	appOnce sync.Once
)

// Handler is the serverless entrypoint. Warm invocations reuse the wired app.
func Handler(w http.ResponseWriter, r *http.Request) {
	appOnce.Do(func() {
		logger.Init(config.Get(), "serverless")

		app = di.InitializeService()
	})

	r.RequestURI = r.URL.String()

	app.ServeHTTP(w, r)
}
