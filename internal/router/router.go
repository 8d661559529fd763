package router

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pinboard-dev/pinboard/internal/middleware/metrics"
	"github.com/pinboard-dev/pinboard/internal/setup"
)

// New creates and configures the mux router with all the routes.
func New(deps *setup.Dependencies) *mux.Router {
	r := mux.NewRouter()

	r.Use(handlers.CompressHandler)
	r.Use(metrics.Middleware)

	// CORS for the frontend
	r.Use(handlers.CORS(
		handlers.AllowedOrigins([]string{deps.Config.Public.FrontendBaseURL}),
		handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	))

	// Wildcard OPTIONS handler to avoid 404s for preflight requests
	r.Methods("OPTIONS").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	h := deps.Handler
	authMw := deps.AuthMiddleware

	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/health", h.Health).Methods("GET")
	r.HandleFunc("/ready", h.Ready).Methods("GET")

	// Account lifecycle routes
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	r.HandleFunc("/users/active/{token}", h.Activate).Methods("GET")
	r.HandleFunc("/users/forgotPassword/{email}", h.ForgotPassword).Methods("GET")
	r.HandleFunc("/users/passwordReset/{email}", h.VerifyResetToken).Methods("POST")
	r.HandleFunc("/users/changePassword/{email}", h.ChangePassword).Methods("POST")

	// Routes behind the session guard
	protected := r.NewRoute().Subrouter()
	protected.Use(authMw.NeedAuth())
	protected.HandleFunc("/isLoggedIn", h.IsLoggedIn).Methods("POST")
	protected.HandleFunc("/boards", h.CreateBoard).Methods("POST")
	protected.HandleFunc("/boards/{email}", h.GetBoards).Methods("POST")
	protected.HandleFunc("/pin", h.UploadPin).Methods("POST")

	// Uploaded pin images, served from the media root. Registered last so
	// it only catches what no API route matched.
	r.PathPrefix("/").Handler(http.FileServer(http.Dir(deps.Config.Public.MediaRoot))).Methods("GET")

	return r
}
