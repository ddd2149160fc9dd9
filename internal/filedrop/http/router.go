package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/oatfile/filedrop/internal/filedrop/service"
	"github.com/oatfile/filedrop/internal/filedrop/store"
	"github.com/oatfile/filedrop/pkg/httpx"
	"github.com/oatfile/filedrop/pkg/jwtx"
	"github.com/oatfile/filedrop/pkg/slogx"

	_ "github.com/oatfile/filedrop/api/filedrop" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	catalog     store.Catalog
	AuthService *service.AuthService
	FileService *service.FileService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	catalog store.Catalog,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		catalog:      catalog,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerFiles()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			FileDrop API
//	@version		0.1.0
//	@description	A small authenticated file drop service. Users log in with a
//	@description	username and password to receive a bearer access token, then
//	@description	upload files and list what has been uploaded.
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	loginHandler := &LoginHandler{AuthService: r.AuthService}

	// POST /login - strict rate limit by IP + username to slow brute force
	r.Mux.Handle("POST /login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIPAndFormField(httpx.StrictLimit, "username"),
		),
	)

	whoamiHandler := &WhoamiHandler{AuthService: r.AuthService}
	r.Mux.Handle("GET /users/me",
		httpx.Chain(whoamiHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerFiles() {
	uploadHandler := &UploadHandler{FileService: r.FileService}
	r.Mux.Handle("POST /upload",
		httpx.Chain(uploadHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	listHandler := &ListFilesHandler{FileService: r.FileService}
	r.Mux.Handle("GET /get_files",
		httpx.Chain(listHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	downloadHandler := &DownloadHandler{FileService: r.FileService}
	r.Mux.Handle("GET /files/{id}",
		httpx.Chain(downloadHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.HandleFunc("GET /{$}", IndexHandler())
	r.Mux.HandleFunc("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.HandleFunc("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.catalog, r.FileService.Blobs))
}
