package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kenchiku-cloud/archmap/internal/auth"
	"github.com/kenchiku-cloud/archmap/internal/domain"
	"github.com/kenchiku-cloud/archmap/internal/domain/building"
	"github.com/kenchiku-cloud/archmap/internal/domain/filter"
	"github.com/kenchiku-cloud/archmap/internal/metrics"
	accountuc "github.com/kenchiku-cloud/archmap/internal/usecase/account"
	directoryuc "github.com/kenchiku-cloud/archmap/internal/usecase/directory"
	favoritesuc "github.com/kenchiku-cloud/archmap/internal/usecase/favorites"
	healthuc "github.com/kenchiku-cloud/archmap/internal/usecase/health"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server exposes the directory, favorites and auth use cases over HTTP.
type Server struct {
	directory     *directoryuc.Service
	favorites     *favoritesuc.Service
	accounts      *accountuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	directory *directoryuc.Service,
	favorites *favoritesuc.Service,
	accounts *accountuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		directory: directory,
		favorites: favorites,
		accounts:  accounts,
		health:    health,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrUnauthenticated, http.StatusUnauthorized, codeUnauthenticated),
		sentinelHandler(domain.ErrInvalidCredentials, http.StatusUnauthorized, codeInvalidCredentials),
		sentinelHandler(domain.ErrAccountExists, http.StatusConflict, codeAccountExists),
		sentinelHandler(domain.ErrBuildingNotFound, http.StatusNotFound, codeBuildingNotFound),
		sentinelHandler(domain.ErrToggleInFlight, http.StatusConflict, codeToggleInFlight),
	}
	return s
}

// Register mounts all routes on the router. Session resolution happens in
// middleware; favorites routes additionally require a signed-in user.
func (s *Server) Register(r chi.Router, tokens tokenVerifier) {
	r.Get("/health", s.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(SessionMiddleware(tokens))

		r.Post("/auth/signup", s.SignUp)
		r.Post("/auth/signin", s.SignIn)
		r.With(RequireSession).Get("/auth/me", s.Me)

		r.Get("/buildings", s.ListBuildings)
		r.Get("/buildings/facets", s.Facets)
		r.Get("/buildings/near", s.NearBuildings)

		r.Group(func(r chi.Router) {
			r.Use(RequireSession)
			r.Get("/favorites", s.ListFavorites)
			r.Post("/favorites/toggle", s.ToggleFavorite)
		})
	})
}

// SignUp handles POST /auth/signup.
func (s *Server) SignUp(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	sess, err := s.accounts.SignUp(r.Context(), req.Email, req.Password)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, sessionToResponse(sess))
}

// SignIn handles POST /auth/signin.
func (s *Server) SignIn(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	sess, err := s.accounts.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sessionToResponse(sess))
}

// Me handles GET /auth/me.
func (s *Server) Me(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFrom(r)
	writeJSON(w, http.StatusOK, map[string]string{
		"user_id": sess.UserID,
		"email":   sess.Email,
	})
}

// ListBuildings handles GET /buildings with optional filter query params.
// architect and district are repeatable; an empty selection matches all.
func (s *Server) ListBuildings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	yearFrom, err := optionalYear(q.Get("year_from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "year_from must be an integer")
		return
	}
	yearTo, err := optionalYear(q.Get("year_to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "year_to must be an integer")
		return
	}

	criteria := filter.NewCriteria(q["architect"], q["district"], yearFrom, yearTo)
	items := s.directory.Filter(criteria)

	resp := buildingListResponse{Items: s.decorate(r, items), Total: len(items)}
	writeJSON(w, http.StatusOK, resp)
}

// Facets handles GET /buildings/facets.
func (s *Server) Facets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, facetsToResponse(s.directory.Facets()))
}

// NearBuildings handles GET /buildings/near?lat=&lon=&radius_m=.
func (s *Server) NearBuildings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lat, latErr := strconv.ParseFloat(q.Get("lat"), 64)
	lon, lonErr := strconv.ParseFloat(q.Get("lon"), 64)
	if latErr != nil || lonErr != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "lat and lon are required")
		return
	}

	radius := 2000.0
	if raw := q.Get("radius_m"); raw != "" {
		var err error
		radius, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeBadRequest, "radius_m must be a number")
			return
		}
	}

	items, err := s.directory.Near(lat, lon, radius)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}

	resp := buildingListResponse{Items: s.decorate(r, items), Total: len(items)}
	writeJSON(w, http.StatusOK, resp)
}

// ListFavorites handles GET /favorites.
func (s *Server) ListFavorites(w http.ResponseWriter, r *http.Request) {
	items, err := s.favorites.List(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, buildingListResponse{
		Items: buildingsToResponse(items),
		Total: len(items),
	})
}

// ToggleFavorite handles POST /favorites/toggle.
func (s *Server) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Building name is required")
		return
	}

	state, favorite, err := s.favorites.Toggle(r.Context(), req.Name)
	metrics.ObserveToggle(string(state))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toggleResponse{
		Name:     req.Name,
		Favorite: favorite,
		State:    string(state),
	})
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	writeJSON(w, status, map[string]any{
		"status": string(report.Status),
		"checks": checks,
	})
}

// decorate marks favorite membership on building items when a session exists.
func (s *Server) decorate(r *http.Request, items []building.Building) []buildingResponse {
	out := buildingsToResponse(items)
	if _, ok := sessionFrom(r); !ok {
		return out
	}
	for i := range out {
		fav := s.favorites.IsFavorite(r.Context(), out[i].Name)
		out[i].Favorite = &fav
	}
	return out
}

func sessionFrom(r *http.Request) (auth.Session, bool) {
	return auth.SessionFromContext(r.Context())
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	s.logger.Error("Unhandled error", zap.Error(err))
	writeError(w, http.StatusBadGateway, codeRemoteUnavailable, "Operation failed; please retry")
}

func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, err.Error())
		return true
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

func optionalYear(raw string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	y, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &y, nil
}
