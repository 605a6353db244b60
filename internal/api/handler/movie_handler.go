package handler

import (
	"myflix_api/internal/app/service"
	"myflix_api/internal/common"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type MovieHandler struct {
	movieService *service.MovieService
	guard        func(http.Handler) http.Handler
	logger       *zap.Logger
}

func NewMovieHandler(ms *service.MovieService, guard func(http.Handler) http.Handler, logger *zap.Logger) *MovieHandler {
	return &MovieHandler{movieService: ms, guard: guard, logger: logger}
}

// RegisterRoutes mounts the catalog under /movies. Every route requires a
// valid token.
func (h *MovieHandler) RegisterRoutes(r chi.Router) {
	r.Use(h.guard)
	r.Get("/", h.listMovies)                  // GET /movies
	r.Get("/{Title}", h.getMovie)             // GET /movies/Inception
	r.Get("/genres/{Name}", h.getGenre)       // GET /movies/genres/Thriller
	r.Get("/directors/{Name}", h.getDirector) // GET /movies/directors/Christopher%20Nolan
}

func (h *MovieHandler) listMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := h.movieService.ListMovies(r.Context())
	if err != nil {
		respondWithServiceError(w, r, h.logger, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, movies)
}

// getMovie answers 200 with a null body when no movie has the title.
func (h *MovieHandler) getMovie(w http.ResponseWriter, r *http.Request) {
	movie, err := h.movieService.GetMovie(r.Context(), chi.URLParam(r, "Title"))
	if err != nil {
		respondWithServiceError(w, r, h.logger, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, movie)
}

func (h *MovieHandler) getGenre(w http.ResponseWriter, r *http.Request) {
	genre, err := h.movieService.GetGenre(r.Context(), chi.URLParam(r, "Name"))
	if err != nil {
		respondWithServiceError(w, r, h.logger, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, genre)
}

func (h *MovieHandler) getDirector(w http.ResponseWriter, r *http.Request) {
	director, err := h.movieService.GetDirector(r.Context(), chi.URLParam(r, "Name"))
	if err != nil {
		respondWithServiceError(w, r, h.logger, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, director)
}
