package handler

import (
	"encoding/json"
	"myflix_api/internal/app/service"
	"myflix_api/internal/common"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type UserHandler struct {
	userService *service.UserService
	guard       func(http.Handler) http.Handler
	logger      *zap.Logger
}

func NewUserHandler(us *service.UserService, guard func(http.Handler) http.Handler, logger *zap.Logger) *UserHandler {
	return &UserHandler{userService: us, guard: guard, logger: logger}
}

func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.createUser) // POST /users (signup)

	r.Group(func(authed chi.Router) {
		authed.Use(h.guard)
		authed.Get("/", h.listUsers)
		authed.Get("/{Username}", h.getUser)
		authed.Put("/{Username}", h.updateUser)
		authed.Delete("/{Username}", h.deleteUser)
		authed.Post("/{Username}/movies/{MovieID}", h.addFavorite)
		authed.Delete("/{Username}/movies/{MovieID}", h.removeFavorite)
	})
}

func (h *UserHandler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListUsers(r.Context())
	if err != nil {
		respondWithServiceError(w, r, h.logger, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, users)
}

func (h *UserHandler) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.GetUser(r.Context(), chi.URLParam(r, "Username"))
	if err != nil {
		respondWithServiceError(w, r, h.logger, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, user)
}

func (h *UserHandler) createUser(w http.ResponseWriter, r *http.Request) {
	var req service.UserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	user, err := h.userService.CreateUser(r.Context(), req)
	if err != nil {
		respondWithServiceError(w, r, h.logger, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, user)
}

func (h *UserHandler) updateUser(w http.ResponseWriter, r *http.Request) {
	var req service.UserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	user, err := h.userService.UpdateUser(r.Context(), chi.URLParam(r, "Username"), req)
	if err != nil {
		respondWithServiceError(w, r, h.logger, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, user)
}

func (h *UserHandler) deleteUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "Username")
	if err := h.userService.DeleteUser(r.Context(), username); err != nil {
		respondWithServiceError(w, r, h.logger, err)
		return
	}
	common.RespondWithText(w, http.StatusOK, username+" was deleted.")
}

func (h *UserHandler) addFavorite(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.AddFavorite(r.Context(), chi.URLParam(r, "Username"), chi.URLParam(r, "MovieID"))
	if err != nil {
		respondWithServiceError(w, r, h.logger, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, user)
}

func (h *UserHandler) removeFavorite(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.RemoveFavorite(r.Context(), chi.URLParam(r, "Username"), chi.URLParam(r, "MovieID"))
	if err != nil {
		respondWithServiceError(w, r, h.logger, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, user)
}
