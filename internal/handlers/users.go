package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/dpetrovv/blog-api/internal/auth"
	"github.com/dpetrovv/blog-api/internal/db"
	"github.com/dpetrovv/blog-api/internal/models"
)

// UserStore is the slice of the store the user handlers need.
type UserStore interface {
	CreateUser(ctx context.Context, username, passwordHash string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

type UsersHandler struct {
	store  UserStore
	tokens *auth.TokenService
}

func NewUsersHandler(store UserStore, tokens *auth.TokenService) *UsersHandler {
	return &UsersHandler{store: store, tokens: tokens}
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	Username string `json:"username"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

// Register creates a new user with an irreversibly hashed password.
func (h *UsersHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if req.Username == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "username and password required")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		log.Printf("register hash error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	created, err := h.store.CreateUser(r.Context(), req.Username, hash)
	if err != nil {
		if errors.Is(err, db.ErrDuplicateUser) {
			respondError(w, http.StatusConflict, "username already exists")
			return
		}
		log.Printf("register db error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondJSON(w, http.StatusCreated, RegisterResponse{Username: created.Username})
}

// Login authenticates a user and returns a signed bearer token.
func (h *UsersHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if req.Username == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "username and password required")
		return
	}

	user, err := h.store.GetUserByUsername(r.Context(), req.Username)
	if err != nil {
		log.Printf("login db error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := h.tokens.Issue(user.Username)
	if err != nil {
		log.Printf("login token error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respondJSON(w, http.StatusOK, LoginResponse{Token: token})
}
