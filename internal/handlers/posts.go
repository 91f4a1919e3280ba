package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dpetrovv/blog-api/internal/db"
	"github.com/dpetrovv/blog-api/internal/middleware"
	"github.com/dpetrovv/blog-api/internal/models"
)

// PostStore is the slice of the store the post handlers need.
type PostStore interface {
	CreatePost(ctx context.Context, title, content, author string) (*models.BlogPost, error)
	ListPosts(ctx context.Context) ([]models.BlogPost, error)
	GetPost(ctx context.Context, id string) (*models.BlogPost, error)
	UpdatePost(ctx context.Context, id, title, content string) (*models.BlogPost, error)
	DeletePost(ctx context.Context, id string) error
}

type PostsHandler struct {
	store PostStore
}

func NewPostsHandler(store PostStore) *PostsHandler {
	return &PostsHandler{store: store}
}

type PostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (h *PostsHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.store.ListPosts(r.Context())
	if err != nil {
		log.Printf("list posts db error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respondJSON(w, http.StatusOK, posts)
}

func (h *PostsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	post, err := h.store.GetPost(r.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			respondError(w, http.StatusNotFound, "blog not found")
			return
		}
		log.Printf("get post db error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respondJSON(w, http.StatusOK, post)
}

// Create stores a new post authored by the authenticated user.
func (h *PostsHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := decodePostRequest(w, r)
	if !ok {
		return
	}

	author, ok := middleware.UsernameFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "missing bearer token")
		return
	}

	created, err := h.store.CreatePost(r.Context(), req.Title, req.Content, author)
	if err != nil {
		log.Printf("create post db error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// Update replaces a post's title and content; id, author and created_at are
// preserved.
func (h *PostsHandler) Update(w http.ResponseWriter, r *http.Request) {
	req, ok := decodePostRequest(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	updated, err := h.store.UpdatePost(r.Context(), id, req.Title, req.Content)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			respondError(w, http.StatusNotFound, "blog not found")
			return
		}
		log.Printf("update post db error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (h *PostsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.store.DeletePost(r.Context(), id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			respondError(w, http.StatusNotFound, "blog not found")
			return
		}
		log.Printf("delete post db error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodePostRequest(w http.ResponseWriter, r *http.Request) (PostRequest, bool) {
	var req PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body")
		return req, false
	}
	if req.Title == "" || req.Content == "" {
		respondError(w, http.StatusBadRequest, "title and content required")
		return req, false
	}
	return req, true
}
