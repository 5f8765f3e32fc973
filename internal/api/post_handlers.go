package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/tranphihao2k3/LapLap-sub001/internal/command"
)

// Post Handlers

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	var cmd command.CreatePost
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := h.cmdHandler.CreatePost(r.Context(), cmd)
	if err != nil {
		http.Error(w, err.Error(), errorStatus(err))
		return
	}

	respondJSON(w, http.StatusCreated, p)
}

// GetPosts lists published posts; ?drafts=true includes unpublished ones.
func (h *Handlers) GetPosts(w http.ResponseWriter, r *http.Request) {
	includeDrafts := r.URL.Query().Get("drafts") == "true"
	posts := h.queryHandler.ListPosts(!includeDrafts)
	respondJSON(w, http.StatusOK, posts)
}

// GetPostBySlug serves a single article by its URL slug.
func (h *Handlers) GetPostBySlug(w http.ResponseWriter, r *http.Request) {
	slug := extractPathParam(r.URL.Path, "/posts/")
	p, ok := h.queryHandler.GetPostBySlug(slug)
	if !ok {
		http.Error(w, "Post not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/posts/")

	var cmd command.UpdatePost
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	cmd.PostID = id

	if err := h.cmdHandler.UpdatePost(r.Context(), cmd); err != nil {
		http.Error(w, err.Error(), errorStatus(err))
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Post updated"})
}

func (h *Handlers) PublishPost(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSuffix(extractPathParam(r.URL.Path, "/posts/"), "/publish")

	if err := h.cmdHandler.PublishPost(r.Context(), command.PublishPost{PostID: id}); err != nil {
		http.Error(w, err.Error(), errorStatus(err))
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Post published"})
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/posts/")

	if err := h.cmdHandler.DeletePost(r.Context(), command.DeletePost{PostID: id}); err != nil {
		http.Error(w, err.Error(), errorStatus(err))
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Post deleted"})
}
