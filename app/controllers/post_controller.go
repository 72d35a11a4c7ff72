package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"forum/app/models"
	"forum/app/repositories"
	"forum/app/services"

	"github.com/dgraph-io/badger/v4"
	"github.com/gorilla/mux"
)

// PostController handles HTTP requests for forum posts
type PostController struct {
	postService *services.PostService
}

// NewPostController creates a new PostController around a service
func NewPostController(postService *services.PostService) *PostController {
	return &PostController{postService: postService}
}

// NewPostControllerWithDB creates a new PostController backed by badger
func NewPostControllerWithDB(db *badger.DB) *PostController {
	postRepo := repositories.NewBadgerPostRepository(db)
	commentRepo := repositories.NewBadgerCommentRepository(db)
	return NewPostController(services.NewPostService(postRepo, commentRepo))
}

// Index handles GET /posts?page=&per_page=
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page", 1)
	if err != nil {
		sendError(w, "Invalid page", http.StatusBadRequest)
		return
	}
	perPage, err := queryInt(r, "per_page", services.DefaultPerPage)
	if err != nil {
		sendError(w, "Invalid per_page", http.StatusBadRequest)
		return
	}

	posts, err := pc.postService.ListPosts(page, perPage)
	if err != nil {
		sendServiceError(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, posts)
}

// Show handles GET /posts/{id}
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		sendError(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	post, err := pc.postService.GetPost(id)
	if err != nil {
		sendServiceError(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, post)
}

// Create handles POST /posts
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	var post models.Post
	if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
		sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := pc.postService.CreatePost(&post); err != nil {
		sendServiceError(w, r, err)
		return
	}
	sendJSON(w, http.StatusCreated, post)
}

// Edit handles PUT /posts/{id}
func (pc *PostController) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		sendError(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	var edit models.Post
	if err := json.NewDecoder(r.Body).Decode(&edit); err != nil {
		sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	post, err := pc.postService.UpdatePost(id, &edit)
	if err != nil {
		sendServiceError(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, post)
}

// Delete handles DELETE /posts/{id}. Comments of the post go with it.
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		sendError(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	if err := pc.postService.DeletePost(id); err != nil {
		sendServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
