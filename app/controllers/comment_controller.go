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

// CommentController handles HTTP requests for comments
type CommentController struct {
	commentService *services.CommentService
}

// NewCommentController creates a new CommentController around a service
func NewCommentController(commentService *services.CommentService) *CommentController {
	return &CommentController{commentService: commentService}
}

// NewCommentControllerWithDB creates a new CommentController backed by badger
func NewCommentControllerWithDB(db *badger.DB) *CommentController {
	commentRepo := repositories.NewBadgerCommentRepository(db)
	postRepo := repositories.NewBadgerPostRepository(db)
	return NewCommentController(services.NewCommentService(commentRepo, postRepo))
}

// Index handles GET /comments?postId=&page=&limit=
func (cc *CommentController) Index(w http.ResponseWriter, r *http.Request) {
	postID, err := queryInt(r, "postId", 0)
	if err != nil || postID <= 0 {
		sendError(w, "Invalid or missing postId", http.StatusBadRequest)
		return
	}
	page, err := queryInt(r, "page", 1)
	if err != nil {
		sendError(w, "Invalid page", http.StatusBadRequest)
		return
	}
	limit, err := queryInt(r, "limit", services.DefaultCommentLimit)
	if err != nil {
		sendError(w, "Invalid limit", http.StatusBadRequest)
		return
	}

	comments, err := cc.commentService.ListPostComments(postID, page, limit)
	if err != nil {
		sendServiceError(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, comments)
}

// Create handles POST /comments
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	var comment models.Comment
	if err := json.NewDecoder(r.Body).Decode(&comment); err != nil {
		sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := cc.commentService.CreateComment(&comment); err != nil {
		sendServiceError(w, r, err)
		return
	}
	sendJSON(w, http.StatusCreated, comment)
}

// Delete handles DELETE /comments/{id}
func (cc *CommentController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		sendError(w, "Invalid comment ID", http.StatusBadRequest)
		return
	}

	if err := cc.commentService.DeleteComment(id); err != nil {
		sendServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
