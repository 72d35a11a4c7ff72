package routes

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"forum/app/models"
	"forum/app/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRouter(t *testing.T) http.Handler {
	db, err := repositories.Open("")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return SetupRoutes(db, []string{"http://forum.test"})
}

func do(t *testing.T, router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestForumAPI(t *testing.T) {
	router := setupTestRouter(t)

	w := do(t, router, http.MethodPost, "/posts", `{"author":"alice","title":"Hello forum","content":"First post"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var post models.Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))
	assert.Equal(t, 1, post.ID)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	for i := 1; i <= 3; i++ {
		w = do(t, router, http.MethodPost, "/comments",
			fmt.Sprintf(`{"postId":%d,"author":"bob","content":"reply %d"}`, post.ID, i))
		require.Equal(t, http.StatusCreated, w.Code)
	}

	t.Run("list posts", func(t *testing.T) {
		w := do(t, router, http.MethodGet, "/posts?page=1", "")
		require.Equal(t, http.StatusOK, w.Code)
		var posts []models.Post
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &posts))
		require.Len(t, posts, 1)
		assert.Equal(t, "Hello forum", posts[0].Title)
	})

	t.Run("page comments", func(t *testing.T) {
		w := do(t, router, http.MethodGet, fmt.Sprintf("/comments?postId=%d&page=2&limit=2", post.ID), "")
		require.Equal(t, http.StatusOK, w.Code)
		var comments []models.Comment
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &comments))
		require.Len(t, comments, 1)
		assert.Equal(t, "reply 3", comments[0].Content)
	})

	t.Run("edit post", func(t *testing.T) {
		w := do(t, router, http.MethodPut, fmt.Sprintf("/posts/%d", post.ID), `{"title":"Hello again","content":"Edited"}`)
		require.Equal(t, http.StatusOK, w.Code)

		w = do(t, router, http.MethodGet, fmt.Sprintf("/posts/%d", post.ID), "")
		require.Equal(t, http.StatusOK, w.Code)
		var got models.Post
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "Hello again", got.Title)
		assert.True(t, got.Edited())
	})

	t.Run("delete post cascades", func(t *testing.T) {
		w := do(t, router, http.MethodDelete, fmt.Sprintf("/posts/%d", post.ID), "")
		require.Equal(t, http.StatusNoContent, w.Code)

		w = do(t, router, http.MethodGet, fmt.Sprintf("/posts/%d", post.ID), "")
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = do(t, router, http.MethodGet, fmt.Sprintf("/comments?postId=%d", post.ID), "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestRouterFallbacks(t *testing.T) {
	router := setupTestRouter(t)

	tests := []struct {
		name   string
		method string
		target string
		status int
	}{
		{"unknown path", http.MethodGet, "/nope", http.StatusNotFound},
		{"non numeric id", http.MethodGet, "/posts/abc", http.StatusNotFound},
		{"wrong method", http.MethodPatch, "/posts/1", http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, router, tt.method, tt.target, "")
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}
}

func TestCORS(t *testing.T) {
	router := setupTestRouter(t)

	t.Run("preflight from allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/posts/1", nil)
		req.Header.Set("Origin", "http://forum.test")
		req.Header.Set("Access-Control-Request-Method", http.MethodDelete)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "http://forum.test", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodDelete)
	})

	t.Run("other origins get no CORS headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/posts", nil)
		req.Header.Set("Origin", "http://evil.test")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}
