package service

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"forum/app/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServe(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	cfg := config.Defaults()
	cfg.DBPath = filepath.Join(t.TempDir(), "badger")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, cfg, ln) }()

	base := fmt.Sprintf("http://%s", ln.Addr())
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Post(base+"/posts", "application/json",
		strings.NewReader(`{"author":"alice","title":"Served","content":"over TCP"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = client.Get(base + "/posts/1")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestRunAppServerBadFlags(t *testing.T) {
	assert.Equal(t, 2, RunAppServer([]string{"--no-such-flag"}))
}
