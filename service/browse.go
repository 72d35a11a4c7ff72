package service

import (
	"fmt"
	"os"

	"forum/app/api"
	"forum/app/config"
	"forum/app/logging"
	"forum/app/ui/containers"

	tea "github.com/charmbracelet/bubbletea"
)

// RunBrowser opens the terminal forum browser against a running API.
func RunBrowser(args []string) int {
	cfg, err := config.Parse("browse", args, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	// The alternate screen owns the terminal, so logs go to a file.
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: open log file: %v\n", err)
		return 1
	}
	defer logFile.Close()
	if err := logging.Setup(logFile, cfg.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	feed, err := NewFeed(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer feed.Close()

	log.Infof("browsing %s as %s", cfg.BaseURL, cfg.Author)
	if _, err := tea.NewProgram(feed, tea.WithAltScreen()).Run(); err != nil {
		log.Errorf("browser: %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// NewFeed wires the API client, the optional comment cache and the root
// model together.
func NewFeed(cfg *config.Config) (*containers.Feed, error) {
	client, err := api.NewClient(cfg.BaseURL, cfg.Timeout, cfg.PageSize)
	if err != nil {
		return nil, err
	}
	return containers.NewFeed(client, commentSource(cfg, client), cfg.Author, cfg.PageSize, cfg.BaseURL), nil
}

func commentSource(cfg *config.Config, client *api.Client) containers.CommentAPI {
	if cfg.CacheTTL <= 0 {
		return client
	}
	var cache api.CacheClient
	if cfg.Memcache != "" {
		log.Infof("caching comment pages in memcache at %s", cfg.Memcache)
		cache = api.NewMemcacheClient(cfg.Memcache, cfg.Timeout)
	} else {
		cache = api.NewMemoryClient()
	}
	return api.NewCachedComments(client, cache, cfg.CacheTTL)
}
