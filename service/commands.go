package service

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"forum/app/config"
	"forum/app/models"
	"forum/app/repositories"
	"forum/app/services"
)

// HandleDBCommand handles the db subcommands and returns an exit code.
func HandleDBCommand(args []string) int {
	cfg, err := config.Parse("db", args, os.Stdout)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return 2
	}

	if len(cfg.Args) < 1 {
		printDBHelp()
		return 1
	}

	dbPath := cfg.DBPath
	cmd := cfg.Args[0]
	switch cmd {
	case "clean":
		return clean(dbPath)
	case "init":
		return initDb(dbPath)
	case "backup":
		_, code := backup(dbPath)
		return code
	case "restore":
		if len(cfg.Args) < 2 {
			fmt.Println("Error: backup file path required for restore")
			return 1
		}
		return restore(dbPath, cfg.Args[1])
	case "seed":
		return seed(dbPath)
	case "help":
		printDBHelp()
		return 0
	default:
		fmt.Printf("Unknown db command: %s\n\n", cmd)
		printDBHelp()
		return 1
	}
}

// printDBHelp prints help for db subcommands.
func printDBHelp() {
	helpText := `Usage: forum db [--db <dir>] <command>

Commands:
  init                            Initialize a new empty database
  clean                           Remove the database
  backup                          Create a backup of the database next to it
  restore <file>                  Restore database from backup
  seed                            Insert sample posts and comments
  help                            Display this help message
`
	fmt.Println(helpText)
}

func confirm(prompt string) bool {
	fmt.Print(prompt + " [y/N] ")
	var response string
	fmt.Scanln(&response)
	return response == "y" || response == "Y"
}

// clean removes the database.
func clean(dbPath string) int {
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Println("Database is already clean (does not exist)")
		return 0
	}

	if !confirm("Are you sure you want to clean the database? This cannot be undone.") {
		fmt.Println("Operation cancelled")
		return 1
	}

	if err := os.RemoveAll(dbPath); err != nil {
		fmt.Printf("Failed to clean database: %v\n", err)
		return 1
	}
	fmt.Println("Database cleaned successfully")
	return 0
}

// initDb initializes a new empty database.
func initDb(dbPath string) int {
	if _, err := os.Stat(dbPath); err == nil {
		fmt.Println("Database already exists. Use 'clean' first if you want to reinitialize.")
		return 0
	}

	if err := os.MkdirAll(dbPath, 0755); err != nil {
		fmt.Printf("Failed to create database directory: %v\n", err)
		return 1
	}

	db, err := repositories.Open(dbPath)
	if err != nil {
		fmt.Printf("Failed to initialize database: %v\n", err)
		return 1
	}
	if err := db.Close(); err != nil {
		fmt.Printf("Failed to initialize database: %v\n", err)
		return 1
	}

	fmt.Println("Database initialized successfully")
	return 0
}

// backupDir is where backups of dbPath are written.
func backupDir(dbPath string) string {
	return filepath.Join(filepath.Dir(filepath.Clean(dbPath)), "backups")
}

// backup writes a full backup of the database and returns its path with the
// exit code. A failed backup leaves no file behind.
func backup(dbPath string) (string, int) {
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Println("No database exists to backup")
		return "", 1
	}

	dir := backupDir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		fmt.Printf("Failed to create backup directory: %v\n", err)
		return "", 1
	}

	db, err := repositories.Open(dbPath)
	if err != nil {
		fmt.Printf("Failed to open database: %v\n", err)
		return "", 1
	}
	defer db.Close()

	backupFile := filepath.Join(dir, fmt.Sprintf("backup_%d.db", time.Now().UnixNano()))
	f, err := os.Create(backupFile)
	if err != nil {
		fmt.Printf("Failed to create backup file: %v\n", err)
		return "", 1
	}

	_, err = db.Backup(f, 0)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(backupFile)
		fmt.Printf("Failed to backup database: %v\n", err)
		return "", 1
	}

	fmt.Printf("Database backed up successfully to %s\n", backupFile)
	return backupFile, 0
}

// restore restores the database from a backup.
func restore(dbPath, backupFile string) int {
	if _, err := os.Stat(backupFile); os.IsNotExist(err) {
		fmt.Printf("Backup file does not exist: %s\n", backupFile)
		return 1
	}

	if _, err := os.Stat(dbPath); err == nil {
		if !confirm("Existing database found. Do you want to replace it?") {
			fmt.Println("Operation cancelled")
			return 1
		}
		if err := os.RemoveAll(dbPath); err != nil {
			fmt.Printf("Failed to remove existing database: %v\n", err)
			return 1
		}
	}

	if err := os.MkdirAll(dbPath, 0755); err != nil {
		fmt.Printf("Failed to create database directory: %v\n", err)
		return 1
	}

	db, err := repositories.Open(dbPath)
	if err != nil {
		fmt.Printf("Failed to open database: %v\n", err)
		return 1
	}
	defer db.Close()

	f, err := os.Open(backupFile)
	if err != nil {
		fmt.Printf("Failed to open backup file: %v\n", err)
		return 1
	}
	defer f.Close()

	err = func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic occurred during restore: %v", r)
			}
		}()
		return db.Load(f, 4)
	}()
	if err != nil {
		fmt.Printf("Failed to restore database: %v\n", err)
		return 1
	}

	fmt.Println("Database restored successfully")
	return 0
}

var seedPosts = []struct {
	post     models.Post
	comments []string
}{
	{
		post: models.Post{Author: "alice", Title: "Welcome to the forum",
			Content: "Introduce yourself below. Press c on a post to open its comments."},
		comments: []string{"Hi all, bob here.", "Hello from carol!", "Glad this exists.",
			"Testing comment paging.", "One more.", "And another.", "Seven.", "Eight.",
			"Nine.", "Ten.", "Eleven, which lands on page two.", "Twelve."},
	},
	{
		post: models.Post{Author: "bob", Title: "Terminal setups",
			Content: "What font and colour scheme are you running?"},
		comments: []string{"Iosevka with gruvbox.", "Default everything, no regrets."},
	},
	{
		post: models.Post{Author: "carol", Title: "Quiet thread",
			Content: "Nobody has replied to this one yet."},
	},
}

// seed inserts sample posts and comments through the services so that the
// usual validation applies.
func seed(dbPath string) int {
	db, err := repositories.Open(dbPath)
	if err != nil {
		fmt.Printf("Failed to open database: %v\n", err)
		return 1
	}
	defer db.Close()

	postRepo := repositories.NewBadgerPostRepository(db)
	commentRepo := repositories.NewBadgerCommentRepository(db)
	postService := services.NewPostService(postRepo, commentRepo)
	commentService := services.NewCommentService(commentRepo, postRepo)

	posts, comments := 0, 0
	for _, sp := range seedPosts {
		post := sp.post
		if err := postService.CreatePost(&post); err != nil {
			fmt.Printf("Failed to seed post %q: %v\n", post.Title, err)
			return 1
		}
		posts++

		for i, content := range sp.comments {
			author := []string{"bob", "carol", "dave"}[i%3]
			comment := models.Comment{PostID: post.ID, Author: author, Content: content}
			if err := commentService.CreateComment(&comment); err != nil {
				fmt.Printf("Failed to seed comment on post %d: %v\n", post.ID, err)
				return 1
			}
			comments++
		}
	}

	fmt.Printf("Seeded %d posts and %d comments\n", posts, comments)
	return 0
}
