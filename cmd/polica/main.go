package main

import (
	"context"
	"crypto/rand"
	"flag"
	"fmt"
	"log"
	"math/big"
	"net/http"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/erazemk/polica/internal/api"
	"github.com/erazemk/polica/internal/config"
	"github.com/erazemk/polica/internal/db"
	"github.com/erazemk/polica/internal/imaging"
	"github.com/erazemk/polica/internal/inventory"
	"github.com/erazemk/polica/internal/service"
	"github.com/erazemk/polica/internal/storage"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: polica <init|serve>")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "init":
		cmdInit(os.Args[2:])
	case "serve":
		cmdServe(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\nUsage: polica <init|serve>\n", os.Args[1])
		os.Exit(1)
	}
}

func cmdInit(args []string) {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	cfgPath := fs.String("config", "polica.yaml", "path to config file")
	fs.Parse(args)

	if _, err := os.Stat(*cfgPath); err == nil {
		fmt.Fprintf(os.Stderr, "Error: config file %s already exists\n", *cfgPath)
		os.Exit(1)
	}

	password, err := initConfig(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Config created: %s\n", *cfgPath)
	fmt.Println()
	fmt.Println("Admin account created:")
	fmt.Printf("  Username: admin\n")
	fmt.Printf("  Password: %s\n", password)
	fmt.Println()
	fmt.Println("Save this password — it cannot be recovered.")
}

func cmdServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfgPath := fs.String("config", "polica.yaml", "path to config file")
	fs.Parse(args)

	// Auto-init the config if it does not exist yet.
	if _, err := os.Stat(*cfgPath); os.IsNotExist(err) {
		password, err := initConfig(*cfgPath)
		if err != nil {
			log.Fatalf("Failed to initialize config: %v", err)
		}
		fmt.Printf("Config created: %s\n", *cfgPath)
		fmt.Println()
		fmt.Println("Admin account created:")
		fmt.Printf("  Username: admin\n")
		fmt.Printf("  Password: %s\n", password)
		fmt.Println()
		fmt.Println("Save this password — it cannot be recovered.")
		fmt.Println()
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	docs, err := openStorage(cfg)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}

	opts := inventory.Options{
		Storage:  docs,
		PhotoDir: cfg.PhotoDir(),
	}
	if cfg.Thumbnails {
		opts.Thumbnail = imaging.Thumbnail
	}

	store := inventory.New(opts)
	if err := store.Load(context.Background()); err != nil {
		log.Fatalf("Failed to load inventory: %v", err)
	}

	registry := service.NewRegistry()
	service.RegisterInventory(registry, store)

	mux := http.NewServeMux()
	mux.Handle("/api/", api.NewRouter(store, registry, cfg.Auth))
	mux.Handle("/local/", http.StripPrefix("/local/", http.FileServer(http.Dir(cfg.StaticRoot))))

	handler := api.LoggingMiddleware(mux)

	fmt.Printf("Server listening on %s\n", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// openStorage builds the configured document store backend.
func openStorage(cfg *config.Config) (storage.Store, error) {
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		database, err := db.Open(cfg.Storage.Path)
		if err != nil {
			return nil, err
		}
		if err := db.EnsureSchema(database); err != nil {
			database.Close()
			return nil, err
		}
		return storage.NewSQLiteStore(database, storage.DefaultKey), nil
	default:
		return storage.NewFileStore(cfg.Storage.Path), nil
	}
}

// initConfig writes a starter config with fresh admin credentials and
// returns the generated admin password.
func initConfig(path string) (string, error) {
	password, err := generatePassword(16)
	if err != nil {
		return "", fmt.Errorf("generating password: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}

	secret, err := generatePassword(32)
	if err != nil {
		return "", fmt.Errorf("generating JWT secret: %w", err)
	}

	cfg := config.Default()
	cfg.Auth.PasswordHash = string(hash)
	cfg.Auth.JWTSecret = secret

	if err := cfg.Save(path); err != nil {
		return "", err
	}
	return password, nil
}

// generatePassword creates a random password of the given length.
func generatePassword(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%&*"
	result := make([]byte, length)
	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		result[i] = charset[n.Int64()]
	}
	return string(result), nil
}
