// File path: cmd/hubauditor/main.go
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/NicoLafakis/HubAuditor9001/internal/api"
	"github.com/NicoLafakis/HubAuditor9001/internal/auth"
	"github.com/NicoLafakis/HubAuditor9001/internal/common"
	"github.com/NicoLafakis/HubAuditor9001/internal/config"
	"github.com/NicoLafakis/HubAuditor9001/internal/llm"
	"github.com/NicoLafakis/HubAuditor9001/internal/sqlite"
)

func main() {
	logger := common.Logger()

	if err := godotenv.Load(); err != nil {
		logger.Warn("hubauditor: .env file not loaded", "error", err)
	} else {
		logger.Info("hubauditor: environment loaded from .env")
	}

	addr := flag.String("addr", "", "listen address (overrides config)")
	confPath := flag.String("conf", "", "path to the YAML config file")
	dbPath := flag.String("db", "", "path to the SQLite database (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*confPath)
	if err != nil {
		logger.Error("hubauditor: config load failed", "error", err)
		fmt.Println("config error:", err)
		os.Exit(1)
	}
	if trimmed := strings.TrimSpace(*addr); trimmed != "" {
		cfg.Server.Addr = trimmed
	}
	if trimmed := strings.TrimSpace(*dbPath); trimmed != "" {
		cfg.Store.Path = trimmed
	}

	logger.Info("hubauditor: startup initiated", "addr", cfg.Server.Addr, "db", cfg.Store.Path)

	cipher, err := auth.NewTokenCipher(cfg.Auth.EncryptionKey)
	if err != nil {
		logger.Error("hubauditor: token cipher init failed", "error", err)
		fmt.Println("encryption key error:", err)
		os.Exit(1)
	}

	store, err := sqlite.Open(cfg.Store.Path, cipher)
	if err != nil {
		logger.Error("hubauditor: store open failed", "error", err)
		fmt.Println("store error:", err)
		os.Exit(1)
	}
	defer store.Close()

	provider := llm.NewProvider(cfg.LLM)
	logger.Info("hubauditor: generation provider ready", "provider", provider.Name())

	server, err := api.NewServer(cfg, store, provider)
	if err != nil {
		logger.Error("hubauditor: server construction failed", "error", err)
		fmt.Println("server error:", err)
		os.Exit(1)
	}

	logger.Info("hubauditor: server listening", "addr", cfg.Server.Addr, "health", "/healthz")
	fmt.Printf("Serving on %s\n", cfg.Server.Addr)
	reachable := cfg.Server.Addr
	if strings.HasPrefix(reachable, ":") {
		reachable = "localhost" + reachable
	}
	logger.Info("hubauditor: verify reachability", "suggestion", fmt.Sprintf("curl http://%s/healthz", reachable))
	if err := http.ListenAndServe(cfg.Server.Addr, server); err != nil {
		logger.Error("hubauditor: server stopped", "error", err)
		fmt.Println("server stopped:", err)
	}
}
