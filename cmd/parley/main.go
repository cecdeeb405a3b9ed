// Parley: dual-mode AI assistant.
//
// One agent, three surfaces:
//
//	parley chat    # Interactive terminal chat
//	parley serve   # MCP server over stdio
//	parley web     # URL shortener HTTP server
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"parley/internal/assistant"
	"parley/internal/chat"
	"parley/internal/config"
	"parley/internal/conversation"
	"parley/internal/gateway"
	"parley/internal/server"
	"parley/internal/shortener"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// Everything logs to stderr: "serve" owns stdout for the MCP
	// transport and "chat" owns it for the conversation.
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
	})

	switch os.Args[1] {
	case "chat":
		if err := runChat(logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "serve":
		if err := runServe(logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "web":
		if err := runWeb(logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "--help", "-h", "help":
		printUsage()
		os.Exit(0)
	case "--version", "-v", "version":
		fmt.Printf("parley v%s\n", server.Version)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

// signalContext returns a context cancelled on SIGINT/SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runChat(logger *log.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.RequireAPIKey(); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	store := conversation.New(cfg.MaxHistoryPairs, cfg.MaxSessions)
	a := assistant.New(store, gateway.NewOpenAI(cfg.APIKey, cfg.Model))
	logger.Debug("chat session starting", "model", cfg.Model)

	sess := chat.New(a, os.Stdin, os.Stdout)
	if err := sess.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func runServe(logger *log.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	s, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	logger.Info("MCP server starting on stdio", "model", cfg.Model)
	return mcpserver.ServeStdio(s)
}

func runWeb(logger *log.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	store, err := shortener.NewStore(cfg.DataDir, cfg.LinkTTL)
	if err != nil {
		return err
	}
	defer store.Close()

	handler := shortener.NewHandler(shortener.NewService(store), logger)
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: handler.Routes(),
	}

	ctx, cancel := signalContext()
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("URL shortener listening", "addr", cfg.HTTPAddr, "ttl", cfg.LinkTTL)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if purged, err := store.Purge(); err == nil && purged > 0 {
		logger.Debug("purged expired links", "count", purged)
	}
	return nil
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Parley v%s — Dual-Mode AI Assistant

Usage:
  parley chat      Interactive terminal chat
  parley serve     Start the MCP server (stdio transport)
  parley web       Start the URL shortener HTTP server
  parley version   Print the version

Configuration (environment or .env):
  OPENAI_API_KEY       OpenAI API key (required for chat and serve)
  PARLEY_MODEL         Model name (default %s)
  PARLEY_MAX_HISTORY   Conversation pairs kept per session (default %d)
  PARLEY_MAX_SESSIONS  Live sessions kept (default %d)
  PARLEY_HTTP_ADDR     Shortener listen address (default %s)
  PARLEY_DATA_DIR      Shortener database directory (default ~/.parley)
  PARLEY_LINK_TTL      Shortened link lifetime (default %s)

MCP config for your AI tool:

  {
    "mcpServers": {
      "parley": {
        "command": "parley",
        "args": ["serve"]
      }
    }
  }
`, server.Version, config.DefaultModel, config.DefaultMaxHistory,
		config.DefaultMaxSessions, config.DefaultHTTPAddr, config.DefaultLinkTTL)
}
