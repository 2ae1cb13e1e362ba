// Package main is the summarizer CLI entry point.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/divyamb08/multilingual-summarizer/internal/config"
	"github.com/divyamb08/multilingual-summarizer/internal/extract"
	"github.com/divyamb08/multilingual-summarizer/internal/language"
	"github.com/divyamb08/multilingual-summarizer/internal/server"
	"github.com/divyamb08/multilingual-summarizer/internal/store"
	"github.com/divyamb08/multilingual-summarizer/internal/summarize"
	"github.com/divyamb08/multilingual-summarizer/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/summarizer/config.yaml"

// loadConfig loads config from path. When path is the default, it first
// looks for config.yaml in the current directory (for development); if that
// exists it is used. Missing config files fall back to built-in defaults.
// Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
		if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
			return config.Default(), "", nil
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "extract":
		runExtract()
	case "detect":
		runDetect()
	case "version", "--version", "-v":
		fmt.Printf("summarizer version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, loadedPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(*debug || cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	if loadedPath != "" {
		logger.Info("Loaded config", zap.String("path", loadedPath))
	} else {
		logger.Info("No config file found, using defaults")
	}

	extractor := extract.NewExtractor(extract.Config{
		DocTimeout:      cfg.Extract.DocTimeout(),
		PageTimeout:     cfg.Extract.PageTimeout(),
		MinPDFTextLen:   cfg.Extract.MinPDFTextLen,
		MinRecoveredLen: cfg.Extract.MinRecoveredLen,
	}, logger)
	detector := language.New(cfg.Detect.MinLength)

	provider, err := buildProvider(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to configure summarizer provider", zap.Error(err))
	}
	service := summarize.NewService(provider, cfg.Summarizer.MultiCallThreshold, logger)

	st, err := store.Open(cfg.Storage.DatabasePath, cfg.Storage.HistoryLimit)
	if err != nil {
		logger.Fatal("Failed to open history store", zap.Error(err))
	}
	defer func() { _ = st.Close() }()

	srv := server.NewServer(extractor, detector, service, st, cfg, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.Info("Shutting down", zap.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			logger.Error("Server stopped", zap.Error(err))
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		logger.Error("Shutdown error", zap.Error(err))
	}
}

func buildProvider(cfg *config.Config, logger *zap.Logger) (summarize.Provider, error) {
	opts := summarize.Options{
		APIKey:    cfg.Summarizer.APIKey(),
		Model:     cfg.Summarizer.Model,
		BaseURL:   cfg.Summarizer.BaseURL,
		MaxTokens: cfg.Summarizer.MaxTokens,
		Timeout:   cfg.Summarizer.Timeout(),
	}
	if opts.APIKey == "" {
		logger.Warn("Summarizer API key is empty; summarize requests will fail",
			zap.String("env", cfg.Summarizer.APIKeyEnv))
	}
	switch cfg.Summarizer.Provider {
	case "openai":
		return summarize.NewOpenAI(opts, logger), nil
	case "claude":
		return summarize.NewClaude(opts, logger), nil
	default:
		return nil, fmt.Errorf("unknown summarizer provider %q (want openai or claude)", cfg.Summarizer.Provider)
	}
}

func runExtract() {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	_ = fs.Parse(os.Args[2:])
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: summarizer extract <file>")
		os.Exit(1)
	}
	extractor := extract.NewExtractor(extract.Config{}, zap.NewNop())
	result, err := extractor.ExtractFile(context.Background(), fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Extraction failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Format: %s\n\n%s\n", result.Format, result.Text)
}

func runDetect() {
	fs := flag.NewFlagSet("detect", flag.ExitOnError)
	_ = fs.Parse(os.Args[2:])
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: summarizer detect <file>")
		os.Exit(1)
	}
	extractor := extract.NewExtractor(extract.Config{}, zap.NewNop())
	result, err := extractor.ExtractFile(context.Background(), fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Extraction failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(language.Detect(result.Text))
}

func printUsage() {
	fmt.Println(`summarizer - document summarization service

Usage:
  summarizer server [--config path] [--debug]   start the HTTP API
  summarizer extract <file>                     extract text from a document
  summarizer detect <file>                      detect a document's language
  summarizer version                            print version
  summarizer help                               show this help`)
}
