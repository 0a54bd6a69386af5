// Command querytrans rewrites search queries across Chinese orthographies
// and counts the words of archived chat messages.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/custodia-labs/querytrans/internal/adapters/driven/config/file"
	"github.com/custodia-labs/querytrans/internal/adapters/driven/dictionary"
	"github.com/custodia-labs/querytrans/internal/adapters/driven/opencc"
	"github.com/custodia-labs/querytrans/internal/adapters/driven/segmenter"
	"github.com/custodia-labs/querytrans/internal/adapters/driven/storage/dump"
	"github.com/custodia-labs/querytrans/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/querytrans/internal/adapters/driving/cli"
	"github.com/custodia-labs/querytrans/internal/core/domain"
	"github.com/custodia-labs/querytrans/internal/core/ports/driving"
	"github.com/custodia-labs/querytrans/internal/core/services"
	"github.com/custodia-labs/querytrans/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	err := cli.Execute(ctx)
	stop()
	_ = logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

// bootstrap wires the driven adapters into the services for one command.
// The returned cleanup closes the store and stops the stop-word watcher.
func bootstrap(ctx context.Context, configDir string) (cli.Services, func(), error) {
	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return cli.Services{}, nil, fmt.Errorf("opening config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	// A broken config still allows "config set" to repair it.
	settings, err := settingsService.Get()
	if err != nil {
		logger.Warn("Reading settings from %s: %v", settingsService.Path(), err)
		return cli.Services{Settings: settingsService}, func() {}, nil
	}

	converter, err := opencc.NewConverter(settings.Transform.Schemes...)
	if err != nil {
		logger.Warn("Loading conversion schemes: %v", err)
		return cli.Services{Settings: settingsService}, func() {}, nil
	}
	queryService := services.NewQueryService(converter, settings.Transform.ExpandOptions())

	store, err := sqlite.NewStore(settings.Messages.DataDir,
		sqlite.WithPageSize(settings.Messages.PageSize),
		sqlite.WithRateLimit(settings.Messages.PagesPerSecond),
	)
	if err != nil {
		return cli.Services{}, nil, fmt.Errorf("opening message store: %w", err)
	}
	messageService := services.NewMessageService(store.MessageStore(), dump.NewReader())

	var (
		mu      sync.Mutex
		watcher *dictionary.Watcher
	)
	wordCount := services.NewLazyWordCountService(func() (driving.WordCountService, error) {
		svc, err := newWordCountService(store, settings.CutWords)
		if err != nil {
			return nil, err
		}
		mu.Lock()
		watcher = watchStopWords(ctx, settings.CutWords.StopWordsPath, svc)
		mu.Unlock()
		return svc, nil
	})

	cleanup := func() {
		mu.Lock()
		defer mu.Unlock()
		if watcher != nil {
			watcher.Stop()
		}
		if err := store.Close(); err != nil {
			logger.Warn("closing message store: %v", err)
		}
	}

	return cli.Services{
		Query:     queryService,
		WordCount: wordCount,
		Messages:  messageService,
		Settings:  settingsService,
	}, cleanup, nil
}

// newWordCountService loads the segmenter and word lists. Missing word
// list files are skipped with a warning.
func newWordCountService(store *sqlite.Store, cfg domain.CutWordsSettings) (*services.WordCountService, error) {
	tagger, err := segmenter.NewTagger()
	if err != nil {
		return nil, err
	}

	entries, err := dictionary.LoadUserDict(cfg.UserDictPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logger.Warn("user dictionary %s not found", cfg.UserDictPath)
	case err != nil:
		return nil, err
	default:
		if err := tagger.AddWords(entries); err != nil {
			return nil, err
		}
	}

	opts := domain.DefaultCountOptions()
	if cfg.MaxWordBytes > 0 {
		opts.MaxWordBytes = cfg.MaxWordBytes
	}

	svc := services.NewWordCountService(store.MessageStore(), tagger, opts)
	svc.SetDumpReader(dump.NewReader())

	words, err := dictionary.LoadStopWords(cfg.StopWordsPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logger.Warn("stop word list %s not found", cfg.StopWordsPath)
	case err != nil:
		return nil, err
	default:
		svc.SetStopWords(words)
	}

	return svc, nil
}

// watchStopWords reloads the stop word list into svc when its file
// changes. It returns nil when the file cannot be watched.
func watchStopWords(ctx context.Context, path string, svc driving.WordCountService) *dictionary.Watcher {
	w, err := dictionary.NewWatcher(path, func(p string) error {
		words, err := dictionary.LoadStopWords(p)
		if err != nil {
			return err
		}
		svc.SetStopWords(words)
		logger.Info("Reloaded %d stop words", len(words))
		return nil
	})
	if err != nil {
		logger.Warn("not watching stop words: %v", err)
		return nil
	}
	if err := w.Start(ctx); err != nil {
		logger.Warn("not watching stop words: %v", err)
		w.Stop()
		return nil
	}
	return w
}
