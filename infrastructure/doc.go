// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package. These implementations handle external concerns
// such as caching, HTTP downloads, persistence and logging.
//
// The infrastructure package is organized by technical concern:
//
// - cache/memory: In-memory document cache built on go-cache
// - download/standard: HTTP downloader with retry, pacing and concurrency bounds
// - logger/logrus: Structured logger backed by logrus
// - notify: Notification sink routing user-facing messages to the logger
// - state/sqlite: SQLite persistence for the scheduler's update timestamps
// - store/memory: In-memory subscription registry and store gateway
//
// # Design Philosophy
//
// Infrastructure components are designed to be:
// - Pluggable: Easy to swap implementations
// - Configurable: Accept configuration objects
// - Testable: Include both unit and integration tests
// - Production-ready: Include retries, timeouts, and error handling
//
// # Cache
//
//	cache := memory.NewMemoryCache()
//	err := cache.Set(ctx, "document:http://example.com/feed", data, 5*time.Minute)
//	value, err := cache.Get(ctx, "document:http://example.com/feed")
//
// # Downloader
//
// The downloader retries transient failures and classifies terminal ones:
//
//	d := standard.NewDownloader(standard.Config{Timeout: 30 * time.Second}, logger)
//	result, err := d.Delegate(ctx, interfaces.DownloadRequest{URL: url, DestPath: path})
//	if err != nil {
//	    // No handler accepted the request
//	}
//	if derr := <-result; derr != nil {
//	    // Terminal download failure with a category
//	}
//
// # Logger
//
// The logger supports structured logging with fields:
//
//	logger := logrus.New(logrus.Options{Level: "info"})
//	logger.Info("feed updated", map[string]interface{}{
//	    "feed_id": 3,
//	    "url":     "http://example.com/feed",
//	})
package infrastructure
