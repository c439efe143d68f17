// ABOUTME: Bridges the scheduler to the download layer and the dialect parsers
// ABOUTME: One UpdateFeed call covers download, parse, identity assignment and store handoff

package fetch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"aggregator-core/core/domain"
	"aggregator-core/core/identity"
	"aggregator-core/core/interfaces"
	"aggregator-core/core/parser"
)

// DefaultDocumentTTL bounds how long a fetched document is reused before the
// transport is asked again.
const DefaultDocumentTTL = 5 * time.Minute

// Config tunes the adapter.
type Config struct {
	// Silent suppresses user-facing notifications for download and parse
	// failures. Errors are still logged.
	Silent bool

	// DocumentTTL overrides DefaultDocumentTTL when positive.
	DocumentTTL time.Duration

	// KeepFailedDocuments preserves a copy of documents that failed to
	// parse for later inspection.
	KeepFailedDocuments bool
}

// Adapter runs one feed's fetch cycle end to end.
type Adapter struct {
	cfg        Config
	downloader interfaces.Downloader
	registry   *parser.Registry
	store      interfaces.StoreGateway
	alloc      *identity.Allocator
	deps       interfaces.Dependencies
}

// New creates an adapter around the given collaborators.
func New(cfg Config, downloader interfaces.Downloader, registry *parser.Registry, store interfaces.StoreGateway, alloc *identity.Allocator, deps interfaces.Dependencies) *Adapter {
	if cfg.DocumentTTL <= 0 {
		cfg.DocumentTTL = DefaultDocumentTTL
	}
	return &Adapter{
		cfg:        cfg,
		downloader: downloader,
		registry:   registry,
		store:      store,
		alloc:      alloc,
		deps:       deps,
	}
}

// UpdateFeed fetches, parses and stores one feed. A failure here never
// affects any other feed's cycle; the error return is for logging and tests.
func (a *Adapter) UpdateFeed(ctx context.Context, feedID domain.ID) error {
	url, err := a.store.FeedURL(ctx, feedID)
	if err != nil {
		a.deps.Logger.Error("resolve feed URL", map[string]interface{}{
			"feed_id": int64(feedID),
			"error":   err.Error(),
		})
		return err
	}

	cacheKey := "document:" + url
	if data, err := a.deps.Cache.Get(ctx, cacheKey); err == nil && len(data) > 0 {
		a.deps.Logger.Debug("using cached document", map[string]interface{}{
			"url": url,
		})
		return a.processDocument(ctx, feedID, url, data)
	}

	data, err := a.download(ctx, url)
	if err != nil {
		return err
	}

	if err := a.deps.Cache.Set(ctx, cacheKey, data, a.cfg.DocumentTTL); err != nil {
		a.deps.Logger.Warn("cache document", map[string]interface{}{
			"url":   url,
			"error": err.Error(),
		})
	}

	return a.processDocument(ctx, feedID, url, data)
}

// download delegates to the transport layer and waits for the terminal
// result. The temp file only exists for the duration of the call.
func (a *Adapter) download(ctx context.Context, url string) ([]byte, error) {
	tmp, err := os.CreateTemp("", "aggregator-*.xml")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	path := tmp.Name()
	tmp.Close()
	defer os.Remove(path)

	req := interfaces.DownloadRequest{
		URL:           url,
		DestPath:      path,
		Internal:      true,
		Silent:        true,
		NotPersistent: true,
	}
	result, err := a.downloader.Delegate(ctx, req)
	if err != nil {
		if errors.Is(err, interfaces.ErrNoHandler) {
			a.notify(interfaces.SeverityCritical, "Feed error",
				fmt.Sprintf("Could not find plugin for feed with URL %s", url))
		}
		a.deps.Logger.Error("delegate download", map[string]interface{}{
			"url":   url,
			"error": err.Error(),
		})
		return nil, err
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case derr := <-result:
		if derr != nil {
			a.notify(interfaces.SeverityCritical, "Feed error",
				fmt.Sprintf("Unable to download %s: %s.", url, derr.Category))
			a.deps.Logger.Error("download failed", map[string]interface{}{
				"url":      url,
				"category": derr.Category.String(),
				"error":    derr.Error(),
			})
			return nil, derr
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read downloaded document: %w", err)
	}
	return data, nil
}

// processDocument parses the raw bytes, assigns identities and hands the
// channels to the store.
func (a *Adapter) processDocument(ctx context.Context, feedID domain.ID, url string, data []byte) error {
	channels, err := a.registry.ParseDocument(data, feedID)
	if err != nil {
		body := fmt.Sprintf("XML parse error for the feed %s.", url)
		if errors.Is(err, parser.ErrUnknownDialect) {
			body = fmt.Sprintf("Could not find parser to parse %s.", url)
		}
		a.notify(interfaces.SeverityCritical, "Feed error", body)
		a.deps.Logger.Error("parse document", map[string]interface{}{
			"feed_id": int64(feedID),
			"url":     url,
			"error":   err.Error(),
		})
		if a.cfg.KeepFailedDocuments {
			a.preserveFailedDocument(url, data)
		}
		return err
	}

	for i := range channels {
		channels[i].FeedID = feedID
		a.alloc.AssignChannel(&channels[i])
		for j := range channels[i].Items {
			channels[i].Items[j].FixDate()
		}
	}

	if err := a.store.UpdateChannels(ctx, feedID, url, channels); err != nil {
		a.deps.Logger.Error("store channels", map[string]interface{}{
			"feed_id": int64(feedID),
			"url":     url,
			"error":   err.Error(),
		})
		return err
	}

	a.deps.Logger.Info("feed updated", map[string]interface{}{
		"feed_id":  int64(feedID),
		"url":      url,
		"channels": len(channels),
	})
	return nil
}

func (a *Adapter) preserveFailedDocument(url string, data []byte) {
	f, err := os.CreateTemp("", "aggregator-failed-*.xml")
	if err != nil {
		a.deps.Logger.Warn("preserve failed document", map[string]interface{}{
			"url":   url,
			"error": err.Error(),
		})
		return
	}
	defer f.Close()
	if _, err := f.Write(data); err != nil {
		a.deps.Logger.Warn("preserve failed document", map[string]interface{}{
			"url":   url,
			"error": err.Error(),
		})
		return
	}
	a.deps.Logger.Info("failed document preserved", map[string]interface{}{
		"url":  url,
		"path": f.Name(),
	})
}

func (a *Adapter) notify(severity interfaces.Severity, title, body string) {
	if a.cfg.Silent || a.deps.Notifier == nil {
		return
	}
	a.deps.Notifier.Notify(interfaces.Notification{
		Title:    title,
		Body:     body,
		Severity: severity,
	})
}
