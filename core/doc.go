// Package core contains the business logic of the feed aggregation
// pipeline. It is framework-agnostic and performs no network I/O of its own;
// everything external is reached through the interfaces package.
//
// The core package is organized into several sub-packages:
//
// - domain: Pure domain models (Feed, Channel, Item, MRSSEntry)
// - parser: Feed dialect parsers (RSS 2.0, Atom, RDF) and the MediaRSS sub-parser
// - identity: The ID allocator and the identity cascade over parsed graphs
// - scheduler: The dual-timer update scheduler with its rotation queue
// - fetch: The adapter gluing scheduler, downloader, parser and store together
// - interfaces: Contracts for external collaborators (cache, downloader, store, logger)
//
// # Design Principles
//
// The core package follows clean architecture principles:
// - No external framework dependencies
// - All external dependencies are injected via interfaces
// - Business logic is testable in isolation
// - Domain models are free from persistence concerns
//
// # Usage Example
//
//	import (
//	    "aggregator-core/core/fetch"
//	    "aggregator-core/core/identity"
//	    "aggregator-core/core/parser"
//	)
//
//	alloc := identity.NewAllocator()
//	registry := parser.NewRegistry(alloc, logger)
//	adapter := fetch.New(fetch.Config{}, downloader, registry, store, alloc, deps)
//
//	// One full fetch cycle for a subscribed feed
//	err := adapter.UpdateFeed(ctx, feedID)
package core
