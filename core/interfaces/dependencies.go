// ABOUTME: Dependencies container provides dependency injection for core services
// ABOUTME: Defines the contract for dependencies required by the core business logic

package interfaces

// Dependencies holds the ambient dependencies shared by the core pipeline
// components. Larger collaborators (store, downloader, parser) are passed
// explicitly where needed.
type Dependencies struct {
	// Cache provides caching functionality
	Cache Cache

	// Logger provides structured logging
	Logger Logger

	// Notifier receives user-facing failure notifications
	Notifier NotificationSink
}
