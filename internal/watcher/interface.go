package watcher

import "context"

// Watcher monitors a directory and dispatches new files to a handler.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler processes one newly appeared file.
type EventHandler func(ctx context.Context, filePath string) error
