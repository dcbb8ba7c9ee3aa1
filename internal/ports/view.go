package ports

import "context"

// Level is the severity of a user-facing notification.
type Level string

const (
	LevelInfo  Level = "info"
	LevelError Level = "error"
)

// Notification is a transient, non-blocking message shown to the user.
type Notification struct {
	Level   Level
	Message string
}

// Notifier surfaces notifications to whoever renders the view (a toast in a
// browser, a warning line in the terminal, a field in a JSON view).
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// Location is the view's shareable address. The browse controller writes the
// canonical query string to it after every state change; it never reads it
// back after initialization.
type Location interface {
	// ReplaceQuery replaces the current query string. rawQuery has no leading
	// "?" and is empty when every filter is at its default.
	ReplaceQuery(rawQuery string)
}
