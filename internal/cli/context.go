// Package cli provides the command-line interface for motorreg.
package cli

import (
	"context"
	"sync"

	"github.com/law-makers/motorreg/internal/app"
	"github.com/spf13/cobra"
)

type ctxKey struct{}

var (
	activeMu  sync.Mutex
	activeApp *app.Application
)

// SetApp stores the Application in the command's context. The most recent
// application is also tracked so Execute can close it when a command fails.
func SetApp(cmd *cobra.Command, a *app.Application) {
	if cmd == nil {
		return
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, ctxKey{}, a))

	activeMu.Lock()
	activeApp = a
	activeMu.Unlock()
}

// GetAppFromCmd returns the Application stored on cmd or its nearest parent.
func GetAppFromCmd(cmd *cobra.Command) *app.Application {
	for c := cmd; c != nil; c = c.Parent() {
		if ctx := c.Context(); ctx != nil {
			if a, ok := ctx.Value(ctxKey{}).(*app.Application); ok && a != nil {
				return a
			}
		}
	}
	return nil
}

// takeActiveApp returns the tracked Application and forgets it.
func takeActiveApp() *app.Application {
	activeMu.Lock()
	defer activeMu.Unlock()
	a := activeApp
	activeApp = nil
	return a
}
