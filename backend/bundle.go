package backend

import (
	"context"

	"gioui.org/app"
	"git.sr.ht/~gioverse/skel/stream"
)

// WindowState holds the per-window handles to the application's backend.
type WindowState struct {
	Bundle
	Controller *stream.Controller
}

func NewWindowState(ctx context.Context, bundle Bundle, win *app.Window) WindowState {
	return WindowState{
		Bundle:     bundle,
		Controller: stream.NewController(ctx, win.Invalidate),
	}
}

// Bundle is the set of application-wide backend services.
type Bundle struct {
	Datasource *Datasource
}

func NewBundle(ds *Datasource) Bundle {
	return Bundle{
		Datasource: ds,
	}
}
