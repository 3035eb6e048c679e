// Package dev runs docsite's local preview server.
//
// Pages are rendered on request from an in-memory site. A polling Watcher
// reloads that site when anything under the docs or static directory, or
// docsite.json itself, changes; open browsers are then told to refresh over
// a WebSocket, so there is no build step while writing.
//
//	srv := dev.NewServer(dev.ServerOptions{Config: cfg})
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//	err := srv.Start(ctx)
//
// # Reload messages
//
// Pages include /_docsite/reload.js, which dials /_docsite/reload and
// receives JSON frames:
//
//	{"type":"reload"}              content or config changed
//	{"type":"css","file":"..."}    only a stylesheet changed
//	{"type":"error","error":"..."} the docs failed to load; show an overlay
//	{"type":"clear"}               the docs load again; hide the overlay
//
// A browser that falls behind is disconnected and reconnects on its own.
// Set dev.hotReload to false in docsite.json to turn all of this off.
package dev
