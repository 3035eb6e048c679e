package dev

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/docsite/internal/telemetry"
)

const (
	// ReloadPath is the WebSocket endpoint browsers connect to.
	ReloadPath = "/_docsite/reload"

	// ReloadScriptPath serves DevClientScript.
	ReloadScriptPath = "/_docsite/reload.js"
)

// ReloadMessageType tells the browser what to do.
type ReloadMessageType string

const (
	ReloadTypeFull  ReloadMessageType = "reload"
	ReloadTypeCSS   ReloadMessageType = "css"
	ReloadTypeError ReloadMessageType = "error"
	ReloadTypeClear ReloadMessageType = "clear"
)

// ReloadMessage is the JSON frame pushed to browsers.
type ReloadMessage struct {
	Type  ReloadMessageType `json:"type"`
	Error string            `json:"error,omitempty"`
	File  string            `json:"file,omitempty"`
}

const (
	clientQueue  = 8
	writeTimeout = 5 * time.Second
	pingEvery    = 30 * time.Second
)

// reloadClient owns one browser connection. Only its writer goroutine
// writes to conn.
type reloadClient struct {
	conn *websocket.Conn
	send chan []byte
}

// ReloadServer fans ReloadMessages out to connected browsers.
type ReloadServer struct {
	mu       sync.RWMutex
	clients  map[*reloadClient]struct{}
	upgrader websocket.Upgrader
	metrics  *telemetry.Metrics
	logger   *slog.Logger
}

// NewReloadServer creates a reload server. m may be nil.
func NewReloadServer(m *telemetry.Metrics, logger *slog.Logger) *ReloadServer {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReloadServer{
		clients: make(map[*reloadClient]struct{}),
		upgrader: websocket.Upgrader{
			// The dev server only listens for local browsers.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		metrics: m,
		logger:  logger,
	}
}

// HandleWebSocket upgrades the request and holds the connection open until
// the browser goes away.
func (r *ReloadServer) HandleWebSocket(w http.ResponseWriter, req *http.Request) {
	conn, err := r.upgrader.Upgrade(w, req, nil)
	if err != nil {
		r.logger.Debug("reload upgrade failed", "error", err)
		return
	}

	c := &reloadClient{conn: conn, send: make(chan []byte, clientQueue)}
	r.mu.Lock()
	r.clients[c] = struct{}{}
	n := len(r.clients)
	r.mu.Unlock()
	r.metrics.SetReloadClients(n)

	go c.writeLoop()

	// Browsers never send anything; reading only detects the close.
	for {
		if _, _, err := conn.NextReader(); err != nil {
			break
		}
	}
	r.drop(c)
}

func (c *reloadClient) writeLoop() {
	ping := time.NewTicker(pingEvery)
	defer func() {
		ping.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ping.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Send queues msg for every client. A client whose queue is full is
// disconnected; it reconnects and reloads on its own.
func (r *ReloadServer) Send(msg ReloadMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	r.metrics.RecordReload(string(msg.Type))

	var stalled []*reloadClient
	r.mu.RLock()
	for c := range r.clients {
		select {
		case c.send <- data:
		default:
			stalled = append(stalled, c)
		}
	}
	r.mu.RUnlock()

	for _, c := range stalled {
		r.logger.Debug("dropping slow reload client", "remote", c.conn.RemoteAddr())
		r.drop(c)
	}
}

// drop unregisters c and stops its writer. Safe to call more than once.
func (r *ReloadServer) drop(c *reloadClient) {
	r.mu.Lock()
	_, ok := r.clients[c]
	if ok {
		delete(r.clients, c)
		close(c.send)
	}
	n := len(r.clients)
	r.mu.Unlock()
	if ok {
		r.metrics.SetReloadClients(n)
	}
}

// ClientCount returns the number of connected browsers.
func (r *ReloadServer) ClientCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}

// Close disconnects every browser.
func (r *ReloadServer) Close() {
	r.mu.Lock()
	for c := range r.clients {
		delete(r.clients, c)
		close(c.send)
	}
	r.mu.Unlock()
	r.metrics.SetReloadClients(0)
}

// ServeScript serves DevClientScript.
func (r *ReloadServer) ServeScript(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write([]byte(DevClientScript))
}

// DevClientScript connects to ReloadPath and applies ReloadMessages.
const DevClientScript = `(function () {
  'use strict';
  var OVERLAY = 'docsite-error-overlay';
  var delay = 500;

  function overlay(text) {
    hide();
    var el = document.createElement('div');
    el.id = OVERLAY;
    el.style.cssText = 'position:fixed;inset:0;z-index:2147483647;overflow:auto;padding:24px;' +
      'background:rgba(20,20,20,.94);color:#eee;font:14px/1.5 ui-monospace,monospace';
    el.innerHTML = '<h2 style="margin:0 0 16px;color:#ff6b6b">Failed to load docs</h2><pre style="white-space:pre-wrap"></pre>';
    el.querySelector('pre').textContent = text;
    document.body.appendChild(el);
  }

  function hide() {
    var el = document.getElementById(OVERLAY);
    if (el) el.parentNode.removeChild(el);
  }

  function restyle() {
    var links = document.querySelectorAll('link[rel="stylesheet"]');
    for (var i = 0; i < links.length; i++) {
      var url = new URL(links[i].href);
      url.searchParams.set('v', String(Date.now()));
      links[i].href = url.toString();
    }
  }

  function open() {
    var scheme = location.protocol === 'https:' ? 'wss://' : 'ws://';
    var ws = new WebSocket(scheme + location.host + '` + ReloadPath + `');
    ws.onopen = function () { delay = 500; };
    ws.onmessage = function (ev) {
      var msg;
      try { msg = JSON.parse(ev.data); } catch (_) { return; }
      if (msg.type === 'reload') location.reload();
      else if (msg.type === 'css') restyle();
      else if (msg.type === 'error') overlay(msg.error);
      else if (msg.type === 'clear') hide();
    };
    ws.onclose = function () {
      setTimeout(open, delay);
      delay = Math.min(delay * 2, 16000);
    };
  }

  open();
})();
`
