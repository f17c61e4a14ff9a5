// Package server holds the listener configuration of the host.
//
// The host exposes two listeners: the Fiber admin API (session summary, pack
// inspection, manual resync) and the websocket relay that session clients join.
package server
