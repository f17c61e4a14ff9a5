// Package loader provides the plugin-like feature loading system for the admin API.
//
// Each feature implements the Feature interface:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager registers features and loads the enabled ones via LoadAll. The host
// registers 'session' (live session state, manual resync) and 'contentpack'
// (pack inspection and integrity).
package loader
