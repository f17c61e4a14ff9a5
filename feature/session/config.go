package session

import "time"

// Config holds configuration for the hosted session.
type Config struct {
	// ContentPack is the pack loaded when no cpack/content_pack parameter is given.
	ContentPack string `mapstructure:"content_pack" default:""`
	// ResyncIntervalMs is the attachment resync period. Zero or less disables the ticker.
	ResyncIntervalMs int `mapstructure:"resync_interval_ms" default:"5000"`
	// PreloadConcurrency bounds concurrent model loads. Zero or less is unbounded.
	PreloadConcurrency int `mapstructure:"preload_concurrency" default:"8"`
	// TrackerAttachPoint is where each user's hidden tracker is attached.
	TrackerAttachPoint string `mapstructure:"tracker_attach_point" default:"center-eye"`
	// TrackerRadius is the radius of the tracker's trigger sphere, in meters.
	TrackerRadius float64 `mapstructure:"tracker_radius" default:"0.1"`
	// DefaultAttachPoint is used when a worn artifact names no attach point.
	DefaultAttachPoint string `mapstructure:"default_attach_point" default:"head"`
}

// ResyncInterval returns the resync period.
func (c Config) ResyncInterval() time.Duration {
	if c.ResyncIntervalMs <= 0 {
		return 0
	}
	return time.Duration(c.ResyncIntervalMs) * time.Millisecond
}

func (c Config) trackerPoint() string {
	if c.TrackerAttachPoint == "" {
		return "center-eye"
	}
	return c.TrackerAttachPoint
}

func (c Config) defaultPoint() string {
	if c.DefaultAttachPoint == "" {
		return "head"
	}
	return c.DefaultAttachPoint
}
