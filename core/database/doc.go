// Package database opens the optional attachment journal database.
//
// It wraps GORM and supports MySQL for shared deployments and SQLite for a single
// host. When no driver is configured Connect returns ErrDisabled and the host runs
// without a journal.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    logg.Warn("Optional database connection failed", zap.Error(err))
//	}
package database
