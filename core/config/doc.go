// Package config provides configuration management for the artifact host.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: admin API port, API key and relay port
//   - Storage: S3/MinIO credentials, bucket and model prefix
//   - Log: Logging level and format
//   - Database: optional journal database (mysql or sqlite)
//   - ContentPack: pack host, source and cache settings
//   - Session: default pack, resync interval, preload concurrency and attach points
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Session.ResyncIntervalMs)
package config
