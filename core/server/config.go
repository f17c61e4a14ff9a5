package server

// Config holds configuration for the admin HTTP server and the session relay.
type Config struct {
	// Port is the port where the admin API listens.
	Port string `mapstructure:"port" default:"8080"`
	// RelayPort is the port where session clients connect over websocket.
	RelayPort string `mapstructure:"relay_port" default:"8090"`
	// ApiKey is the secret key required to access the admin API.
	ApiKey string `mapstructure:"api_key" default:""`
}

// AdminAddr returns the listen address of the admin API.
func (c Config) AdminAddr() string {
	return ":" + c.Port
}

// RelayAddr returns the listen address of the websocket relay.
func (c Config) RelayAddr() string {
	return ":" + c.RelayPort
}
