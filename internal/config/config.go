// README: Config loader with env defaults for HTTP, snapshot storage and logging.
package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

type Config struct {
	ServiceName string

	HTTPAddr string

	// DataDir holds users.csv / trips.csv when no Postgres DSN is configured.
	DataDir string

	// PostgresDSN, when set, selects the Postgres snapshot backend instead of CSV.
	PostgresDSN string
}

func Load() Config {
	_ = godotenv.Load(".env")

	cfg := Config{}
	cfg.ServiceName = cast.ToString(getOrReturnDefault("SERVICE_NAME", "ridelink"))
	cfg.HTTPAddr = cast.ToString(getOrReturnDefault("RIDELINK_HTTP_ADDR", ":8080"))
	cfg.DataDir = cast.ToString(getOrReturnDefault("RIDELINK_DATA_DIR", "."))
	cfg.PostgresDSN = cast.ToString(getOrReturnDefault("RIDELINK_DB_DSN", ""))
	return cfg
}

func getOrReturnDefault(key string, defaultValue interface{}) interface{} {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}
