// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"
	"strings"

	"github.com/koi-garden/koi-garden-api/internal/config"
)

// Create builds the PostgreSQL Data Source Name from the configuration.
func Create(dbCfg *config.Config) string {
	out := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dbCfg.DB.Host,
		dbCfg.DB.Port,
		dbCfg.DB.User,
		dbCfg.DB.Password,
		dbCfg.DB.Name,
		dbCfg.DB.SSLMode,
	)

	if extras := strings.TrimSpace(dbCfg.DB.Extras); extras != "" {
		out += " " + extras
	}

	return out
}
