package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-d database file path
//	-f binary file storage dir
//	-c/-config json file path with configs
//	-token-issuer token issuer name
//	-token-duration session token duration (e.g., "1h", "30m")
//	-reconcile-interval scheduler pass interval (e.g., "60s")
//	-op-timeout storage operation timeout for the scheduler (e.g., "10s")
func ParseFlags() *StructuredConfig {
	var databaseDSN string
	var fileStorageDir string
	var jsonConfigPath string
	var tokenIssuer string
	var tokenDuration time.Duration
	var reconcileInterval time.Duration
	var opTimeout time.Duration

	flag.StringVar(&databaseDSN, "d", "", "Database file path")
	flag.StringVar(&fileStorageDir, "f", "", "Binary file storage dir")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	flag.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	flag.DurationVar(&reconcileInterval, "reconcile-interval", 0, "Reconciliation pass interval (e.g., 60s)")
	flag.DurationVar(&opTimeout, "op-timeout", 0, "Storage operation timeout (e.g., 10s)")

	flag.Parse()

	return &StructuredConfig{
		Auth: Auth{
			TokenIssuer:   tokenIssuer,
			TokenDuration: tokenDuration,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
			Files: Files{
				BinaryDataDir: fileStorageDir,
			},
			OpTimeout: opTimeout,
		},
		Scheduler: Scheduler{
			ReconcileInterval: reconcileInterval,
		},
		JSONFilePath: jsonConfigPath,
	}
}
