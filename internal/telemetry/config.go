package telemetry

import "github.com/santhosh1815/hmi/internal/errors"

const (
	// File system permissions and paths
	defaultDirPerm = 0o755
	defaultDBPath  = "/var/lib/hmi/telemetry.db"

	defaultBatchSize    = 32
	defaultBatchTimeout = 30
)

type Config struct {
	DBPath       string
	BatchSize    int
	BatchTimeout int
	Enabled      bool
}

func DefaultConfig() Config {
	return Config{
		DBPath:       defaultDBPath,
		BatchSize:    defaultBatchSize,
		BatchTimeout: defaultBatchTimeout,
		Enabled:      false,
	}
}

func (c Config) Validate() error {
	errFactory := errors.New()

	// Only validate storage settings if recording is enabled
	if !c.Enabled {
		return nil
	}

	if c.DBPath == "" {
		return errFactory.New(ErrInvalidDBPath)
	}

	if c.BatchSize <= 0 || c.BatchTimeout <= 0 {
		return errFactory.New(ErrInvalidConfig)
	}

	return nil
}
