package stats

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	// DriverCgo is the name of the cgo sqlite driver (github.com/mattn/go-sqlite3).
	DriverCgo = "sqlite3"

	// DriverPureGo is the name of the pure Go sqlite driver (modernc.org/sqlite).
	DriverPureGo = "sqlite"
)

type Config struct {
	// Dir is the directory holding the stats database. Default is the user config directory.
	Dir string `env:"PLAYSTATS_DIR"`

	// Driver is the sql driver used to open the database, either "sqlite3" or "sqlite". Default is "sqlite3".
	Driver string `env:"PLAYSTATS_DRIVER"`

	// BusyTimeout is how long sqlite waits on a locked database before failing. Default is 5 seconds.
	BusyTimeout time.Duration `env:"PLAYSTATS_BUSY_TIMEOUT"`

	// QueryTimeout bounds every single operation on the database. Default is 5 seconds.
	QueryTimeout time.Duration `env:"PLAYSTATS_QUERY_TIMEOUT"`

	// TopN is the default length of the most played ranking. Default is 10.
	TopN int `env:"PLAYSTATS_TOP_N"`
}

func NewConfig() Config {
	return Config{
		Dir:          defaultDir(),
		Driver:       DriverCgo,
		BusyTimeout:  5 * time.Second,
		QueryTimeout: 5 * time.Second,
		TopN:         DefaultTopN,
	}
}

func defaultDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, "playstats")
}

func (c Config) Validate() error {
	if c.Dir == "" {
		return errors.New("dir is not set")
	}
	if c.Driver != DriverCgo && c.Driver != DriverPureGo {
		return fmt.Errorf("driver must be %q or %q, got %q", DriverCgo, DriverPureGo, c.Driver)
	}
	if c.BusyTimeout < 0 {
		return errors.New("busy timeout must not be negative")
	}
	if c.QueryTimeout <= 0 {
		return errors.New("query timeout must be greater than 0")
	}
	if c.TopN <= 0 {
		return errors.New("top n must be greater than 0")
	}
	return nil
}

func (c Config) String() string {
	return fmt.Sprintf("Stats:\n"+
		"\tDir: %s\n"+
		"\tDriver: %s\n"+
		"\tBusy Timeout: %s\n"+
		"\tQuery Timeout: %s\n"+
		"\tTop N: %d",
		c.Dir,
		c.Driver,
		c.BusyTimeout,
		c.QueryTimeout,
		c.TopN)
}
