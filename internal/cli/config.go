package cli

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/mcoot/elotrack/internal/factory"
	"github.com/mcoot/elotrack/internal/model"
	"github.com/mcoot/elotrack/internal/services/report"
	redisstorage "github.com/mcoot/elotrack/internal/storage/redis"
)

// Config holds CLI configuration
type Config struct {
	ConfigFile  string
	StorageType string
	DataPath    string
	RedisURL    string
	Output      string
	Verbose     bool
	ActiveDays  int

	KFactor       float64
	Deviation     float64
	DefaultRating float64
}

// FileConfig is the YAML config file layout. Unset fields leave the
// corresponding setting alone.
type FileConfig struct {
	Storage    string `yaml:"storage"`
	Data       string `yaml:"data"`
	RedisURL   string `yaml:"redis_url"`
	Output     string `yaml:"output"`
	Verbose    *bool  `yaml:"verbose"`
	ActiveDays *int   `yaml:"active_days"`
	Rating     struct {
		KFactor       float64 `yaml:"k_factor"`
		Deviation     float64 `yaml:"deviation"`
		DefaultRating float64 `yaml:"default_rating"`
	} `yaml:"rating"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ConfigFile:    os.Getenv("ELO_CONFIG"),
		StorageType:   getEnvOrDefault("ELO_STORAGE", factory.StorageTypeFile),
		DataPath:      os.Getenv("ELO_DATA"),
		RedisURL:      getEnvOrDefault("ELO_REDIS_URL", redisstorage.DefaultConfig().URL),
		Output:        getEnvOrDefault("ELO_OUTPUT", "text"),
		Verbose:       false,
		ActiveDays:    getEnvIntOrDefault("ELO_ACTIVE_DAYS", report.DefaultActiveDays),
		DefaultRating: model.DefaultRating,
	}
}

// LoadFile reads a YAML config file
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return &fc, nil
}

// Apply copies the file's settings into c, skipping any whose flag was set
// explicitly on the command line
func (c *Config) Apply(fc *FileConfig, flagChanged func(name string) bool) {
	setString := func(flag string, dst *string, val string) {
		if val != "" && !flagChanged(flag) {
			*dst = val
		}
	}
	setString("storage", &c.StorageType, fc.Storage)
	setString("data", &c.DataPath, fc.Data)
	setString("redis-url", &c.RedisURL, fc.RedisURL)
	setString("output", &c.Output, fc.Output)

	if fc.Verbose != nil && !flagChanged("verbose") {
		c.Verbose = *fc.Verbose
	}
	if fc.ActiveDays != nil && !flagChanged("active-days") {
		c.ActiveDays = *fc.ActiveDays
	}

	// Rating factors have no flags
	if fc.Rating.KFactor != 0 {
		c.KFactor = fc.Rating.KFactor
	}
	if fc.Rating.Deviation != 0 {
		c.Deviation = fc.Rating.Deviation
	}
	if fc.Rating.DefaultRating != 0 {
		c.DefaultRating = fc.Rating.DefaultRating
	}
}

// Validate checks the settings that the factory cannot
func (c *Config) Validate() error {
	switch c.Output {
	case "text", "json":
	default:
		return fmt.Errorf("invalid output format %q: must be text or json", c.Output)
	}
	if c.ActiveDays < 0 {
		return fmt.Errorf("active days must not be negative, got %d", c.ActiveDays)
	}
	return nil
}

// FactoryConfig converts the CLI settings into the application factory's
func (c *Config) FactoryConfig() factory.Config {
	fc := factory.Config{
		StorageType:   c.StorageType,
		DataPath:      c.DataPath,
		KFactor:       c.KFactor,
		Deviation:     c.Deviation,
		DefaultRating: c.DefaultRating,
	}
	if c.StorageType == factory.StorageTypeRedis {
		fc.RedisConfig = c.redisConfig()
	}
	return fc
}

func (c *Config) redisConfig() *redisstorage.Config {
	redisCfg := redisstorage.DefaultConfig()
	redisCfg.URL = c.RedisURL
	return &redisCfg
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvIntOrDefault(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}
