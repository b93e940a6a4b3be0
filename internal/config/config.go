package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rudransh-shrivastava/peer-chat/internal/protocol"
)

const envPrefix = "PEERCHAT_"

// Config holds everything a node needs to run. Paths are absolute after Load.
type Config struct {
	Identity string
	DataDir  string

	ListenHost  string
	MessagePort int
	FilePort    int
	MetricsAddr string

	MaxFileSize  int64
	PollInterval time.Duration
	DialTimeout  time.Duration
	IOTimeout    time.Duration

	LogLevel string
}

// Load reads PEERCHAT_* variables, after loading the given env files (".env" in the
// working directory when none are given). Only the implicit .env may be missing; a named
// file that is missing or malformed is an error. Variables already set in the environment
// win over the files.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil {
		if len(files) > 0 || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading env file: %w", err)
		}
	}
	return fromEnv()
}

func fromEnv() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	cfg := &Config{
		Identity:    getEnv("IDENTITY", os.Getenv("USER")),
		DataDir:     getEnv("DATA_DIR", filepath.Join(home, ".peerchat")),
		ListenHost:  getEnv("LISTEN_HOST", "0.0.0.0"),
		MetricsAddr: getEnv("METRICS_ADDR", ""),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}

	if cfg.MessagePort, err = getInt("MESSAGE_PORT", protocol.DefaultMessagePort); err != nil {
		return nil, err
	}
	if cfg.FilePort, err = getInt("FILE_PORT", protocol.DefaultFilePort); err != nil {
		return nil, err
	}
	maxFileSize, err := getInt("MAX_FILE_SIZE", protocol.DefaultMaxFileSize)
	if err != nil {
		return nil, err
	}
	cfg.MaxFileSize = int64(maxFileSize)

	if cfg.PollInterval, err = getDuration("POLL_INTERVAL", protocol.DefaultPollInterval); err != nil {
		return nil, err
	}
	if cfg.DialTimeout, err = getDuration("DIAL_TIMEOUT", protocol.DefaultDialTimeout); err != nil {
		return nil, err
	}
	if cfg.IOTimeout, err = getDuration("IO_TIMEOUT", protocol.DefaultIOTimeout); err != nil {
		return nil, err
	}

	if abs, err := filepath.Abs(cfg.DataDir); err == nil {
		cfg.DataDir = abs
	}
	return cfg, nil
}

// Validate is called once flags have been applied on top of the environment.
func (c *Config) Validate() error {
	if c.Identity == "" {
		return fmt.Errorf("identity is not set: use --identity or %sIDENTITY", envPrefix)
	}
	for name, port := range map[string]int{"message": c.MessagePort, "file": c.FilePort} {
		if port < 0 || port > 65535 {
			return fmt.Errorf("%s port %d out of range", name, port)
		}
	}
	if c.MessagePort != 0 && c.MessagePort == c.FilePort {
		return fmt.Errorf("message and file ports must differ, both are %d", c.MessagePort)
	}
	if c.MaxFileSize <= 0 {
		return fmt.Errorf("max file size must be positive, got %d", c.MaxFileSize)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %s", c.PollInterval)
	}
	return nil
}

func (c *Config) ConversationDir() string {
	return filepath.Join(c.DataDir, "conversations")
}

func (c *Config) DownloadDir() string {
	return filepath.Join(c.DataDir, "downloads")
}

func (c *Config) DirectoryPath() string {
	return filepath.Join(c.DataDir, "directory.db")
}

func (c *Config) MessageAddr() string {
	return joinHostPort(c.ListenHost, c.MessagePort)
}

func (c *Config) FileAddr() string {
	return joinHostPort(c.ListenHost, c.FilePort)
}

func joinHostPort(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(envPrefix + key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(envPrefix + key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s%s: %w", envPrefix, key, err)
	}
	return v, nil
}

// getDuration accepts Go durations ("3s") or a bare number of seconds.
func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(envPrefix + key)
	if raw == "" {
		return defaultValue, nil
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s%s: %w", envPrefix, key, err)
	}
	return d, nil
}
