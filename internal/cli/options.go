package cli

import (
	"fmt"
	"time"
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

// EnvEncryptionKey holds the base64 AES-256 key used to seal stored sessions.
const EnvEncryptionKey = "ARBOR_ENCRYPTION_KEY"

// EnvFallbackKey holds the previous key while sessions are being rotated.
const EnvFallbackKey = "ARBOR_ENCRYPTION_FALLBACK_KEY"

// Options contains the configuration shared by every command.
type Options struct {
	// Dir is a directory of schema documents (Markdown, JSON or YAML) read through Loam.
	Dir string
	// File is a single YAML or JSON schema definition.
	File string

	Store       string
	SessionsDir string
	RedisURL    string
	SessionTTL  time.Duration

	// AllowPlaintext accepts sessions stored before encryption was enabled.
	AllowPlaintext bool

	MaxInputSize int
	Debug        bool
}

// RunOptions configures the interactive run command.
type RunOptions struct {
	Options

	Schema    string
	SessionID string
	Headless  bool
	JSON      bool
	Watch     bool
	Fresh     bool
}

// Validate checks flag combinations before anything is opened.
func (o Options) Validate() error {
	switch o.Store {
	case "", StoreMemory, StoreFile:
	case StoreRedis:
		if o.RedisURL == "" {
			return fmt.Errorf("--redis-url is required with --store=%s", StoreRedis)
		}
	default:
		return fmt.Errorf("unknown store %q (supported: %s, %s, %s)", o.Store, StoreMemory, StoreFile, StoreRedis)
	}
	if o.Dir != "" && o.File != "" {
		return fmt.Errorf("--dir and --file cannot be used together")
	}
	return nil
}

// Validate checks flag combinations for the run command.
func (o RunOptions) Validate() error {
	if err := o.Options.Validate(); err != nil {
		return err
	}
	if o.Watch && o.Headless {
		return fmt.Errorf("--watch and --headless cannot be used together")
	}
	if o.Watch && o.Dir == "" {
		return fmt.Errorf("--watch requires --dir")
	}
	if o.Fresh && o.SessionID == "" {
		return fmt.Errorf("--fresh requires --session")
	}
	return nil
}
