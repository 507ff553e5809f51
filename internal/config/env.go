package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/term"
)

// Config contains all configuration parameters for the daemon.
// Note: the session file passphrase is prompted at runtime and kept in
// memory - use GetSessionPassphraseBytes()
type Config struct {
	Port string `envconfig:"PORT" default:"8080"`

	SolanaRPCURL string `envconfig:"SOLANA_RPC_URL" default:"https://api.mainnet-beta.solana.com"`
	Commitment   string `envconfig:"SOLANA_COMMITMENT" default:"confirmed"`
	TokenMint    string `envconfig:"TOKEN_MINT" default:"EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"`

	// FiatCurrency is the CoinGecko vs_currency code for balance display
	FiatCurrency string `envconfig:"FIAT_CURRENCY" default:"usd"`

	PortalURL string `envconfig:"PORTAL_URL" required:"true"`
	PortalApp string `envconfig:"PORTAL_APP_ID" required:"true"`
	RelayURL  string `envconfig:"RELAY_URL" required:"true"`
	RelayKey  string `envconfig:"RELAY_API_KEY"`

	// CallbackURL is the base the portal redirects back to after a
	// passkey ceremony (the daemon-side analog of the app deep link).
	CallbackURL string `envconfig:"CALLBACK_URL" default:"http://localhost:8080"`

	SessionBackend  string `envconfig:"SESSION_BACKEND" default:"file"`
	SessionFilePath string `envconfig:"SESSION_FILE_PATH" default:"wallet-session.pkw"`
	RedisURL        string `envconfig:"REDIS_URL" default:"redis://localhost:6379/0"`
	SessionTTLDays  int    `envconfig:"SESSION_TTL_DAYS" default:"30"`

	ConfirmTimeoutSec int `envconfig:"CONFIRM_TIMEOUT_SECONDS" default:"60"`
	ConfirmPollMs     int `envconfig:"CONFIRM_POLL_MS" default:"1500"`
}

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables.
func Init() error {
	cfg = &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return fmt.Errorf("failed to process config: %w", err)
	}
	if cfg.SessionBackend != "file" && cfg.SessionBackend != "redis" {
		return fmt.Errorf("SESSION_BACKEND must be file or redis, got %q", cfg.SessionBackend)
	}
	return nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// GetPort returns port from configuration
func GetPort() string {
	return Get().Port
}

// GetSolanaRPCURL returns Solana RPC URL from configuration
func GetSolanaRPCURL() string {
	return Get().SolanaRPCURL
}

// GetSessionTTL returns the rolling session lifetime
func GetSessionTTL() time.Duration {
	return time.Duration(Get().SessionTTLDays) * 24 * time.Hour
}

// GetConfirmTimeout returns how long a confirmation wait may block
func GetConfirmTimeout() time.Duration {
	return time.Duration(Get().ConfirmTimeoutSec) * time.Second
}

// GetConfirmPollInterval returns the signature status poll interval
func GetConfirmPollInterval() time.Duration {
	return time.Duration(Get().ConfirmPollMs) * time.Millisecond
}

var passphraseBytes []byte

// PromptForPassphrase prompts the user for the session file passphrase
// in the terminal. The passphrase is read without echoing (hidden input)
// and stored in memory. Call this at startup, before the server begins
// handling requests, when the file session backend is selected.
func PromptForPassphrase() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("stdin is not a terminal: run the daemon interactively to enter the passphrase")
	}
	fmt.Fprint(os.Stderr, "Enter session store passphrase: ")
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("failed to read passphrase: %w", err)
	}
	if len(raw) == 0 {
		return errors.New("passphrase cannot be empty")
	}

	passphraseBytes = make([]byte, len(raw))
	copy(passphraseBytes, raw)
	clear(raw)
	return nil
}

// GetSessionPassphraseBytes returns the passphrase stored in memory
// (from PromptForPassphrase). Caller must zero the returned slice after
// use for security.
func GetSessionPassphraseBytes() ([]byte, error) {
	if len(passphraseBytes) == 0 {
		return nil, errors.New("passphrase not set: call PromptForPassphrase at startup")
	}
	out := make([]byte, len(passphraseBytes))
	copy(out, passphraseBytes)
	return out, nil
}
