package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"
	"golang.org/x/term"
)

// Config is the fully-resolved set of settings needed to reach the SSB
// API. It is built once per invocation and read-only afterwards.
type Config struct {
	BaseURL  string `yaml:"base_url"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Insecure bool   `yaml:"insecure"`
	Debug    bool   `yaml:"-"`
}

// PasswordPrompt supplies a password when no other source provides one.
type PasswordPrompt func() (string, error)

// BindFlags wires the CLI flags and the SSB_PASSWORD environment
// variable into v. Flag values take precedence over the environment,
// which takes precedence over the config file.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	bindings := map[string]string{
		"config":   "config",
		"base_url": "base-url",
		"username": "username",
		"password": "password",
		"insecure": "insecure",
		"debug":    "debug",
		"json":     "json",
	}
	for key, name := range bindings {
		flag := fs.Lookup(name)
		if flag == nil {
			return fmt.Errorf("flag %q is not defined", name)
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("binding flag %q: %w", name, err)
		}
	}
	// Only the password may come from the environment.
	if err := v.BindEnv("password", "SSB_PASSWORD"); err != nil {
		return fmt.Errorf("binding SSB_PASSWORD: %w", err)
	}
	return nil
}

// Resolve merges flag, environment, and file sources (in that
// precedence order) into a Config. A missing base URL or username is a
// fatal configuration error. A missing password falls back to prompt;
// pass nil to prompt on the terminal.
func Resolve(v *viper.Viper, prompt PasswordPrompt) (*Config, error) {
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := &Config{
		BaseURL:  strings.TrimRight(v.GetString("base_url"), "/"),
		Username: v.GetString("username"),
		Password: v.GetString("password"),
		Insecure: v.GetBool("insecure"),
		Debug:    v.GetBool("debug"),
	}

	if cfg.BaseURL == "" {
		return nil, errors.New("base URL must be provided via --base-url or the config file")
	}
	if cfg.Username == "" {
		return nil, errors.New("username must be provided via --username or the config file")
	}
	if cfg.Password == "" {
		if prompt == nil {
			prompt = PromptPassword
		}
		password, err := prompt()
		if err != nil {
			return nil, err
		}
		cfg.Password = password
	}
	return cfg, nil
}

// PromptPassword reads a password from the terminal without echo. The
// prompt is written to stderr so stdout stays clean for piping.
func PromptPassword() (string, error) {
	fmt.Fprint(os.Stderr, "Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(password), nil
}

// RedactedYAML renders the configuration as YAML with the password
// masked, for diagnostic output.
func (c *Config) RedactedYAML() (string, error) {
	redacted := *c
	if redacted.Password != "" {
		redacted.Password = "********"
	}
	data, err := yaml.Marshal(&redacted)
	if err != nil {
		return "", fmt.Errorf("marshalling config: %w", err)
	}
	return string(data), nil
}
