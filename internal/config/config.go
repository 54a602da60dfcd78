// Package config resolves runtime settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alexanderramin/samplan/internal/domain"
	"github.com/alexanderramin/samplan/internal/progress"
	"github.com/joho/godotenv"
)

// Config holds everything the binary needs to wire itself.
type Config struct {
	DBPath       string
	Actor        string
	Role         domain.Role
	LogUseCases  bool
	HTTPAddr     string
	CORSOrigins  []string
	TemplateFile string
	Variance     progress.VariancePolicy
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DBPath:      defaultDBPath(),
		Actor:       defaultActor(),
		Role:        domain.RoleProjectManager,
		HTTPAddr:    ":8080",
		CORSOrigins: []string{"*"},
		Variance:    progress.DefaultVariancePolicy(),
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "samplan.db"
	}
	return filepath.Join(home, ".samplan", "samplan.db")
}

func defaultActor() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "samplan"
}

// Load reads the given env files (".env" when none are named; missing files
// are skipped) and then the process environment, which wins over file values.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	fileVars := map[string]string{}
	for _, path := range envFiles {
		vars, err := godotenv.Read(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return Config{}, fmt.Errorf("reading %s: %w", path, err)
		}
		for k, v := range vars {
			if _, seen := fileVars[k]; !seen {
				fileVars[k] = v
			}
		}
	}

	lookup := func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return fileVars[key]
	}
	return fromLookup(lookup)
}

// LoadConfig reads configuration from environment variables only, falling
// back to defaults for any unset values.
func LoadConfig() (Config, error) {
	return fromLookup(os.Getenv)
}

func fromLookup(get func(string) string) (Config, error) {
	cfg := DefaultConfig()

	if v := get("SAMPLAN_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := get("SAMPLAN_ACTOR"); v != "" {
		cfg.Actor = v
	}
	if v := get("SAMPLAN_ROLE"); v != "" {
		role, err := domain.ParseRole(v)
		if err != nil {
			return Config{}, fmt.Errorf("SAMPLAN_ROLE: %w", err)
		}
		cfg.Role = role
	}
	if v := get("SAMPLAN_LOG_USE_CASES"); v != "" {
		cfg.LogUseCases, _ = strconv.ParseBool(v)
	}
	if v := get("SAMPLAN_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := get("SAMPLAN_CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = splitList(v)
	}
	if v := get("SAMPLAN_TEMPLATE_FILE"); v != "" {
		cfg.TemplateFile = v
	}

	applyIntEnv(get, "SAMPLAN_VARIANCE_AHEAD_TOLERANCE", &cfg.Variance.AheadTolerance)
	applyIntEnv(get, "SAMPLAN_VARIANCE_BEHIND_GAP", &cfg.Variance.BehindGap)
	applyIntEnv(get, "SAMPLAN_VARIANCE_CRITICAL_GAP", &cfg.Variance.CriticalGap)
	applyIntEnv(get, "SAMPLAN_VARIANCE_CRITICAL_DELAYED", &cfg.Variance.CriticalDelayed)

	if err := cfg.Variance.Validate(); err != nil {
		return Config{}, fmt.Errorf("variance policy: %w", err)
	}
	return cfg, nil
}

// applyIntEnv ignores values that are not non-negative integers.
func applyIntEnv(get func(string) string, key string, dst *int) {
	v := get(key)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		return
	}
	*dst = n
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Session is the caller identity configured for this process.
func (c Config) Session() domain.Session {
	return domain.Session{Actor: c.Actor, Role: c.Role}
}
