// Package auth validates access secrets and throttles failed logins.
package auth

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
)

// Validator checks access secrets against the registry file and the
// per-secret storage folders. The registry is re-read on every check so
// newly issued secrets work without a restart.
type Validator struct {
	registryFile string
	secretsDir   string
	logger       *slog.Logger
}

func NewValidator(registryFile, secretsDir string, logger *slog.Logger) *Validator {
	return &Validator{
		registryFile: registryFile,
		secretsDir:   secretsDir,
		logger:       logger,
	}
}

// IsValid reports whether the secret is well-formed, registered, and has a
// storage folder. The reasons are deliberately not distinguished: callers
// respond with the same generic failure either way.
func (v *Validator) IsValid(secret string) bool {
	if !WellFormed(secret) {
		return false
	}

	registered := false
	for _, s := range v.loadRegistry() {
		if s == secret {
			registered = true
			break
		}
	}
	if !registered {
		return false
	}

	info, err := os.Stat(filepath.Join(v.secretsDir, secret))
	return err == nil && info.IsDir()
}

// WellFormed reports whether the secret is 16–64 alphanumeric characters.
// Secrets name storage folders, so anything else is rejected before it gets
// near a path.
func WellFormed(secret string) bool {
	if len(secret) < 16 || len(secret) > 64 {
		return false
	}
	for _, r := range secret {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

func (v *Validator) loadRegistry() []string {
	raw, err := os.ReadFile(v.registryFile)
	if err != nil {
		if !os.IsNotExist(err) {
			v.logger.Error("reading secret registry failed", "file", v.registryFile, "error", err)
		}
		return nil
	}

	var doc struct {
		Secrets []string `json:"secrets"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		v.logger.Error("secret registry corrupt", "file", v.registryFile, "error", err)
		return nil
	}
	return doc.Secrets
}
