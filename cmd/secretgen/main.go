// Command secretgen creates a new access secret: it generates the secret,
// registers it in the secrets registry and prepares the storage folder with
// an empty progress file.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/examtrainer/backend/internal/id"
	"github.com/examtrainer/backend/internal/infrastructure/config"
)

const secretLength = 32

func main() {
	flag.Parse()

	cfg := config.Load()

	secret := id.NewSecret(secretLength)

	if err := register(cfg.SecretsFile, secret); err != nil {
		fmt.Fprintln(os.Stderr, "failed to update secrets registry:", err)
		os.Exit(1)
	}

	folder := filepath.Join(cfg.SecretsDir, secret)
	if err := os.MkdirAll(folder, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, "failed to create storage folder:", err)
		os.Exit(1)
	}
	progressFile := filepath.Join(folder, "trainer_progress.json")
	if err := os.WriteFile(progressFile, []byte("{}\n"), 0o644); err != nil {
		fmt.Fprintln(os.Stderr, "failed to create progress file:", err)
		os.Exit(1)
	}

	fmt.Println("New access secret generated:")
	fmt.Println()
	fmt.Println("   ", secret)
	fmt.Println()
	fmt.Println("Registered in:  ", cfg.SecretsFile)
	fmt.Println("Storage folder: ", folder)
	fmt.Println()
	fmt.Println("Hand the secret to the user; it is their login credential.")
}

// register appends the secret to the registry file, creating the file when
// it does not exist yet.
func register(path, secret string) error {
	var doc struct {
		Secrets []string `json:"secrets"`
	}

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(raw, &doc); err != nil {
			return fmt.Errorf("registry %s is corrupt: %w", path, err)
		}
	case os.IsNotExist(err):
		// First secret, start a fresh registry.
	default:
		return err
	}

	for _, s := range doc.Secrets {
		if s == secret {
			return nil
		}
	}
	doc.Secrets = append(doc.Secrets, secret)

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(out, '\n'), 0o644)
}
