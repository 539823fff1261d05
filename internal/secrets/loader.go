package secrets

import (
	"fmt"
	"os"
	"strings"
)

// Source lists the places a secret may come from.
type Source struct {
	// Name appears in error messages, "secret" when empty.
	Name string
	// Value is an inline secret from configuration or flags.
	Value string
	// File is read whole and trimmed.
	File string
	// Env names an environment variable holding the secret.
	Env string
}

// Load resolves a secret. File wins over Env, Env wins over Value. A
// configured but empty file is an error rather than a fall through. The
// returned secret is trimmed and never empty.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "secret"
	}

	if file := strings.TrimSpace(src.File); file != "" {
		return fromFile(name, file)
	}

	if env := strings.TrimSpace(src.Env); env != "" {
		if secret := strings.TrimSpace(os.Getenv(env)); secret != "" {
			return secret, nil
		}
	}

	if secret := strings.TrimSpace(src.Value); secret != "" {
		return secret, nil
	}

	return "", fmt.Errorf("%s is not configured", name)
}

func fromFile(name, file string) (string, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
	}

	secret := strings.TrimSpace(string(data))
	if secret == "" {
		return "", fmt.Errorf("%s file %q is empty", name, file)
	}
	return secret, nil
}
