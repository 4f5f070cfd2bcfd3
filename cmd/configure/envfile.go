package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/angelmondragon/plu-backend/pkg/config"
	"github.com/angelmondragon/plu-backend/pkg/security"
)

// answers holds what the operator typed. Blank fields keep the current value.
type answers struct {
	Driver   string
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

func readEnvFile(path string) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return values, nil
}

func writeEnvFile(path string, values map[string]string) error {
	if err := godotenv.Write(values, path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// apply merges a into a copy of current. A secret key is generated when missing and the
// stored password is always left encrypted under it.
func apply(current map[string]string, a answers) (map[string]string, error) {
	out := make(map[string]string, len(current)+8)
	for k, v := range current {
		out[k] = v
	}

	set := func(key, value string) {
		if v := strings.TrimSpace(value); v != "" {
			out[key] = v
		}
	}
	set(config.EnvDBDriver, strings.ToLower(a.Driver))
	set(config.EnvDBHost, a.Host)
	set(config.EnvDBName, a.Name)
	set(config.EnvDBUser, a.User)

	if port := strings.TrimSpace(a.Port); port != "" {
		n, err := strconv.Atoi(port)
		if err != nil || n <= 0 || n > 65535 {
			return nil, fmt.Errorf("invalid port %q", a.Port)
		}
		out[config.EnvDBPort] = port
	}

	key := out[config.EnvSecretKey]
	if key == "" {
		generated, err := security.GenerateKey()
		if err != nil {
			return nil, err
		}
		key = generated
		out[config.EnvSecretKey] = key

		// An existing password was stored without a key, so it is still plaintext.
		if plain := out[config.EnvDBPassword]; plain != "" && a.Password == "" {
			sealed, err := security.Encrypt(key, plain)
			if err != nil {
				return nil, err
			}
			out[config.EnvDBPassword] = sealed
		}
	}

	if a.Password != "" {
		sealed, err := security.Encrypt(key, a.Password)
		if err != nil {
			return nil, err
		}
		out[config.EnvDBPassword] = sealed
	}
	return out, nil
}
