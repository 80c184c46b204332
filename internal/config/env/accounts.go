package env

import (
	"fmt"
	"mermaid_slot/internal/config"
	"os"
	"strconv"
)

const (
	accountsBackendEnvName = "ACCOUNTS_BACKEND"
	accountsFileEnvName    = "ACCOUNTS_FILE"
	passwordHashingEnvName = "PASSWORD_HASHING"

	BackendFile     = "file"
	BackendPostgres = "postgres"

	defaultAccountsFile = "user_accounts.txt"
)

type accountsConfig struct {
	backend         string
	filePath        string
	passwordHashing bool
}

func NewAccountsConfig() (config.AccountsConfig, error) {
	backend := os.Getenv(accountsBackendEnvName)
	if len(backend) == 0 {
		backend = BackendFile
	}
	if backend != BackendFile && backend != BackendPostgres {
		return nil, fmt.Errorf("unknown accounts backend %q", backend)
	}

	filePath := os.Getenv(accountsFileEnvName)
	if len(filePath) == 0 {
		filePath = defaultAccountsFile
	}

	var hashing bool
	if raw := os.Getenv(passwordHashingEnvName); len(raw) != 0 {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", passwordHashingEnvName, err)
		}
		hashing = parsed
	}

	return &accountsConfig{
		backend:         backend,
		filePath:        filePath,
		passwordHashing: hashing,
	}, nil
}

func (cfg *accountsConfig) Backend() string {
	return cfg.backend
}

func (cfg *accountsConfig) FilePath() string {
	return cfg.filePath
}

func (cfg *accountsConfig) PasswordHashing() bool {
	return cfg.passwordHashing
}
