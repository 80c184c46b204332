package account_file_repo

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"mermaid_slot/internal/model"
	"mermaid_slot/internal/repository"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// repo учётные записи в текстовом файле, по строке "username,password" на запись
type repo struct {
	mtx      sync.RWMutex
	path     string
	accounts map[string]string
	order    []string
	logger   *zap.Logger
}

// NewAccountRepository загружает файл при создании.
// Отсутствующий или нечитаемый файл даёт пустой набор.
func NewAccountRepository(path string, logger *zap.Logger) repository.AccountRepository {
	r := &repo{
		path:     path,
		accounts: make(map[string]string),
		logger:   logger,
	}
	if err := r.load(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Error("load accounts file, starting with empty set", zap.String("path", path), zap.Error(err))
		}
		r.accounts = make(map[string]string)
		r.order = nil
	}
	return r
}

func (r *repo) load() error {
	f, err := os.Open(r.path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		username, password, ok := strings.Cut(line, ",")
		if !ok || username == "" {
			continue
		}
		if _, exists := r.accounts[username]; !exists {
			r.order = append(r.order, username)
		}
		r.accounts[username] = password
	}
	return scanner.Err()
}

// Create - добавляет запись и полностью перезаписывает файл
func (r *repo) Create(_ context.Context, account *model.Account) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if _, ok := r.accounts[account.Username]; ok {
		return repository.ErrUserExists
	}

	r.accounts[account.Username] = account.Password
	r.order = append(r.order, account.Username)

	if err := r.save(); err != nil {
		delete(r.accounts, account.Username)
		r.order = r.order[:len(r.order)-1]
		return fmt.Errorf("save accounts: %w", err)
	}
	return nil
}

func (r *repo) Get(_ context.Context, username string) (*model.Account, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	password, ok := r.accounts[username]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return &model.Account{Username: username, Password: password}, nil
}

func (r *repo) save() error {
	var sb strings.Builder
	for _, username := range r.order {
		sb.WriteString(username)
		sb.WriteByte(',')
		sb.WriteString(r.accounts[username])
		sb.WriteByte('\n')
	}
	return os.WriteFile(r.path, []byte(sb.String()), 0o600)
}
