package account_pg_repo

import (
	"context"
	"errors"
	"mermaid_slot/internal/model"
	"mermaid_slot/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table       = "accounts"
	colUsername = "username"
	colPassword = "password"

	uniqueViolation = "23505"
)

type repo struct {
	dbc *pgxpool.Pool
}

func NewAccountRepository(dbc *pgxpool.Pool) repository.AccountRepository {
	return &repo{
		dbc: dbc,
	}
}

// Create - создаёт учётную запись.
// Возвращает ErrUserExists, если имя уже занято
func (r *repo) Create(ctx context.Context, account *model.Account) error {
	query := sq.Insert(table).
		Columns(colUsername, colPassword).
		Values(account.Username, account.Password).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	conn := trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc)
	_, err = conn.Exec(ctx, sqlStr, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return repository.ErrUserExists
		}
		return err
	}

	return nil
}

// Get - возвращает учётную запись по имени
func (r *repo) Get(ctx context.Context, username string) (*model.Account, error) {
	query := sq.Select(colUsername, colPassword).
		From(table).
		Where(sq.Eq{colUsername: username}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var account model.Account
	conn := trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc)
	err = conn.QueryRow(ctx, sqlStr, args...).Scan(&account.Username, &account.Password)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrUserNotFound
		}
		return nil, err
	}

	return &account, nil
}
