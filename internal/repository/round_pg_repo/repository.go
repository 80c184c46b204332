package round_pg_repo

import (
	"context"
	"encoding/json"
	"fmt"
	"mermaid_slot/internal/model"
	"mermaid_slot/internal/repository"
	"time"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const (
	roundsTable        = "rounds"
	colID              = "id"
	colUsername        = "username"
	colStake           = "stake"
	colTotalWin        = "total_win"
	colConsecutiveWins = "consecutive_wins"
	colSummary         = "summary"
	colBonusTriggered  = "bonus_triggered"
	colBonusMultiplier = "bonus_multiplier"
	colBalance         = "balance"
	colAborted         = "aborted"
	colStartedAt       = "started_at"
	colFinishedAt      = "finished_at"

	stepsTable = "round_steps"
	colRoundID = "round_id"
	colIdx     = "idx"
	colWins    = "wins"
	colBaseWin = "base_win"
	colWin     = "win"
	colRemoved = "removed"
)

// symbolWinRow выигрыш символа в jsonb колонке wins
type symbolWinRow struct {
	Symbol string          `json:"symbol"`
	Count  int             `json:"count"`
	Tier   int             `json:"tier"`
	Payout decimal.Decimal `json:"payout"`
}

type repo struct {
	dbc       *pgxpool.Pool
	txManager trm.Manager
	symbols   *model.SymbolTable
}

func NewRoundRepository(dbc *pgxpool.Pool, txManager trm.Manager, symbols *model.SymbolTable) repository.RoundRepository {
	return &repo{
		dbc:       dbc,
		txManager: txManager,
		symbols:   symbols,
	}
}

// Save - записывает раунд и все его проходы в одной транзакции
func (r *repo) Save(ctx context.Context, outcome *model.RoundOutcome) error {
	return r.txManager.Do(ctx, func(ctx context.Context) error {
		conn := trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc)

		query := sq.Insert(roundsTable).
			Columns(colID, colUsername, colStake, colTotalWin, colConsecutiveWins, colSummary,
				colBonusTriggered, colBonusMultiplier, colBalance, colAborted, colStartedAt, colFinishedAt).
			Values(outcome.ID, outcome.Username, outcome.Stake, outcome.TotalWin, outcome.ConsecutiveWins, outcome.Summary,
				outcome.BonusTriggered, outcome.BonusMultiplier, outcome.Balance, outcome.Aborted, outcome.StartedAt, outcome.FinishedAt).
			PlaceholderFormat(sq.Dollar)

		sqlStr, args, err := query.ToSql()
		if err != nil {
			return err
		}
		if _, err = conn.Exec(ctx, sqlStr, args...); err != nil {
			return fmt.Errorf("insert round: %w", err)
		}

		if len(outcome.Steps) == 0 {
			return nil
		}

		steps := sq.Insert(stepsTable).
			Columns(colRoundID, colIdx, colWins, colBaseWin, colWin, colBonusTriggered, colBonusMultiplier, colRemoved).
			PlaceholderFormat(sq.Dollar)
		for _, step := range outcome.Steps {
			winsJSON, err := json.Marshal(toRows(step.Wins))
			if err != nil {
				return err
			}
			steps = steps.Values(outcome.ID, step.Index, winsJSON, step.BaseWin, step.Win,
				step.BonusTriggered, step.BonusMultiplier, step.Removed)
		}

		sqlStr, args, err = steps.ToSql()
		if err != nil {
			return err
		}
		if _, err = conn.Exec(ctx, sqlStr, args...); err != nil {
			return fmt.Errorf("insert round steps: %w", err)
		}
		return nil
	})
}

// List - последние раунды игрока вместе с проходами, новые первыми
func (r *repo) List(ctx context.Context, username string, limit int) ([]*model.RoundOutcome, error) {
	conn := trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc)

	query := sq.Select(colID, colUsername, colStake, colTotalWin, colConsecutiveWins, colSummary,
		colBonusTriggered, colBonusMultiplier, colBalance, colAborted, colStartedAt, colFinishedAt).
		From(roundsTable).
		Where(sq.Eq{colUsername: username}).
		OrderBy(colStartedAt + " DESC").
		PlaceholderFormat(sq.Dollar)
	if limit > 0 {
		query = query.Limit(uint64(limit))
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := conn.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		outcomes []*model.RoundOutcome
		ids      []string
		byID     = make(map[string]*model.RoundOutcome)
	)
	for rows.Next() {
		var (
			o                     model.RoundOutcome
			startedAt, finishedAt time.Time
		)
		err = rows.Scan(&o.ID, &o.Username, &o.Stake, &o.TotalWin, &o.ConsecutiveWins, &o.Summary,
			&o.BonusTriggered, &o.BonusMultiplier, &o.Balance, &o.Aborted, &startedAt, &finishedAt)
		if err != nil {
			return nil, err
		}
		o.StartedAt, o.FinishedAt = startedAt, finishedAt
		outcomes = append(outcomes, &o)
		ids = append(ids, o.ID)
		byID[o.ID] = &o
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return outcomes, nil
	}

	if err = r.loadSteps(ctx, ids, byID); err != nil {
		return nil, err
	}
	return outcomes, nil
}

func (r *repo) loadSteps(ctx context.Context, ids []string, byID map[string]*model.RoundOutcome) error {
	conn := trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc)

	query := sq.Select(colRoundID, colIdx, colWins, colBaseWin, colWin, colBonusTriggered, colBonusMultiplier, colRemoved).
		From(stepsTable).
		Where(sq.Eq{colRoundID: ids}).
		OrderBy(colRoundID, colIdx).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	rows, err := conn.Query(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			roundID  string
			step     model.RoundStep
			winsJSON []byte
		)
		err = rows.Scan(&roundID, &step.Index, &winsJSON, &step.BaseWin, &step.Win,
			&step.BonusTriggered, &step.BonusMultiplier, &step.Removed)
		if err != nil {
			return err
		}

		var winRows []symbolWinRow
		if err = json.Unmarshal(winsJSON, &winRows); err != nil {
			return err
		}
		step.Wins = r.fromRows(winRows)

		if o, ok := byID[roundID]; ok {
			o.Steps = append(o.Steps, step)
		}
	}
	return rows.Err()
}

func toRows(wins []model.SymbolWin) []symbolWinRow {
	out := make([]symbolWinRow, 0, len(wins))
	for _, w := range wins {
		out = append(out, symbolWinRow{
			Symbol: w.Symbol.ID,
			Count:  w.Count,
			Tier:   int(w.Tier),
			Payout: w.Payout,
		})
	}
	return out
}

// fromRows восстанавливает ссылки на символы таблицы.
// Символ, которого больше нет в таблице, сохраняется только с идентификатором.
func (r *repo) fromRows(rows []symbolWinRow) []model.SymbolWin {
	out := make([]model.SymbolWin, 0, len(rows))
	for _, row := range rows {
		sym, ok := r.symbols.ByID(row.Symbol)
		if !ok {
			sym = &model.Symbol{ID: row.Symbol, Glyph: row.Symbol, Name: row.Symbol}
		}
		out = append(out, model.SymbolWin{
			Symbol: sym,
			Count:  row.Count,
			Tier:   model.Tier(row.Tier),
			Payout: row.Payout,
		})
	}
	return out
}
