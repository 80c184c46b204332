package app

import (
	"context"
	"errors"
	"io"
	authAPI "mermaid_slot/internal/api/auth"
	gameAPI "mermaid_slot/internal/api/game"
	"mermaid_slot/internal/config"
	"mermaid_slot/internal/config/env"
	"mermaid_slot/internal/middleware"
	"mermaid_slot/internal/model"
	"mermaid_slot/internal/presenter/recorder"
	"mermaid_slot/internal/presenter/terminal"
	"mermaid_slot/internal/repository"
	"mermaid_slot/internal/repository/account_file_repo"
	"mermaid_slot/internal/repository/account_pg_repo"
	"mermaid_slot/internal/repository/round_mem_repo"
	"mermaid_slot/internal/repository/round_pg_repo"
	"mermaid_slot/internal/repository/stats_repo"
	"mermaid_slot/internal/service"
	"mermaid_slot/internal/service/auth"
	"mermaid_slot/internal/service/session"
	"mermaid_slot/internal/service/slot"
	"mermaid_slot/internal/sound"
	"mermaid_slot/pkg/logger"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// журнал событий одной HTTP сессии
const sessionEventLimit = 512

type ServiceProvider struct {
	gameConfigPath string
	out            io.Writer

	logCfg config.LogConfig
	logger *zap.Logger

	//TXManager
	txManager trm.Manager

	// Database
	pgConfig config.PGConfig
	pgReady  bool
	dbClient *pgxpool.Pool

	// Accounts
	accountsCfg config.AccountsConfig
	accountRepo repository.AccountRepository
	jwtCfg      config.JWTConfig
	authServ    service.AuthService
	apiAuthServ service.AuthService
	authHand    *authAPI.Handler

	// Game bits
	gameCfg   config.GameConfig
	roundRepo repository.RoundRepository
	statsRepo repository.StatsRepository

	// Terminal
	soundCfg     config.SoundConfig
	soundManager *sound.Manager
	presenter    *terminal.Presenter
	gameServ     service.GameService

	// HTTP
	sessionPool *session.Pool
	gameHand    *gameAPI.Handler
	httpCfg     config.HTTPConfig
	router      chi.Router
}

func newServiceProvider(gameConfigPath string, out io.Writer) *ServiceProvider {
	return &ServiceProvider{
		gameConfigPath: gameConfigPath,
		out:            out,
	}
}

func (sp *ServiceProvider) LogCfg() config.LogConfig {
	if sp.logCfg == nil {
		sp.logCfg = env.NewLogConfig()
	}
	return sp.logCfg
}

func (sp *ServiceProvider) Logger() *zap.Logger {
	if sp.logger == nil {
		l, err := logger.New(sp.LogCfg().Level(), sp.LogCfg().Format(), sp.LogCfg().File())
		if err != nil {
			panic("failed to create logger: " + err.Error())
		}
		sp.logger = l
	}
	return sp.logger
}

// PgConfig возвращает nil, если PG_DSN не задан
func (sp *ServiceProvider) PgConfig() config.PGConfig {
	if !sp.pgReady {
		cfg, err := env.NewPGConfig()
		if err != nil && !errors.Is(err, env.ErrPGDSNNotFound) {
			panic("failed to get database config: " + err.Error())
		}
		sp.pgConfig = cfg
		sp.pgReady = true
	}
	return sp.pgConfig
}

func (sp *ServiceProvider) DBClient(ctx context.Context) *pgxpool.Pool {
	if sp.dbClient == nil {
		if sp.PgConfig() == nil {
			panic("failed to create db pool: " + env.ErrPGDSNNotFound.Error())
		}
		dbc, err := pgxpool.New(ctx, sp.PgConfig().DSN())
		if err != nil {
			panic("failed to create db pool: " + err.Error())
		}
		err = dbc.Ping(ctx)
		if err != nil {
			panic("failed to ping db: " + err.Error())
		}
		sp.dbClient = dbc
	}
	return sp.dbClient
}

func (sp *ServiceProvider) TXManager(ctx context.Context) trm.Manager {
	if sp.txManager == nil {
		m, err := manager.New(trmpgx.NewDefaultFactory(sp.DBClient(ctx)))
		if err != nil {
			panic("failed to create tx manager: " + err.Error())
		}

		sp.txManager = m
	}

	return sp.txManager
}

func (sp *ServiceProvider) AccountsCfg() config.AccountsConfig {
	if sp.accountsCfg == nil {
		cfg, err := env.NewAccountsConfig()
		if err != nil {
			panic("failed to get accounts config: " + err.Error())
		}
		sp.accountsCfg = cfg
	}
	return sp.accountsCfg
}

func (sp *ServiceProvider) AccountRepository(ctx context.Context) repository.AccountRepository {
	if sp.accountRepo == nil {
		switch sp.AccountsCfg().Backend() {
		case env.BackendPostgres:
			sp.accountRepo = account_pg_repo.NewAccountRepository(sp.DBClient(ctx))
		default:
			sp.accountRepo = account_file_repo.NewAccountRepository(sp.AccountsCfg().FilePath(), sp.Logger())
		}
	}
	return sp.accountRepo
}

func (sp *ServiceProvider) JWTCfg() config.JWTConfig {
	if sp.jwtCfg == nil {
		cfg, err := env.NewJWTConfig()
		if err != nil {
			panic("failed to get jwt config: " + err.Error())
		}
		sp.jwtCfg = cfg
	}
	return sp.jwtCfg
}

// AuthService для терминала, без токенов
func (sp *ServiceProvider) AuthService(ctx context.Context) service.AuthService {
	if sp.authServ == nil {
		sp.authServ = auth.NewAuthService(sp.AccountRepository(ctx), nil, sp.AccountsCfg().PasswordHashing(), sp.Logger())
	}
	return sp.authServ
}

// APIAuthService выдаёт access токены
func (sp *ServiceProvider) APIAuthService(ctx context.Context) service.AuthService {
	if sp.apiAuthServ == nil {
		sp.apiAuthServ = auth.NewAuthService(sp.AccountRepository(ctx), sp.JWTCfg(), sp.AccountsCfg().PasswordHashing(), sp.Logger())
	}
	return sp.apiAuthServ
}

func (sp *ServiceProvider) AuthHandler(ctx context.Context) *authAPI.Handler {
	if sp.authHand == nil {
		sp.authHand = authAPI.NewHandler(sp.APIAuthService(ctx), sp.Logger())
	}
	return sp.authHand
}

func (sp *ServiceProvider) GameCfg() config.GameConfig {
	if sp.gameCfg == nil {
		if sp.gameConfigPath == "" {
			sp.gameCfg = env.DefaultGameConfig()
			return sp.gameCfg
		}
		cfg, err := env.NewGameConfigFromYAML(sp.gameConfigPath)
		if err != nil {
			panic("failed to get game config: " + err.Error())
		}
		sp.gameCfg = cfg
	}
	return sp.gameCfg
}

// RoundRepository в PostgreSQL, если задан PG_DSN, иначе в памяти
func (sp *ServiceProvider) RoundRepository(ctx context.Context) repository.RoundRepository {
	if sp.roundRepo == nil {
		if sp.PgConfig() != nil {
			sp.roundRepo = round_pg_repo.NewRoundRepository(sp.DBClient(ctx), sp.TXManager(ctx), sp.GameCfg().Symbols())
		} else {
			sp.roundRepo = round_mem_repo.NewRoundRepository(round_mem_repo.DefaultCapacity)
		}
	}
	return sp.roundRepo
}

func (sp *ServiceProvider) StatsRepository() repository.StatsRepository {
	if sp.statsRepo == nil {
		sp.statsRepo = stats_repo.NewStatsRepository(0)
	}
	return sp.statsRepo
}

func (sp *ServiceProvider) SoundCfg() config.SoundConfig {
	if sp.soundCfg == nil {
		cfg, err := env.NewSoundConfig()
		if err != nil {
			panic("failed to get sound config: " + err.Error())
		}
		sp.soundCfg = cfg
	}
	return sp.soundCfg
}

func (sp *ServiceProvider) SoundManager() *sound.Manager {
	if sp.soundManager == nil {
		m := sound.NewManager(sp.SoundCfg().Dir(), sound.NewBellPlayer(sp.out), sp.SoundCfg().Volume(), sp.Logger())
		m.Load(model.SoundSpin, model.SoundSmallWin, model.SoundJackpot)
		sp.soundManager = m
	}
	return sp.soundManager
}

func (sp *ServiceProvider) Presenter() *terminal.Presenter {
	if sp.presenter == nil {
		sp.presenter = terminal.New(sp.out, sp.SoundManager(), true)
	}
	return sp.presenter
}

// GameService сессия терминального игрока
func (sp *ServiceProvider) GameService(ctx context.Context, username string) service.GameService {
	if sp.gameServ == nil {
		sp.gameServ = slot.NewGameService(
			username,
			sp.GameCfg(),
			sp.Presenter(),
			sp.RoundRepository(ctx),
			sp.StatsRepository(),
			sp.Logger(),
			nil,
		)
	}
	return sp.gameServ
}

func (sp *ServiceProvider) SessionPool(ctx context.Context) *session.Pool {
	if sp.sessionPool == nil {
		cfg := slot.WithoutDelays(sp.GameCfg())
		roundRepo := sp.RoundRepository(ctx)
		statsRepo := sp.StatsRepository()
		log := sp.Logger()
		sp.sessionPool = session.NewPool(func(username string) session.Session {
			rec := recorder.New(sessionEventLimit)
			return session.Session{
				Game:   slot.NewGameService(username, cfg, rec, roundRepo, statsRepo, log, nil),
				Events: rec,
			}
		})
	}
	return sp.sessionPool
}

func (sp *ServiceProvider) GameHandler(ctx context.Context) *gameAPI.Handler {
	if sp.gameHand == nil {
		sp.gameHand = gameAPI.NewHandler(sp.SessionPool(ctx), sp.Logger())
	}
	return sp.gameHand
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}

	return sp.httpCfg
}

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		r := chi.NewRouter()

		// CORS middleware
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: false,
			MaxAge:           60 * 15,
		}))

		// Auth endpoints
		authHandler := sp.AuthHandler(ctx)
		r.Route("/auth", func(rr chi.Router) {
			rr.Post("/register", authHandler.Register)
			rr.Post("/login", authHandler.Login)
		})

		// Game endpoints
		gameHandler := sp.GameHandler(ctx)
		spinLimit := middleware.RateLimit(rate.Limit(sp.HTTPCfg().SpinRate()), sp.HTTPCfg().SpinBurst())
		r.Route("/game", func(rr chi.Router) {
			rr.Use(middleware.Auth(sp.JWTCfg().AccessTokenSecretKey()))
			rr.With(spinLimit).Post("/spin", gameHandler.Spin)
			rr.Put("/coin", gameHandler.SetCoin)
			rr.Put("/multiplier", gameHandler.SetMultiplier)
			rr.Get("/state", gameHandler.State)
			rr.Get("/stats", gameHandler.Stats)
			rr.Get("/history", gameHandler.History)
			rr.Get("/events", gameHandler.Events)
			rr.Get("/ws", gameHandler.Stream)
		})

		sp.router = r
	}

	return sp.router
}

// Close освобождает созданные ресурсы
func (sp *ServiceProvider) Close() {
	if sp.gameServ != nil {
		sp.gameServ.Close()
	}
	if sp.sessionPool != nil {
		sp.sessionPool.Close()
	}
	if sp.soundManager != nil {
		sp.soundManager.Close()
	}
	if sp.dbClient != nil {
		sp.dbClient.Close()
	}
	if sp.logger != nil {
		_ = sp.logger.Sync()
	}
}
