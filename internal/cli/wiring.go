package cli

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"

	"yuwelongo/internal/app"
	"yuwelongo/internal/config"
	"yuwelongo/internal/infra/backend"
	"yuwelongo/internal/infra/memory"
	"yuwelongo/internal/infra/postgres"
	redisstore "yuwelongo/internal/infra/redis"
	transport "yuwelongo/internal/transport/http"
)

// services are the collaborators selected by the config: the YuweLongo API
// when backend.url is set, Postgres when only postgres.url is set, and the
// built-in sample catalog otherwise. Accounts live only in the API.
type services struct {
	levels    app.LevelService
	questions app.QuestionService
	scores    app.ScoreService
	history   app.HistoryService
	sessions  app.SessionRepository

	words     app.WordCatalog
	favorites app.FavoriteStore
	accounts  app.AccountStore

	api       *backend.Client
	withToken transport.TokenContext
	closers   []func()
}

func (s *services) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

func buildServices(ctx context.Context, cfg config.Config) (*services, error) {
	s := &services{}

	var levels app.LevelService
	switch {
	case cfg.Backend.URL != "":
		api := backend.New(cfg.Backend.URL, cfg.Backend.Token, config.TTLDuration(cfg.Backend.Timeout, 10*time.Second))
		s.api = api
		s.withToken = backend.WithToken
		levels, s.questions, s.scores, s.history = api, api, api, api
		s.words, s.favorites, s.accounts = api, api, api
		log.Printf("using YuweLongo API at %s", cfg.Backend.URL)
	case cfg.Postgres.URL != "":
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return nil, err
		}
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, pool.Close)
		catalog := postgres.NewCatalog(pool)
		results := postgres.NewResultStore(pool)
		levels, s.questions, s.scores, s.history = catalog, catalog, results, results
		s.words, s.favorites = postgres.NewDictionary(pool), postgres.NewFavoriteStore(pool)
		log.Printf("using postgres catalog")
	default:
		catalog := memory.NewStaticCatalog(sampleLevels(), sampleQuestions())
		results := memory.NewResultStore()
		levels, s.questions, s.scores, s.history = catalog, catalog, results, results
		dict := memory.NewStaticDictionary(sampleCategories(), sampleWords())
		s.words, s.favorites = dict, memory.NewFavoriteStore(dict)
		log.Printf("using built-in sample catalog")
	}

	levelTTL := config.TTLDuration(cfg.Game.LevelCacheTTL, 10*time.Minute)
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		s.closers = append(s.closers, func() { _ = client.Close() })
		s.levels = redisstore.NewLevelRepository(client, levels, levelTTL)
		s.sessions = redisstore.NewSessionStore(client, config.TTLDuration(cfg.Redis.TTL, 24*time.Hour))
	} else {
		s.levels = memory.NewLevelRepository(levels, levelTTL)
		s.sessions = memory.NewSessionStore()
	}
	return s, nil
}

func (s *services) gameFactory(cfg config.Config) *app.GameFactory {
	return &app.GameFactory{
		Catalog:   app.NewLevelCatalog(s.levels, cfg.Game.IncludeInactiveLevels),
		Questions: app.NewQuestionProvider(s.questions),
		Results:   app.NewResultSubmitter(s.scores),
		Sessions:  s.sessions,
		Config: app.GameConfig{
			QuestionsPerLevel: cfg.QuestionsPerLevel(app.DefaultQuestionsPerLevel),
			SubmitTimeout:     config.TTLDuration(cfg.Game.SubmitTimeout, app.DefaultSubmitTimeout),
		},
	}
}

func (s *services) ranking() *app.RankingService {
	return app.NewRankingService(s.scores, s.history)
}

func (s *services) dictionary() *app.DictionaryService {
	return app.NewDictionaryService(s.words)
}

func (s *services) favoriteService() *app.FavoritesService {
	return app.NewFavoritesService(s.favorites)
}

// accountService is nil when no account store is configured.
func (s *services) accountService() *app.AccountService {
	if s.accounts == nil {
		return nil
	}
	return app.NewAccountService(s.accounts)
}

// errNoAccounts is returned by account commands outside API mode.
var errNoAccounts = errors.New("accounts need backend.url in the config")
