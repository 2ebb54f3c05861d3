package main

import (
	"context"
	"fmt"

	badgeradapter "yatube/internal/adapters/badger"
	dbadapter "yatube/internal/adapters/database"
	redisadapter "yatube/internal/adapters/redis"
	"yatube/internal/adapters/storage"
	"yatube/internal/config"
	feedapp "yatube/internal/core/feed/service"
	followerapp "yatube/internal/core/follower/service"
	groupapp "yatube/internal/core/group/service"
	postapp "yatube/internal/core/post/service"
	userapp "yatube/internal/core/user/service"
	cachePort "yatube/internal/ports/cache"
	storagePort "yatube/internal/ports/storage"

	"github.com/dgraph-io/badger/v4"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// srv holds the process-wide resources shared by every command.
type srv struct {
	settings *config.Settings

	db     *gorm.DB
	redis  *redis.Client
	badger *badger.DB

	cache   cachePort.PageCache
	storage storagePort.Storage

	userSvc     *userapp.UserService
	postSvc     *postapp.PostService
	groupSvc    *groupapp.GroupService
	followerSvc *followerapp.FollowerService
	feedSvc     *feedapp.FeedService
}

func newSrv() (*srv, error) {
	s := &srv{}
	if err := s.loadConfig(); err != nil {
		return nil, err
	}
	if err := s.loadDatabase(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *srv) loadConfig() error {
	settings, err := config.Init()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	config.InitLogger(settings.Debug)
	s.settings = settings
	return nil
}

func (s *srv) loadDatabase() error {
	db, err := config.InitDB(s.settings)
	if err != nil {
		return err
	}
	s.db = db
	return nil
}

func (s *srv) loadCache(ctx context.Context) error {
	switch s.settings.CacheBackend {
	case config.CacheRedis:
		client, err := config.InitRedis(ctx, s.settings)
		if err != nil {
			return err
		}
		s.redis = client
		s.cache = redisadapter.NewPageCacheRedis(client)
	case config.CacheMemory:
		db, err := badgeradapter.OpenInMemory()
		if err != nil {
			return fmt.Errorf("open badger: %w", err)
		}
		s.badger = db
		s.cache = badgeradapter.NewPageCacheBadger(db)
	}
	config.Logger.Info("Page cache ready", zap.String("backend", s.settings.CacheBackend))
	return nil
}

func (s *srv) loadStorage() error {
	switch s.settings.StorageBackend {
	case config.StorageS3:
		st, err := storage.NewS3Storage(s.settings.S3)
		if err != nil {
			return err
		}
		s.storage = st
	default:
		s.storage = storage.NewLocalStorage(s.settings.MediaRoot, s.settings.MediaURL)
	}
	return nil
}

func (s *srv) loadServices() {
	userRepo := dbadapter.NewUserRepositoryDatabase(s.db)
	postRepo := dbadapter.NewPostRepositoryDatabase(s.db)
	groupRepo := dbadapter.NewGroupRepositoryDatabase(s.db)
	commentRepo := dbadapter.NewCommentRepositoryDatabase(s.db)
	followerRepo := dbadapter.NewFollowerRepositoryDatabase(s.db)

	s.userSvc = userapp.NewUserService(userRepo, []byte(s.settings.JWTSecret), s.settings.TokenLifetime)
	s.postSvc = postapp.NewPostService(postRepo, commentRepo, groupRepo, s.storage)
	s.groupSvc = groupapp.NewGroupService(groupRepo)
	s.followerSvc = followerapp.NewFollowerService(followerRepo, userRepo)
	s.feedSvc = feedapp.NewFeedService(postRepo, groupRepo, userRepo, followerRepo, s.settings.PostsPerPage)
}

// close releases the database, Redis and Badger handles.
func (s *srv) close() {
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			config.Logger.Error("Error closing Redis connection", zap.Error(err))
		}
	}
	if s.badger != nil {
		if err := s.badger.Close(); err != nil {
			config.Logger.Error("Error closing badger", zap.Error(err))
		}
	}
	if s.db != nil {
		sqlDB, err := s.db.DB()
		if err != nil {
			config.Logger.Error("Error getting raw DB", zap.Error(err))
			return
		}
		if err := sqlDB.Close(); err != nil {
			config.Logger.Error("Error closing database connection", zap.Error(err))
		}
	}
	_ = config.Logger.Sync()
}
