package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/eleven-am/sketch-backend/internal/shared"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const defaultCacheTTL = time.Hour

// Store persists pipeline runs in postgres with a redis read-through
// cache. Both backends are optional: without a database Save hands back
// the sentinel id, without redis reads just skip the cache.
type Store struct {
	db       *gorm.DB
	redis    *redis.Client
	cacheTTL time.Duration
	logger   *slog.Logger
}

func NewStore(db *gorm.DB, redisClient *redis.Client, cacheTTL time.Duration, logger *slog.Logger) *Store {
	if cacheTTL <= 0 {
		cacheTTL = defaultCacheTTL
	}
	return &Store{
		db:       db,
		redis:    redisClient,
		cacheTTL: cacheTTL,
		logger:   logger.With("component", "session_store"),
	}
}

func (s *Store) Migrate() error {
	if s.db == nil {
		return nil
	}
	return s.db.AutoMigrate(&Record{})
}

// Save stores the record and fills in its ID. Without a database the
// record gets the sentinel id and is not persisted.
func (s *Store) Save(ctx context.Context, r *Record) error {
	if s.db == nil {
		r.ID = SentinelID
		return nil
	}
	if r.ID == "" {
		r.ID = shared.NewID("sketch_")
	}
	if err := s.db.WithContext(ctx).Create(r).Error; err != nil {
		return err
	}
	s.cache(ctx, r)
	return nil
}

func (s *Store) GetByID(ctx context.Context, id string) (*Record, error) {
	if id == "" || id == SentinelID {
		return nil, shared.ErrNotFound
	}

	if cached := s.fromCache(ctx, id); cached != nil {
		return cached, nil
	}

	if s.db == nil {
		return nil, shared.ErrNotFound
	}

	var r Record
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	s.cache(ctx, &r)
	return &r, nil
}

func (s *Store) Recent(ctx context.Context, limit int) ([]*Record, error) {
	if s.db == nil {
		return []*Record{}, nil
	}
	if limit <= 0 {
		limit = 10
	}
	var records []*Record
	err := s.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&records).Error
	return records, err
}

// Search matches the query as a substring of the transcript, the
// enhanced prompt, or the stored keyword list.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]*Record, error) {
	if s.db == nil {
		return []*Record{}, nil
	}
	if limit <= 0 {
		limit = 10
	}
	pattern := "%" + query + "%"
	var records []*Record
	err := s.db.WithContext(ctx).
		Where("transcript LIKE ? OR enhanced_prompt LIKE ? OR keywords LIKE ?", pattern, pattern, pattern).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	if s.db == nil {
		return 0, nil
	}
	var count int64
	err := s.db.WithContext(ctx).Model(&Record{}).Count(&count).Error
	return count, err
}

func (s *Store) DatabaseConnected() bool {
	return s.db != nil
}

func (s *Store) CacheConnected() bool {
	return s.redis != nil
}

func (s *Store) cache(ctx context.Context, r *Record) {
	if s.redis == nil {
		return
	}
	data, err := json.Marshal(r)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, r.RedisKey(), data, s.cacheTTL).Err(); err != nil {
		s.logger.Warn("cache write failed", "id", r.ID, "error", err)
	}
}

func (s *Store) fromCache(ctx context.Context, id string) *Record {
	if s.redis == nil {
		return nil
	}
	data, err := s.redis.Get(ctx, redisKey(id)).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("cache read failed", "id", id, "error", err)
		}
		return nil
	}
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil
	}
	return &r
}
