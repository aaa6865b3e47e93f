package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gradhunt/gradboard-backend/internal/config"
	"github.com/gradhunt/gradboard-backend/internal/model"
)

// ErrNoValidSettings is returned when a write contains no usable entries
// after filtering; it is rejected before any store call.
var ErrNoValidSettings = errors.New("no valid settings provided")

const settingsCacheTTL = time.Minute

// SettingStore is the persistence surface for site settings.
type SettingStore interface {
	GetAll(ctx context.Context) ([]model.SiteSetting, error)
	Upsert(ctx context.Context, key, value string) error
}

// SettingService reads and upserts the site-wide key/value configuration.
// The public read path is cached briefly in Redis since the site footer hits
// it on every page load; the cache is dropped on write.
type SettingService struct {
	settings SettingStore
	rdb      *redis.Client
	log      zerolog.Logger
}

// NewSettingService creates a new SettingService. rdb may be nil (tests);
// caching is then skipped.
func NewSettingService(settings SettingStore, rdb *redis.Client, log zerolog.Logger) *SettingService {
	return &SettingService{
		settings: settings,
		rdb:      rdb,
		log:      log.With().Str("component", "setting_service").Logger(),
	}
}

// GetPublicSettings returns all settings as a key→value map, served from the
// Redis cache when warm. Cache failures fall through to the store.
func (s *SettingService) GetPublicSettings(ctx context.Context) (map[string]string, error) {
	cacheKey := config.CacheKey.PublicSettingsKey()

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var m map[string]string
			if json.Unmarshal([]byte(cached), &m) == nil {
				return m, nil
			}
		}
	}

	m, err := s.GetAllSettings(ctx)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if raw, err := json.Marshal(m); err == nil {
			if err := s.rdb.Set(ctx, cacheKey, raw, settingsCacheTTL).Err(); err != nil {
				s.log.Warn().Err(err).Msg("settings cache write failed")
			}
		}
	}
	return m, nil
}

// GetAllSettings returns all settings straight from the store. Same read as
// GetPublicSettings; the separate entry point exists because admin callers
// bypass the cache and are gated at the route.
func (s *SettingService) GetAllSettings(ctx context.Context) (map[string]string, error) {
	list, err := s.settings.GetAll(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to get settings")
		return nil, err
	}

	m := make(map[string]string, len(list))
	for _, setting := range list {
		m[setting.Key] = setting.Value
	}
	return m, nil
}

// UpdateSettings upserts the given entries. Only string and number values
// are accepted; everything else is dropped. A write whose filtered entry set
// is empty is rejected without touching the store.
func (s *SettingService) UpdateSettings(ctx context.Context, entries map[string]interface{}) error {
	filtered := filterSettingValues(entries)
	if len(filtered) == 0 {
		return ErrNoValidSettings
	}

	for key, value := range filtered {
		if err := s.settings.Upsert(ctx, key, value); err != nil {
			s.log.Error().Err(err).Str("key", key).Msg("failed to upsert setting")
			return err
		}
	}

	if s.rdb != nil {
		if err := s.rdb.Del(ctx, config.CacheKey.PublicSettingsKey()).Err(); err != nil {
			s.log.Warn().Err(err).Msg("settings cache invalidation failed")
		}
	}
	return nil
}

// filterSettingValues coerces string and numeric values to strings and
// drops everything else (booleans, objects, arrays, nulls).
func filterSettingValues(entries map[string]interface{}) map[string]string {
	out := make(map[string]string, len(entries))
	for k, v := range entries {
		switch val := v.(type) {
		case string:
			out[k] = val
		case float64:
			out[k] = strconv.FormatFloat(val, 'f', -1, 64)
		case json.Number:
			out[k] = val.String()
		case int:
			out[k] = strconv.Itoa(val)
		}
	}
	return out
}
