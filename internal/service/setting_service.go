package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/sinavkoc/sinavkoc-backend/internal/analysis"
	"github.com/sinavkoc/sinavkoc-backend/internal/config"
	"github.com/sinavkoc/sinavkoc-backend/internal/logger"
	"github.com/sinavkoc/sinavkoc-backend/internal/repository"
)

// AnalysisSettingPrefix marks app_settings keys that override analyzer thresholds,
// e.g. "analysis.weak_net_threshold".
const AnalysisSettingPrefix = "analysis."

const analysisSettingsTTL = 5 * time.Minute

// InvalidSettingsError lists rejected setting keys with a reason each.
type InvalidSettingsError map[string]string

func (e InvalidSettingsError) Error() string {
	return fmt.Sprintf("%d invalid settings", len(e))
}

type SettingService struct {
	settingRepo *repository.SettingRepository
	rdb         *redis.Client
	log         zerolog.Logger
}

func NewSettingService(settingRepo *repository.SettingRepository, rdb *redis.Client, log zerolog.Logger) *SettingService {
	return &SettingService{
		settingRepo: settingRepo,
		rdb:         rdb,
		log:         logger.Component(log, "setting_service"),
	}
}

func (s *SettingService) GetAllSettings(ctx context.Context) (map[string]string, error) {
	settingsList, err := s.settingRepo.ListByPrefix(ctx, "")
	if err != nil {
		s.log.Error().Err(err).Msg("failed to get all settings")
		return nil, err
	}

	settingsMap := make(map[string]string, len(settingsList))
	for _, setting := range settingsList {
		settingsMap[setting.Key] = setting.Value
	}
	return settingsMap, nil
}

// UpdateSettings validates analyzer overrides and writes every key.
func (s *SettingService) UpdateSettings(ctx context.Context, settingsMap map[string]string) error {
	if errs := ValidateAnalysisSettings(settingsMap); errs != nil {
		return errs
	}
	if err := s.settingRepo.UpsertMany(ctx, settingsMap); err != nil {
		s.log.Error().Err(err).Msg("failed to update settings")
		return err
	}
	if err := s.rdb.Del(ctx, config.CacheKey.AnalysisSettingsKey()).Err(); err != nil {
		s.log.Warn().Err(err).Msg("failed to drop cached analysis settings")
	}
	return nil
}

// AnalysisConfig returns the analyzer thresholds with any app_settings
// overrides applied. Lookup failures fall back to the defaults.
func (s *SettingService) AnalysisConfig(ctx context.Context) analysis.Config {
	key := config.CacheKey.AnalysisSettingsKey()

	if raw, err := s.rdb.Get(ctx, key).Bytes(); err == nil {
		var cfg analysis.Config
		if json.Unmarshal(raw, &cfg) == nil {
			return cfg
		}
	} else if !errors.Is(err, redis.Nil) {
		s.log.Warn().Err(err).Msg("analysis settings cache unavailable")
	}

	rows, err := s.settingRepo.ListByPrefix(ctx, AnalysisSettingPrefix)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to load analysis settings, using defaults")
		return analysis.DefaultConfig()
	}
	values := make(map[string]string, len(rows))
	for _, r := range rows {
		values[r.Key] = r.Value
	}
	cfg := ParseAnalysisConfig(values)

	if raw, err := json.Marshal(cfg); err == nil {
		s.rdb.Set(ctx, key, raw, analysisSettingsTTL)
	}
	return cfg
}

// ParseAnalysisConfig starts from the default thresholds and applies every
// "analysis.<json field>" value that parses. Unknown keys and bad values are ignored.
func ParseAnalysisConfig(values map[string]string) analysis.Config {
	cfg := analysis.DefaultConfig()
	v := reflect.ValueOf(&cfg).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		raw, ok := values[AnalysisSettingPrefix+t.Field(i).Tag.Get("json")]
		if !ok {
			continue
		}
		raw = strings.TrimSpace(raw)
		field := v.Field(i)
		switch field.Kind() {
		case reflect.Int:
			if n, err := strconv.Atoi(raw); err == nil && n > 0 {
				field.SetInt(int64(n))
			}
		case reflect.Float64:
			if f, err := strconv.ParseFloat(raw, 64); err == nil && f > 0 {
				field.SetFloat(f)
			}
		}
	}
	return cfg
}

// ValidateAnalysisSettings rejects analysis.* keys the analyzer does not
// know and values that are not positive numbers. Other keys pass through.
func ValidateAnalysisSettings(values map[string]string) InvalidSettingsError {
	known := map[string]reflect.Kind{}
	t := reflect.TypeOf(analysis.Config{})
	for i := 0; i < t.NumField(); i++ {
		known[AnalysisSettingPrefix+t.Field(i).Tag.Get("json")] = t.Field(i).Type.Kind()
	}

	errs := InvalidSettingsError{}
	for key, raw := range values {
		if !strings.HasPrefix(key, AnalysisSettingPrefix) {
			continue
		}
		kind, ok := known[key]
		if !ok {
			errs[key] = "bilinmeyen analiz ayarı"
			continue
		}
		raw = strings.TrimSpace(raw)
		switch kind {
		case reflect.Int:
			if n, err := strconv.Atoi(raw); err != nil || n <= 0 {
				errs[key] = "pozitif bir tam sayı olmalıdır"
			}
		case reflect.Float64:
			if f, err := strconv.ParseFloat(raw, 64); err != nil || f <= 0 {
				errs[key] = "pozitif bir sayı olmalıdır"
			}
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
