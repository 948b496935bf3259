package service

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/qbu-next/internal/constants"
	"github.com/qbu-next/internal/models"
	"github.com/qbu-next/internal/repository"
)

// SettingService 設定サービス
type SettingService struct {
	repo repository.SettingRepository
}

// NewSettingService 設定サービスを作成
func NewSettingService(repo repository.SettingRepository) *SettingService {
	return &SettingService{repo: repo}
}

// GetConfig サイト設定を取得（デフォルト値とマージ）
func (s *SettingService) GetConfig(defaults map[string]interface{}) (map[string]interface{}, error) {
	data := make(map[string]interface{})
	for k, v := range defaults {
		data[k] = v
	}

	setting, err := s.repo.GetByKey(constants.SettingKeySiteConfig)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return data, nil
	}

	for k, v := range setting.ValueJSON {
		data[k] = v
	}
	return data, nil
}

// GetByKey 設定を取得
func (s *SettingService) GetByKey(key string) (models.JSON, error) {
	setting, err := s.repo.GetByKey(key)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return nil, nil
	}
	return setting.ValueJSON, nil
}

// Update 設定を保存
func (s *SettingService) Update(key string, value map[string]interface{}) (models.JSON, error) {
	setting, err := s.repo.Upsert(key, value)
	if err != nil {
		return nil, err
	}
	return setting.ValueJSON, nil
}

// GetPaddingMm サイズ判定に使う梱包余白（mm）を取得
// 設定が無い・不正な場合はデフォルト値に倒す。
func (s *SettingService) GetPaddingMm(defaultValue float64) (float64, error) {
	if s == nil {
		return defaultValue, nil
	}
	value, err := s.GetByKey(constants.SettingKeyOrderConfig)
	if err != nil {
		return defaultValue, err
	}
	if value == nil {
		return defaultValue, nil
	}
	raw, ok := value[constants.SettingFieldPaddingMm]
	if !ok {
		return defaultValue, nil
	}
	padding, err := parseSettingFloat(raw)
	if err != nil {
		return defaultValue, err
	}
	if padding < 0 {
		return defaultValue, nil
	}
	return padding, nil
}

// GetOrderNoPrefix 注文番号プレフィックスを取得
func (s *SettingService) GetOrderNoPrefix(defaultValue string) (string, error) {
	if s == nil {
		return defaultValue, nil
	}
	value, err := s.GetByKey(constants.SettingKeyOrderConfig)
	if err != nil {
		return defaultValue, err
	}
	if value == nil {
		return defaultValue, nil
	}
	raw, ok := value[constants.SettingFieldOrderPrefix]
	if !ok {
		return defaultValue, nil
	}
	prefix, ok := raw.(string)
	if !ok {
		return defaultValue, nil
	}
	trimmed := strings.TrimSpace(prefix)
	if trimmed == "" {
		return defaultValue, nil
	}
	return trimmed, nil
}

func parseSettingInt(value interface{}) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return int(i), nil
		}
		if f, err := v.Float64(); err == nil {
			return int(f), nil
		}
		return 0, fmt.Errorf("invalid json number")
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, fmt.Errorf("empty string")
		}
		parsed, err := strconv.Atoi(trimmed)
		if err != nil {
			return 0, err
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("unsupported value type")
	}
}

func parseSettingFloat(value interface{}) (float64, error) {
	switch v := value.(type) {
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case float64:
		return v, nil
	case json.Number:
		return v.Float64()
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, fmt.Errorf("empty string")
		}
		return strconv.ParseFloat(trimmed, 64)
	default:
		return 0, fmt.Errorf("unsupported value type")
	}
}
