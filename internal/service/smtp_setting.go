package service

import (
	"github.com/qbu-next/internal/config"
	"github.com/qbu-next/internal/constants"
	"github.com/qbu-next/internal/models"
)

// SMTPSetting settings に保存する SMTP 設定
type SMTPSetting struct {
	Enabled  bool   `json:"enabled"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	From     string `json:"from"`
	FromName string `json:"from_name"`
	UseTLS   bool   `json:"use_tls"`
	UseSSL   bool   `json:"use_ssl"`
}

// GetSMTPSetting SMTP 設定を取得（settings 優先、空なら config.yml に回帰）
func (s *SettingService) GetSMTPSetting(fallback config.EmailConfig) (SMTPSetting, error) {
	setting := SMTPSetting{
		Enabled:  fallback.Enabled,
		Host:     fallback.Host,
		Port:     fallback.Port,
		Username: fallback.Username,
		Password: fallback.Password,
		From:     fallback.From,
		FromName: fallback.FromName,
		UseTLS:   fallback.UseTLS,
		UseSSL:   fallback.UseSSL,
	}
	value, err := s.GetByKey(constants.SettingKeySMTPConfig)
	if err != nil {
		return setting, err
	}
	if value == nil {
		return setting, nil
	}
	return smtpSettingFromJSON(value, setting), nil
}

// UpdateSMTPSetting SMTP 設定を保存する
// 空のパスワードは「変更なし」とみなし既存値を保持する。
func (s *SettingService) UpdateSMTPSetting(fallback config.EmailConfig, next SMTPSetting) (SMTPSetting, error) {
	current, err := s.GetSMTPSetting(fallback)
	if err != nil {
		return SMTPSetting{}, err
	}
	if next.Password == "" {
		next.Password = current.Password
	}
	if _, err := s.Update(constants.SettingKeySMTPConfig, smtpSettingToMap(next)); err != nil {
		return SMTPSetting{}, err
	}
	return next, nil
}

// SMTPSettingToConfig SMTP 設定を実行時設定に変換する
func SMTPSettingToConfig(setting SMTPSetting) config.EmailConfig {
	return config.EmailConfig{
		Enabled:  setting.Enabled,
		Host:     setting.Host,
		Port:     setting.Port,
		Username: setting.Username,
		Password: setting.Password,
		From:     setting.From,
		FromName: setting.FromName,
		UseTLS:   setting.UseTLS,
		UseSSL:   setting.UseSSL,
	}
}

// MaskSMTPSettingForAdmin パスワードを伏せた SMTP 設定を返す
func MaskSMTPSettingForAdmin(setting SMTPSetting) models.JSON {
	return models.JSON{
		"enabled":      setting.Enabled,
		"host":         setting.Host,
		"port":         setting.Port,
		"username":     setting.Username,
		"password":     "",
		"has_password": setting.Password != "",
		"from":         setting.From,
		"from_name":    setting.FromName,
		"use_tls":      setting.UseTLS,
		"use_ssl":      setting.UseSSL,
	}
}

func smtpSettingToMap(setting SMTPSetting) map[string]interface{} {
	return map[string]interface{}{
		"enabled":   setting.Enabled,
		"host":      setting.Host,
		"port":      setting.Port,
		"username":  setting.Username,
		"password":  setting.Password,
		"from":      setting.From,
		"from_name": setting.FromName,
		"use_tls":   setting.UseTLS,
		"use_ssl":   setting.UseSSL,
	}
}

func smtpSettingFromJSON(raw models.JSON, fallback SMTPSetting) SMTPSetting {
	next := fallback
	if raw == nil {
		return next
	}
	next.Enabled = readBool(raw, "enabled", next.Enabled)
	next.Host = readString(raw, "host", next.Host)
	next.Port = readInt(raw, "port", next.Port)
	next.Username = readString(raw, "username", next.Username)
	next.Password = readString(raw, "password", next.Password)
	next.From = readString(raw, "from", next.From)
	next.FromName = readString(raw, "from_name", next.FromName)
	next.UseTLS = readBool(raw, "use_tls", next.UseTLS)
	next.UseSSL = readBool(raw, "use_ssl", next.UseSSL)
	return next
}
