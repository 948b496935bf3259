package service

import (
	"testing"

	"github.com/qbu-next/internal/config"
	"github.com/qbu-next/internal/constants"
)

func TestCaptchaSettingToConfig(t *testing.T) {
	setting := CaptchaSetting{
		Provider: " Image ",
		Scenes:   CaptchaSceneSetting{AdminLogin: true, GuestCreateOrder: true},
		Image: CaptchaImageSetting{
			Length:        6,
			Width:         320,
			Height:        96,
			NoiseCount:    3,
			ShowLine:      1,
			ExpireSeconds: 120,
			MaxStore:      2048,
		},
	}

	cfg := CaptchaSettingToConfig(setting)
	if cfg.Provider != constants.CaptchaProviderImage {
		t.Fatalf("provider = %s, want %s", cfg.Provider, constants.CaptchaProviderImage)
	}
	if !cfg.Scenes.AdminLogin || !cfg.Scenes.GuestCreateOrder {
		t.Fatalf("scenes not carried over: %+v", cfg.Scenes)
	}
	want := config.CaptchaImageConfig{
		Length:        6,
		Width:         320,
		Height:        96,
		NoiseCount:    3,
		ShowLine:      1,
		ExpireSeconds: 120,
		MaxStore:      2048,
	}
	if cfg.Image != want {
		t.Fatalf("image config = %+v, want %+v", cfg.Image, want)
	}
}

func TestCaptchaSettingToConfigNormalizes(t *testing.T) {
	cfg := CaptchaSettingToConfig(CaptchaSetting{Provider: "banana"})
	if cfg.Provider != constants.CaptchaProviderNone {
		t.Fatalf("unknown provider should fall back to none, got %s", cfg.Provider)
	}
	if cfg.Image.Length != 5 || cfg.Image.Width != 240 || cfg.Image.Height != 80 {
		t.Fatalf("zero drawing settings should normalize: %+v", cfg.Image)
	}
	if cfg.Image.ExpireSeconds != 300 || cfg.Image.MaxStore != 10240 {
		t.Fatalf("zero store settings should normalize: %+v", cfg.Image)
	}
}
