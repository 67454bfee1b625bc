package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	secretsFileKey     = "secrets-file"
	defaultTokenKey    = "token"
	defaultExpireHours = 1
)

var ErrMissingSecret = errors.New("jwt secret key is not set")

// JWTSettings - параметры выдачи токенов
type JWTSettings struct {
	SecretKey   string `mapstructure:"SecretKey"`
	TokenKey    string `mapstructure:"TokenKey"`
	ExpireHours int    `mapstructure:"ExpireHours"`
}

func (s *JWTSettings) validate() error {
	if s.SecretKey == "" {
		return ErrMissingSecret
	}
	if s.TokenKey == "" {
		s.TokenKey = defaultTokenKey
	}
	if s.ExpireHours <= 0 {
		s.ExpireHours = defaultExpireHours
	}
	return nil
}

// LoadSecrets reads appsettings.json at path (a directory means
// <dir>/appsettings.json), follows its "secrets-file" entry and returns the
// JwtSettings section of that file. A relative secrets path is resolved
// against the appsettings directory.
func LoadSecrets(path string) (JWTSettings, error) {
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		path = filepath.Join(path, "appsettings.json")
	}

	app, err := readJSON(path)
	if err != nil {
		return JWTSettings{}, fmt.Errorf("read app settings: %w", err)
	}

	secretsPath := app.GetString(secretsFileKey)
	if secretsPath == "" {
		return JWTSettings{}, fmt.Errorf("%s: %q is not set", path, secretsFileKey)
	}
	if !filepath.IsAbs(secretsPath) {
		secretsPath = filepath.Join(filepath.Dir(path), secretsPath)
	}

	secrets, err := readJSON(secretsPath)
	if err != nil {
		return JWTSettings{}, fmt.Errorf("read secrets file: %w", err)
	}

	var s JWTSettings
	if err := secrets.UnmarshalKey("JwtSettings", &s); err != nil {
		return JWTSettings{}, fmt.Errorf("decode JwtSettings: %w", err)
	}
	if err := s.validate(); err != nil {
		return JWTSettings{}, fmt.Errorf("%s: %w", secretsPath, err)
	}
	return s, nil
}

func readJSON(path string) (*viper.Viper, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	return v, nil
}
