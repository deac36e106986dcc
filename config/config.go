package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Configs struct {
	Env string `toml:"env"`

	Database  DatabaseConfigs `toml:"database"`
	ApiServer ServerConfigs   `toml:"api_server"`
	Auth      AuthConfigs     `toml:"auth"`
	Redis     RedisConfigs    `toml:"redis"`
}

type DatabaseConfigs struct {
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	Database string `toml:"database"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host string `toml:"host"`
	Port string `toml:"port"`
	Cert string `toml:"cert"`
	Key  string `toml:"key"`

	DefaultLimit int `toml:"default_limit"`
	MaxLimit     int `toml:"max_limit"`
}

func (s *ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type AuthConfigs struct {
	TokenSecret  string       `toml:"token_secret"`
	AccessToken  TokenConfigs `toml:"access_token"`
	RefreshToken TokenConfigs `toml:"refresh_token"`
}

type TokenConfigs struct {
	Name       string   `toml:"name"`
	Expiration Duration `toml:"expiration"`
}

type RedisConfigs struct {
	Addr string `toml:"addr"`
}

// Duration makes time.Duration decodable from a toml string like "15m".
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}

	*d = Duration(parsed)
	return nil
}

func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Load reads configurations from a toml file. Secrets can be overridden with
// environment variables afterwards so they are kept out of the config file.
func Load(path string) (Configs, error) {
	var configs Configs
	if _, err := toml.DecodeFile(path, &configs); err != nil {
		return Configs{}, err
	}

	if secret := os.Getenv("TOKEN_SECRET"); secret != "" {
		configs.Auth.TokenSecret = secret
	}

	if password := os.Getenv("DATABASE_PASSWORD"); password != "" {
		configs.Database.Password = password
	}

	return configs, nil
}
