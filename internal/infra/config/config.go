package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port string `yaml:"port"`
	} `yaml:"server"`
	TelegramBot struct {
		Enabled     bool          `yaml:"enabled"`
		Token       string        `yaml:"token"`
		PollTimeout time.Duration `yaml:"poll_timeout"`
		AdminIDs    []int64       `yaml:"admin_ids"`
	} `yaml:"telegram_bot"`
	Database struct {
		Host     string `yaml:"host"`
		Port     string `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"dbname"`
		MaxConns int32  `yaml:"max_conns"`
	} `yaml:"database"`
	Auth struct {
		JWTSecret string `yaml:"jwt_secret"`
	} `yaml:"auth"`
	Log struct {
		Mode string `yaml:"mode"`
	} `yaml:"log"`
}

func LoadConfig(filename string) (*Config, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	defer func(f *os.File) {
		err := f.Close()
		if err != nil {
			fmt.Println("f.Close() failed ", err)
		}
	}(f)

	config := &Config{}
	if err := yaml.NewDecoder(f).Decode(config); err != nil {
		return nil, err
	}

	config.applyEnv()
	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnv переопределяет секреты значениями из переменных окружения, если они заданы
func (c *Config) applyEnv() {
	c.Database.Password = envString("DATABASE_PASSWORD", c.Database.Password)
	c.TelegramBot.Token = envString("TELEGRAM_BOT_TOKEN", c.TelegramBot.Token)
	c.Auth.JWTSecret = envString("JWT_SECRET", c.Auth.JWTSecret)
	c.Database.MaxConns = int32(envInt("DATABASE_MAX_CONNS", int(c.Database.MaxConns)))
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Database.Port == "" {
		c.Database.Port = "5432"
	}
	if c.Database.MaxConns <= 0 {
		c.Database.MaxConns = 10
	}
	if c.TelegramBot.PollTimeout <= 0 {
		c.TelegramBot.PollTimeout = 10 * time.Second
	}
	if c.Log.Mode == "" {
		c.Log.Mode = "development"
	}
}

// Validate проверяет, что обязательные параметры заданы
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port == "" {
		errs = append(errs, errors.New("server.port is required"))
	}
	if c.Database.Host == "" {
		errs = append(errs, errors.New("database.host is required"))
	}
	if c.Database.Name == "" {
		errs = append(errs, errors.New("database.dbname is required"))
	}
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("auth.jwt_secret is required"))
	}
	if c.TelegramBot.Enabled && c.TelegramBot.Token == "" {
		errs = append(errs, errors.New("telegram_bot.token is required when the bot is enabled"))
	}
	return errors.Join(errs...)
}

// DatabaseURL собирает строку подключения к PostgreSQL
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		c.Database.User, c.Database.Password, c.Database.Host, c.Database.Port, c.Database.Name)
}

// IsTelegramAdmin сообщает, входит ли пользователь telegram в список администраторов
func (c *Config) IsTelegramAdmin(telegramID int64) bool {
	for _, id := range c.TelegramBot.AdminIDs {
		if id == telegramID {
			return true
		}
	}
	return false
}

func envString(name, def string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return def
}

func envInt(name string, def int) int {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}
