package config

import (
	"os"
	"path"
	"time"

	"gopkg.in/yaml.v2"
)

// Config is built once at startup and passed by reference to each
// component. Secrets live in the private part and can be overridden
// through the environment.
type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	Port               string `yaml:"port"`
	FrontendBaseURL    string `yaml:"frontend_base_url"` // used to build activation/reset links
	MediaRoot          string `yaml:"media_root"`
	JwtTTLSeconds      int    `yaml:"jwt_ttl_seconds"`
	ActivationTokenLen int    `yaml:"activation_token_len"`
	ResetTokenLen      int    `yaml:"reset_token_len"`
	LogLevel           string `yaml:"log_level"`
	LogJSON            bool   `yaml:"log_json"`
}

type Private struct {
	Pg     Pg    `yaml:"pg"`
	Email  Email `yaml:"email"`
	JwtKey string `yaml:"jwt_key"`
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
}

type Email struct {
	SMTPServer string `yaml:"smtp_server"`
	SMTPPort   int    `yaml:"smtp_port"`
	Username   string `yaml:"username"`
	Password   string `yaml:"password"`
	SenderName string `yaml:"sender_name"`
	Timeout    int    `yaml:"timeout"` // seconds
}

func (c *Config) JwtKey() string {
	return c.Private.JwtKey
}

func (c *Config) JwtTTL() time.Duration {
	return time.Duration(c.Public.JwtTTLSeconds) * time.Second
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}
	if err := yaml.Unmarshal(configFile, output); err != nil {
		panic("can't unmarshal config file")
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	cfg := &Config{public, private}
	cfg.applyEnvOverrides()
	return cfg
}

// applyEnvOverrides lets deployments inject secrets and the listen port
// without touching the yaml files.
func (c *Config) applyEnvOverrides() {
	overrideFromEnv("PORT", &c.Public.Port)
	overrideFromEnv("FRONTEND_BASE_URL", &c.Public.FrontendBaseURL)
	overrideFromEnv("PG_HOST", &c.Private.Pg.Host)
	overrideFromEnv("PG_PASSWORD", &c.Private.Pg.Password)
	overrideFromEnv("SMTP_PASSWORD", &c.Private.Email.Password)
	overrideFromEnv("JWT_KEY", &c.Private.JwtKey)
}

func overrideFromEnv(key string, target *string) {
	if v := os.Getenv(key); v != "" {
		*target = v
	}
}
