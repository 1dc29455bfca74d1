package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	ServerConfig struct {
		Host            string
		Addr            string
		ShutdownTimeout time.Duration
	}

	SessionConfig struct {
		Backend     string // file | postgres
		Dir         string
		DatabaseURL string
	}

	// DemoConfig tunes the simulated identity provider & payment gateway.
	DemoConfig struct {
		Latency       time.Duration
		EmailDomain   string
		ReferenceCode string
		SeedBalance   int64
	}

	Config struct {
		Env      string // DEV (local; default), TEST, QA, PROD
		Debug    bool
		TestMode bool
		Build    string

		AppName          string
		SecretKey        string
		DefaultFromEmail mail.Address
		SendgridAPIKey   string
		RollbarToken     string

		Server  ServerConfig
		Session SessionConfig
		Demo    DemoConfig
	}
)

func NewConfig() *Config {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("build", "dev")
	v.SetDefault("appName", "CampusPay")
	v.SetDefault("secretKey", "w#5v9-e=1b&+8y$du_oxh2(h!x)#*c2(#yg4h^$cegm2emy")
	v.SetDefault("defaultFromEmail", "noreply@campuspay.localhost")
	v.SetDefault("sendgridApiKey", "")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("serverHost", "localhost")
	v.SetDefault("serverAddr", ":8000")
	v.SetDefault("serverShutdownTimeout", 5*time.Second)
	v.SetDefault("sessionBackend", "file")
	v.SetDefault("sessionDir", filepath.Join(os.TempDir(), "campuspay"))
	v.SetDefault("sessionDatabaseUrl", "")
	v.SetDefault("demoLatency", 1500*time.Millisecond)
	v.SetDefault("demoEmailDomain", "university.edu.ph")
	v.SetDefault("demoReferenceCode", "123456")
	v.SetDefault("demoSeedBalance", 2450)

	env := os.Getenv("ENV")
	if env == "" {
		env = "DEV"
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	conf := &Config{
		Env:              env,
		Debug:            v.GetBool("debug"),
		TestMode:         env == "TEST",
		Build:            v.GetString("build"),
		AppName:          v.GetString("appName"),
		SecretKey:        v.GetString("secretKey"),
		DefaultFromEmail: mail.Address{Address: v.GetString("defaultFromEmail")},
		SendgridAPIKey:   v.GetString("sendgridApiKey"),
		RollbarToken:     v.GetString("rollbarToken"),
		Server: ServerConfig{
			Host:            v.GetString("serverHost"),
			Addr:            v.GetString("serverAddr"),
			ShutdownTimeout: v.GetDuration("serverShutdownTimeout"),
		},
		Session: SessionConfig{
			Backend:     v.GetString("sessionBackend"),
			Dir:         v.GetString("sessionDir"),
			DatabaseURL: v.GetString("sessionDatabaseUrl"),
		},
		Demo: DemoConfig{
			Latency:       v.GetDuration("demoLatency"),
			EmailDomain:   v.GetString("demoEmailDomain"),
			ReferenceCode: v.GetString("demoReferenceCode"),
			SeedBalance:   v.GetInt64("demoSeedBalance"),
		},
	}
	if conf.TestMode {
		// keep the suite fast; simulated latency is exercised explicitly
		conf.Demo.Latency = 0
	}
	conf.DefaultFromEmail.Name = conf.AppName
	return conf
}
