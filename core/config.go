package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	// Config holds all runtime configuration for the portal.
	Config struct {
		Debug     bool
		TestMode  bool
		AppName   string
		Env       string
		Build     string
		SecretKey string

		RollbarToken string

		Server    ServerConfig
		Database  DatabaseConfig
		Bootstrap BootstrapConfig
	}

	ServerConfig struct {
		Host            string
		Port            string
		ShutdownTimeout time.Duration
		SessionMaxAge   time.Duration
	}

	DatabaseConfig struct {
		Engine     string // sqlite3 | postgres
		Name       string
		Path       string // sqlite3: database file, created on first startup
		Host       string
		Port       string
		User       string
		Password   string
		DisableTLS bool
	}

	// BootstrapConfig holds the credentials of the default head account
	// seeded on first startup.
	BootstrapConfig struct {
		HeadUsername string
		HeadPassword string
	}
)

func (c ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

func (c DatabaseConfig) Address() string {
	return c.Host + ":" + c.Port
}

func NewConfig() *Config {
	conf := viper.New()
	conf.SetTypeByDefaultValue(true)

	// defaults
	conf.SetDefault("debug", true)
	conf.SetDefault("testMode", false)
	conf.SetDefault("appName", "Darasa")
	conf.SetDefault("build", "dev")
	conf.SetDefault("secretKey", "k2(#yg4h^$cegm2emy!poq5-wer)enb$+57=dz&uoxh2(h!x)#")
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("server.host", "0.0.0.0")
	conf.SetDefault("server.port", "8000")
	conf.SetDefault("server.shutdownTimeout", 5*time.Second)
	conf.SetDefault("server.sessionMaxAge", 14*24*time.Hour)
	conf.SetDefault("database.engine", "sqlite3")
	conf.SetDefault("database.name", "darasa")
	conf.SetDefault("database.path", "darasa.db")
	conf.SetDefault("database.host", "localhost")
	conf.SetDefault("database.port", "5432")
	conf.SetDefault("database.user", "")
	conf.SetDefault("database.password", "")
	conf.SetDefault("database.disableTLS", true)
	conf.SetDefault("bootstrap.headUsername", "admin")
	conf.SetDefault("bootstrap.headPassword", "admin123")

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	}
	conf.SetEnvPrefix(env)
	conf.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	c := &Config{
		Debug:        conf.GetBool("debug"),
		TestMode:     conf.GetBool("testMode"),
		AppName:      conf.GetString("appName"),
		Env:          env,
		Build:        conf.GetString("build"),
		SecretKey:    conf.GetString("secretKey"),
		RollbarToken: conf.GetString("rollbarToken"),
		Server: ServerConfig{
			Host:            conf.GetString("server.host"),
			Port:            conf.GetString("server.port"),
			ShutdownTimeout: conf.GetDuration("server.shutdownTimeout"),
			SessionMaxAge:   conf.GetDuration("server.sessionMaxAge"),
		},
		Database: DatabaseConfig{
			Engine:     conf.GetString("database.engine"),
			Name:       conf.GetString("database.name"),
			Path:       conf.GetString("database.path"),
			Host:       conf.GetString("database.host"),
			Port:       conf.GetString("database.port"),
			User:       conf.GetString("database.user"),
			Password:   conf.GetString("database.password"),
			DisableTLS: conf.GetBool("database.disableTLS"),
		},
		Bootstrap: BootstrapConfig{
			HeadUsername: conf.GetString("bootstrap.headUsername"),
			HeadPassword: conf.GetString("bootstrap.headPassword"),
		},
	}

	// un-prefixed PORT wins; hosting platforms set it
	if port := os.Getenv("PORT"); port != "" {
		c.Server.Port = port
	}
	return c
}
