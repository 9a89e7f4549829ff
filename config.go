package main

import (
	"errors"
	"net/url"

	"github.com/spf13/viper"
)

type config struct {
	Server      *configServer   `mapstructure:"server"`
	Db          *configDb       `mapstructure:"database"`
	AI          *configAI       `mapstructure:"ai"`
	Telegram    *configTelegram `mapstructure:"telegram"`
	Debug       bool            `mapstructure:"debug"`
	initialized bool
}

type configServer struct {
	Logging       bool   `mapstructure:"logging"`
	LogFile       string `mapstructure:"logFile"`
	Port          int    `mapstructure:"port"`
	PublicAddress string `mapstructure:"publicAddress"`
}

type configDb struct {
	File     string `mapstructure:"file"`
	DumpFile string `mapstructure:"dumpFile"`
	Debug    bool   `mapstructure:"debug"`
}

type configAI struct {
	Endpoint string `mapstructure:"endpoint"`
	APIKey   string `mapstructure:"apiKey"`
	Model    string `mapstructure:"model"`
}

type configTelegram struct {
	Enabled  bool   `mapstructure:"enabled"`
	BotToken string `mapstructure:"botToken"`
	ChatID   string `mapstructure:"chatId"`
}

func (tg *configTelegram) enabled() bool {
	return tg != nil && tg.Enabled && tg.BotToken != "" && tg.ChatID != ""
}

func (a *postPilot) loadConfigFile(file string) error {
	// Use viper to load the config file
	v := viper.New()
	if file != "" {
		// Use config file from the flag
		v.SetConfigFile(file)
	} else {
		// Search in default locations
		v.SetConfigName("config")
		v.AddConfigPath("./config/")
	}
	// Read config
	if err := v.ReadInConfig(); err != nil {
		return err
	}
	// Unmarshal config
	a.cfg = createDefaultConfig()
	return v.Unmarshal(a.cfg)
}

func (a *postPilot) initConfig() error {
	if a.cfg == nil {
		a.cfg = createDefaultConfig()
	}
	if a.cfg.initialized {
		return nil
	}
	if a.cfg.Server.PublicAddress == "" {
		return errors.New("no public address configured")
	}
	if _, err := url.Parse(a.cfg.Server.PublicAddress); err != nil {
		return errors.New("invalid public address: " + err.Error())
	}
	if a.cfg.Db == nil || a.cfg.Db.File == "" {
		return errors.New("no database file configured")
	}
	if a.cfg.AI == nil {
		a.cfg.AI = createDefaultConfig().AI
	}
	a.cfg.AI.Endpoint = defaultIfEmpty(a.cfg.AI.Endpoint, defaultAIEndpoint)
	a.cfg.AI.Model = defaultIfEmpty(a.cfg.AI.Model, defaultAIModel)
	a.updateLogLevel()
	a.cfg.initialized = true
	a.info("Initialized configuration")
	return nil
}

func createDefaultConfig() *config {
	return &config{
		Server: &configServer{
			Port:          8080,
			PublicAddress: "http://localhost:8080",
			LogFile:       "data/access.log",
		},
		Db: &configDb{
			File: "data/db.sqlite",
		},
		AI: &configAI{
			Endpoint: defaultAIEndpoint,
			Model:    defaultAIModel,
		},
	}
}
