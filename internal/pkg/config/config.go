package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	DBUsername     string `yaml:"db_username"`
	DBPassword     string `yaml:"db_password"`
	DBHost         string `yaml:"db_host"`
	DBPort         string `yaml:"db_port"`
	DBName         string `yaml:"db_name"`
	DisableTLS     bool   `yaml:"disable_tls"`
	RedisHost      string `yaml:"redis_host"`
	RedisPort      string `yaml:"redis_port"`
	RedisPassword  string `yaml:"redis_password"`
	BaseUrl        string `yaml:"base_url"`
	PrivateKeyPath string `yaml:"private_key_path"`
}

func NewConfig() (*Config, error) {
	var c Config

	yamlFile, err := os.ReadFile("config.yaml")
	if err != nil {
		return nil, err
	}

	err = yaml.Unmarshal(yamlFile, &c)
	if err != nil {
		return nil, err
	}

	if c.DBUsername == "" || c.DBPassword == "" || c.DBHost == "" || c.DBName == "" {
		return nil, errors.New("missing required database configuration")
	}

	if c.PrivateKeyPath == "" {
		c.PrivateKeyPath = "./private.pem"
	}

	return &c, nil
}
