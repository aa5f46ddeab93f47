package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"sirlab/internal/epi"
)

const (
	DefaultPopulation = 10000
	DefaultBeta       = 1.4
	DefaultGamma      = 0.4
	DefaultInfected   = 1
	DefaultDays       = 40
	DefaultPoints     = 300
)

type Config struct {
	Model           string  `yaml:"model"`
	Population      float64 `yaml:"population"`
	Beta            float64 `yaml:"beta"`
	Gamma           float64 `yaml:"gamma"`
	InitialInfected float64 `yaml:"initial_infected"`
	InitialRemoved  float64 `yaml:"initial_removed"`
	Days            float64 `yaml:"days"`
	Points          int     `yaml:"points"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:           epi.KindSIR,
		Population:      DefaultPopulation,
		Beta:            DefaultBeta,
		Gamma:           DefaultGamma,
		InitialInfected: DefaultInfected,
		Days:            DefaultDays,
		Points:          DefaultPoints,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Params() epi.Params {
	return epi.Params{
		Population:      c.Population,
		Beta:            c.Beta,
		Gamma:           c.Gamma,
		InitialInfected: c.InitialInfected,
		InitialRemoved:  c.InitialRemoved,
		Days:            c.Days,
		Points:          c.Points,
	}
}
