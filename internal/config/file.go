package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileS3Config mirrors S3Config for file decoding.
type FileS3Config struct {
	Bucket       string `json:"bucket" yaml:"bucket"`
	Region       string `json:"region" yaml:"region"`
	BaseEndpoint string `json:"base_endpoint" yaml:"base_endpoint"`
	AccessKey    string `json:"access_key" yaml:"access_key"`
	SecretKey    string `json:"secret_key" yaml:"secret_key"`
	Prefix       string `json:"prefix" yaml:"prefix"`
}

// FileConfig is a DTO used exclusively for decoding the config file.
// Empty fields leave the corresponding Config value untouched.
type FileConfig struct {
	StorageDriver string       `json:"storage_driver" yaml:"storage_driver"`
	SQLitePath    string       `json:"sqlite_path" yaml:"sqlite_path"`
	PostgresDSN   string       `json:"postgres_dsn" yaml:"postgres_dsn"`
	S3            FileS3Config `json:"s3" yaml:"s3"`
	LogLevel      string       `json:"log_level" yaml:"log_level"`
	LogFormat     string       `json:"log_format" yaml:"log_format"`
	DownloadDir   string       `json:"download_dir" yaml:"download_dir"`
}

func parseFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc FileConfig) apply(cfg *Config) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.StorageDriver, fc.StorageDriver)
	set(&cfg.SQLitePath, fc.SQLitePath)
	set(&cfg.PostgresDSN, fc.PostgresDSN)
	set(&cfg.S3.Bucket, fc.S3.Bucket)
	set(&cfg.S3.Region, fc.S3.Region)
	set(&cfg.S3.BaseEndpoint, fc.S3.BaseEndpoint)
	set(&cfg.S3.AccessKey, fc.S3.AccessKey)
	set(&cfg.S3.SecretKey, fc.S3.SecretKey)
	set(&cfg.S3.Prefix, fc.S3.Prefix)
	set(&cfg.LogLevel, fc.LogLevel)
	set(&cfg.LogFormat, fc.LogFormat)
	set(&cfg.DownloadDir, fc.DownloadDir)
}
