package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/gophcms/internal/flagx"
	"github.com/dmitrijs2005/gophcms/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Durations accept both
// "10s" strings and integer nanoseconds.
type JsonConfig struct {
	EndpointAddrHTTP string         `json:"endpoint_addr_http"`
	MetricsAddr      string         `json:"metrics_addr"`
	DatabaseDSN      string         `json:"database_dsn"`
	AccessSecret     string         `json:"access_secret"`
	RefreshSecret    string         `json:"refresh_secret"`
	UploadPath       string         `json:"upload_path"`
	ImageStorage     string         `json:"image_storage"`
	S3RootUser       string         `json:"s3_root_user"`
	S3RootPassword   string         `json:"s3_root_password"`
	S3Bucket         string         `json:"s3_bucket"`
	S3Region         string         `json:"s3_region"`
	S3BaseEndpoint   string         `json:"s3_base_endpoint"`
	AllowedOrigin    string         `json:"allowed_origin"`
	LogBackend       string         `json:"log_backend"`
	LogLevel         string         `json:"log_level"`
	LogPretty        *bool          `json:"log_pretty"`
	OTelEnable       *bool          `json:"otel_enable"`
	OTelEndpoint     string         `json:"otel_endpoint"`
	OTelServiceName  string         `json:"otel_service_name"`
	OTelSampleRatio  *float64       `json:"otel_sample_ratio"`
	ShutdownTimeout  timex.Duration `json:"shutdown_timeout"`
}

// parseJson overlays the file named by -c/-config onto config. Only fields
// present in the file replace the current values.
func parseJson(config *Config, args []string) error {
	path := flagx.JsonConfigPath(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.MetricsAddr, c.MetricsAddr)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.AccessSecret, c.AccessSecret)
	setString(&config.RefreshSecret, c.RefreshSecret)
	setString(&config.UploadPath, c.UploadPath)
	setString(&config.ImageStorage, c.ImageStorage)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.AllowedOrigin, c.AllowedOrigin)
	setString(&config.LogBackend, c.LogBackend)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.OTelEndpoint, c.OTelEndpoint)
	setString(&config.OTelServiceName, c.OTelServiceName)

	if c.LogPretty != nil {
		config.LogPretty = *c.LogPretty
	}
	if c.OTelEnable != nil {
		config.OTelEnable = *c.OTelEnable
	}
	if c.OTelSampleRatio != nil {
		config.OTelSampleRatio = *c.OTelSampleRatio
	}
	if c.ShutdownTimeout.Duration > 0 {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}

	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
