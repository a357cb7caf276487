package config

import (
	"strings"

	"github.com/spf13/viper"
)

// envKeys maps viper keys to the fields they override. The environment
// variable name is the upper-cased key.
var envKeys = map[string]func(*Config, *viper.Viper, string){
	"jwt_access_secret":  func(c *Config, v *viper.Viper, k string) { c.AccessSecret = v.GetString(k) },
	"jwt_refresh_secret": func(c *Config, v *viper.Viper, k string) { c.RefreshSecret = v.GetString(k) },
	"upload_path":        func(c *Config, v *viper.Viper, k string) { c.UploadPath = v.GetString(k) },
	"database_dsn":       func(c *Config, v *viper.Viper, k string) { c.DatabaseDSN = v.GetString(k) },
	"http_addr":          func(c *Config, v *viper.Viper, k string) { c.EndpointAddrHTTP = v.GetString(k) },
	"metrics_addr":       func(c *Config, v *viper.Viper, k string) { c.MetricsAddr = v.GetString(k) },
	"image_storage":      func(c *Config, v *viper.Viper, k string) { c.ImageStorage = v.GetString(k) },
	"log_level":          func(c *Config, v *viper.Viper, k string) { c.LogLevel = v.GetString(k) },
	"otel_enable":        func(c *Config, v *viper.Viper, k string) { c.OTelEnable = v.GetBool(k) },
}

// parseEnv overlays variables that are set in the environment.
func parseEnv(config *Config) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for key, apply := range envKeys {
		_ = v.BindEnv(key, strings.ToUpper(key))
		if v.IsSet(key) {
			apply(config, v, key)
		}
	}
}
