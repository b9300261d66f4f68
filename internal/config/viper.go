package config

import "github.com/spf13/viper"

type configFileNotFoundError = viper.ConfigFileNotFoundError

func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8080)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("store.driver", "sqlite3")
	v.SetDefault("store.dsn", "citeurl.db")
	v.SetDefault("auth.token_ttl", "24h")
	v.SetDefault("template_sets", []string{"U.S. Code", "U.S. Reports"})

	v.SetConfigName("citeurl")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	return v
}
