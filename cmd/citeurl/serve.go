package main

import (
	"fmt"
	"time"

	"github.com/citeurl-go/citeurl/internal/config"
	"github.com/citeurl-go/citeurl/internal/httpserver"
	"github.com/citeurl-go/citeurl/internal/logging"
	"github.com/citeurl-go/citeurl/internal/web/auth"
	"github.com/citeurl-go/citeurl/internal/web/cache"
	webserver "github.com/citeurl-go/citeurl/internal/web/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// zapShutdownLogger adapts a *zap.Logger to webserver.Logger's Printf shape.
type zapShutdownLogger struct{ log *zap.SugaredLogger }

func (l zapShutdownLogger) Printf(format string, v ...interface{}) { l.log.Infof(format, v...) }

var (
	serveAddr       string
	serveJWTSecret  string
	serveAdminToken string
	serveRedisAddr  string
	serveTLSCert    string
	serveTLSKey     string
)

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "address to listen on")
	serveCmd.Flags().StringVar(&serveJWTSecret, "jwt-secret", "", "secret used to sign reload-session JWTs")
	serveCmd.Flags().StringVar(&serveAdminToken, "admin-token", "", "plaintext token required to POST /admin/reload")
	serveCmd.Flags().StringVar(&serveRedisAddr, "redis-addr", "", "Redis address for response caching; empty uses an in-process cache")
	serveCmd.Flags().StringVar(&serveTLSCert, "tls-cert", "", "TLS certificate file; enables HTTPS when set with --tls-key")
	serveCmd.Flags().StringVar(&serveTLSKey, "tls-key", "", "TLS private key file; enables HTTPS when set with --tls-cert")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve citation lookups over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// citeurl.yml's defaults only apply when a config file is actually
		// present — config.Load falls back to its own built-in defaults
		// (including a Redis address) even with no file, which would
		// otherwise silently turn on Redis caching for every serve run.
		if config.InProject() {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("addr") {
				serveAddr = fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
			}
			if !cmd.Flags().Changed("jwt-secret") && cfg.Auth.JWTSecret != "" {
				serveJWTSecret = cfg.Auth.JWTSecret
			}
			if !cmd.Flags().Changed("redis-addr") && cfg.Redis.Addr != "" {
				serveRedisAddr = cfg.Redis.Addr
			}
		}

		c, err := loadCitator()
		if err != nil {
			return err
		}

		logger := logging.New(verbose)
		defer logger.Sync()

		respCache := cache.Cache(cache.NewMemoryCache())
		if serveRedisAddr != "" {
			redisCache, err := cache.NewRedisCacheWithConfig(cache.RedisConfig{Addr: serveRedisAddr})
			if err != nil {
				return err
			}
			respCache = redisCache
		}

		adminHash := ""
		if serveAdminToken != "" {
			adminHash, err = auth.HashAdminKey(serveAdminToken)
			if err != nil {
				return err
			}
		}

		srv := httpserver.New(c, respCache, httpserver.Config{
			Addr:           serveAddr,
			JWTSecret:      serveJWTSecret,
			AdminTokenHash: adminHash,
			Logger:         logger,
		})

		webCfg := webserver.DefaultConfig(srv)
		webCfg.Address = serveAddr
		if serveTLSCert != "" && serveTLSKey != "" {
			webCfg.TLSConfig = &webserver.TLSConfig{CertFile: serveTLSCert, KeyFile: serveTLSKey}
		}
		wrapped, err := webserver.New(webCfg)
		if err != nil {
			return err
		}

		fmt.Printf("serving citations on %s\n", serveAddr)
		return webserver.StartWithGracefulShutdown(wrapped, &webserver.ShutdownConfig{
			Timeout: 30 * time.Second,
			Logger:  zapShutdownLogger{logger.Sugar()},
		})
	},
}
