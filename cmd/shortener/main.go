package main

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"

	"github.com/smartinb/go-url-shortener/internal/app/server"
	"github.com/smartinb/go-url-shortener/internal/cache"
	"github.com/smartinb/go-url-shortener/internal/config"
	"github.com/smartinb/go-url-shortener/internal/logger"
	"github.com/smartinb/go-url-shortener/internal/repository"
	"github.com/smartinb/go-url-shortener/internal/service"
	"github.com/smartinb/go-url-shortener/internal/storage"

	_ "net/http/pprof"
)

var buildVersion string
var buildDate string
var buildCommit string

func main() {
	options, err := config.Parse()
	if err != nil {
		panic(err)
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)

	log := logger.New()
	defer func() {
		_ = log.Log.Sync()
	}()

	if err := log.Init(options.LogLevel); err != nil {
		panic(err)
	}
	zapLogger := log.Log

	if options.EnablePprof {
		go func() {
			zapLogger.Info("Starting pprof server", zap.String("addr", "localhost:6060"))
			if err := http.ListenAndServe("localhost:6060", nil); err != nil {
				zapLogger.Error("pprof server error", zap.Error(err))
			}
		}()
	}

	var store storage.Store

	if options.DatabaseDSN != "" {
		zapLogger.Info("using db", zap.String("dsn", options.DatabaseDSN))
		db := repository.InitDB(options.DatabaseDSN, zapLogger)
		defer db.Close()
		store = repository.CreateURLRepository(db, zapLogger)
		zapLogger.Info("Database connected and table ready.")
	} else {
		zapLogger.Info("using in memory storage")

		store, err = storage.CreateMemoryStorage()
		if err != nil {
			panic(err)
		}
	}

	var resolutionCache cache.ResolutionCache

	if options.RedisAddr != "" {
		zapLogger.Info("using redis cache", zap.String("addr", options.RedisAddr))
		client := redis.NewClient(&redis.Options{Addr: options.RedisAddr})
		resolutionCache = cache.NewRedisCache(client, options.CacheTTL, zapLogger)
	} else {
		zapLogger.Info("using in memory cache")
		resolutionCache = cache.NewMemoryCache(options.CacheTTL)
	}

	allocator := service.NewAllocator(store, service.NewKeyGenerator(), options.KeyLength, zapLogger)
	urlService := service.NewURL(store, allocator, resolutionCache, zapLogger)

	r := server.Init(urlService, options.BaseURL, zapLogger)

	if options.EnableHTTPS {
		base, err := url.Parse(options.BaseURL)
		if err != nil {
			panic(err)
		}
		manager := &autocert.Manager{
			Cache:      autocert.DirCache("cache-dir"),
			Prompt:     autocert.AcceptTOS,
			HostPolicy: autocert.HostWhitelist(base.Hostname(), "www."+base.Hostname()),
		}
		srv := &http.Server{
			Addr:      ":443",
			Handler:   r,
			TLSConfig: manager.TLSConfig(),
		}
		zapLogger.Info("Server is running with TLS", zap.String("addr", options.Addr))
		if err := srv.ListenAndServeTLS("", ""); err != nil {
			panic(err)
		}
	} else {
		zapLogger.Info("Server is running", zap.String("addr", options.Addr))
		if err := http.ListenAndServe(options.Addr, r); err != nil {
			panic(err)
		}
	}
}
