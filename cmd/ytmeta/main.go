package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/btmxh/ytmeta/internal/auth"
	"github.com/btmxh/ytmeta/internal/media"
	"github.com/btmxh/ytmeta/internal/routes"
	"github.com/btmxh/ytmeta/internal/services"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/wader/goutubedl"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("(warn) Unable to load .env file, using process environment only")
	}

	logLevel := slog.LevelDebug
	if levelStr, ok := os.LookupEnv("LOG_LEVEL"); ok {
		if err := logLevel.UnmarshalText([]byte(levelStr)); err != nil {
			fmt.Println("(warn) Invalid value for LOG_LEVEL environment variable")
		}
	}

	logHandler := tint.NewHandler(os.Stderr, &tint.Options{
		Level: logLevel,
	})

	slog.SetDefault(slog.New(logHandler))

	if err := auth.InitAPIKey(); err != nil {
		panic(err)
	}

	if path, ok := os.LookupEnv("YTDLP_PATH"); ok {
		goutubedl.Path = path
	}

	service := services.NewMetadataService(media.NewYtdlExtractor(), services.CacheConfigFromEnv())

	addr, ok := os.LookupEnv("YTMETA_ADDR")
	if !ok {
		addr = "0.0.0.0:8000"
		slog.Info("YTMETA_ADDR not provided, using default '" + addr + "'")
	}

	cert, hasCert := os.LookupEnv("HTTPS_CERT_FILE")
	key, hasKey := os.LookupEnv("HTTPS_KEY_FILE")

	router := routes.CreateMainRouter(service)

	var err error
	if hasKey && hasCert {
		slog.Info("Starting HTTPS server", slog.String("addr", addr), slog.String("cert", cert), slog.String("key", key))
		err = http.ListenAndServeTLS(addr, cert, key, router)
	} else {
		slog.Info("Starting HTTP server", slog.String("addr", addr))
		err = http.ListenAndServe(addr, router)
	}

	if err != nil {
		panic(err)
	}
}
