package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/Alturino/grocery/internal/config"
	"github.com/Alturino/grocery/internal/constants"
	"github.com/Alturino/grocery/internal/infra"
	"github.com/Alturino/grocery/internal/log"
	"github.com/Alturino/grocery/internal/middleware"
	inOtel "github.com/Alturino/grocery/internal/otel"
	"github.com/Alturino/grocery/internal/repository"
	"github.com/Alturino/grocery/internal/server"
	"github.com/Alturino/grocery/internal/storage"
	"github.com/Alturino/grocery/product/internal/cache"
	"github.com/Alturino/grocery/product/internal/controller"
	"github.com/Alturino/grocery/product/internal/otel"
	"github.com/Alturino/grocery/product/internal/service"
)

func RunProductService(c context.Context) {
	c, span := otel.Tracer.Start(c, "RunProductService")
	defer span.End()

	logger := log.InitLogger(filepath.Join("/var/log/", constants.AppProductService+".log")).
		With().
		Str(log.KeyAppName, constants.AppProductService).
		Str(log.KeyTag, "main RunProductService").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "initializing config").Logger()
	logger.Info().Msg("initializing config")
	c = logger.WithContext(c)
	cfg := config.InitConfig(c, constants.AppProductService)
	logger.Info().Msg("initialized config")

	logger = logger.With().Str(log.KeyProcess, "initializing otel sdk").Logger()
	logger.Info().Msg("initializing otel sdk")
	c = logger.WithContext(c)
	otelShutdowns, err := inOtel.InitOtelSdk(c, constants.AppProductService, cfg.Otel)
	if err != nil {
		err = fmt.Errorf("failed initializing otel sdk with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	defer func() {
		logger.Info().Msg("shutting down otel")
		if err := inOtel.ShutdownOtel(context.WithoutCancel(c), otelShutdowns); err != nil {
			err = fmt.Errorf("failed shutting down otel with error=%w", err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return
		}
		logger.Info().Msg("shutdown otel")
	}()
	logger.Info().Msg("initialized otel sdk")

	logger = logger.With().Str(log.KeyProcess, "initializing database").Logger()
	logger.Info().Msg("initializing database")
	c = logger.WithContext(c)
	db := infra.NewDatabaseClient(c, cfg.Database)
	defer func() {
		logger.Info().Msg("shutting down database connection")
		db.Close()
		logger.Info().Msg("shutdown database connection")
	}()
	logger.Info().Msg("initialized database")

	logger = logger.With().Str(log.KeyProcess, "initializing cache").Logger()
	logger.Info().Msg("initializing cache")
	c = logger.WithContext(c)
	cacheClient := infra.NewCacheClient(c, cfg.Cache)
	defer func() {
		logger.Info().Msg("shutting down cache connection")
		if err := cacheClient.Close(); err != nil {
			err = fmt.Errorf("failed closing cache with error=%w", err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return
		}
		logger.Info().Msg("shutdown cache connection")
	}()
	logger.Info().Msg("initialized cache")

	logger = logger.With().
		Str(log.KeyProcess, "initializing storage").
		Str(log.KeyImagePath, cfg.Storage.Root).
		Logger()
	logger.Info().Msg("initializing storage")
	blob, err := storage.NewOsBlob(cfg.Storage.Root)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	logger.Info().Msg("initialized storage")

	logger = logger.With().Str(log.KeyProcess, "initializing services").Logger()
	logger.Info().Msg("initializing services")
	queries := repository.New(db)
	productCache := cache.NewProductCache(cacheClient, time.Duration(cfg.Cache.TTL)*time.Second)
	productService := service.NewProductService(db, queries, productCache, blob)
	categoryService := service.NewCategoryService(db, queries)
	logger.Info().Msg("initialized services")

	logger = logger.With().Str(log.KeyProcess, "initializing router").Logger()
	logger.Info().Msg("initializing router")
	router := server.NewRouter(constants.AppProductService)
	authed := router.NewRoute().Subrouter()
	authed.Use(middleware.Auth(cfg.Application.SecretKey))
	controller.AttachProductController(router, authed, productService)
	controller.AttachCategoryController(router, authed, categoryService)
	controller.AttachMediaController(router, blob)
	logger.Info().Msg("initialized router")

	c = logger.WithContext(c)
	if err := server.Serve(c, constants.AppProductService, cfg.Application, router); err != nil {
		inOtel.RecordError(err, span)
	}
}
