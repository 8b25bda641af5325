package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/x-xyz/collectibles/base/ctx"
	"github.com/x-xyz/collectibles/base/log"
	bValidator "github.com/x-xyz/collectibles/base/validator"
	mmiddleware "github.com/x-xyz/collectibles/middleware"
	"github.com/x-xyz/collectibles/service/cache/provider"
	"github.com/x-xyz/collectibles/service/cache/provider/primitive"
	redisProvider "github.com/x-xyz/collectibles/service/cache/provider/redis"
	hc_delivery "github.com/x-xyz/collectibles/stores/healthcheck/delivery/http"
	hc_repo "github.com/x-xyz/collectibles/stores/healthcheck/repository"
	hc_usecase "github.com/x-xyz/collectibles/stores/healthcheck/usecase"
	listing_delivery "github.com/x-xyz/collectibles/stores/listing/delivery/http"
	listing_usecase "github.com/x-xyz/collectibles/stores/listing/usecase"
)

func init() {
	pflag.String("config", "infra/configs/config.yaml", "path of the yaml config")
	pflag.Parse()
	if err := viper.BindPFlags(pflag.CommandLine); err != nil {
		panic(err)
	}

	viper.SetConfigType("yaml")
	viper.SetConfigFile(viper.GetString("config"))
	if err := viper.ReadInConfig(); err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func main() {
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext(viper.GetDuration("context.timeout")))
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(bValidator.New())

	context := ctx.Background()

	// optional shared backends
	redisCache := mustRedis(context)
	mongo := mustMongo(context)

	cacheLayers := []provider.Provider{primitive.NewPrimitive("collectibles", viper.GetInt("cache.sizeMB"))}
	if redisCache != nil {
		cacheLayers = append(cacheLayers, redisProvider.NewRedis(redisCache))
	}

	content := mustContentStore(context, cacheLayers)
	ledger := mustLedger(context)
	annotation := mustAnnotation(context, redisCache, mongo)
	notifier := mustNotifier(context)

	reconciler := listing_usecase.NewReconciler(&listing_usecase.ReconcilerCfg{
		Ledger:     ledger,
		Content:    content,
		Annotation: annotation,
		Workers:    viper.GetInt("reconciler.workers"),
		Tick:       viper.GetDuration("reconciler.tick"),
	})
	coordinator := listing_usecase.NewCoordinator(&listing_usecase.CoordinatorCfg{
		Ledger:         ledger,
		Content:        content,
		Reconciler:     reconciler,
		Notifier:       notifier,
		UploadAttempts: viper.GetInt("coordinator.uploadAttempts"),
		UploadBackoff:  viper.GetDuration("coordinator.uploadBackoff"),
		WriteTimeout:   viper.GetDuration("ledger.writeTimeout"),
	})

	if err := reconciler.Refresh(context); err != nil {
		context.WithField("err", err).Warn("initial refresh failed")
	}
	reconciler.Start(context)

	hcRepo := hc_repo.New(&hc_repo.RepoCfg{
		Ledger: ledger,
		Redis:  redisCache,
		Mongo:  mongo,
	})
	hc_delivery.New(e, hc_usecase.New(hcRepo))
	listing_delivery.New(e, &listing_delivery.HandlerCfg{
		Coordinator: coordinator,
		Reconciler:  reconciler,
		CacheLayers: cacheLayers,
	})

	go func() {
		if err := e.Start(viper.GetString("http.addr")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")

	reconciler.Stop()

	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
