package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/tokenmart/goapi/base/ctx"
	"github.com/tokenmart/goapi/base/keyval"
	"github.com/tokenmart/goapi/base/log"
	bValidator "github.com/tokenmart/goapi/base/validator"
	"github.com/tokenmart/goapi/domain"
	mmiddleware "github.com/tokenmart/goapi/middleware"
	"github.com/tokenmart/goapi/service/bank"
	"github.com/tokenmart/goapi/service/registry"
	delegation_delivery "github.com/tokenmart/goapi/stores/delegation/delivery/http"
	delegation_repository "github.com/tokenmart/goapi/stores/delegation/repository"
	delegation_usecase "github.com/tokenmart/goapi/stores/delegation/usecase"
	listing_delivery "github.com/tokenmart/goapi/stores/listing/delivery/http"
	listing_repository "github.com/tokenmart/goapi/stores/listing/repository"
	listing_usecase "github.com/tokenmart/goapi/stores/listing/usecase"
	settlement_usecase "github.com/tokenmart/goapi/stores/settlement/usecase"
)

func init() {
	configFile := pflag.String("config", "infra/configs/config.yaml", "path to config file")
	pflag.Parse()

	viper.SetConfigType("yaml")
	viper.SetConfigFile(*configFile)
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func main() {
	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := ctx.Background()

	// init keyval store
	var store keyval.Store
	var err error
	backend := viper.GetString("store.backend")
	context.WithField("backend", backend).Info("init store")
	switch backend {
	case "memory":
		store = keyval.NewMemory()
	case "sqlite":
		store, err = keyval.NewSqlite(viper.GetString("store.sqlite.path"))
		if err != nil {
			panic(err)
		}
	case "mongo":
		store, err = keyval.NewMongo(context, viper.GetString("store.mongo.uri"), viper.GetString("store.mongo.dbName"))
		if err != nil {
			panic(err)
		}
	default:
		panic("unknown store backend: " + backend)
	}

	httpTimeout := viper.GetDuration("http.timeout")

	registryClient := registry.NewClient(&registry.ClientCfg{
		HttpClient: http.Client{},
		Timeout:    httpTimeout,
		Endpoint:   viper.GetString("registry.endpoint"),
	})
	bankClient := bank.NewClient(&bank.ClientCfg{
		HttpClient: http.Client{},
		Timeout:    httpTimeout,
		Endpoint:   viper.GetString("bank.endpoint"),
	})

	// construct repository, usecase and delivery
	listingRepo := listing_repository.NewListingRepo(store)
	delegationRepo := delegation_repository.NewDelegationRepo(store)
	authorizer := listing_usecase.NewAuthorizer(delegationRepo)

	listingUseCase := listing_usecase.New(&listing_usecase.ListingUseCaseCfg{
		ListingRepo: listingRepo,
		Authorizer:  authorizer,
		Registry:    registryClient,
		Denom:       viper.GetString("marketplace.denom"),
		MinDuration: domain.BlockHeight(viper.GetUint64("marketplace.minListingDuration")),
		MaxDuration: domain.BlockHeight(viper.GetUint64("marketplace.maxListingDuration")),
		Operator:    domain.Address(viper.GetString("marketplace.operator")),
	})
	delegationUseCase := delegation_usecase.New(&delegation_usecase.DelegationUseCaseCfg{
		DelegationRepo: delegationRepo,
		Registry:       registryClient,
	})
	settlementUseCase := settlement_usecase.New(&settlement_usecase.SettlementUseCaseCfg{
		ListingRepo: listingRepo,
		Registry:    registryClient,
		Bank:        bankClient,
	})

	listing_delivery.New(e, listingUseCase, settlementUseCase)
	delegation_delivery.New(e, delegationUseCase)

	e.GET("/healthcheck", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{"status": "ok"})
	})

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	sctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(sctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
