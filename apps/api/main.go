package main

import (
	"context"
	"fmt"
	"log"
	"os"

	echoapi "github.com/campuspay/campuspay/apps/api/echo"
	"github.com/campuspay/campuspay/core"
	"github.com/campuspay/campuspay/core/admin"
	"github.com/campuspay/campuspay/core/registry"
	"github.com/campuspay/campuspay/core/student"
	"github.com/campuspay/campuspay/core/wallet"
	emailsvc "github.com/campuspay/campuspay/services/email"
	sendgridmail "github.com/campuspay/campuspay/services/email/sendgrid"
	logsvc "github.com/campuspay/campuspay/services/logger"
	smssvc "github.com/campuspay/campuspay/services/sms"
	dummydb "github.com/campuspay/campuspay/storage/database/dummy"
	filestore "github.com/campuspay/campuspay/storage/session/file"
	sqlxstore "github.com/campuspay/campuspay/storage/session/sqlx"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()
	core.UniEmailDomain = conf.Demo.EmailDomain

	// set up loggers
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	// set up session stores
	store, closeStore, err := setUpSessionStore(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up session store: %v", err), err)
	}
	defer func() {
		if err = closeStore(); err != nil {
			logger.Error("closing session store", err)
		}
	}()

	// set up DB
	db, err := dummydb.Open()
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	db.Seed()

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = sendgridmail.NewService(conf, logger)
	}
	smsSvc := smssvc.NewConsoleService(conf)

	provider := student.NewDemoProvider(conf, smsSvc, mailSvc)
	studentSession := student.NewSession(provider, store, logger)
	adminSession := admin.NewSession(admin.NewDemoDirectory(conf), store, logger)
	walletSvc := wallet.NewService(conf, dummydb.NewWalletRepository(db), mailSvc)
	registrySvc := registry.NewService(dummydb.NewRegistryRepository(db))

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:           conf,
			Logger:         logger,
			StudentSession: studentSession,
			AdminSession:   adminSession,
			WalletSvc:      walletSvc,
			RegistrySvc:    registrySvc,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func setUpSessionStore(conf *core.Config) (core.SessionStore, func() error, error) {
	noop := func() error { return nil }

	switch conf.Session.Backend {
	case "postgres":
		store, err := sqlxstore.Open(conf.Session.DatabaseURL)
		if err != nil {
			return nil, noop, err
		}
		return store, store.Close, nil
	default:
		store, err := filestore.Open(conf)
		return store, noop, err
	}
}
