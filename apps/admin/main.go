package main

import (
	"log"
	"os"

	"github.com/campuspay/campuspay/core"
	"github.com/campuspay/campuspay/core/admin"
	"github.com/campuspay/campuspay/core/student"
	emailsvc "github.com/campuspay/campuspay/services/email"
	smssvc "github.com/campuspay/campuspay/services/sms"
	filestore "github.com/campuspay/campuspay/storage/session/file"
	sqlxstore "github.com/campuspay/campuspay/storage/session/sqlx"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()
	core.UniEmailDomain = conf.Demo.EmailDomain

	// set up session store
	store, closeStore, err := setUpSessionStore(conf)
	errAndDie(err)
	defer func() { errAndDie(closeStore()) }()

	// set up services
	mailSvc := emailsvc.NewConsoleService(conf)
	smsSvc := smssvc.NewConsoleService(conf)
	provider := student.NewDemoProvider(conf, smsSvc, mailSvc)

	// start CLI
	cli := commandLine{
		studentSession: student.NewSession(provider, store, nil),
		adminSession:   admin.NewSession(admin.NewDemoDirectory(conf), store, nil),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
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

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
