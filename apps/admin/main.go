package main

import (
	"log"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/kymoja/darasa/core"
	"github.com/kymoja/darasa/core/academics"
	"github.com/kymoja/darasa/core/attendance"
	"github.com/kymoja/darasa/core/fees"
	"github.com/kymoja/darasa/core/registry"
	"github.com/kymoja/darasa/core/report"
	emailsvc "github.com/kymoja/darasa/services/email"
	logsvc "github.com/kymoja/darasa/services/logger"
	"github.com/kymoja/darasa/storage/database"
	sqlxrepos "github.com/kymoja/darasa/storage/database/sqlx"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf, err := core.NewConfig()
	errAndDie(err)

	// set up DB
	errAndDie(database.CreateIfNotExist(conf))
	db, err := database.Open(conf)
	errAndDie(err)
	defer db.Close()
	errAndDie(db.Ping())

	validate := validator.New()
	core.InitValidators(validate, newTranslator())

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(logsvc.NewRollbarLogger(logger, conf))
	}
	regSvc := registry.NewService(sqlxrepos.NewPersonRepository(db))
	reportSvc := report.NewService(
		regSvc,
		attendance.NewService(sqlxrepos.NewPunchRepository(db)),
		fees.NewService(sqlxrepos.NewFeeRepository(db)),
		academics.NewService(sqlxrepos.NewMarkRepository(db), conf.PassMarks),
		conf,
	)

	// start CLI
	cli := commandLine{
		db:        db.DB,
		regSvc:    regSvc,
		reportSvc: reportSvc,
		mailSvc:   mailSvc,
		validate:  validate,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
