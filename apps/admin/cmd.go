package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/kymoja/darasa/core"
	"github.com/kymoja/darasa/core/registry"
	"github.com/kymoja/darasa/core/report"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	db        *sql.DB
	regSvc    *registry.Service
	reportSvc *report.Service
	mailSvc   core.EmailService
	validate  *validator.Validate
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate COMMAND [args] - run database migrations; COMMAND is any goose command")
	fmt.Println("  addperson -name NAME [-kind KIND] [-institution INST -department DEPT -year YYYY -seq N] - register a person")
	fmt.Println("  email-report -to EMAIL [-institution INST] [-department DEPT] [-year YYYY] - email the eligibility report as CSV")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addPersonCmd := flag.NewFlagSet("addperson", flag.ExitOnError)
	apName := addPersonCmd.String("name", "", "The person's full name.")
	apKind := addPersonCmd.String("kind", registry.KindStudent, "One of: student, faculty, staff.")
	apInst := addPersonCmd.String("institution", "", "Institution code, e.g. GEC.")
	apDept := addPersonCmd.String("department", "", "Department code, e.g. CSE.")
	apYear := addPersonCmd.Int("year", 0, "Admission year (students only).")
	apSeq := addPersonCmd.Int("seq", 0, "Roll sequence number within the cohort (students only).")

	emailReportCmd := flag.NewFlagSet("email-report", flag.ExitOnError)
	erTo := emailReportCmd.String("to", "", "Recipient email address.")
	erInst := emailReportCmd.String("institution", "", "Restrict the report to an institution.")
	erDept := emailReportCmd.String("department", "", "Restrict the report to a department.")
	erYear := emailReportCmd.Int("year", 0, "Restrict the report to an admission year.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])

	case "addperson":
		if err := addPersonCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *apName == "" {
			addPersonCmd.Usage()
			return errHelp
		}
		return cli.addPerson(registry.NewPerson{
			Name:          *apName,
			Kind:          *apKind,
			Institution:   *apInst,
			Department:    *apDept,
			AdmissionYear: *apYear,
			Seq:           *apSeq,
		})

	case "email-report":
		if err := emailReportCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *erTo == "" {
			emailReportCmd.Usage()
			return errHelp
		}
		return cli.emailReport(*erTo, report.ScopeFilter{
			Institution:   *erInst,
			Department:    *erDept,
			AdmissionYear: *erYear,
		})

	default:
		cli.printUsage()
		return errHelp
	}
}
