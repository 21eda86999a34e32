package main

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"strconv"
	"testing"

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
	dummydb "github.com/kymoja/darasa/storage/database/dummy"
)

func setup(t *testing.T) *commandLine {
	core.Conf = &core.Config{
		TestMode:    true,
		AppName:     "Darasa",
		PassMarks:   core.PassThresholds{InternalMin: 14, ExternalMin: 21, TotalMin: 40},
		Bands:       core.AttendanceBands{Eligible: 75, Condonation: 65, Medical: 60},
		CourseYears: 4,
	}

	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}

	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)

	regSvc := registry.NewService(dummydb.NewPersonRepository(db))
	reportSvc := report.NewService(
		regSvc,
		attendance.NewService(dummydb.NewPunchRepository(db)),
		fees.NewService(dummydb.NewFeeRepository(db)),
		academics.NewService(dummydb.NewMarkRepository(db), core.Conf.PassMarks),
		core.Conf,
	)

	return &commandLine{
		regSvc:    regSvc,
		reportSvc: reportSvc,
		mailSvc:   emailsvc.NewConsoleServiceMock(),
		validate:  validate,
	}
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
}

func Test_commandLine_migrate(t *testing.T) {
	cli := setup(t)

	gooseRunFunc = func(command string, db *sql.DB, fsys fs.FS, dir string, args ...string) error {
		switch command {
		case "up", "up-by-one", "down", "redo", "reset", "status", "version": // pass
		case "up-to", "down-to":
			if len(args) == 0 {
				return fmt.Errorf("%s must be of form: goose [OPTIONS] DRIVER DBSTRING %s VERSION", command, command)
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	tests := []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION"},
		{name: "up-to: non-int arg", args: []string{"migrate", "up-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "up-by-one", args: []string{"migrate", "up-by-one"}},
		{name: "up-to", args: []string{"migrate", "up-to", "2"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "down-to", args: []string{"migrate", "down-to", "1"}},
		{name: "redo", args: []string{"migrate", "redo"}},
		{name: "reset", args: []string{"migrate", "reset"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "version", args: []string{"migrate", "version"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != nil {
				if tt.wantErr != nil {
					if err != tt.wantErr {
						t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
					}
				} else if tt.wantErrStr != "" {
					if err.Error() != tt.wantErrStr {
						t.Errorf("cli.run() error.Error() = %s, wantErrStr %s", err.Error(), tt.wantErrStr)
					}
				} else {
					t.Errorf("cli.run() unexpected error = %v", err)
				}
			}
		})
	}
}

func Test_commandLine_addPerson(t *testing.T) {
	cli := setup(t)

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no args", args: []string{"addperson"}, wantErr: errHelp},
		{
			name:    "student without cohort attrs",
			args:    []string{"addperson", "-name", "Asha Mwangi", "-institution", "GEC", "-department", "CSE"},
			wantErr: nil, wantErrStr: "any", // validation must reject
		},
		{
			name: "student",
			args: []string{"addperson", "-name", "Asha Mwangi", "-institution", "GEC", "-department", "CSE", "-year", "2021", "-seq", "7"},
		},
		{
			name: "staff",
			args: []string{"addperson", "-name", "Grace Wanjiru", "-kind", "staff", "-institution", "GEC", "-department", "ADMIN"},
		},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			switch {
			case tt.wantErr != nil:
				if err != tt.wantErr {
					t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
				}
			case tt.wantErrStr != "":
				if err == nil {
					t.Error("cli.run() expected an error")
				}
			default:
				if err != nil {
					t.Errorf("cli.run() unexpected error = %v", err)
				}
			}
		})
	}

	// the structured student ID must be derivable from the cohort attrs
	if _, err := cli.regSvc.GetByID(context.Background(), "GEC-CSE-2021-007"); err != nil {
		t.Errorf("GetByID() after addperson failed: %v", err)
	}
}

func Test_commandLine_emailReport(t *testing.T) {
	cli := setup(t)

	if err := cli.run([]string{"admin", "addperson", "-name", "Asha Mwangi", "-institution", "GEC", "-department", "CSE", "-year", "2021", "-seq", "1"}); err != nil {
		t.Fatalf("cli.run(addperson) failed: %v", err)
	}

	if err := cli.run([]string{"admin", "email-report"}); err != errHelp {
		t.Errorf("cli.run() without -to: error = %v, wantErr %v", err, errHelp)
	}

	sent := len(emailsvc.SentMessages)
	if err := cli.run([]string{"admin", "email-report", "-to", "registrar@test.cd", "-department", "CSE"}); err != nil {
		t.Fatalf("cli.run(email-report) failed: %v", err)
	}

	if len(emailsvc.SentMessages) != sent+1 {
		t.Fatalf("len(SentMessages) = %d, want %d", len(emailsvc.SentMessages), sent+1)
	}
	msg := emailsvc.SentMessages[len(emailsvc.SentMessages)-1]
	if len(msg.Attachments) != 1 {
		t.Fatalf("len(msg.Attachments) = %d, want 1", len(msg.Attachments))
	}
	if msg.Attachments[0].ContentType != "text/csv" {
		t.Errorf("attachment ContentType = %s, want text/csv", msg.Attachments[0].ContentType)
	}
}
