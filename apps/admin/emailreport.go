package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"net/mail"
	"time"

	"github.com/pkg/errors"

	"github.com/kymoja/darasa/core"
	"github.com/kymoja/darasa/core/report"
)

// emailReport exports the filtered eligibility report and mails it as a CSV
// attachment. The export runs through the same engine as the dashboard, so the
// mailed numbers always match it.
func (cli *commandLine) emailReport(to string, filter report.ScopeFilter) error {
	records, err := cli.reportSvc.Export(context.Background(), filter)
	if err != nil {
		return errors.Wrap(err, "exporting report")
	}

	var csvBuf bytes.Buffer
	if err = report.WriteCSV(&csvBuf, records); err != nil {
		return errors.Wrap(err, "serializing report")
	}

	// mail attachments are transferred base64-encoded
	content := new(bytes.Buffer)
	enc := base64.NewEncoder(base64.StdEncoding, content)
	if _, err = enc.Write(csvBuf.Bytes()); err != nil {
		return errors.Wrap(err, "encoding attachment")
	}
	if err = enc.Close(); err != nil {
		return errors.Wrap(err, "encoding attachment")
	}

	today := time.Now().Format("2006-01-02")
	msg := &core.EmailMessage{
		To:      []mail.Address{{Address: to}},
		Subject: "Eligibility report " + today,
		BodyStr: fmt.Sprintf("Attached is the eligibility report of %s covering %d persons.", today, len(records)),
		Attachments: []core.Attachment{{
			Content:     content,
			ContentType: "text/csv",
			Filename:    "report-" + today + ".csv",
		}},
	}
	cli.mailSvc.SendMessages(msg)
	return nil
}
