package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/emersion/go-message/mail"
)

// EmailOptions describes the draft envelope. Addresses may be left empty;
// the draft is written to disk for the operator to finish in their client,
// never sent directly.
type EmailOptions struct {
	From    string
	To      []string
	Subject string
}

// WriteEmailDraft renders the document as an RFC 5322 message with a short
// plain-text body and the full JSON report attached, and writes it to path
// as an .eml file.
func WriteEmailDraft(doc Document, opts EmailOptions, path string) error {
	var buf bytes.Buffer

	var h mail.Header
	h.SetDate(time.Now())
	if opts.Subject == "" {
		opts.Subject = fmt.Sprintf("CSM Report %s", doc.Metadata.ReportDate)
	}
	h.SetSubject(opts.Subject)
	if opts.From != "" {
		from, err := mail.ParseAddressList(opts.From)
		if err != nil {
			return fmt.Errorf("parsing from address: %w", err)
		}
		h.SetAddressList("From", from)
	}
	if len(opts.To) > 0 {
		var to []*mail.Address
		for _, a := range opts.To {
			parsed, err := mail.ParseAddressList(a)
			if err != nil {
				return fmt.Errorf("parsing to address %q: %w", a, err)
			}
			to = append(to, parsed...)
		}
		h.SetAddressList("To", to)
	}

	mw, err := mail.CreateWriter(&buf, h)
	if err != nil {
		return fmt.Errorf("creating message writer: %w", err)
	}

	iw, err := mw.CreateInline()
	if err != nil {
		return fmt.Errorf("creating body part: %w", err)
	}
	var th mail.InlineHeader
	th.SetContentType("text/plain", map[string]string{"charset": "utf-8"})
	bw, err := iw.CreatePart(th)
	if err != nil {
		return fmt.Errorf("creating body part: %w", err)
	}
	if _, err := io.WriteString(bw, bodyText(doc)); err != nil {
		return fmt.Errorf("writing body: %w", err)
	}
	bw.Close()
	iw.Close()

	var ah mail.AttachmentHeader
	ah.SetContentType("application/json", nil)
	ah.SetFilename("csm_report.json")
	aw, err := mw.CreateAttachment(ah)
	if err != nil {
		return fmt.Errorf("creating attachment: %w", err)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding attachment: %w", err)
	}
	if _, err := aw.Write(data); err != nil {
		return fmt.Errorf("writing attachment: %w", err)
	}
	aw.Close()
	mw.Close()

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing draft to %s: %w", path, err)
	}
	return nil
}

func bodyText(doc Document) string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "CSM report for %s (%s)\r\n\r\n", doc.Metadata.ReportDate, doc.Metadata.NewPeriod)
	fmt.Fprintf(&b, "Tickets reviewed: %d\r\n", doc.Metadata.TotalTasks)
	fmt.Fprintf(&b, "Completed: %d\r\n", doc.Metadata.CompletedTasks)
	fmt.Fprintf(&b, "Rows removed during review: %d\r\n", doc.Metadata.DeletedRows)
	fmt.Fprintf(&b, "DaaS queue records: %d\r\n\r\n", doc.Daas.TotalByResource())
	fmt.Fprintf(&b, "Full figures are attached as JSON.\r\n")
	return b.String()
}
