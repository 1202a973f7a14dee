package email

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	ContentTypePlain = "text/plain"
	ContentTypeHTML  = "text/html"
)

// subjectMaxLen bounds auto-generated subjects to the first 20 characters
// of the body.
const subjectMaxLen = 20

// ComposeInput describes one outgoing message. Bcc recipients go on the
// SMTP envelope only; BuildMessage never writes a Bcc header.
type ComposeInput struct {
	From        string
	To          []string
	Cc          []string
	Bcc         []string
	Subject     string
	Body        string
	ContentType string
	Attachments []string
}

// Recipients returns the full envelope recipient list, Bcc included.
func (in ComposeInput) Recipients() []string {
	out := make([]string, 0, len(in.To)+len(in.Cc)+len(in.Bcc))
	out = append(out, in.To...)
	out = append(out, in.Cc...)
	return append(out, in.Bcc...)
}

// SubjectFromBody derives a subject line from the body, truncating long
// bodies with an ellipsis.
func SubjectFromBody(body string) string {
	runes := []rune(body)
	if len(runes) <= subjectMaxLen {
		return body
	}
	return string(runes[:subjectMaxLen]) + "..."
}

func BuildMessage(in ComposeInput) ([]byte, error) {
	if in.From == "" {
		return nil, fmt.Errorf("from address is required")
	}
	if in.Body == "" {
		return nil, fmt.Errorf("message body is required")
	}

	contentType := in.ContentType
	switch contentType {
	case "":
		contentType = ContentTypePlain
	case ContentTypePlain, ContentTypeHTML:
	default:
		return nil, fmt.Errorf("unsupported content type %q", contentType)
	}

	subject := in.Subject
	if subject == "" {
		subject = SubjectFromBody(in.Body)
	}

	var buf bytes.Buffer

	writeHeader(&buf, "From", in.From)
	if len(in.To) > 0 {
		writeHeader(&buf, "To", strings.Join(in.To, ", "))
	}
	if len(in.Cc) > 0 {
		writeHeader(&buf, "Cc", strings.Join(in.Cc, ", "))
	}
	writeHeader(&buf, "Subject", subject)
	writeHeader(&buf, "Date", time.Now().Format(time.RFC1123Z))
	writeHeader(&buf, "MIME-Version", "1.0")

	if len(in.Attachments) == 0 {
		writeHeader(&buf, "Content-Type", fmt.Sprintf("%s; charset=\"utf-8\"", contentType))
		writeHeader(&buf, "Content-Transfer-Encoding", "quoted-printable")
		buf.WriteString("\r\n")
		qp := quotedprintable.NewWriter(&buf)
		if _, err := qp.Write([]byte(in.Body)); err != nil {
			return nil, err
		}
		if err := qp.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	writer := multipart.NewWriter(&buf)
	boundary := writer.Boundary()
	writeHeader(&buf, "Content-Type", fmt.Sprintf("multipart/mixed; boundary=%q", boundary))
	buf.WriteString("\r\n")

	textHeader := textproto.MIMEHeader{}
	textHeader.Set("Content-Type", fmt.Sprintf("%s; charset=\"utf-8\"", contentType))
	textHeader.Set("Content-Transfer-Encoding", "quoted-printable")
	textPart, err := writer.CreatePart(textHeader)
	if err != nil {
		return nil, err
	}
	qp := quotedprintable.NewWriter(textPart)
	if _, err := qp.Write([]byte(in.Body)); err != nil {
		return nil, err
	}
	if err := qp.Close(); err != nil {
		return nil, err
	}

	for _, attachmentPath := range in.Attachments {
		if attachmentPath == "" {
			continue
		}
		data, err := os.ReadFile(attachmentPath)
		if err != nil {
			return nil, err
		}
		filename := filepath.Base(attachmentPath)
		contentType := mime.TypeByExtension(filepath.Ext(filename))
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		partHeader := textproto.MIMEHeader{}
		partHeader.Set("Content-Type", fmt.Sprintf("%s; name=\"%s\"", contentType, filename))
		partHeader.Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
		partHeader.Set("Content-Transfer-Encoding", "base64")

		part, err := writer.CreatePart(partHeader)
		if err != nil {
			return nil, err
		}
		if err := writeBase64(part, data); err != nil {
			return nil, err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func writeHeader(buf *bytes.Buffer, key, value string) {
	if value == "" {
		return
	}
	buf.WriteString(key)
	buf.WriteString(": ")
	buf.WriteString(value)
	buf.WriteString("\r\n")
}

func writeBase64(w io.Writer, data []byte) error {
	encoded := base64.StdEncoding.EncodeToString(data)
	for len(encoded) > 76 {
		if _, err := w.Write([]byte(encoded[:76] + "\r\n")); err != nil {
			return err
		}
		encoded = encoded[76:]
	}
	if len(encoded) > 0 {
		if _, err := w.Write([]byte(encoded + "\r\n")); err != nil {
			return err
		}
	}
	return nil
}
