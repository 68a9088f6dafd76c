package smtp

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	log "github.com/sirupsen/logrus"
)

var Instance Provider

type Provider interface {
	SendEMail(from, to, message, subject string) error
	SendEMailWithAttachment(from, to, message, subject, fileName string, attachment []byte) error
}

func Connect(user, password, host, port string, tlsEnabled bool) error {
	Instance = &impl{
		user:       user,
		password:   password,
		host:       host,
		port:       port,
		tlsEnabled: tlsEnabled,
	}
	return nil
}

type impl struct {
	user       string
	password   string
	host       string
	port       string
	tlsEnabled bool
}

func (i impl) SendEMail(from, to, message, subject string) error {
	logger := log.WithField("sender", from)
	if i.user == "" || i.host == "" || i.port == "" {
		logger.Warn("email not sent, smtp client is not configured")
		return nil
	}
	mimeHeaders := "MIME-version: 1.0;\nContent-Type: text/plain; charset=\"UTF-8\";\r\n"
	body := strings.NewReader(fmt.Sprintf("Subject: SAP Talent - %s\n%s\r\n%s\r\n", subject, mimeHeaders, message))
	return i.send(from, to, body)
}

func (i impl) SendEMailWithAttachment(from, to, message, subject, fileName string, attachment []byte) error {
	logger := log.WithField("sender", from)
	if i.user == "" || i.host == "" || i.port == "" {
		logger.Warn("email not sent, smtp client is not configured")
		return nil
	}
	buf := new(bytes.Buffer)
	writer := multipart.NewWriter(buf)

	headers := fmt.Sprintf("Subject: SAP Talent - %s\nMIME-version: 1.0;\nContent-Type: multipart/mixed; boundary=%q\r\n\r\n", subject, writer.Boundary())

	textPart, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/plain; charset=\"UTF-8\""},
	})
	if err != nil {
		return err
	}
	if _, err = textPart.Write([]byte(message)); err != nil {
		return err
	}

	filePart, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {"application/pdf"},
		"Content-Transfer-Encoding": {"base64"},
		"Content-Disposition":       {fmt.Sprintf("attachment; filename=%q", fileName)},
	})
	if err != nil {
		return err
	}
	encoded := base64.StdEncoding.EncodeToString(attachment)
	if _, err = filePart.Write([]byte(encoded)); err != nil {
		return err
	}
	if err = writer.Close(); err != nil {
		return err
	}

	body := strings.NewReader(headers + buf.String())
	return i.send(from, to, body)
}

func (i impl) send(from, to string, body *strings.Reader) (err error) {
	sendTo := []string{
		to,
	}
	auth := sasl.NewPlainClient("", i.user, i.password)
	if i.tlsEnabled {
		err = smtp.SendMailTLS(i.host+":"+i.port, auth, i.user, sendTo, body)
	} else {
		err = smtp.SendMail(i.host+":"+i.port, auth, i.user, sendTo, body)
	}
	if err != nil {
		log.WithError(err).Error("failed to send email")
		return err
	}
	log.WithFields(log.Fields{"sender": from, "recipient": to}).Info("email sent")
	return nil
}
