package mailer

import "context"

type Service interface {
	Send(ctx context.Context, e Email) error
}

type Email struct {
	FromName string // optional: "esitemart"
	From     string // required: "no-reply@esitemart.com"

	To []string

	Subject  string
	TextBody string
}
