package services

import "log"

// LogSender prints outgoing mail to the log instead of delivering it.
// This is the development path: password-reset links end up in the server
// console.
type LogSender struct{}

func (s *LogSender) Send(to string, subject string, body string) error {
	log.Printf("email to %s: %s\n%s", to, subject, body)
	return nil
}
