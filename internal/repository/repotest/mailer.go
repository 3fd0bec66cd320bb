package repotest

import (
	"context"
	"regexp"
	"sync"
)

var codePattern = regexp.MustCompile(`\b\d{6}\b`)

type SentMail struct {
	To      string
	Subject string
	Body    string
}

// Mailer records outgoing mail instead of sending it.
type Mailer struct {
	mu   sync.Mutex
	Err  error
	Sent []SentMail
}

func (m *Mailer) Send(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Sent = append(m.Sent, SentMail{To: to, Subject: subject, Body: body})
	return nil
}

// LastCode returns the six-digit code from the latest mail sent to addr.
func (m *Mailer) LastCode(addr string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.Sent) - 1; i >= 0; i-- {
		if m.Sent[i].To == addr {
			return codePattern.FindString(m.Sent[i].Body)
		}
	}
	return ""
}

// Publisher records published events.
type Publisher struct {
	mu       sync.Mutex
	Subjects []string
	Payloads []any
}

func (p *Publisher) Publish(_ context.Context, subject string, data any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Subjects = append(p.Subjects, subject)
	p.Payloads = append(p.Payloads, data)
	return nil
}

// Last returns the payload of the latest event published on subject.
func (p *Publisher) Last(subject string) (any, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := len(p.Subjects) - 1; i >= 0; i-- {
		if p.Subjects[i] == subject {
			return p.Payloads[i], true
		}
	}
	return nil, false
}

func (p *Publisher) Published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.Subjects...)
}
