package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/blogicum/pkg/mailer/templates"
)

type sent struct{ to, subject, text, html string }

type fakeSender struct {
	got []sent
	err error
}

func (f *fakeSender) Send(_ context.Context, to, subject, text, html string) error {
	f.got = append(f.got, sent{to, subject, text, html})
	return f.err
}

func encode(t *testing.T, job EmailJob) []byte {
	t.Helper()
	b, err := json.Marshal(job)
	require.NoError(t, err)
	return b
}

func TestDeliverRendersTemplate(t *testing.T) {
	s := &fakeSender{}
	job := EmailJob{
		To:       "alice@example.com",
		Template: templates.CommentNotification,
		Data: templates.ToMap(templates.CommentData{
			RecipientName: "alice",
			CommenterName: "bob",
			PostTitle:     "Kazan",
			PostURL:       "http://localhost:8080/posts/1/",
			Comment:       "nice",
			CreatedAt:     time.Date(2024, 2, 1, 10, 30, 0, 0, time.UTC),
		}),
	}

	require.NoError(t, Deliver(context.Background(), s, encode(t, job)))
	require.Len(t, s.got, 1)
	assert.Equal(t, "alice@example.com", s.got[0].to)
	assert.Equal(t, `New comment on "Kazan"`, s.got[0].subject)
	assert.Contains(t, s.got[0].html, "http://localhost:8080/posts/1/")
}

func TestDeliverRawBody(t *testing.T) {
	s := &fakeSender{}
	require.NoError(t, Deliver(context.Background(), s, encode(t, EmailJob{To: "x@example.com", Subject: "hi", Text: "plain"})))
	assert.Equal(t, sent{to: "x@example.com", subject: "hi", text: "plain"}, s.got[0])
}

func TestDeliverBadJobs(t *testing.T) {
	s := &fakeSender{}
	cases := map[string][]byte{
		"invalid json":     []byte("{"),
		"no recipient":     encode(t, EmailJob{Subject: "x"}),
		"unknown template": encode(t, EmailJob{To: "x@example.com", Template: "missing"}),
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, Deliver(context.Background(), s, body), ErrBadJob)
		})
	}
	assert.Empty(t, s.got)
}

func TestDeliverSendFailureIsRetryable(t *testing.T) {
	s := &fakeSender{err: errors.New("mailgun down")}
	err := Deliver(context.Background(), s, encode(t, EmailJob{To: "x@example.com", Text: "t"}))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrBadJob))
}
