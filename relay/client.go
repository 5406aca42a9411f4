// Package relay submits leave notifications to the external form-relay
// service. Every submission is sent under two independent access keys at
// once; the first key to come back with success settles the call and the
// other request is cancelled.
package relay

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/tidwall/gjson"
)

// Error is a failed relay outcome: invalid input, both legs failed, or the
// responses reported success=false. The message is surfaced to the user
// verbatim.
type Error struct {
	Message string
}

func (e *Error) Error() string { return e.Message }

// Submission mirrors the relay's multipart form fields.
type Submission struct {
	Name               string
	Phone              string
	Message            string
	StartDate          string // YYYY-MM-DD
	EndDate            string // YYYY-MM-DD
	RegistrationNumber string
	ParentPhone        string
	Section            string
	Year               string
}

// Result reports which access key won the race.
type Result struct {
	Key     string // "primary" | "secondary"
	Message string
}

type Client struct {
	Endpoint     string
	PrimaryKey   string
	SecondaryKey string
	HTTPClient   *http.Client
}

func NewClient(endpoint, primaryKey, secondaryKey string) *Client {
	return &Client{
		Endpoint:     endpoint,
		PrimaryKey:   primaryKey,
		SecondaryKey: secondaryKey,
	}
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

// Send races the submission over both access keys and resolves on the first
// success; a leg that fails (transport error or success=false) just cedes to
// the other. Both legs failing returns an *Error carrying the first failure
// message seen.
func (c *Client) Send(ctx context.Context, sub Submission) (*Result, error) {
	if sub.Phone == "" || sub.Message == "" {
		return nil, &Error{Message: "phone and message are required"}
	}
	if sub.StartDate == "" || sub.EndDate == "" {
		return nil, &Error{Message: "start and end dates are required"}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel() // tears down the losing request

	type settled struct {
		key  string
		body []byte
		err  error
	}
	results := make(chan settled, 2)
	legs := []struct{ key, access string }{
		{"primary", c.PrimaryKey},
		{"secondary", c.SecondaryKey},
	}
	for _, leg := range legs {
		go func(key, access string) {
			body, err := c.post(ctx, access, sub)
			results <- settled{key: key, body: body, err: err}
		}(leg.key, leg.access)
	}

	var firstErr *Error
	for range legs {
		res := <-results
		if res.err != nil {
			if firstErr == nil {
				firstErr = &Error{Message: res.err.Error()}
			}
			continue
		}
		if !gjson.GetBytes(res.body, "success").Bool() {
			if firstErr == nil {
				msg := gjson.GetBytes(res.body, "message").String()
				if msg == "" {
					msg = "relay rejected the submission"
				}
				firstErr = &Error{Message: msg}
			}
			continue
		}
		return &Result{
			Key:     res.key,
			Message: gjson.GetBytes(res.body, "message").String(),
		}, nil
	}
	return nil, firstErr
}

func (c *Client) post(ctx context.Context, accessKey string, sub Submission) ([]byte, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fields := []struct{ name, value string }{
		{"access_key", accessKey},
		{"name", sub.Name},
		{"phone", sub.Phone},
		{"message", sub.Message},
		{"start_date", sub.StartDate},
		{"end_date", sub.EndDate},
		{"registration_number", sub.RegistrationNumber},
		{"parent_phone", sub.ParentPhone},
		{"section", sub.Section},
		{"year", sub.Year},
	}
	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}
