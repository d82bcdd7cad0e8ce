package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

type Client struct {
	rc    *resty.Client
	creds Credentials
	now   func() time.Time
}

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.rc.SetTimeout(d)
		}
	}
}

func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.rc.SetTransport(rt)
	}
}

func New(baseURL string, opts ...Option) *Client {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")

	c := &Client{rc: rc, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithCredentials returns a copy of c that authenticates brand calls with
// creds. The underlying connection pool is shared.
func (c *Client) WithCredentials(creds Credentials) *Client {
	cp := *c
	cp.creds = creds
	return &cp
}

type call struct {
	method string
	path   string
	params map[string]string
	query  map[string]string
	body   interface{}
	public bool
}

// do runs a single request and decodes the envelope's data into out.
// There are no retries, callers surface the error and let the user try again.
func (c *Client) do(ctx context.Context, cl call, out interface{}) (*Response, error) {
	req := c.rc.R().SetContext(ctx)
	if cl.params != nil {
		req.SetPathParams(cl.params)
	}
	if cl.query != nil {
		req.SetQueryParams(cl.query)
	}
	if cl.body != nil {
		req.SetBody(cl.body)
	}

	if !cl.public {
		if err := c.authorize(req); err != nil {
			return nil, err
		}
	}

	resp, err := req.Execute(cl.method, cl.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}

	var env Response
	if len(resp.Body()) > 0 {
		if err := json.Unmarshal(resp.Body(), &env); err != nil && !resp.IsError() {
			return nil, fmt.Errorf("%s %s: %w", cl.method, cl.path, err)
		}
	}

	if resp.StatusCode() == http.StatusUnauthorized {
		if !cl.public {
			c.clearCredentials()
		}
		return &env, ErrUnauthorized
	}

	if resp.IsError() || !env.Success {
		return &env, &APIError{Status: resp.StatusCode(), Message: env.Message}
	}

	if out != nil {
		if len(env.Data) == 0 || string(env.Data) == "null" {
			return &env, ErrEmptyReply
		}
		if err := json.Unmarshal(env.Data, out); err != nil {
			return &env, fmt.Errorf("%s %s: %w", cl.method, cl.path, err)
		}
	}

	return &env, nil
}

func (c *Client) authorize(req *resty.Request) error {
	if c.creds == nil {
		return nil
	}
	tok, err := c.creds.Token()
	if err != nil {
		return err
	}
	if tok == "" {
		return nil
	}
	if tokenExpired(tok, c.now()) {
		c.clearCredentials()
		return ErrUnauthorized
	}
	req.SetAuthToken(tok)
	return nil
}

func (c *Client) clearCredentials() {
	if c.creds == nil {
		return
	}
	if err := c.creds.Clear(); err != nil {
		log.Println("Failed to clear credentials", err)
	}
}
