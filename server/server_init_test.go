package server

import (
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swayops/portal/config"
	"github.com/swayops/portal/internal/apitest"
)

type M map[string]interface{}

var printResp = flag.Bool("pr", os.Getenv("PR") != "", "print responses")

func init() {
	log.SetFlags(log.Lshortfile | log.Ltime)
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	srv *Server
	be  *apitest.Backend
	ts  *httptest.Server
}

func newTestEnv(t *testing.T, tweak ...func(*config.Config)) *testEnv {
	be := apitest.New(t)

	cfg := &config.Config{
		APIBaseURL:     be.URL,
		DBPath:         t.TempDir() + "/",
		DBName:         "portal",
		Sandbox:        true,
		SearchDebounce: 50,
	}
	cfg.Bucket.Referral = "referral"
	cfg.Bucket.Shortlist = "shortlist"
	cfg.Bucket.Credentials = "credentials"
	for _, fn := range tweak {
		fn(cfg)
	}

	r := gin.New()
	srv, err := New(cfg, r)
	require.NoError(t, err)

	ts := httptest.NewServer(r)
	t.Cleanup(func() {
		ts.Close()
		srv.Close()
	})
	return &testEnv{srv: srv, be: be, ts: ts}
}

// client returns a fresh visitor, every client gets its own profile.
func (e *testEnv) client() *resty.Client {
	return resty.New().SetBaseURL(e.ts.URL).SetDebug(*printResp)
}

// login stores the backend's token for the client's profile.
func (e *testEnv) login(t *testing.T, rst *resty.Client) {
	testReq{"PUT", "/api/v1/session", M{"token": e.be.Token()}, 200, M{"status": "success"}}.Run(t, rst)
}

// testReq is one request/expectation pair. Only the keys present in Resp
// are compared.
type testReq struct {
	Method string
	Path   string
	Body   interface{}
	Status int
	Resp   M
}

func (tr testReq) Run(t *testing.T, rst *resty.Client) []byte {
	t.Helper()
	req := rst.R()
	if tr.Body != nil {
		req.SetBody(tr.Body)
	}
	resp, err := req.Execute(tr.Method, tr.Path)
	require.NoError(t, err, "%s %s", tr.Method, tr.Path)
	assert.Equal(t, tr.Status, resp.StatusCode(), "%s %s: %s", tr.Method, tr.Path, resp.Body())

	if tr.Resp != nil {
		var got M
		require.NoError(t, json.Unmarshal(resp.Body(), &got), "%s %s: %s", tr.Method, tr.Path, resp.Body())
		for k, v := range normalize(t, tr.Resp) {
			assert.Equal(t, v, got[k], "%s %s: %q in %s", tr.Method, tr.Path, k, resp.Body())
		}
	}
	return resp.Body()
}

// normalize round trips m through JSON so numbers and structs compare like
// decoded replies do.
func normalize(t *testing.T, m M) M {
	b, err := json.Marshal(m)
	require.NoError(t, err)
	var out M
	require.NoError(t, json.Unmarshal(b, &out))
	return out
}

// noRedirect is a plain client that reports redirects instead of following them.
var noRedirect = &http.Client{
	CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
}
