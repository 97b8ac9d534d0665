package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	Method string
	Path   string
	Body   string
}

type requestRecorder struct {
	mu       sync.Mutex
	requests []capturedRequest
}

func (r *requestRecorder) record(req *http.Request) {
	r.mu.Lock()
	defer r.mu.Unlock()

	body, _ := io.ReadAll(req.Body)
	r.requests = append(r.requests, capturedRequest{
		Method: req.Method,
		Path:   req.URL.Path,
		Body:   string(body),
	})
}

func (r *requestRecorder) last() capturedRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.requests) == 0 {
		return capturedRequest{}
	}
	return r.requests[len(r.requests)-1]
}

func textHandler(rec *requestRecorder, status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec.record(r)
		if r.Method == http.MethodPut {
			w.Header().Set("Link", "/users/101")
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

// run executes the CLI against srv and returns stdout
func run(t *testing.T, srv *httptest.Server, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd := newRootCmd()
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--api", srv.URL}, args...))

	err := rootCmd.Execute()
	return out.String(), err
}

func TestCommandsHitTheRightRoutes(t *testing.T) {
	tests := []struct {
		args   []string
		method string
		path   string
	}{
		{[]string{"load"}, http.MethodGet, "/load"},
		{[]string{"delete", "7"}, http.MethodDelete, "/users/7"},
		{[]string{"clear"}, http.MethodDelete, "/users"},
		{[]string{"create", "--id", "101", "--name", "Ann"}, http.MethodPut, "/users"},
	}

	for _, tc := range tests {
		t.Run(strings.Join(tc.args, " "), func(t *testing.T) {
			rec := &requestRecorder{}
			srv := httptest.NewServer(textHandler(rec, http.StatusOK, "ok"))
			defer srv.Close()

			_, err := run(t, srv, "", tc.args...)
			require.NoError(t, err)
			assert.Equal(t, tc.method, rec.last().Method)
			assert.Equal(t, tc.path, rec.last().Path)
		})
	}
}

func TestGetPrettyPrints(t *testing.T) {
	rec := &requestRecorder{}
	srv := httptest.NewServer(textHandler(rec, http.StatusOK, `{"id":1,"posts":[]}`))
	defer srv.Close()

	out, err := run(t, srv, "", "get", "1")
	require.NoError(t, err)
	assert.Equal(t, "/users/1", rec.last().Path)
	assert.Equal(t, "{\n  \"id\": 1,\n  \"posts\": []\n}\n", out)
}

func TestCreateFromFlags(t *testing.T) {
	rec := &requestRecorder{}
	srv := httptest.NewServer(textHandler(rec, http.StatusCreated, "User 101 created"))
	defer srv.Close()

	out, err := run(t, srv, "", "create", "--id", "101", "--name", "Ann", "--username", "ann1")
	require.NoError(t, err)
	assert.Contains(t, out, "User 101 created")
	assert.Contains(t, out, "location: /users/101")

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(rec.last().Body), &body))
	assert.Equal(t, float64(101), body["id"])
	assert.Equal(t, "ann1", body["username"])
}

func TestCreateFromFileAndStdin(t *testing.T) {
	rec := &requestRecorder{}
	srv := httptest.NewServer(textHandler(rec, http.StatusCreated, "User 5 created"))
	defer srv.Close()

	doc := `{"id":5,"name":"Eve","address":{"city":"Town"}}`
	path := filepath.Join(t.TempDir(), "user.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	_, err := run(t, srv, "", "create", "--file", path)
	require.NoError(t, err)
	assert.JSONEq(t, doc, rec.last().Body)

	_, err = run(t, srv, doc, "create", "-f", "-")
	require.NoError(t, err)
	assert.JSONEq(t, doc, rec.last().Body)
}

func TestCreateNeedsPayload(t *testing.T) {
	rec := &requestRecorder{}
	srv := httptest.NewServer(textHandler(rec, http.StatusCreated, ""))
	defer srv.Close()

	_, err := run(t, srv, "", "create")
	require.Error(t, err)
	assert.Empty(t, rec.requests)
}

func TestErrorPropagation(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusNotFound, http.StatusConflict, http.StatusInternalServerError} {
		rec := &requestRecorder{}
		srv := httptest.NewServer(textHandler(rec, status, "User not found"))

		_, err := run(t, srv, "", "delete", "9")
		srv.Close()

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, status, apiErr.HTTPStatus)
		assert.Contains(t, err.Error(), "User not found")
	}
}

func TestInvalidIDNeverReachesServer(t *testing.T) {
	rec := &requestRecorder{}
	srv := httptest.NewServer(textHandler(rec, http.StatusOK, ""))
	defer srv.Close()

	_, err := run(t, srv, "", "get", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid user id")
	assert.Empty(t, rec.requests)
}

func TestConnectionRefused(t *testing.T) {
	rootCmd := newRootCmd()
	rootCmd.SetOut(io.Discard)
	rootCmd.SetArgs([]string{"--api", "http://127.0.0.1:1", "load"})

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "execute request")
}

func TestAPIFlagDefaultsFromEnv(t *testing.T) {
	t.Setenv("SWIFT_API", "http://swift.internal:3000")

	root := newRootCmd()
	flag := root.PersistentFlags().Lookup("api")
	require.NotNil(t, flag)
	assert.Equal(t, "http://swift.internal:3000", flag.DefValue)
}

func TestArgValidation(t *testing.T) {
	rec := &requestRecorder{}
	srv := httptest.NewServer(textHandler(rec, http.StatusOK, ""))
	defer srv.Close()

	for _, args := range [][]string{{"get"}, {"delete", "1", "2"}, {"load", "extra"}} {
		_, err := run(t, srv, "", args...)
		assert.Error(t, err, strings.Join(args, " "))
	}
	assert.Empty(t, rec.requests)
}
