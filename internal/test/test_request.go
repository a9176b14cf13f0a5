package test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-openapi/runtime"
	"github.com/go-openapi/strfmt"
	"github.com/stretchr/testify/require"

	"github.com/arcadia-dao/timelock-admin/internal/api"
)

type GenericPayload map[string]interface{}

func (g GenericPayload) Reader(t *testing.T) *bytes.Reader {
	t.Helper()

	b, err := json.Marshal(g)
	require.NoError(t, err)

	return bytes.NewReader(b)
}

// HeadersWithAuth returns headers carrying the test admin key.
func HeadersWithAuth(t *testing.T) http.Header {
	t.Helper()

	headers := http.Header{}
	headers.Set("X-API-Key", TestAPIKey)

	return headers
}

// PerformRequest serves one request through the echo instance without a
// network listener.
func PerformRequest(t *testing.T, s *api.Server, method string, path string, body GenericPayload, headers http.Header) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, body.Reader(t))
		req.Header.Set(echoHeaderContentType, "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for key, vals := range headers {
		for _, val := range vals {
			req.Header.Add(key, val)
		}
	}

	res := httptest.NewRecorder()
	s.Echo.ServeHTTP(res, req)

	return res
}

const echoHeaderContentType = "Content-Type"

// ParseResponseAndValidate decodes the recorded JSON body into v and runs its
// swagger validation.
func ParseResponseAndValidate(t *testing.T, res *httptest.ResponseRecorder, v runtime.Validatable) {
	t.Helper()

	require.NoError(t, json.Unmarshal(res.Body.Bytes(), v))
	require.NoError(t, v.Validate(strfmt.Default))
}
