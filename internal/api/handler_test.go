package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/punchamoorthee/payflow/internal/ledger"
	"github.com/punchamoorthee/payflow/internal/replay"
)

func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()
	worker := replay.NewWorker(ledger.New(), zap.NewNop())
	worker.Start()
	t.Cleanup(worker.Stop)

	r := mux.NewRouter()
	r.Use(RequestID)
	NewHandler(worker).Register(r.PathPrefix("/api/v1").Subrouter())
	return r
}

func do(r *mux.Router, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestSubmitTransaction(t *testing.T) {
	r := newTestRouter(t)

	rec := do(r, "POST", "/api/v1/transactions", `{"type":"deposit","client":1,"tx":1,"amount":"1.5"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	// duplicate transaction id
	rec = do(r, "POST", "/api/v1/transactions", `{"type":"deposit","client":1,"tx":1,"amount":"1.5"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(r, "POST", "/api/v1/transactions", `{"type":"withdrawal","client":1,"tx":2,"amount":"0.5"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	// overdraft
	rec = do(r, "POST", "/api/v1/transactions", `{"type":"withdrawal","client":1,"tx":3,"amount":"100"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// disputing an unknown transaction
	rec = do(r, "POST", "/api/v1/transactions", `{"type":"dispute","client":1,"tx":99}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// amount on a dispute is a validation failure
	rec = do(r, "POST", "/api/v1/transactions", `{"type":"dispute","client":1,"tx":1,"amount":"1.5"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// broken JSON
	rec = do(r, "POST", "/api/v1/transactions", `{"type":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClientEndpoints(t *testing.T) {
	r := newTestRouter(t)

	rec := do(r, "POST", "/api/v1/transactions", `{"type":"deposit","client":7,"tx":1,"amount":"2"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(r, "GET", "/api/v1/clients", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []clientResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, ledger.ClientID(7), list[0].Client)
	assert.Equal(t, "2.0000", list[0].Available)
	assert.Equal(t, "2.0000", list[0].Total)
	assert.False(t, list[0].Locked)

	rec = do(r, "GET", "/api/v1/clients/7", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var one clientResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &one))
	assert.Equal(t, "0.0000", one.Held)

	rec = do(r, "GET", "/api/v1/clients/8", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(r, "GET", "/api/v1/clients/not-a-number", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRequestIDMiddleware(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest("GET", "/api/v1/clients", nil)
	req.Header.Set("X-Request-ID", "fixed-id")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "fixed-id", rec.Header().Get("X-Request-ID"))

	rec = do(r, "GET", "/api/v1/clients", "")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
