package debug_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-inject/framework/container"
	"github.com/km-arc/go-inject/framework/debug"
)

// ── fixtures ─────────────────────────────────────────────────────────────────

type IService interface{ Name() string }

type Service struct{}

func (*Service) Name() string { return "service" }

type BackupService struct{}

func (*BackupService) Name() string { return "backup" }

type Logger struct{}

type fakeSource struct {
	beans    []container.Bean
	mappings []container.ContractMapping
}

func (f fakeSource) Beans() []container.Bean               { return f.beans }
func (f fakeSource) Mappings() []container.ContractMapping { return f.mappings }

func source() fakeSource {
	svc := reflect.TypeFor[*Service]()
	backup := reflect.TypeFor[*BackupService]()
	logger := reflect.TypeFor[*Logger]()
	contract := reflect.TypeFor[IService]()
	return fakeSource{
		beans: []container.Bean{
			{Type: logger, Instance: &Logger{}},
			{Type: svc, Instance: &Service{}},
		},
		mappings: []container.ContractMapping{
			{Implementation: logger, Contract: logger},
			{Implementation: svc, Contract: contract},
			{Implementation: backup, Contract: contract},
		},
	}
}

func get(t *testing.T, h http.Handler, path string, into any) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	if into != nil {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), into))
	}
	return rr
}

// ── routes ───────────────────────────────────────────────────────────────────

func TestHandler_Beans(t *testing.T) {
	var body struct {
		Data []debug.BeanView `json:"data"`
	}
	rr := get(t, debug.NewHandler(source(), nil), "/beans", &body)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []debug.BeanView{
		{Type: "*debug_test.Logger", Name: "Logger"},
		{Type: "*debug_test.Service", Name: "Service"},
	}, body.Data)
}

func TestHandler_Contracts(t *testing.T) {
	var body struct {
		Data []debug.ContractView `json:"data"`
	}
	rr := get(t, debug.NewHandler(source(), nil), "/contracts", &body)

	assert.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, body.Data, 2)
	assert.Equal(t, "*debug_test.Logger", body.Data[0].Contract)
	assert.Equal(t, []string{"*debug_test.Logger"}, body.Data[0].Implementations)
	assert.Equal(t, "debug_test.IService", body.Data[1].Contract)
	assert.Equal(t, "IService", body.Data[1].Name)
	assert.Equal(t, []string{"*debug_test.Service", "*debug_test.BackupService"}, body.Data[1].Implementations)
}

func TestHandler_ContractBySimpleName(t *testing.T) {
	var body struct {
		Data debug.ContractView `json:"data"`
	}
	rr := get(t, debug.NewHandler(source(), nil), "/contracts/iservice", &body)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "debug_test.IService", body.Data.Contract)
	assert.Len(t, body.Data.Implementations, 2)
}

func TestHandler_ContractByFullName(t *testing.T) {
	var body struct {
		Data debug.ContractView `json:"data"`
	}
	rr := get(t, debug.NewHandler(source(), nil), "/contracts/debug_test.IService", &body)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "IService", body.Data.Name)
}

func TestHandler_UnknownContract(t *testing.T) {
	var body map[string]any
	rr := get(t, debug.NewHandler(source(), nil), "/contracts/Nope", &body)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "no contract named Nope", body["message"])
}

func TestHandler_UnknownRoute(t *testing.T) {
	rr := get(t, debug.NewHandler(source(), nil), "/nothing", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandler_EmptySource(t *testing.T) {
	var body struct {
		Data []debug.BeanView `json:"data"`
	}
	rr := get(t, debug.NewHandler(fakeSource{}, nil), "/beans", &body)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, body.Data)
}

// ── headers & failures ───────────────────────────────────────────────────────

func TestHandler_NoStore(t *testing.T) {
	h := debug.NewHandler(source(), nil)
	for _, path := range []string{"/beans", "/contracts", "/contracts/IService"} {
		rr := get(t, h, path, nil)
		assert.Equal(t, http.StatusOK, rr.Code, path)
		assert.Equal(t, "no-store", rr.Header().Get("Cache-Control"), path)
	}
}

type panickingSource struct{ fakeSource }

func (panickingSource) Beans() []container.Bean { panic("context gone") }

func TestHandler_SourcePanics(t *testing.T) {
	var body map[string]any
	rr := get(t, debug.NewHandler(panickingSource{}, nil), "/beans", &body)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Server Error.", body["message"])
}
