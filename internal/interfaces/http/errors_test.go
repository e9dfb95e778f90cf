package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-kardex/internal/application/dto"
	"github.com/jhoicas/Inventario-kardex/internal/domain"
	"github.com/jhoicas/Inventario-kardex/pkg/logger"
)

func respondWith(t *testing.T, r responder, err error) (*http.Response, dto.ErrorResponse) {
	t.Helper()
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error { return r.writeError(c, err) })
	resp, e := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, e)
	defer resp.Body.Close()
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp, body
}

func respond(t *testing.T, err error) (*http.Response, dto.ErrorResponse) {
	t.Helper()
	return respondWith(t, newResponder(nil), err)
}

func TestWriteError_LockContentionSetsRetryAfter(t *testing.T) {
	resp, body := respond(t, fmt.Errorf("tx: %w", domain.ErrLockContention))

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "1", resp.Header.Get("Retry-After"))
	assert.Equal(t, "LOCK_CONTENTION", body.Code)
}

func TestWriteError_LedgerErrorDetails(t *testing.T) {
	resp, body := respond(t, domain.Wrap(domain.ErrNotFound, "warehouse", "w-9"))

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "warehouse", body.Details["resource"])
	assert.Equal(t, "w-9", body.Details["id"])
}

func TestWriteError_UnknownIsInternalAndLogged(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Output: &buf})

	resp, body := respondWith(t, newResponder(log), errors.New("conexión perdida"))

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "INTERNAL", body.Code)
	assert.NotContains(t, body.Message, "conexión")
	assert.Contains(t, buf.String(), "conexión perdida")
	assert.Contains(t, buf.String(), `"component":"http"`)
}

func TestWriteError_MappedErrorsAreNotLogged(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Output: &buf})

	resp, _ := respondWith(t, newResponder(log), domain.ErrInvalidInput)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, buf.String())
}
