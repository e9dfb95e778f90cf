package http_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-kardex/internal/application/dto"
	pkgjwt "github.com/jhoicas/Inventario-kardex/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testCompanyID = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "kardex-test"
	testTTL       = time.Hour
)

var validSupplier = map[string]any{"name": "Ferretería Central", "identification": "900555111-2", "phone": "+573001234567"}

// Cada caso arma una API nueva: el resultado no depende del orden.
func TestRouter_RoleMatrix(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		method     string
		path       string
		body       any
		wantStatus int
	}{
		// Denegados por rol.
		{"vendedor no registra entradas", pkgjwt.RoleVendedor, http.MethodPost, "/api/inventory/entries", entry(1), http.StatusForbidden},
		{"vendedor no traslada", pkgjwt.RoleVendedor, http.MethodPost, "/api/inventory/transfers",
			map[string]any{"product_id": productID, "from_warehouse_id": warehouse1, "to_warehouse_id": warehouse2, "quantity": 1}, http.StatusForbidden},
		{"vendedor no ajusta", pkgjwt.RoleVendedor, http.MethodPost, "/api/inventory/adjustments",
			map[string]any{"product_id": productID, "warehouse_id": warehouse1, "new_quantity": 2, "reason": "conteo"}, http.StatusForbidden},
		{"vendedor no cambia límites", pkgjwt.RoleVendedor, http.MethodPut, "/api/inventory/limits",
			map[string]any{"product_id": productID, "warehouse_id": warehouse1, "min_stock": 1}, http.StatusForbidden},
		{"vendedor no crea proveedores", pkgjwt.RoleVendedor, http.MethodPost, "/api/suppliers", validSupplier, http.StatusForbidden},
		{"vendedor no consulta auditoría", pkgjwt.RoleVendedor, http.MethodGet, "/api/audit", nil, http.StatusForbidden},
		{"bodeguero no ajusta", pkgjwt.RoleBodeguero, http.MethodPost, "/api/inventory/adjustments",
			map[string]any{"product_id": productID, "warehouse_id": warehouse1, "new_quantity": 2, "reason": "conteo"}, http.StatusForbidden},
		{"bodeguero no crea productos", pkgjwt.RoleBodeguero, http.MethodPost, "/api/products",
			map[string]any{"sku": "SKU-9", "name": "Clavo"}, http.StatusForbidden},
		{"bodeguero no borra bodegas", pkgjwt.RoleBodeguero, http.MethodDelete, "/api/warehouses/" + warehouse2, nil, http.StatusForbidden},
		{"bodeguero no restaura productos", pkgjwt.RoleBodeguero, http.MethodPost, "/api/products/" + productID + "/restore", nil, http.StatusForbidden},
		{"bodeguero no consulta auditoría", pkgjwt.RoleBodeguero, http.MethodGet, "/api/audit", nil, http.StatusForbidden},
		{"bodeguero no edita proveedores", pkgjwt.RoleBodeguero, http.MethodPut, "/api/suppliers/x", validSupplier, http.StatusForbidden},

		// Permitidos: el status es el del handler, no el del RBAC.
		{"bodeguero registra entradas", pkgjwt.RoleBodeguero, http.MethodPost, "/api/inventory/entries", entry(1), http.StatusCreated},
		{"vendedor registra salidas", pkgjwt.RoleVendedor, http.MethodPost, "/api/inventory/exits",
			map[string]any{"product_id": productID, "warehouse_id": warehouse2, "quantity": 1}, http.StatusConflict},
		{"vendedor lista movimientos", pkgjwt.RoleVendedor, http.MethodGet, "/api/movements", nil, http.StatusOK},
		{"vendedor lista inventario", pkgjwt.RoleVendedor, http.MethodGet, "/api/inventory", nil, http.StatusOK},
		{"vendedor lista proveedores", pkgjwt.RoleVendedor, http.MethodGet, "/api/suppliers", nil, http.StatusOK},
		{"vendedor descarga inventario", pkgjwt.RoleVendedor, http.MethodGet, "/api/reports/inventory", nil, http.StatusOK},
		{"admin consulta auditoría", pkgjwt.RoleAdmin, http.MethodGet, "/api/audit", nil, http.StatusOK},
		{"admin crea proveedores", pkgjwt.RoleAdmin, http.MethodPost, "/api/suppliers", validSupplier, http.StatusCreated},
		{"admin borra bodega vacía", pkgjwt.RoleAdmin, http.MethodDelete, "/api/warehouses/" + warehouse2, nil, http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := buildAPI(t)
			resp, data := call(t, app, tt.method, tt.path, tokenFor(t, testCompanyID, tt.role), tt.body)
			require.Equal(t, tt.wantStatus, resp.StatusCode, string(data))
			if tt.wantStatus == http.StatusForbidden {
				assert.Equal(t, "FORBIDDEN", decodeError(t, data).Code)
			}
		})
	}
}

func TestRouter_Authentication(t *testing.T) {
	app := buildAPI(t)

	expired, err := pkgjwt.Generate(testJWTSecret, pkgjwt.Identity{UserID: testUserID, CompanyID: testCompanyID, Role: pkgjwt.RoleAdmin}, testIssuer, -time.Minute)
	require.NoError(t, err)
	foreign, err := pkgjwt.Generate("otro-secreto", pkgjwt.Identity{UserID: testUserID, CompanyID: testCompanyID, Role: pkgjwt.RoleAdmin}, testIssuer, testTTL)
	require.NoError(t, err)
	noRole, err := pkgjwt.Generate(testJWTSecret, pkgjwt.Identity{UserID: testUserID, CompanyID: testCompanyID}, testIssuer, testTTL)
	require.NoError(t, err)

	tests := []struct {
		name     string
		auth     string
		wantCode string
	}{
		{"sin header", "", "MISSING_TOKEN"},
		{"token malformado", "Bearer token.invalido.aqui", "INVALID_TOKEN"},
		{"token expirado", "Bearer " + expired, "INVALID_TOKEN"},
		{"firmado con otro secreto", "Bearer " + foreign, "INVALID_TOKEN"},
		{"esquema Basic", "Basic dXNlcjpwYXNz", "INVALID_TOKEN"},
		{"token sin rol", "Bearer " + noRole, "MISSING_ROLE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, data := call(t, app, http.MethodGet, "/api/movements", tt.auth, nil)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Equal(t, tt.wantCode, decodeError(t, data).Code)
		})
	}

	resp, _ := call(t, app, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "/metrics no requiere token")
}

// Las claims del token llegan a los casos de uso como actor.
func TestRouter_ClaimsBecomeActor(t *testing.T) {
	app := buildAPI(t)
	admin := tokenFor(t, testCompanyID, pkgjwt.RoleAdmin)

	resp, data := call(t, app, http.MethodPost, "/api/suppliers", admin, validSupplier)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))

	resp, data = call(t, app, http.MethodGet, "/api/audit?entity_type=supplier", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	var list dto.AuditListResponse
	require.NoError(t, json.Unmarshal(data, &list))
	require.Len(t, list.Items, 1)
	assert.Equal(t, testUserID, list.Items[0].ActorID)

	// Otra empresa no ve los eventos ni los proveedores.
	other := tokenFor(t, otherTenant, pkgjwt.RoleAdmin)
	resp, data = call(t, app, http.MethodGet, "/api/audit?entity_type=supplier", other, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(data, &list))
	assert.Empty(t, list.Items)
}
