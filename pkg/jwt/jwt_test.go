package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/Inventario-kardex/pkg/jwt"
)

const secret = "test-secret"

func TestGenerateAndParse(t *testing.T) {
	id := pkgjwt.Identity{UserID: "u1", CompanyID: "c1", Role: pkgjwt.RoleBodeguero}
	tok, err := pkgjwt.Generate(secret, id, "kardex-test", time.Hour)
	require.NoError(t, err)

	got, err := pkgjwt.Parse(secret, tok)

	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestParse_Rejections(t *testing.T) {
	valid, err := pkgjwt.Generate(secret, pkgjwt.Identity{UserID: "u1", CompanyID: "c1"}, "x", time.Hour)
	require.NoError(t, err)
	expired, err := pkgjwt.Generate(secret, pkgjwt.Identity{UserID: "u1", CompanyID: "c1"}, "x", -time.Minute)
	require.NoError(t, err)
	noCompany, err := pkgjwt.Generate(secret, pkgjwt.Identity{UserID: "u1"}, "x", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		secret string
		token  string
	}{
		{"expirado", secret, expired},
		{"secret incorrecto", "otro-secret", valid},
		{"sin company_id", secret, noCompany},
		{"malformado", secret, "token.invalido.aqui"},
		{"secret vacío", "", valid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := pkgjwt.Parse(tt.secret, tt.token)
			assert.Error(t, err)
		})
	}
}
