package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/pkg/session"
)

const testSecret = "test-secret-key-for-unit-tests"

// Round-trip: generar y parsear devuelve la misma identidad.
func TestGenerateAndParse_RoundTrip(t *testing.T) {
	s := session.Session{StoreID: "st-1", UserID: "us-1", AccountID: "ac-1"}

	tok, err := session.Generate(testSecret, s, "pos-test", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	got, err := session.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, s, got)
	assert.True(t, got.IsLoggedIn())
}

// No se emiten sesiones parciales: faltando cualquiera de los tres ids,
// Generate falla.
func TestGenerate_IdentidadIncompleta(t *testing.T) {
	cases := []session.Session{
		{UserID: "us-1", AccountID: "ac-1"},
		{StoreID: "st-1", AccountID: "ac-1"},
		{StoreID: "st-1", UserID: "us-1"},
	}
	for _, s := range cases {
		_, err := session.Generate(testSecret, s, "pos-test", time.Hour)
		assert.Error(t, err)
	}
}

// Manipular el token invalida la firma completa.
func TestParse_TokenManipulado(t *testing.T) {
	s := session.Session{StoreID: "st-1", UserID: "us-1", AccountID: "ac-1"}
	tok, err := session.Generate(testSecret, s, "pos-test", time.Hour)
	require.NoError(t, err)

	_, err = session.Parse(testSecret, tok+"x")
	assert.Error(t, err)

	_, err = session.Parse("otro-secret", tok)
	assert.Error(t, err)
}

// Un token expirado no resuelve sesión.
func TestParse_TokenExpirado(t *testing.T) {
	s := session.Session{StoreID: "st-1", UserID: "us-1", AccountID: "ac-1"}
	tok, err := session.Generate(testSecret, s, "pos-test", -time.Minute)
	require.NoError(t, err)

	_, err = session.Parse(testSecret, tok)
	assert.Error(t, err)
}

// IsLoggedIn exige tienda Y usuario; la cuenta sola no basta.
func TestSession_IsLoggedIn(t *testing.T) {
	assert.False(t, session.Session{}.IsLoggedIn())
	assert.False(t, session.Session{AccountID: "ac-1"}.IsLoggedIn())
	assert.False(t, session.Session{StoreID: "st-1"}.IsLoggedIn())
	assert.False(t, session.Session{UserID: "us-1"}.IsLoggedIn())
	assert.True(t, session.Session{StoreID: "st-1", UserID: "us-1"}.IsLoggedIn())
}
