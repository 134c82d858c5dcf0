package security_test

import (
	"cloud-drive-server/config"
	"cloud-drive-server/internal/security"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func newTestJWTService() *security.JWTService {
	return security.NewJWTService(&config.AuthConfig{
		SecretKey: testSecret,
		Issuer:    "cloud-drive-server",
	})
}

func TestGenerateAndValidate(t *testing.T) {
	svc := newTestJWTService()

	token, err := svc.GenerateToken("uid-1", "user@example.com", time.Hour)
	require.NoError(t, err)

	claims, err := svc.ValidateJWT(token, []byte(testSecret))
	require.NoError(t, err)
	assert.Equal(t, "uid-1", claims.ExternalUID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "cloud-drive-server", claims.Issuer)
}

func TestValidateJWT_Expired(t *testing.T) {
	svc := newTestJWTService()

	token, err := svc.GenerateToken("uid-1", "user@example.com", -time.Minute)
	require.NoError(t, err)

	_, err = svc.ValidateJWT(token, []byte(testSecret))
	assert.Error(t, err)
}

func TestValidateJWT_WrongKey(t *testing.T) {
	svc := newTestJWTService()

	token, err := svc.GenerateToken("uid-1", "user@example.com", time.Hour)
	require.NoError(t, err)

	_, err = svc.ValidateJWT(token, []byte("other-key"))
	assert.Error(t, err)
}

func TestValidateJWT_WrongAlgorithm(t *testing.T) {
	svc := newTestJWTService()

	// токен с HS256 вместо HS512 должен быть отклонён
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "uid-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = svc.ValidateJWT(signed, []byte(testSecret))
	assert.Error(t, err)
}

func TestValidateJWT_SubjectFallback(t *testing.T) {
	svc := newTestJWTService()

	// внешний провайдер может класть uid только в subject
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Subject:   "uid-from-subject",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	claims, err := svc.ValidateJWT(signed, []byte(testSecret))
	require.NoError(t, err)
	assert.Equal(t, "uid-from-subject", claims.ExternalUID)
}

func TestJWTMiddleware(t *testing.T) {
	svc := newTestJWTService()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := security.GetClaimsFromContext(r.Context())
		require.NoError(t, err)
		assert.Equal(t, "uid-1", claims.ExternalUID)
		w.WriteHeader(http.StatusOK)
	})
	handler := security.JWTMiddleware([]byte(testSecret), svc)(next)

	t.Run("Valid token", func(t *testing.T) {
		token, err := svc.GenerateToken("uid-1", "user@example.com", time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/files", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("No token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/files", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/files", nil)
		req.Header.Set("Authorization", "Basic abc")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestOptionalJWTMiddleware(t *testing.T) {
	svc := newTestJWTService()

	var seenClaims *security.Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenClaims = security.ClaimsFromContextOrNil(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := security.OptionalJWTMiddleware([]byte(testSecret), svc)(next)

	t.Run("No token passes anonymously", func(t *testing.T) {
		seenClaims = nil
		req := httptest.NewRequest(http.MethodGet, "/api/files/x/download", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, seenClaims)
	})

	t.Run("Valid token attaches claims", func(t *testing.T) {
		seenClaims = nil
		token, err := svc.GenerateToken("uid-1", "user@example.com", time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/files/x/download", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, seenClaims)
		assert.Equal(t, "uid-1", seenClaims.ExternalUID)
	})

	t.Run("Invalid token still rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/files/x/download", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
