package security

import (
	"cloud-drive-server/config"
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const (
	UserContextKey contextKey = "user"
)

// Claims : проверенное утверждение о личности вызывающего.
// ExternalUID — subject во внешнем провайдере идентификации.
// Заполняется только после криптографической проверки подписи токена,
// сырые заголовки сюда не попадают.
type Claims struct {
	ExternalUID string `json:"uid"`
	Email       string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

type JWTService struct {
	*config.AuthConfig
}

func NewJWTService(cfg *config.AuthConfig) *JWTService {
	return &JWTService{cfg}
}

// GenerateToken : подписывает токен для пользователя (используется в тестах и служебных сценариях,
// в проде токены выпускает провайдер идентификации с тем же секретом)
func (service *JWTService) GenerateToken(externalUID string, email string, ttl time.Duration) (string, error) {
	claims := Claims{
		ExternalUID: externalUID,
		Email:       email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   externalUID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    service.Issuer,
		},
	}

	jwtToken := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := jwtToken.SignedString([]byte(service.SecretKey))
	if err != nil {
		return "", fmt.Errorf("ошибка подписи токена: %w", err)
	}

	return signed, nil
}

func (service *JWTService) ValidateJWT(jwtTokenStr string, secretKey []byte) (*Claims, error) {
	var claims = &Claims{}

	jwtToken, err := jwt.ParseWithClaims(jwtTokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Header["alg"] != jwt.SigningMethodHS512.Alg() {
			return nil, fmt.Errorf("неверный способ подписи токена: %v", token.Header["alg"])
		}
		return secretKey, nil
	})

	if err != nil || jwtToken.Valid == false {
		return nil, fmt.Errorf("невалидный токен: %w", err)
	}

	if claims.ExternalUID == "" {
		claims.ExternalUID = claims.Subject
	}
	if claims.ExternalUID == "" {
		return nil, fmt.Errorf("токен не содержит subject")
	}

	return claims, nil
}

// JWTMiddleware : обязательная аутентификация, 401 без валидного Bearer-токена
func JWTMiddleware(secretKey []byte, jwtService *JWTService) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims, ok := extractClaims(writer, request, secretKey, jwtService)
			if ok == false {
				return
			}
			if claims == nil {
				http.Error(writer, "unauthorized", http.StatusUnauthorized)
				return
			}

			req := request.WithContext(context.WithValue(request.Context(), UserContextKey, claims))
			next.ServeHTTP(writer, req)
		})
	}
}

// OptionalJWTMiddleware : аутентификация по возможности.
// Токен отсутствует — запрос идёт дальше анонимно (решение принимает access gate),
// токен предъявлен, но невалиден — 401.
func OptionalJWTMiddleware(secretKey []byte, jwtService *JWTService) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims, ok := extractClaims(writer, request, secretKey, jwtService)
			if ok == false {
				return
			}
			if claims != nil {
				request = request.WithContext(context.WithValue(request.Context(), UserContextKey, claims))
			}
			next.ServeHTTP(writer, request)
		})
	}
}

// extractClaims : возвращает (nil, true) если токена нет, (claims, true) если он валиден.
// При невалидном токене сам пишет 401 и возвращает (nil, false).
func extractClaims(writer http.ResponseWriter, request *http.Request, secretKey []byte, jwtService *JWTService) (*Claims, bool) {
	authorizationHeader := request.Header.Get("Authorization")
	if authorizationHeader == "" {
		return nil, true
	}

	if !strings.HasPrefix(authorizationHeader, "Bearer ") {
		http.Error(writer, "unauthorized", http.StatusUnauthorized)
		return nil, false
	}

	token := strings.TrimPrefix(authorizationHeader, "Bearer ")

	claims, err := jwtService.ValidateJWT(token, secretKey)
	if err != nil {
		log.Printf("невалидный токен: %v", err)
		http.Error(writer, "невалидный токен", http.StatusUnauthorized)
		return nil, false
	}

	return claims, true
}

func GetClaimsFromContext(ctx context.Context) (*Claims, error) {
	claims, ok := ctx.Value(UserContextKey).(*Claims)
	if !ok || claims == nil {
		return nil, fmt.Errorf("пользователь не аутентифицирован")
	}
	return claims, nil
}

// ClaimsFromContextOrNil : вариант для публичных маршрутов, где личность необязательна
func ClaimsFromContextOrNil(ctx context.Context) *Claims {
	claims, _ := ctx.Value(UserContextKey).(*Claims)
	return claims
}
