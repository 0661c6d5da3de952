package authsvc

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestHashAPIKey_ProducesDifferentHashes(t *testing.T) {
	key := "operator-key-123"

	hash1, err := HashAPIKey(key)
	if err != nil {
		t.Fatalf("first hash failed: %v", err)
	}
	hash2, err := HashAPIKey(key)
	if err != nil {
		t.Fatalf("second hash failed: %v", err)
	}
	if hash1 == hash2 {
		t.Error("same key should produce different hashes (bcrypt uses random salt)")
	}
	if hash1 == key {
		t.Error("hash should not equal the plaintext key")
	}
}

func TestLogin_CorrectKeySucceeds(t *testing.T) {
	hash, err := HashAPIKey("correct-key")
	if err != nil {
		t.Fatalf("HashAPIKey() error = %v", err)
	}
	svc := NewService("jwt-secret", hash)

	token, err := svc.Login("correct-key")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if token == "" {
		t.Fatal("expected a non-empty token")
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.Issuer != "crossgen" {
		t.Errorf("Issuer = %q, want %q", claims.Issuer, "crossgen")
	}
}

func TestLogin_WrongKeyFails(t *testing.T) {
	hash, _ := HashAPIKey("correct-key")
	svc := NewService("jwt-secret", hash)

	_, err := svc.Login("wrong-key")
	if err != ErrInvalidCredentials {
		t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	hash, _ := HashAPIKey("correct-key")
	svc1 := NewService("secret-one", hash)
	svc2 := NewService("secret-two", hash)

	token, err := svc1.Login("correct-key")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	_, err = svc2.ValidateToken(token)
	if err != ErrInvalidToken {
		t.Errorf("ValidateToken() error = %v, want ErrInvalidToken", err)
	}
}

func TestValidateToken_ExpiredToken(t *testing.T) {
	hash, _ := HashAPIKey("correct-key")
	svc := &Service{
		jwtSecret:     []byte("jwt-secret"),
		apiKeyHash:    hash,
		tokenDuration: -1 * time.Hour,
	}

	token, err := svc.Login("correct-key")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	_, err = svc.ValidateToken(token)
	if err != ErrTokenExpired {
		t.Errorf("ValidateToken() error = %v, want ErrTokenExpired", err)
	}
}

func TestValidateToken_MalformedToken(t *testing.T) {
	hash, _ := HashAPIKey("correct-key")
	svc := NewService("jwt-secret", hash)

	_, err := svc.ValidateToken("not.a.valid.jwt")
	if err != ErrInvalidToken {
		t.Errorf("ValidateToken() error = %v, want ErrInvalidToken", err)
	}
}

func TestValidateToken_WrongSigningMethod(t *testing.T) {
	hash, _ := HashAPIKey("correct-key")
	svc := NewService("jwt-secret", hash)

	claims := &Claims{
		Operator: "crossgen-operator",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "crossgen",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	tokenString, _ := token.SignedString(jwt.UnsafeAllowNoneSignatureType)

	_, err := svc.ValidateToken(tokenString)
	if err != ErrInvalidToken {
		t.Errorf("ValidateToken() error = %v, want ErrInvalidToken", err)
	}
}
