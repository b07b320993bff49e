package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func newTestJWTService(exp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: exp,
		TokenIssuer:    "mathplan-test",
	})
}

func TestGenerateAndValidate(t *testing.T) {
	svc := newTestJWTService(time.Hour)

	token, expiresIn, err := svc.GenerateAccessToken("adv-1", "")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}
	if expiresIn != 3600 {
		t.Errorf("expiresIn = %d, want 3600", expiresIn)
	}

	claims, err := svc.ValidateAndExtractClaims(token)
	if err != nil {
		t.Fatalf("ValidateAndExtractClaims() error = %v", err)
	}
	if claims.AdvisorID != "adv-1" || claims.Role != RoleAdvisor {
		t.Errorf("claims = %+v", claims)
	}
	if claims.ID == "" {
		t.Error("token id missing")
	}
}

func TestValidateToken_Errors(t *testing.T) {
	valid := newTestJWTService(time.Hour)
	good, _, err := valid.GenerateAccessToken("adv-1", RoleAdmin)
	if err != nil {
		t.Fatal(err)
	}
	expired, _, err := newTestJWTService(-time.Minute).GenerateAccessToken("adv-1", RoleAdvisor)
	if err != nil {
		t.Fatal(err)
	}

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{AdvisorID: "adv-1", Role: RoleAdmin})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatal(err)
	}

	otherSecret := NewJWTService(JWTConfig{SecretKey: "other", AccessTokenExp: time.Hour, TokenIssuer: "mathplan-test"})
	otherIssuer := NewJWTService(JWTConfig{SecretKey: "test-secret", AccessTokenExp: time.Hour, TokenIssuer: "someone-else"})

	tests := []struct {
		name    string
		svc     *JWTService
		token   string
		wantErr error
	}{
		{"expired", valid, expired, ErrExpiredToken},
		{"empty", valid, "", ErrInvalidToken},
		{"garbage", valid, "not.a.token", ErrInvalidToken},
		{"alg none", valid, unsigned, ErrInvalidToken},
		{"wrong secret", otherSecret, good, ErrInvalidToken},
		{"wrong issuer", otherIssuer, good, ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.svc.ValidateAndExtractClaims(tt.token)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestGenerateAccessToken_RequiresAdvisor(t *testing.T) {
	if _, _, err := newTestJWTService(time.Hour).GenerateAccessToken("", RoleAdvisor); err == nil {
		t.Error("expected error for empty advisor id")
	}
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr bool
	}{
		{"Bearer abc", "abc", false},
		{"abc", "abc", false},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ExtractBearerToken(tt.header)
		if (err != nil) != tt.wantErr {
			t.Errorf("ExtractBearerToken(%q) error = %v", tt.header, err)
		}
		if got != tt.want {
			t.Errorf("ExtractBearerToken(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}
