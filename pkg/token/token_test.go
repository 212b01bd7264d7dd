package token

import (
	"strings"
	"testing"
)

func TestGenerateAndValidate(t *testing.T) {
	tok, err := GenerateJWT("scorer-1", "scorer", "secret", 5)
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}
	claims, err := ValidateJWT(tok, "secret")
	if err != nil {
		t.Fatalf("ValidateJWT() error = %v", err)
	}
	if claims.UserID != "scorer-1" || claims.Role != "scorer" {
		t.Errorf("claims = %+v", claims)
	}
	if claims.Issuer != Issuer {
		t.Errorf("Issuer = %q, want %q", claims.Issuer, Issuer)
	}
}

func TestValidateRejects(t *testing.T) {
	good, err := GenerateJWT("u", "", "secret", 5)
	if err != nil {
		t.Fatal(err)
	}
	expired, err := GenerateJWT("u", "", "secret", -5)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		token  string
		secret string
		want   string
	}{
		{"empty token", "", "secret", "empty"},
		{"empty secret", good, "", "secret key"},
		{"wrong secret", good, "other", "signature"},
		{"expired", expired, "secret", "expired"},
		{"garbage", "not.a.token", "secret", "parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateJWT(tt.token, tt.secret)
			if err == nil {
				t.Fatal("ValidateJWT() should fail")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestGenerateNeedsUser(t *testing.T) {
	if _, err := GenerateJWT("", "", "secret", 5); err == nil {
		t.Error("GenerateJWT with empty user should fail")
	}
}
