package utils

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func getJWTSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "your_secret_key"
	}
	return []byte(secret)
}

// ViewTokenClaims scopes a token to a single stored submission.
type ViewTokenClaims struct {
	SubmissionID string `json:"submissionId"`
	jwt.RegisteredClaims
}

// GenerateViewToken signs a token granting read access to one submission for
// 30 days. Embedded in the moreInfoLink of notification emails.
func GenerateViewToken(submissionID string) (string, error) {
	claims := ViewTokenClaims{
		SubmissionID: submissionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(30 * 24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(getJWTSecret())
}

// ParseViewToken verifies a view token and returns its claims.
func ParseViewToken(tokenStr string) (*ViewTokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &ViewTokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return getJWTSecret(), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*ViewTokenClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid view token")
	}
	return claims, nil
}

// SubmissionViewLink builds the signed URL included in notification emails.
// Returns "" when no base URL is configured or signing fails.
func SubmissionViewLink(baseURL, submissionID string) string {
	if baseURL == "" {
		return ""
	}
	token, err := GenerateViewToken(submissionID)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%s/submissions/%s?token=%s", baseURL, submissionID, token)
}
