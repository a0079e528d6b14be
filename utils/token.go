package utils

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AdminTokenTTL is how long an admin bearer token stays valid.
const AdminTokenTTL = 24 * time.Hour

// AdminClaims carries the identity and role of the admin API caller.
type AdminClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

func (c *AdminClaims) SubjectInt() int64 {
	v, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func GenerateAdminToken(userID int64, email, role, secret string) (string, int64, error) {
	if secret == "" {
		return "", 0, errors.New("secret not configured")
	}

	now := time.Now()
	expTime := now.Add(AdminTokenTTL)

	claims := AdminClaims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			ExpiresAt: jwt.NewNumericDate(expTime),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", 0, err
	}

	return signed, expTime.Unix(), nil
}

func VerifyAdminToken(tokenStr, secret string) (*AdminClaims, error) {
	if secret == "" {
		return nil, errors.New("secret not configured")
	}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))

	var claims AdminClaims

	_, err := parser.ParseWithClaims(tokenStr, &claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	if claims.ExpiresAt == nil || time.Until(claims.ExpiresAt.Time) <= 0 {
		return nil, errors.New("token expired")
	}

	return &claims, nil
}
