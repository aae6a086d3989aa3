package auth

import (
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenTTL = 24 * time.Hour

func generateToken(employeeID, name, department, role string) (string, error) {
	claims := jwt.MapClaims{
		"employee_id": employeeID,
		"name":        name,
		"department":  department,
		"role":        role,
		"exp":         time.Now().Add(tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
