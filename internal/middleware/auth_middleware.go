package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "
	StudentIDKey        = "studentID" // Key for storing the student id in fiber.Ctx locals
)

// Protected requires a valid access token issued by the platform's auth
// service. Token issuance lives there; this middleware only verifies the
// signature and pulls the student id from the subject claim.
func Protected(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(AuthorizationHeader)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "MISSING_AUTH_HEADER",
				Message: "Authorization header is missing",
				Status:  fiber.StatusUnauthorized,
			})
		}

		if !strings.HasPrefix(authHeader, BearerSchema) {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "INVALID_AUTH_SCHEME",
				Message: "Authorization scheme is not Bearer",
				Status:  fiber.StatusUnauthorized,
			})
		}

		tokenString := strings.TrimPrefix(authHeader, BearerSchema)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "EMPTY_TOKEN",
				Message: "Token is empty",
				Status:  fiber.StatusUnauthorized,
			})
		}

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "INVALID_TOKEN",
				Message: "Token is invalid or expired",
				Status:  fiber.StatusUnauthorized,
			})
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "INVALID_TOKEN",
				Message: "Token claims are malformed",
				Status:  fiber.StatusUnauthorized,
			})
		}
		studentID, err := claims.GetSubject()
		if err != nil || studentID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "INVALID_TOKEN",
				Message: "Token has no subject",
				Status:  fiber.StatusUnauthorized,
			})
		}

		c.Locals(StudentIDKey, studentID)
		return c.Next()
	}
}
