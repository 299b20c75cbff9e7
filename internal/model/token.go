package model

import "github.com/google/uuid"

// TokenManager issues and verifies access tokens.
type TokenManager interface {
	IssueAccessToken(userID uuid.UUID) (string, error)
	ParseAccessToken(token string) (uuid.UUID, error)
}
