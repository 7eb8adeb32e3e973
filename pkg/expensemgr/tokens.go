package expensemgr

import (
	"github.com/expense-manager/expense-manager-go/internal/auth"
	internalTypes "github.com/expense-manager/expense-manager-go/internal/types"
)

// TokenSource supplies the bearer token for each request.
// An empty token sends the request without an Authorization header.
type TokenSource = internalTypes.TokenSource

// StaticToken is a fixed bearer token
type StaticToken = auth.StaticToken

// EnvToken reads the bearer token from the named environment variable
type EnvToken = auth.EnvToken

// TokenFile persists a bearer token as JSON on disk
type TokenFile = auth.FileStore

// NewTokenFile creates a token file store at path.
// A missing file yields no token.
func NewTokenFile(path string, logger Logger) *TokenFile {
	return auth.NewFileStore(path, logger)
}
