package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Credentials is the Naver Open API id/secret pair. Both fields must
// be present before any outbound call is attempted.
type Credentials struct {
	ClientID     string
	ClientSecret string
}

func (c Credentials) Configured() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// Resolve reads credentials from the process environment, letting a
// .env file in the working directory override per key. The file is
// read on every call so a dropped-in .env takes effect without a
// restart.
func Resolve() Credentials {
	return ResolveFrom(".env")
}

// ResolveFrom resolves credentials against a specific env file path.
// A missing or unreadable file leaves the environment values in place.
func ResolveFrom(path string) Credentials {
	id := os.Getenv("NAVER_CLIENT_ID")
	secret := os.Getenv("NAVER_CLIENT_SECRET")

	if vars, err := godotenv.Read(path); err == nil {
		if v, ok := vars["NAVER_CLIENT_ID"]; ok {
			id = v
		}
		if v, ok := vars["NAVER_CLIENT_SECRET"]; ok {
			secret = v
		}
	}

	id = cleanSecret(id)
	secret = cleanSecret(secret)
	if id == "" || secret == "" {
		return Credentials{}
	}
	return Credentials{ClientID: id, ClientSecret: secret}
}

// cleanSecret trims whitespace and one surrounding quote layer.
func cleanSecret(v string) string {
	v = strings.TrimSpace(v)
	if len(v) >= 2 {
		first, last := v[0], v[len(v)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			v = v[1 : len(v)-1]
		}
	}
	return strings.TrimSpace(v)
}
