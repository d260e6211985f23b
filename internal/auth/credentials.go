package auth

import (
	"fmt"
	"os"
	"strings"
)

// Credentials looks up the expected password of a user
type Credentials interface {
	Password(userID string) (string, bool)
}

// StaticCredentials maps user ids straight to passwords
type StaticCredentials map[string]string

func (s StaticCredentials) Password(userID string) (string, bool) {
	p, ok := s[userID]
	return p, ok
}

// EnvCredentials maps user ids to the environment variables that hold their
// passwords, so secrets never live in config files
type EnvCredentials struct {
	keys   map[string]string
	lookup func(string) (string, bool)
}

func NewEnvCredentials(keys map[string]string) *EnvCredentials {
	return &EnvCredentials{keys: keys, lookup: os.LookupEnv}
}

func (e *EnvCredentials) Password(userID string) (string, bool) {
	key, ok := e.keys[userID]
	if !ok {
		return "", false
	}
	return e.lookup(key)
}

// ParseUserMapping parses "user:ENV_VAR,other:OTHER_VAR"
func ParseUserMapping(s string) (map[string]string, error) {
	out := make(map[string]string)
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		user, key, ok := strings.Cut(pair, ":")
		user, key = strings.TrimSpace(user), strings.TrimSpace(key)
		if !ok || user == "" || key == "" {
			return nil, fmt.Errorf("auth: invalid user mapping %q, want user:ENV_VAR", pair)
		}
		out[user] = key
	}
	return out, nil
}
