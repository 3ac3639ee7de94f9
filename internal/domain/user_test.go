package domain

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestUserJSONRedactsPasswordHash(t *testing.T) {
	user := NewUser("alice", "alice@example.com", "$2a$10$secrethash")

	data, err := json.Marshal(user)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	body := string(data)
	if strings.Contains(body, "secrethash") || strings.Contains(strings.ToLower(body), "password") {
		t.Errorf("serialized user leaks password material: %s", body)
	}
	if !strings.Contains(body, `"username":"alice"`) {
		t.Errorf("expected username in output, got %s", body)
	}
}
