package groq

import (
	"testing"

	"github.com/venla-ai/intake-core/core/reasoning"
)

func TestToMessagesMapsRolesAndInstructions(t *testing.T) {
	history := []reasoning.Turn{
		{Role: reasoning.RoleAgent, Text: "May I have your full name, please?"},
		{Role: reasoning.RoleCaller, Text: "My name is John Smith"},
		{Role: reasoning.RoleCaller, Text: ""},
	}

	messages := toMessages("instructions", history)

	if len(messages) != 3 {
		t.Fatalf("expected 3 messages (empty turns skipped), got %d", len(messages))
	}
	if messages[0].Role != messageRoleSystem || messages[0].Content != "instructions" {
		t.Fatalf("expected system message first, got %+v", messages[0])
	}
	if messages[1].Role != messageRoleAssistant {
		t.Fatalf("expected agent turn to map to assistant role, got %q", messages[1].Role)
	}
	if messages[2].Role != messageRoleUser || messages[2].Content != "My name is John Smith" {
		t.Fatalf("expected caller turn to map to user role, got %+v", messages[2])
	}
}

func TestToMessagesWithoutInstructions(t *testing.T) {
	messages := toMessages("", []reasoning.Turn{{Role: reasoning.RoleCaller, Text: "yes"}})

	if len(messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(messages))
	}
	if messages[0].Role != messageRoleUser {
		t.Fatalf("expected user role, got %q", messages[0].Role)
	}
}
