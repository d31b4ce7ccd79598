package core

import (
	"testing"
)

func TestKeyFromContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "same content produces same key",
			content: "apple pie recipe",
		},
		{
			name:    "empty string",
			content: "",
		},
		{
			name:    "long content",
			content: "A much longer piece of content, the kind a description field carries, that should still hash consistently",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k1 := KeyFromContent(tt.content)
			k2 := KeyFromContent(tt.content)

			if k1 != k2 {
				t.Errorf("KeyFromContent() produced different keys for same content: %s vs %s", k1, k2)
			}
		})
	}
}

func TestKeyFromContent_Different(t *testing.T) {
	k1 := KeyFromContent("content1")
	k2 := KeyFromContent("content2")

	if k1 == k2 {
		t.Errorf("KeyFromContent() produced same key for different content")
	}
}

func TestProfile(t *testing.T) {
	item := CandidateItem{Title: "Apple Pie", Description: "organic orchard harvest"}
	if got := item.Profile(); got != "Apple Pie organic orchard harvest" {
		t.Errorf("Profile() = %q", got)
	}

	empty := CandidateItem{}
	if got := empty.Profile(); got != "" {
		t.Errorf("Profile() on empty item = %q, want empty", got)
	}
}
