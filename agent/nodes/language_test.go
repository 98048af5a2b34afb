package nodes

import (
	"errors"
	"testing"

	contractx "github.com/eshvartz/pharmacy-agent/agent/contract"
)

func TestDetectLanguage(t *testing.T) {
	t.Parallel()

	cases := []struct {
		message string
		want    contractx.Language
	}{
		{"Tell me about Paracetamol", contractx.LanguageEnglish},
		{"מה המינון של פרצטמול?", contractx.LanguageHebrew},
		{"Is אקמול in stock?", contractx.LanguageHebrew},
		{"", contractx.LanguageEnglish},
		{"12345 !?", contractx.LanguageEnglish},
	}
	for _, tc := range cases {
		if got := DetectLanguage(tc.message); got != tc.want {
			t.Fatalf("DetectLanguage(%q) = %s, want %s", tc.message, got, tc.want)
		}
	}
}

func TestValidateRequest(t *testing.T) {
	t.Parallel()

	st, err := ValidateRequest(GraphInput{UserID: " u001 ", Message: " hello "})
	if err != nil {
		t.Fatalf("ValidateRequest() error = %v", err)
	}
	if st.Result.Request.UserID != "u001" {
		t.Fatalf("user id must be trimmed, got %q", st.Result.Request.UserID)
	}
	if st.Result.Request.RawMessage != "hello" {
		t.Fatalf("message must be trimmed, got %q", st.Result.Request.RawMessage)
	}
	if st.Result.Request.RequestID == "" {
		t.Fatalf("request id must be assigned")
	}

	if _, err := ValidateRequest(GraphInput{UserID: "  ", Message: "hello"}); !errors.Is(err, ErrInvalidUserID) {
		t.Fatalf("expected ErrInvalidUserID, got %v", err)
	}
	if _, err := ValidateRequest(GraphInput{UserID: "u001", Message: "  "}); !errors.Is(err, ErrInvalidMessage) {
		t.Fatalf("expected ErrInvalidMessage, got %v", err)
	}
}
