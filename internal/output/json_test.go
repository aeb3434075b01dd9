package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/certsift/certsift/internal/engine"
)

func TestWriteJSON(t *testing.T) {
	result := &engine.Result{
		Domain:      "example.com",
		FetchStatus: engine.FetchTimeout,
		Subdomains:  []string{"api.example.com"},
	}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, result); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if decoded["domain"] != "example.com" {
		t.Errorf("domain = %v", decoded["domain"])
	}
	if decoded["fetch_status"] != "timeout" {
		t.Errorf("fetch_status = %v, want the text form", decoded["fetch_status"])
	}
}
