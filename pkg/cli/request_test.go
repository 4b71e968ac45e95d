package cli

import (
	"os"
	"path/filepath"
	"testing"
)

type testRequest struct {
	Prompt string `json:"prompt" yaml:"prompt"`
	Ratio  string `json:"ratio" yaml:"ratio"`
}

func TestParseRequest(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		data     string
		want     testRequest
		wantErr  bool
	}{
		{"yaml", "req.yaml", "prompt: an apple\nratio: \"16:9\"\n", testRequest{"an apple", "16:9"}, false},
		{"yml", "req.yml", "prompt: pear\n", testRequest{Prompt: "pear"}, false},
		{"json", "req.json", `{"prompt":"plum","ratio":"3:4"}`, testRequest{"plum", "3:4"}, false},
		{"no extension json", "req", `{"prompt":"fig"}`, testRequest{Prompt: "fig"}, false},
		{"bad json", "req.json", `{"prompt":`, testRequest{}, true},
		{"bad yaml", "req.yaml", "prompt: [unclosed", testRequest{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got testRequest
			err := ParseRequest([]byte(tt.data), tt.filename, &got)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRequest error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseRequest() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLoadRequest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "req.yaml")
	if err := os.WriteFile(path, []byte("prompt: cat\nratio: \"1:1\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	var req testRequest
	if err := LoadRequest(path, &req); err != nil {
		t.Fatalf("LoadRequest error: %v", err)
	}
	if req.Prompt != "cat" || req.Ratio != "1:1" {
		t.Errorf("LoadRequest() = %+v", req)
	}

	if err := LoadRequest(filepath.Join(t.TempDir(), "missing.yaml"), &req); err == nil {
		t.Error("expected error for missing file")
	}
}
