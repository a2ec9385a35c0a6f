package security

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestValidateHTTPURL(t *testing.T) {
	tests := []struct {
		url       string
		allowHTTP bool
		wantErr   bool
	}{
		{"https://images.example.com/a.jpg", false, false},
		{"http://images.example.com/a.jpg", false, true},
		{"http://images.example.com/a.jpg", true, false},
		{"ftp://images.example.com/a.jpg", true, true},
		{"https://localhost/a.jpg", false, true},
		{"https://127.0.0.1/a.jpg", false, true},
		{"https://10.1.2.3/a.jpg", false, true},
		{"https://172.20.0.1/a.jpg", false, true},
		{"https://172.32.0.1/a.jpg", false, false},
		{"https://192.168.1.10/a.jpg", false, true},
		{"https://169.254.169.254/latest", false, true},
		{"https://[::1]/a.jpg", false, true},
		{"https://[fd00::1]/a.jpg", false, true},
		{"https:///a.jpg", false, true},
		{"", false, true},
	}

	for _, tt := range tests {
		err := ValidateHTTPURL(tt.url, tt.allowHTTP)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateHTTPURL(%q, %v) error = %v, wantErr %v", tt.url, tt.allowHTTP, err, tt.wantErr)
		}
	}
}

func TestLimitedReader(t *testing.T) {
	data, err := io.ReadAll(NewLimitedReader(strings.NewReader("12345"), 5))
	if err != nil {
		t.Fatalf("reading exactly the limit failed: %v", err)
	}
	if string(data) != "12345" {
		t.Errorf("got %q", data)
	}

	_, err = io.ReadAll(NewLimitedReader(bytes.NewReader(make([]byte, 10)), 5))
	if !errors.Is(err, ErrSizeLimit) {
		t.Errorf("Expected ErrSizeLimit, got %v", err)
	}
}
