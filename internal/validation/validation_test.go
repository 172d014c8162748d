package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid minimum length", "12345678", false},
		{"valid long", "a much longer passphrase", false},
		{"too short", "1234567", true},
		{"empty", "", true},
		{"too long", strings.Repeat("a", 129), true},
		{"max length", strings.Repeat("a", 128), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"valid", "reader@example.com", false},
		{"valid with plus", "reader+tag@example.com", false},
		{"valid subdomain", "reader@mail.example.co.uk", false},
		{"missing at", "readerexample.com", true},
		{"missing domain", "reader@", true},
		{"missing tld", "reader@example", true},
		{"empty", "", true},
		{"spaces", "rea der@example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"valid http", "http://example.com/img.png", false},
		{"valid https", "https://cdn.example.com/header.jpg", false},
		{"missing scheme", "example.com/img.png", true},
		{"wrong scheme", "ftp://example.com/img.png", true},
		{"javascript scheme", "javascript:alert(1)", true},
		{"no host", "https:///img.png", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
