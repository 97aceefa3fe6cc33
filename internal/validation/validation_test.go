package validation

import "testing"

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		valid   bool
	}{
		{"valid http URL", "http://example.com", true},
		{"valid https URL", "https://example.com/path?query=1", true},
		{"empty URL", "", false},
		{"javascript scheme", "javascript:alert(1)", false},
		{"data scheme", "data:text/html,<script>alert(1)</script>", false},
		{"ftp scheme", "ftp://example.com", false},
		{"missing host", "http://", false},
		{"relative path", "/just/a/path", false},
		{"uppercase scheme allowed", "HTTP://example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, _ := ValidateURL(tt.url)
			if valid != tt.valid {
				t.Errorf("ValidateURL(%q) = %v, want %v", tt.url, valid, tt.valid)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"ann@x.com", true},
		{"a.b+tag@example.co.uk", true},
		{"", false},
		{"not-an-email", false},
		{"missing@domain", true}, // bare domains parse; DNS validity is not our job
		{"Ann <ann@x.com>", false},
		{"@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			if got := ValidateEmail(tt.email); got != tt.valid {
				t.Errorf("ValidateEmail(%q) = %v, want %v", tt.email, got, tt.valid)
			}
		})
	}
}

func TestNormalizeHost(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"plain host", "http://example.com", "example.com"},
		{"strips www", "http://www.example.com/path", "example.com"},
		{"lowercases", "http://WWW.Example.COM/x", "example.com"},
		{"strips port", "https://example.com:8443/x", "example.com"},
		{"only one www label", "http://www.www.example.com", "www.example.com"},
		{"subdomain kept", "http://blog.example.com", "blog.example.com"},
		{"no host", "/relative/path", ""},
		{"unparseable", "http://exa mple.com", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeHost(tt.url); got != tt.want {
				t.Errorf("NormalizeHost(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestNormalizeHostIdempotent(t *testing.T) {
	// Normalizing a URL built from a normalized host yields the same host.
	host := NormalizeHost("http://WWW.Foo.com/x")
	if host != "foo.com" {
		t.Fatalf("NormalizeHost = %q, want foo.com", host)
	}
	if again := NormalizeHost("http://" + host); again != host {
		t.Errorf("normalization not idempotent: %q != %q", again, host)
	}
	if other := NormalizeHost("http://foo.com"); other != host {
		t.Errorf("case/www variants differ: %q != %q", other, host)
	}
}
