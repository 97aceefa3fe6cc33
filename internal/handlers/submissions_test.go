package handlers

import (
	"strings"
	"testing"
)

func TestValidateDraft(t *testing.T) {
	valid := submitRequest{
		URL:       "http://example.com",
		LinkText:  "Example",
		UserName:  "Ann",
		UserEmail: "ann@x.com",
	}

	tests := []struct {
		name    string
		mutate  func(*submitRequest)
		wantErr []string
	}{
		{
			name:   "valid draft",
			mutate: func(r *submitRequest) {},
		},
		{
			name:    "missing url",
			mutate:  func(r *submitRequest) { r.URL = "" },
			wantErr: []string{"valid URL"},
		},
		{
			name:    "bad scheme",
			mutate:  func(r *submitRequest) { r.URL = "javascript:alert(1)" },
			wantErr: []string{"valid URL"},
		},
		{
			name:    "missing link text",
			mutate:  func(r *submitRequest) { r.LinkText = "" },
			wantErr: []string{"link text"},
		},
		{
			name:    "missing name",
			mutate:  func(r *submitRequest) { r.UserName = "" },
			wantErr: []string{"your name"},
		},
		{
			name:    "bad email",
			mutate:  func(r *submitRequest) { r.UserEmail = "nope" },
			wantErr: []string{"valid email"},
		},
		{
			name: "all errors collected together",
			mutate: func(r *submitRequest) {
				r.URL = ""
				r.LinkText = ""
				r.UserName = ""
				r.UserEmail = ""
			},
			wantErr: []string{"valid URL", "link text", "your name", "valid email"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			errs := validateDraft(&req)
			if len(errs) != len(tt.wantErr) {
				t.Fatalf("got %d errors %v, want %d", len(errs), errs, len(tt.wantErr))
			}
			for i, want := range tt.wantErr {
				if !strings.Contains(errs[i], want) {
					t.Errorf("errs[%d] = %q, want it to mention %q", i, errs[i], want)
				}
			}
		})
	}
}
