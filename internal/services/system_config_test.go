package services

import (
	"testing"
)

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		sep      string
		expected []string
	}{
		{
			name:     "empty string",
			input:    "",
			sep:      ",",
			expected: nil,
		},
		{
			name:     "single value",
			input:    "value",
			sep:      ",",
			expected: []string{"value"},
		},
		{
			name:     "multiple values",
			input:    "a,b,c",
			sep:      ",",
			expected: []string{"a", "b", "c"},
		},
		{
			name:     "with spaces",
			input:    " a , b , c ",
			sep:      ",",
			expected: []string{"a", "b", "c"},
		},
		{
			name:     "empty parts filtered",
			input:    "a,,b,  ,c",
			sep:      ",",
			expected: []string{"a", "b", "c"},
		},
		{
			name:     "different separator",
			input:    "a;b;c",
			sep:      ";",
			expected: []string{"a", "b", "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := splitAndTrim(tt.input, tt.sep)
			if len(result) != len(tt.expected) {
				t.Errorf("splitAndTrim() returned %d items, expected %d", len(result), len(tt.expected))
				return
			}
			for i, v := range result {
				if v != tt.expected[i] {
					t.Errorf("splitAndTrim()[%d] = %q, expected %q", i, v, tt.expected[i])
				}
			}
		})
	}
}

func TestLDAPConfigResponse_Defaults(t *testing.T) {
	cfg := &LDAPConfigResponse{
		Enabled:     false,
		Host:        "",
		Port:        389,
		BaseDN:      "",
		BindDN:      "",
		UserFilter:  "(uid=%s)",
		UseSSL:      false,
		PasswordSet: false,
	}

	if cfg.Enabled {
		t.Error("Enabled should be false by default")
	}
	if cfg.Host != "" {
		t.Errorf("Host should be empty, got %s", cfg.Host)
	}
	if cfg.Port != 389 {
		t.Errorf("default port should be 389, got %d", cfg.Port)
	}
	if cfg.BaseDN != "" {
		t.Errorf("BaseDN should be empty, got %s", cfg.BaseDN)
	}
	if cfg.BindDN != "" {
		t.Errorf("BindDN should be empty, got %s", cfg.BindDN)
	}
	if cfg.UserFilter != "(uid=%s)" {
		t.Errorf("default UserFilter should be (uid=%%s), got %s", cfg.UserFilter)
	}
	if cfg.UseSSL {
		t.Error("UseSSL should be false by default")
	}
	if cfg.PasswordSet {
		t.Error("PasswordSet should be false by default")
	}
}

func TestUpdateLDAPConfigRequest_PartialUpdate(t *testing.T) {
	enabled := true
	host := "ldap.example.com"
	port := 636

	req := &UpdateLDAPConfigRequest{
		Enabled: &enabled,
		Host:    &host,
		Port:    &port,
	}

	if req.Enabled == nil || *req.Enabled != true {
		t.Error("Enabled should be set to true")
	}
	if req.Host == nil || *req.Host != "ldap.example.com" {
		t.Error("Host should be set")
	}
	if req.Port == nil || *req.Port != 636 {
		t.Error("Port should be set to 636")
	}
	if req.BaseDN != nil {
		t.Error("BaseDN should be nil (not set)")
	}
	if req.BindPassword != nil {
		t.Error("BindPassword should be nil (not set)")
	}
}
