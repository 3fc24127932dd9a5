package netcheck

import "testing"

func TestContains(t *testing.T) {
	tests := []struct {
		name  string
		entry string
		ip    string
		want  bool
	}{
		{"exact match", "203.0.113.5", "203.0.113.5", true},
		{"exact mismatch", "203.0.113.5", "203.0.113.6", false},
		{"inside cidr", "203.0.113.0/24", "203.0.113.200", true},
		{"outside cidr", "203.0.113.0/24", "203.0.114.1", false},
		{"cidr boundary low", "203.0.113.0/24", "203.0.113.0", true},
		{"unmasked prefix still matches", "203.0.113.77/24", "203.0.113.5", true},
		{"ipv4-mapped ipv6 client", "203.0.113.5", "::ffff:203.0.113.5", true},
		{"ipv4-mapped ipv6 in cidr", "203.0.113.0/24", "::ffff:203.0.113.9", true},
		{"ipv6 exact", "2001:db8::1", "2001:db8::1", true},
		{"ipv6 cidr", "2001:db8::/32", "2001:db8:0:1::5", true},
		{"whitespace tolerated", " 203.0.113.5 ", " 203.0.113.5 ", true},
		{"garbage entry", "not-an-ip", "203.0.113.5", false},
		{"garbage ip", "203.0.113.0/24", "not-an-ip", false},
		{"empty ip", "203.0.113.0/24", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Contains(tt.entry, tt.ip); got != tt.want {
				t.Errorf("Contains(%q, %q) = %v, want %v", tt.entry, tt.ip, got, tt.want)
			}
		})
	}
}

func TestMatchAny(t *testing.T) {
	entries := []string{"203.0.113.5", "198.51.100.0/24"}

	if !MatchAny(entries, "198.51.100.77") {
		t.Error("MatchAny missed an in-range address")
	}
	if MatchAny(entries, "192.0.2.1") {
		t.Error("MatchAny matched an unrelated address")
	}
	if MatchAny(nil, "203.0.113.5") {
		t.Error("MatchAny matched against an empty list")
	}
}
