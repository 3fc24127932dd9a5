package netcheck

import (
	"net/netip"
	"strings"
)

// Contains reports whether ip falls inside entry. An entry is either a
// single address ("203.0.113.5") or a CIDR range ("203.0.113.0/24").
// IPv4-mapped IPv6 addresses (::ffff:a.b.c.d) are unmapped before
// comparison, since Fiber reports those for IPv4 clients on dual-stack
// listeners.
func Contains(entry, ip string) bool {
	addr, err := netip.ParseAddr(strings.TrimSpace(ip))
	if err != nil {
		return false
	}
	addr = addr.Unmap()

	entry = strings.TrimSpace(entry)
	if strings.Contains(entry, "/") {
		prefix, err := netip.ParsePrefix(entry)
		if err != nil {
			return false
		}
		return prefix.Masked().Contains(addr)
	}

	entryAddr, err := netip.ParseAddr(entry)
	if err != nil {
		return false
	}
	return entryAddr.Unmap() == addr
}

// MatchAny reports whether ip matches any of the given entries.
func MatchAny(entries []string, ip string) bool {
	for _, e := range entries {
		if Contains(e, ip) {
			return true
		}
	}
	return false
}
