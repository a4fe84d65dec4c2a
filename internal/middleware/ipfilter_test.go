// SPDX-License-Identifier: MIT
package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func allowlistContext(remote string, trusted ...string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, engine := gin.CreateTestContext(w)
	if err := engine.SetTrustedProxies(trusted); err != nil {
		panic(err)
	}
	c.Request = httptest.NewRequest("GET", "/admin/", nil)
	c.Request.RemoteAddr = remote
	return c, w
}

func TestAdminAllowlistEmptyAllowsAll(t *testing.T) {
	c, w := allowlistContext("198.51.100.7:1234")
	AdminAllowlist(nil, nil)(c)

	if w.Code == 403 || c.IsAborted() {
		t.Error("Empty allowlist should allow every client")
	}
}

func TestAdminAllowlistBlocksOutside(t *testing.T) {
	c, w := allowlistContext("198.51.100.7:1234")
	AdminAllowlist([]string{"192.168.1.0/24"}, nil)(c)

	if w.Code != 403 {
		t.Errorf("Expected 403 for client outside range, got %d", w.Code)
	}
}

func TestAdminAllowlistAllowsInside(t *testing.T) {
	c, _ := allowlistContext("192.168.1.100:1234")
	AdminAllowlist([]string{"192.168.1.0/24"}, nil)(c)

	if c.IsAborted() {
		t.Error("Client inside range should be allowed")
	}
}

func TestAdminAllowlistBareIP(t *testing.T) {
	c, _ := allowlistContext("[::1]:8080")
	AdminAllowlist([]string{"127.0.0.1", "::1"}, nil)(c)

	if c.IsAborted() {
		t.Error("Bare IPv6 address should be allowed")
	}
}

func TestAdminAllowlistIgnoresSpoofedForwardedFor(t *testing.T) {
	c, w := allowlistContext("203.0.113.9:4321")
	c.Request.Header.Set("X-Forwarded-For", "10.0.0.1")
	AdminAllowlist([]string{"10.0.0.1"}, nil)(c)

	if w.Code != 403 {
		t.Errorf("Forwarded header from an untrusted peer must be ignored, got %d", w.Code)
	}
}

func TestAdminAllowlistHonorsTrustedProxy(t *testing.T) {
	c, _ := allowlistContext("172.16.0.2:4321", "172.16.0.0/12")
	c.Request.Header.Set("X-Forwarded-For", "10.0.0.1")
	AdminAllowlist([]string{"10.0.0.1"}, nil)(c)

	if c.IsAborted() {
		t.Error("Client forwarded by a trusted proxy should be allowed")
	}
}

func TestAdminAllowlistTrustedProxyForwardsOutsider(t *testing.T) {
	c, w := allowlistContext("172.16.0.2:4321", "172.16.0.0/12")
	c.Request.Header.Set("X-Forwarded-For", "10.0.0.1, 203.0.113.9")
	AdminAllowlist([]string{"10.0.0.1"}, nil)(c)

	if w.Code != 403 {
		t.Errorf("Expected the right-most untrusted hop to be checked, got %d", w.Code)
	}
}

func TestParseRangesSkipsInvalid(t *testing.T) {
	ranges := ParseRanges([]string{"10.0.0.0/8", "nonsense", "", "2001:db8::/32"}, nil)
	if len(ranges) != 2 {
		t.Errorf("Expected 2 valid ranges, got %d", len(ranges))
	}
}
