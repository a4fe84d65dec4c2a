// SPDX-License-Identifier: MIT
package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/janayne/salon/internal/logging"
)

// AdminAllowlist restricts a route group to clients inside the given CIDR
// ranges. Bare IPs are treated as single-host ranges. An empty list allows
// everyone. X-Forwarded-For is honored only from the engine's trusted proxies.
func AdminAllowlist(ranges []string, logger *zap.Logger) gin.HandlerFunc {
	logger = logging.OrNop(logger)
	allowed := ParseRanges(ranges, logger)

	return func(c *gin.Context) {
		if len(allowed) == 0 {
			c.Next()
			return
		}

		client := c.ClientIP()
		ip := net.ParseIP(client)
		if ip != nil {
			for _, ipNet := range allowed {
				if ipNet.Contains(ip) {
					c.Next()
					return
				}
			}
		}

		logger.Warn("admin request from outside allowlist", zap.String("client_ip", client))
		c.AbortWithStatus(http.StatusForbidden)
	}
}

// ParseRanges parses CIDRs and bare addresses, skipping invalid entries
func ParseRanges(ranges []string, logger *zap.Logger) []*net.IPNet {
	logger = logging.OrNop(logger)
	parsed := make([]*net.IPNet, 0, len(ranges))
	for _, r := range ranges {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		if !strings.Contains(r, "/") {
			if ip := net.ParseIP(r); ip != nil && ip.To4() != nil {
				r += "/32"
			} else {
				r += "/128"
			}
		}
		_, ipNet, err := net.ParseCIDR(r)
		if err != nil {
			logger.Warn("ignoring invalid admin range", zap.String("range", r), zap.Error(err))
			continue
		}
		parsed = append(parsed, ipNet)
	}
	return parsed
}
