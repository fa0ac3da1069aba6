package server

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"
)

// authorize accepts either the cron bearer secret or the operator's
// manual query key, and reports which trigger matched. Comparison is
// constant-time, and an unconfigured secret never matches anything.
func (s *Server) authorize(c *gin.Context) (trigger string, ok bool) {
	if token, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer "); found {
		if secretEqual(token, s.cfg.CronSecret) {
			return "cron", true
		}
	}

	if key := c.Query("key"); key != "" && secretEqual(key, s.cfg.ManualKey) {
		return "manual", true
	}

	return "", false
}

func secretEqual(given, want string) bool {
	if want == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(given), []byte(want)) == 1
}
