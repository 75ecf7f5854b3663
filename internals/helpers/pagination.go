package helper

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

type Paging struct {
	Skip  int
	Limit int
}

// ResolvePaging reads ?skip= and ?limit= and clamps them.
// A negative skip becomes 0, a non-positive limit falls back to defaultLimit.
func ResolvePaging(c *fiber.Ctx, defaultLimit, maxLimit int) Paging {
	skip, _ := strconv.Atoi(strings.TrimSpace(c.Query("skip", "0")))
	if skip < 0 {
		skip = 0
	}

	limit, err := strconv.Atoi(strings.TrimSpace(c.Query("limit")))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}
	return Paging{Skip: skip, Limit: limit}
}

// QueryBool accepts 1/0, true/false, yes/no. Anything else is def.
func QueryBool(c *fiber.Ctx, key string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(c.Query(key))) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}
