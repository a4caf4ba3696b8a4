package router

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"luxury-yachts-api/internal/transport/http/ez"
)

func pathID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, ez.BadRequest("Invalid id")
	}
	return id, nil
}

func isDupKey(err error) bool {
	// Driver-agnostic: gorm.ErrDuplicatedKey is not raised by every dialect.
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation")
}
