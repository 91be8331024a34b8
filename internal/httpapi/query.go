package httpapi

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gparth254/meet-ai/internal/apperr"
)

// intQuery returns the integer query parameter, or 0 when absent.
func intQuery(c *gin.Context, name string) (int, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.BadRequest(name + " must be an integer")
	}
	return v, nil
}

func optionalQuery(c *gin.Context, name string) *string {
	raw, ok := c.GetQuery(name)
	if !ok {
		return nil
	}
	return &raw
}

func pageQuery(c *gin.Context) (page, pageSize int, err error) {
	if page, err = intQuery(c, "page"); err != nil {
		return 0, 0, err
	}
	if pageSize, err = intQuery(c, "pageSize"); err != nil {
		return 0, 0, err
	}
	return page, pageSize, nil
}

func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return apperr.BadRequest("Invalid request body")
	}
	return nil
}
