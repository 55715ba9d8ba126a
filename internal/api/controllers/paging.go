package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"petromart/pkg/utils"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

func parsePaging(c *gin.Context) (int, int, error) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 0, 0, utils.ErrInvalidPage
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	if err != nil || pageSize < 1 || pageSize > maxPageSize {
		return 0, 0, utils.ErrInvalidPageSize
	}
	return page, pageSize, nil
}
