package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/leondli/npsboard/pkg/response"
)

// handleError maps an application error to the matching HTTP response
func handleError(c *gin.Context, err error) {
	response.HandleError(c, err)
}

// bindJSON decodes the request body, answering 400 on failure
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return false
	}
	return true
}
