package api

import (
	"net/http"

	"github.com/campus-housing-api/internal/models"
	"github.com/gin-gonic/gin"
)

func respondOK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, models.Envelope{
		Status:  http.StatusOK,
		Message: message,
		Data:    data,
	})
}
