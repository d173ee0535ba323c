package handler

import (
	"net/http"

	"realty/internal/model"
	"realty/internal/service"

	"github.com/gin-gonic/gin"
)

// SchemaHandler serves the prediction form schema
type SchemaHandler struct {
	schema service.SchemaProvider
}

// NewSchemaHandler creates a new schema handler
func NewSchemaHandler(schema service.SchemaProvider) *SchemaHandler {
	return &SchemaHandler{
		schema: schema,
	}
}

// Get handles GET /api/v1/schema
func (h *SchemaHandler) Get(c *gin.Context) {
	columns, err := h.schema.ExpectedColumns()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	allowed, err := h.schema.AllowedValues()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	hints, err := h.schema.NumericHints()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, model.SchemaResponse{
		ExpectedColumns: columns,
		AllowedValues:   allowed,
		NumericHints:    hints,
	})
}
