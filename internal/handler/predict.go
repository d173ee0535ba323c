package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"realty/internal/model"
	"realty/internal/service"

	"github.com/gin-gonic/gin"
)

// PredictService prices a submitted form
type PredictService interface {
	Predict(ctx context.Context, fields map[string]string) (*model.PredictionResult, []string, error)
}

// PredictHandler handles prediction requests
type PredictHandler struct {
	predictService PredictService
}

// NewPredictHandler creates a new predict handler
func NewPredictHandler(predictService PredictService) *PredictHandler {
	return &PredictHandler{
		predictService: predictService,
	}
}

// Predict handles POST /api/v1/predict. The body may be a form or a JSON
// object of field -> value.
func (h *PredictHandler) Predict(c *gin.Context) {
	fields, err := bindFields(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	result, problems, err := h.predictService.Predict(c.Request.Context(), fields)
	if err != nil {
		var inf *service.InferenceError
		if errors.As(err, &inf) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": inf.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Prediction failed: " + err.Error()})
		return
	}
	if len(problems) > 0 {
		c.JSON(http.StatusUnprocessableEntity, model.PredictResponse{Errors: problems})
		return
	}

	c.JSON(http.StatusOK, model.PredictResponse{Result: result})
}

// bindFields reads the request body as flat string fields
func bindFields(c *gin.Context) (map[string]string, error) {
	fields := map[string]string{}

	if strings.HasPrefix(c.ContentType(), "application/json") {
		dec := json.NewDecoder(c.Request.Body)
		dec.UseNumber()
		var raw map[string]any
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		for k, v := range raw {
			switch t := v.(type) {
			case nil:
				fields[k] = ""
			case string:
				fields[k] = t
			case json.Number:
				fields[k] = t.String()
			case bool, float64:
				fields[k] = fmt.Sprint(t)
			default:
				return nil, fmt.Errorf("field %q must be a string or number", k)
			}
		}
		return fields, nil
	}

	if err := c.Request.ParseForm(); err != nil {
		return nil, err
	}
	for k, v := range c.Request.PostForm {
		if len(v) > 0 {
			fields[k] = v[0]
		}
	}
	return fields, nil
}
