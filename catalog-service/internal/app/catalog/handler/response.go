package handler

import (
	"errors"
	"net/http"

	"storefront/catalog-service/internal/app/catalog/entity"
	"storefront/catalog-service/internal/app/catalog/service"
	"storefront/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// respondError переводит ошибку сервиса в HTTP статус и общий конверт
// Неизвестные ошибки считаются сбоем хранилища: 500 с исходным текстом в поле error
func respondError(c *gin.Context, err error, failure string) {
	switch {
	case errors.Is(err, service.ErrCategoryNotFound):
		c.JSON(http.StatusNotFound, entity.Response{Success: false, Message: "Category not found"})
	case errors.Is(err, service.ErrProductNotFound):
		c.JSON(http.StatusNotFound, entity.Response{Success: false, Message: "Product not found"})
	case errors.Is(err, service.ErrDuplicateName),
		errors.Is(err, service.ErrInvalidReference),
		errors.Is(err, service.ErrCategoryCycle),
		errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, entity.Response{Success: false, Message: err.Error()})
	default:
		logger.Error().
			Err(err).
			Str("request_id", c.GetString(logger.RequestIDKey)).
			Str("route", c.FullPath()).
			Msg(failure)
		c.JSON(http.StatusInternalServerError, entity.Response{
			Success: false,
			Message: failure,
			Error:   err.Error(),
		})
	}
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, entity.Response{Success: false, Message: message})
}

// parseObjectID проверяет параметр пути до обращения к сервису
func parseObjectID(c *gin.Context, param, label string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(param))
	if err != nil {
		badRequest(c, "Invalid "+label+" ID")
		return primitive.NilObjectID, false
	}
	return id, true
}

func (h *CatalogHandler) bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		badRequest(c, "Invalid request body")
		return false
	}
	if err := h.validator.Struct(req); err != nil {
		badRequest(c, formatValidationError(err))
		return false
	}
	return true
}

func (h *CatalogHandler) bindQuery(c *gin.Context, q interface{}) bool {
	if err := c.ShouldBindQuery(q); err != nil {
		badRequest(c, "Invalid query parameters")
		return false
	}
	if err := h.validator.Struct(q); err != nil {
		badRequest(c, formatValidationError(err))
		return false
	}
	return true
}

func formatValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fieldError := range validationErrors {
			return fieldError.Field() + " is " + fieldError.Tag()
		}
	}
	return "Validation failed"
}

func countOf(n int) *int {
	return &n
}
