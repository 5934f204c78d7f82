package service

import "errors"

var (
	// Ошибки бизнес-логики для обработки в handlers
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidReference = errors.New("invalid category reference")
	ErrCategoryCycle    = errors.New("category cannot be its own ancestor")
	ErrDuplicateName    = errors.New("category with this name already exists")
	ErrCategoryNotFound = errors.New("category not found")
	ErrProductNotFound  = errors.New("product not found")
)
