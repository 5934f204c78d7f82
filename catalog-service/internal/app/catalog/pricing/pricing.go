package pricing

import (
	"math"
	"time"

	"storefront/catalog-service/internal/app/catalog/entity"
)

// IsDiscountActive сообщает, действует ли скидка в момент now
// Границы окна включительные, отсутствующая граница не ограничивает
func IsDiscountActive(d entity.Discount, now time.Time) bool {
	if !d.IsActive {
		return false
	}
	if d.StartDate != nil && now.Before(*d.StartDate) {
		return false
	}
	if d.EndDate != nil && now.After(*d.EndDate) {
		return false
	}
	return true
}

// DiscountedPrice вычисляет цену со скидкой; результат не сохраняется и не бывает отрицательным
func DiscountedPrice(price float64, d entity.Discount, now time.Time) float64 {
	if !IsDiscountActive(d, now) {
		return price
	}

	switch d.Type {
	case entity.DiscountFixed:
		return math.Max(0, price-d.Value)
	case entity.DiscountPercentage:
		return math.Max(0, price*(1-d.Value/100))
	default:
		return price
	}
}
