package pricing

import (
	"testing"
	"time"

	"storefront/catalog-service/internal/app/catalog/entity"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

var now = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func at(offset time.Duration) *time.Time {
	t := now.Add(offset)
	return &t
}

func TestDiscountedPrice(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		discount entity.Discount
		want     float64
	}{
		{
			name:     "inactive discount",
			price:    200,
			discount: entity.Discount{Type: entity.DiscountPercentage, Value: 50},
			want:     200,
		},
		{
			name:     "percentage",
			price:    200,
			discount: entity.Discount{Type: entity.DiscountPercentage, Value: 25, IsActive: true},
			want:     150,
		},
		{
			name:     "fixed",
			price:    200,
			discount: entity.Discount{Type: entity.DiscountFixed, Value: 30, IsActive: true},
			want:     170,
		},
		{
			name:     "fixed floors at zero",
			price:    20,
			discount: entity.Discount{Type: entity.DiscountFixed, Value: 30, IsActive: true},
			want:     0,
		},
		{
			name:     "percentage above hundred floors at zero",
			price:    20,
			discount: entity.Discount{Type: entity.DiscountPercentage, Value: 150, IsActive: true},
			want:     0,
		},
		{
			name:     "not started yet",
			price:    100,
			discount: entity.Discount{Type: entity.DiscountFixed, Value: 10, IsActive: true, StartDate: at(time.Hour)},
			want:     100,
		},
		{
			name:     "already ended",
			price:    100,
			discount: entity.Discount{Type: entity.DiscountFixed, Value: 10, IsActive: true, EndDate: at(-time.Hour)},
			want:     100,
		},
		{
			name:  "inside window",
			price: 100,
			discount: entity.Discount{
				Type: entity.DiscountPercentage, Value: 10, IsActive: true,
				StartDate: at(-time.Hour), EndDate: at(time.Hour),
			},
			want: 90,
		},
		{
			name:     "window bounds are inclusive",
			price:    100,
			discount: entity.Discount{Type: entity.DiscountFixed, Value: 10, IsActive: true, StartDate: at(0), EndDate: at(0)},
			want:     90,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, DiscountedPrice(tt.price, tt.discount, now), 1e-9)
		})
	}
}

func TestProperty_DiscountedPrice(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("inactive or out-of-window discount leaves price unchanged", prop.ForAll(
		func(price, value float64, fixed bool, shiftHours int) bool {
			d := entity.Discount{Type: entity.DiscountPercentage, Value: value, IsActive: true}
			if fixed {
				d.Type = entity.DiscountFixed
			}
			if shiftHours > 0 {
				d.StartDate = at(time.Duration(shiftHours) * time.Hour)
			} else {
				d.EndDate = at(time.Duration(shiftHours-1) * time.Hour)
			}

			inactive := d
			inactive.IsActive = false
			inactive.StartDate, inactive.EndDate = nil, nil

			return DiscountedPrice(price, d, now) == price && DiscountedPrice(price, inactive, now) == price
		},
		gen.Float64Range(0, 1e6),
		gen.Float64Range(0, 1e3),
		gen.Bool(),
		gen.IntRange(-100, 100),
	))

	properties.Property("fixed discount is max(0, price-value)", prop.ForAll(
		func(price, value float64) bool {
			got := DiscountedPrice(price, entity.Discount{Type: entity.DiscountFixed, Value: value, IsActive: true}, now)
			if value >= price {
				return got == 0
			}
			return got == price-value
		},
		gen.Float64Range(0, 1e6),
		gen.Float64Range(0, 1e6),
	))

	properties.Property("active discount never raises the price", prop.ForAll(
		func(price, value float64) bool {
			got := DiscountedPrice(price, entity.Discount{Type: entity.DiscountPercentage, Value: value, IsActive: true}, now)
			return got >= 0 && got <= price
		},
		gen.Float64Range(0, 1e6),
		gen.Float64Range(0, 1e3),
	))

	properties.TestingRun(t)
}
