package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

var productRules = Rules{Allowed: ProductSortFields, DefaultLimit: 10, MaxLimit: 100}

func TestNewPlan_Defaults(t *testing.T) {
	plan := NewPlan(Params{}, productRules)

	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}, plan.Sort)
	assert.Equal(t, 1, plan.Page)
	assert.Equal(t, 10, plan.Limit)
	assert.Equal(t, int64(0), plan.Skip)
}

func TestNewPlan_SortField(t *testing.T) {
	tests := []struct {
		name      string
		sortBy    string
		sortOrder string
		want      bson.D
	}{
		{name: "allowed asc", sortBy: "price", sortOrder: "asc", want: bson.D{{Key: "price", Value: 1}, {Key: "_id", Value: 1}}},
		{name: "nested field", sortBy: "ratings.average", sortOrder: "desc", want: bson.D{{Key: "ratings.average", Value: -1}, {Key: "_id", Value: -1}}},
		{name: "unknown field falls back", sortBy: "password", sortOrder: "asc", want: bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}},
		{name: "unknown order is desc", sortBy: "name", sortOrder: "sideways", want: bson.D{{Key: "name", Value: -1}, {Key: "_id", Value: -1}}},
		{name: "category field not allowed for products", sortBy: "sortOrder", want: bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := NewPlan(Params{SortBy: tt.sortBy, SortOrder: tt.sortOrder}, productRules)
			assert.Equal(t, tt.want, plan.Sort)
		})
	}
}

func TestNewPlan_Window(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		limit     int
		wantPage  int
		wantLimit int
		wantSkip  int64
	}{
		{name: "second page", page: 2, limit: 10, wantPage: 2, wantLimit: 10, wantSkip: 10},
		{name: "page clamped", page: -3, limit: 5, wantPage: 1, wantLimit: 5, wantSkip: 0},
		{name: "limit defaulted", page: 3, limit: 0, wantPage: 3, wantLimit: 10, wantSkip: 20},
		{name: "limit capped", page: 2, limit: 1000, wantPage: 2, wantLimit: 100, wantSkip: 100},
		{name: "huge page capped", page: 100000000000000000, limit: 100, wantPage: MaxPage, wantLimit: 100, wantSkip: (MaxPage - 1) * 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := NewPlan(Params{Page: tt.page, Limit: tt.limit}, productRules)
			assert.Equal(t, tt.wantPage, plan.Page)
			assert.Equal(t, tt.wantLimit, plan.Limit)
			assert.Equal(t, tt.wantSkip, plan.Skip)
		})
	}
}

func TestNewPlan_CategoryDefaultLimit(t *testing.T) {
	plan := NewPlan(Params{SortBy: "sortOrder", SortOrder: "asc"}, Rules{Allowed: CategorySortFields, DefaultLimit: 3})

	assert.Equal(t, 3, plan.Limit)
	assert.Equal(t, bson.D{{Key: "sortOrder", Value: 1}, {Key: "_id", Value: 1}}, plan.Sort)
}

func TestOrdered(t *testing.T) {
	plan := Ordered(bson.D{{Key: "sortOrder", Value: 1}, {Key: "createdAt", Value: -1}})

	assert.Equal(t, bson.D{
		{Key: "sortOrder", Value: 1},
		{Key: "createdAt", Value: -1},
		{Key: "_id", Value: -1},
	}, plan.Sort)
	assert.Equal(t, 0, plan.Limit)

	opts := plan.FindOptions()
	assert.Nil(t, opts.Limit)
	assert.Nil(t, opts.Skip)
}

func TestPlan_FindOptions(t *testing.T) {
	plan := NewPlan(Params{Page: 2, Limit: 10}, productRules)
	opts := plan.FindOptions()

	assert.Equal(t, int64(10), *opts.Skip)
	assert.Equal(t, int64(10), *opts.Limit)
	assert.Equal(t, plan.Sort, opts.Sort)
}
