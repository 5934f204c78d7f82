package query

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	DefaultSortField = "createdAt"
	DefaultMaxLimit  = 100
	// MaxPage держит skip = (page-1)*limit в пределах int64
	MaxPage = 100000

	SortAsc  = "asc"
	SortDesc = "desc"
)

// Разрешённые поля сортировки
var (
	ProductSortFields  = []string{"name", "price", "createdAt", "updatedAt", "ratings.average"}
	CategorySortFields = []string{"name", "slug", "sortOrder", "isActive", "createdAt", "updatedAt"}
)

// Params - сырые параметры сортировки и пагинации из запроса
type Params struct {
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// Rules - ограничения конкретного листинга
type Rules struct {
	Allowed      []string
	DefaultLimit int
	MaxLimit     int
}

// Plan - детерминированный порядок и окно (skip, limit)
// Limit == 0 означает выборку без окна
type Plan struct {
	Sort  bson.D
	Page  int
	Limit int
	Skip  int64
}

// NewPlan нормализует параметры: неизвестное поле сортировки заменяется на createdAt,
// любое направление кроме asc считается desc, page и limit приводятся к допустимым границам
// Последним ключом всегда добавляется _id в том же направлении
func NewPlan(p Params, r Rules) Plan {
	field := DefaultSortField
	for _, allowed := range r.Allowed {
		if p.SortBy == allowed {
			field = allowed
			break
		}
	}

	direction := -1
	if p.SortOrder == SortAsc {
		direction = 1
	}

	maxLimit := r.MaxLimit
	if maxLimit < 1 {
		maxLimit = DefaultMaxLimit
	}
	defaultLimit := r.DefaultLimit
	if defaultLimit < 1 || defaultLimit > maxLimit {
		defaultLimit = maxLimit
	}

	page := p.Page
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	limit := p.Limit
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return Plan{
		Sort:  withTiebreak(bson.D{{Key: field, Value: direction}}),
		Page:  page,
		Limit: limit,
		Skip:  int64(page-1) * int64(limit),
	}
}

// Ordered - фиксированный порядок без окна (простые списки категорий)
func Ordered(sort bson.D) Plan {
	return Plan{Sort: withTiebreak(sort), Page: 1}
}

// FindOptions переводит план в опции драйвера
func (p Plan) FindOptions() *options.FindOptions {
	opts := options.Find().SetSort(p.Sort)
	if p.Limit > 0 {
		opts.SetSkip(p.Skip).SetLimit(int64(p.Limit))
	}
	return opts
}

func withTiebreak(sort bson.D) bson.D {
	direction := -1
	for _, e := range sort {
		if e.Key == "_id" {
			return sort
		}
	}
	if len(sort) > 0 {
		if d, ok := sort[len(sort)-1].Value.(int); ok {
			direction = d
		}
	}
	out := make(bson.D, 0, len(sort)+1)
	out = append(out, sort...)
	return append(out, bson.E{Key: "_id", Value: direction})
}
