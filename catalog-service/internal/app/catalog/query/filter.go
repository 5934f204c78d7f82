package query

import (
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NullParent - значение параметра parentCategory, выбирающее категории верхнего уровня
const NullParent = "null"

// Predicate - упорядоченный набор условий, объединяемых через AND
// Каждая опция фильтра добавляет не больше одного условия, поэтому
// расширение набора опций никогда не расширяет выборку
type Predicate struct {
	clauses []bson.M
}

func (p Predicate) with(clause bson.M) Predicate {
	clauses := make([]bson.M, len(p.clauses), len(p.clauses)+1)
	copy(clauses, p.clauses)
	return Predicate{clauses: append(clauses, clause)}
}

// Document собирает фильтр для Find/CountDocuments
func (p Predicate) Document() bson.M {
	switch len(p.clauses) {
	case 0:
		return bson.M{}
	case 1:
		return p.clauses[0]
	default:
		and := make(bson.A, 0, len(p.clauses))
		for _, c := range p.clauses {
			and = append(and, c)
		}
		return bson.M{"$and": and}
	}
}

// CategoryFilter - допустимые опции фильтрации категорий
type CategoryFilter struct {
	Search         *string // регистронезависимый поиск по name и description
	IsActive       *bool
	ParentCategory *string // ObjectID или NullParent; некорректный id игнорируется
}

func (f CategoryFilter) Build() Predicate {
	var p Predicate

	if f.Search != nil && strings.TrimSpace(*f.Search) != "" {
		pattern := literal(*f.Search)
		p = p.with(bson.M{"$or": bson.A{
			bson.M{"name": pattern},
			bson.M{"description": pattern},
		}})
	}

	if f.IsActive != nil {
		p = p.with(bson.M{"isActive": *f.IsActive})
	}

	if f.ParentCategory != nil {
		if *f.ParentCategory == NullParent {
			p = p.with(bson.M{"parentCategory": nil})
		} else if oid, err := primitive.ObjectIDFromHex(*f.ParentCategory); err == nil {
			p = p.with(bson.M{"parentCategory": oid})
		}
	}

	return p
}

// ProductFilter - допустимые опции фильтрации товаров
type ProductFilter struct {
	Search   *string // $text по индексу name+description
	Category *string
	Brand    *string // частичное совпадение без учёта регистра
	InStock  *bool
	Tags     []string // пересечение множеств
	MinPrice *float64
	MaxPrice *float64
}

func (f ProductFilter) Build() Predicate {
	var p Predicate

	if f.Search != nil && strings.TrimSpace(*f.Search) != "" {
		p = p.with(bson.M{"$text": bson.M{"$search": *f.Search}})
	}

	if f.Category != nil {
		if oid, err := primitive.ObjectIDFromHex(*f.Category); err == nil {
			p = p.with(bson.M{"category": oid})
		}
	}

	if f.Brand != nil && *f.Brand != "" {
		p = p.with(bson.M{"brand": literal(*f.Brand)})
	}

	if f.InStock != nil {
		p = p.with(bson.M{"inStock": *f.InStock})
	}

	if len(f.Tags) > 0 {
		p = p.with(bson.M{"tags": bson.M{"$in": f.Tags}})
	}

	if f.MinPrice != nil || f.MaxPrice != nil {
		bounds := bson.M{}
		if f.MinPrice != nil {
			bounds["$gte"] = *f.MinPrice
		}
		if f.MaxPrice != nil {
			bounds["$lte"] = *f.MaxPrice
		}
		p = p.with(bson.M{"price": bounds})
	}

	return p
}

// DiscountedFilter выбирает товары со скидкой, действующей в момент now
// Отсутствующая граница окна считается открытой
func DiscountedFilter(now time.Time) Predicate {
	var p Predicate
	p = p.with(bson.M{"discount.isActive": true})
	p = p.with(bson.M{"$or": bson.A{
		bson.M{"discount.startDate": nil},
		bson.M{"discount.startDate": bson.M{"$lte": now}},
	}})
	p = p.with(bson.M{"$or": bson.A{
		bson.M{"discount.endDate": nil},
		bson.M{"discount.endDate": bson.M{"$gte": now}},
	}})
	return p
}

// literal экранирует пользовательский ввод, чтобы он совпадал как подстрока, а не как regex
func literal(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}
