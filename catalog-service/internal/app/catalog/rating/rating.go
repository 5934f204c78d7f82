package rating

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	MinSample = 1
	MaxSample = 5
)

// Fold добавляет одну оценку к скользящему среднему
// Среднее округляется до одного знака, половина - от нуля
func Fold(average float64, count int, sample float64) (float64, int) {
	if count < 0 {
		count = 0
	}
	next := count + 1
	mean := (average*float64(count) + sample) / float64(next)
	return round1(mean), next
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// Pipeline - та же арифметика, что и Fold, в виде update pipeline.
// Выполняется одной атомарной операцией над документом, поэтому
// параллельные оценки одного товара не теряются
func Pipeline(sample float64, now time.Time) mongo.Pipeline {
	count := bson.M{"$ifNull": bson.A{"$ratings.count", 0}}
	average := bson.M{"$ifNull": bson.A{"$ratings.average", 0}}
	next := bson.M{"$add": bson.A{count, 1}}

	mean := bson.M{"$divide": bson.A{
		bson.M{"$add": bson.A{bson.M{"$multiply": bson.A{average, count}}, sample}},
		next,
	}}
	// для неотрицательных значений floor(x*10+0.5)/10 совпадает с round1
	rounded := bson.M{"$divide": bson.A{
		bson.M{"$floor": bson.M{"$add": bson.A{bson.M{"$multiply": bson.A{mean, 10}}, 0.5}}},
		10,
	}}

	return mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "ratings.average", Value: rounded},
			{Key: "ratings.count", Value: next},
			{Key: "updatedAt", Value: now},
		}}},
	}
}
