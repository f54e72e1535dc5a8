package services

import (
	"math"
	"math/rand"
	"time"

	"brand-intel/models"
)

const (
	maxKMeansIterations = 10
	// centroidTolerance is the per-dimension movement below which a
	// centroid counts as converged.
	centroidTolerance = 0.1
)

// Clusterer segments products into tiers by k-means over weight-price space.
// Production use keeps true randomness; tests pass a fixed seed.
type Clusterer struct {
	rng *rand.Rand
}

func NewClusterer() *Clusterer {
	return NewClustererWithSeed(time.Now().UnixNano())
}

func NewClustererWithSeed(seed int64) *Clusterer {
	return &Clusterer{rng: rand.New(rand.NewSource(seed))}
}

// Cluster assigns every point a cluster label in [0, k). Centroids are
// seeded from k random data points and refined for up to 10 rounds; the
// final pass re-labels all points against the converged centroids.
// Empty input returns nil; k is clamped to the point count so small
// datasets degrade to one cluster per point instead of duplicate centroids.
func (c *Clusterer) Cluster(points []models.Point, k int) []models.ClusteredPoint {
	if len(points) == 0 {
		return nil
	}
	if k <= 0 {
		k = 3
	}
	if k > len(points) {
		k = len(points)
	}

	centroids := make([]models.Point, k)
	for i := range centroids {
		centroids[i] = points[c.rng.Intn(len(points))]
	}

	for iter := 0; iter < maxKMeansIterations; iter++ {
		sums := make([]models.Point, k)
		counts := make([]int, k)
		for _, p := range points {
			idx := nearestCentroid(p, centroids)
			sums[idx].Weight += p.Weight
			sums[idx].Price += p.Price
			counts[idx]++
		}

		moved := false
		for i := range centroids {
			if counts[i] == 0 {
				continue
			}
			next := models.Point{
				Weight: sums[i].Weight / float64(counts[i]),
				Price:  sums[i].Price / float64(counts[i]),
			}
			if math.Abs(next.Weight-centroids[i].Weight) > centroidTolerance ||
				math.Abs(next.Price-centroids[i].Price) > centroidTolerance {
				moved = true
			}
			centroids[i] = next
		}
		if !moved {
			break
		}
	}

	clustered := make([]models.ClusteredPoint, len(points))
	for i, p := range points {
		clustered[i] = models.ClusteredPoint{Point: p, Cluster: nearestCentroid(p, centroids)}
	}
	return clustered
}

func nearestCentroid(p models.Point, centroids []models.Point) int {
	best := 0
	bestDist := math.Inf(1)
	for i, c := range centroids {
		d := math.Hypot(p.Weight-c.Weight, p.Price-c.Price)
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

// PricePoints projects records into weight-price space for clustering.
func PricePoints(records []*models.ProductRecord) []models.Point {
	points := make([]models.Point, 0, len(records))
	for _, r := range records {
		points = append(points, models.Point{Weight: r.Grammage, Price: r.PriceAfter})
	}
	return points
}
