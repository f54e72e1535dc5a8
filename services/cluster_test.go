package services

import (
	"math/rand"
	"testing"

	"brand-intel/models"
)

func TestClusterEmptyInput(t *testing.T) {
	c := NewClustererWithSeed(1)
	if got := c.Cluster(nil, 3); got != nil {
		t.Errorf("expected nil for empty input, got %v", got)
	}
}

func TestClusterLabelsInRange(t *testing.T) {
	c := NewClustererWithSeed(1)
	rng := rand.New(rand.NewSource(2))

	points := make([]models.Point, 100)
	for i := range points {
		points[i] = models.Point{Weight: rng.Float64() * 1000, Price: rng.Float64() * 20}
	}

	clustered := c.Cluster(points, 3)
	if len(clustered) != len(points) {
		t.Fatalf("expected %d labeled points, got %d", len(points), len(clustered))
	}
	for _, p := range clustered {
		if p.Cluster < 0 || p.Cluster >= 3 {
			t.Fatalf("label %d out of range [0, 3)", p.Cluster)
		}
	}
}

func TestClusterClampsK(t *testing.T) {
	c := NewClustererWithSeed(1)
	points := []models.Point{{Weight: 1, Price: 1}, {Weight: 2, Price: 2}}

	clustered := c.Cluster(points, 10)
	for _, p := range clustered {
		if p.Cluster < 0 || p.Cluster >= len(points) {
			t.Fatalf("label %d out of clamped range [0, %d)", p.Cluster, len(points))
		}
	}
}

func TestClusterDefaultK(t *testing.T) {
	c := NewClustererWithSeed(4)
	points := make([]models.Point, 30)
	for i := range points {
		points[i] = models.Point{Weight: float64(i * 10), Price: float64(i)}
	}

	clustered := c.Cluster(points, 0)
	for _, p := range clustered {
		if p.Cluster < 0 || p.Cluster >= 3 {
			t.Fatalf("default k should be 3, got label %d", p.Cluster)
		}
	}
}

func TestClusterSeparatesDistantGroups(t *testing.T) {
	c := NewClustererWithSeed(7)

	var points []models.Point
	for i := 0; i < 20; i++ {
		points = append(points, models.Point{Weight: 100 + float64(i), Price: 2})
	}
	for i := 0; i < 20; i++ {
		points = append(points, models.Point{Weight: 5000 + float64(i), Price: 40})
	}

	clustered := c.Cluster(points, 2)

	low := clustered[0].Cluster
	for _, p := range clustered[:20] {
		if p.Cluster != low {
			t.Fatal("low group split across clusters")
		}
	}
	high := clustered[20].Cluster
	if high == low {
		t.Fatal("distant groups landed in the same cluster")
	}
	for _, p := range clustered[20:] {
		if p.Cluster != high {
			t.Fatal("high group split across clusters")
		}
	}
}

func TestPricePoints(t *testing.T) {
	records := []*models.ProductRecord{
		{Grammage: 500, PriceAfter: 4.5},
		{Grammage: 1000, PriceAfter: 9},
	}

	points := PricePoints(records)
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	if points[0].Weight != 500 || points[0].Price != 4.5 {
		t.Errorf("point 0 = %+v; want {500 4.5}", points[0])
	}
}
