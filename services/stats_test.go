package services

import (
	"math"
	"testing"
)

func TestSafeMean(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"empty", nil, 0},
		{"simple", []float64{2, 4}, 3},
		{"ignores NaN", []float64{2, math.NaN(), 4}, 3},
		{"ignores Inf", []float64{2, math.Inf(1), 4}, 3},
		{"keeps zero and negative", []float64{-2, 0, 2}, 0},
	}

	for _, tt := range tests {
		got := SafeMean(tt.values)
		if got != tt.want {
			t.Errorf("%s: SafeMean = %v; want %v", tt.name, got, tt.want)
		}
	}
}

func TestPositiveMean(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"empty", nil, 0},
		{"all positive", []float64{2, 4}, 3},
		{"drops zero", []float64{0, 2, 4}, 3},
		{"drops negative", []float64{-5, 2, 4}, 3},
		{"drops NaN", []float64{math.NaN(), 6}, 6},
		{"nothing positive", []float64{0, -1}, 0},
	}

	for _, tt := range tests {
		got := PositiveMean(tt.values)
		if got != tt.want {
			t.Errorf("%s: PositiveMean = %v; want %v", tt.name, got, tt.want)
		}
	}
}

func TestSafeRatio(t *testing.T) {
	if got := SafeRatio(1, 0); got != 0 {
		t.Errorf("division by zero should yield 0, got %v", got)
	}
	if got := SafeRatio(1, 4); got != 0.25 {
		t.Errorf("SafeRatio(1, 4) = %v; want 0.25", got)
	}
	if got := SafeRatio(1, math.NaN()); got != 0 {
		t.Errorf("NaN denominator should yield 0, got %v", got)
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{3.14159, 3.14},
		{1.2345, 1.23},
		{9.876, 9.88},
		{10, 10},
	}

	for _, tt := range tests {
		got := Round2(tt.in)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Round2(%v) = %v; want %v", tt.in, got, tt.want)
		}
	}
}
