package util

import "math"

// dot product of two float32 vectors of equal length
func Dot(v1, v2 []float32) float32 {
	sum := float32(0.0)
	for i, d := range v1 {
		sum += d * v2[i]
	}
	return sum
}

// float32 vector summation
func Float32VectorSum(data []float32) float32 {
	sum := float32(0.0)
	for _, d := range data {
		sum += d
	}
	return sum
}

// CosineSimilarity returns the cosine of the angle between v1 and v2,
// or 0 if either vector has zero magnitude.
func CosineSimilarity(v1, v2 []float32) float64 {
	var dot, mag1, mag2 float64
	for i := range v1 {
		dot += float64(v1[i]) * float64(v2[i])
		mag1 += float64(v1[i]) * float64(v1[i])
		mag2 += float64(v2[i]) * float64(v2[i])
	}
	if mag1 == 0 || mag2 == 0 {
		return 0.0
	}
	return dot / (math.Sqrt(mag1) * math.Sqrt(mag2))
}
