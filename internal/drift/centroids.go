package drift

import (
	"github.com/seaguard/driftwatch/internal/models"
	"github.com/seaguard/driftwatch/internal/spatial"
)

// ChunkedCentroids splits the pooled samples, in generation order, into
// hours equal chunks and returns the mean position of each chunk. The chunk
// size is floor(len(samples)/hours); trailing samples that do not fill a
// chunk are dropped.
//
// Samples are pooled path by path, so a chunk mixes hours of neighbouring
// paths rather than holding one simulated hour. HourlyCentroids is the
// strict per-hour alternative.
func ChunkedCentroids(samples []models.Position, hours int) []models.Position {
	points := make([]models.Position, 0, max(hours, 0))
	if hours <= 0 {
		return points
	}

	chunkSize := len(samples) / hours
	if chunkSize == 0 {
		return points
	}

	for h := 0; h < hours; h++ {
		c, _ := spatial.Centroid(samples[h*chunkSize : (h+1)*chunkSize])
		points = append(points, c)
	}
	return points
}

// HourlyCentroids returns, for each hour 1..hours, the mean of every path's
// position at that hour.
func HourlyCentroids(paths []models.DriftPath, hours int) []models.Position {
	points := make([]models.Position, 0, max(hours, 0))

	bucket := make([]models.Position, 0, len(paths))
	for h := 1; h <= hours; h++ {
		bucket = bucket[:0]
		for _, path := range paths {
			if h < len(path) {
				bucket = append(bucket, path[h])
			}
		}
		c, ok := spatial.Centroid(bucket)
		if !ok {
			break
		}
		points = append(points, c)
	}
	return points
}
