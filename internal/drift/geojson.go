package drift

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/seaguard/driftwatch/internal/models"
)

// Feature kinds of an exported simulation
const (
	FeatureStart     = "start"
	FeaturePredicted = "predicted"
	FeaturePath      = "drift_path"
	FeatureHeatmap   = "heatmap"
)

func toPoint(p models.Position) orb.Point {
	return orb.Point{p.Lng, p.Lat}
}

func toLineString(points []models.Position) orb.LineString {
	ls := make(orb.LineString, 0, len(points))
	for _, p := range points {
		ls = append(ls, toPoint(p))
	}
	return ls
}

// ToFeatureCollection exports a simulation for map display: the start point,
// the predicted track, every sampled path and every heatmap cell
func ToFeatureCollection(sim *models.DriftSimulation) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	start := geojson.NewFeature(toPoint(sim.Start))
	start.Properties["kind"] = FeatureStart
	start.Properties["simulation_id"] = sim.ID
	start.Properties["fisherman_id"] = sim.FishermanID
	start.Properties["search_radius_km"] = sim.SearchRadiusKm
	start.Properties["simulation_hours"] = sim.SimulationHours
	fc.Append(start)

	if len(sim.PredictedPoints) > 0 {
		track := append([]models.Position{sim.Start}, sim.PredictedPoints...)
		predicted := geojson.NewFeature(toLineString(track))
		predicted.Properties["kind"] = FeaturePredicted
		fc.Append(predicted)
	}

	for i, path := range sim.DriftPaths {
		f := geojson.NewFeature(toLineString(path))
		f.Properties["kind"] = FeaturePath
		f.Properties["index"] = i
		fc.Append(f)
	}

	for _, cell := range sim.HeatmapPoints {
		f := geojson.NewFeature(orb.Point{cell.Lng, cell.Lat})
		f.Properties["kind"] = FeatureHeatmap
		f.Properties["intensity"] = cell.Intensity
		fc.Append(f)
	}

	return fc
}
