// Package drift predicts where a drifting vessel or person is likely to be
// found once position reports stop.
//
// The model is a Monte Carlo estimator. Each sampled path advances hour by
// hour under a simplified linear drift equation (3.5% wind leeway plus the
// surface current) with per-hour random perturbations of wind and current.
// The hourly positions of all paths are binned into a 0.001° occupancy grid
// to produce a normalized heatmap, averaged into one predicted point per
// hour, and summarized into a circular search radius.
package drift
