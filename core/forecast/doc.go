// Package forecast turns a trained predictor into future cycle-usage
// estimates. The forecaster feeds the trailing window of the observed series
// through the model and lets it continue autoregressively over the requested
// horizon.
package forecast
