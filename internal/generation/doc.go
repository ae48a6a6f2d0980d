// Package generation defines the boundary between the task workflow and the
// AI service that invents distractions. Generator is the contract,
// ParseDistractions is the only path by which model output becomes data, and
// NoopGenerator stands in when no AI service is configured.
package generation
