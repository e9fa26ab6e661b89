// internal/player/resources.go
package player

import "github.com/jason-s-yu/cattledrive/internal/models"

// ResourceSet is everything a player can spend.
type ResourceSet struct {
	Money          int `yaml:"money" json:"money"`
	Cowboys        int `yaml:"cowboys" json:"cowboys"`
	Builders       int `yaml:"builders" json:"builders"`
	Drivers        int `yaml:"drivers" json:"drivers"`
	Certificates   int `yaml:"certificates" json:"certificates"`
	TemporaryHonor int `yaml:"temporary_honor" json:"temporary_honor"`
}

// Workers returns how many workers of the given type the player has.
func (r ResourceSet) Workers(kind models.WorkerType) int {
	switch kind {
	case models.WorkerCowboy:
		return r.Cowboys
	case models.WorkerBuilder:
		return r.Builders
	case models.WorkerDriver:
		return r.Drivers
	}
	return 0
}

// AddWorker adds n workers of the given type. Unknown types are ignored.
func (r *ResourceSet) AddWorker(kind models.WorkerType, n int) {
	switch kind {
	case models.WorkerCowboy:
		r.Cowboys += n
	case models.WorkerBuilder:
		r.Builders += n
	case models.WorkerDriver:
		r.Drivers += n
	}
}

// TotalWorkers sums all worker types.
func (r ResourceSet) TotalWorkers() int {
	return r.Cowboys + r.Builders + r.Drivers
}
