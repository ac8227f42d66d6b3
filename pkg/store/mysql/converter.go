package mysql

import (
	domain "tailorshop/internal/model"
	"tailorshop/pkg/store/mysql/model"
)

// ToWorkerDomain converts MySQL Worker to domain Worker model
func ToWorkerDomain(w *model.Worker) *domain.Worker {
	if w == nil {
		return nil
	}

	var rates []domain.GarmentRate
	if len(w.GarmentRates) > 0 {
		rates = make([]domain.GarmentRate, 0, len(w.GarmentRates))
		for _, r := range w.GarmentRates {
			rates = append(rates, domain.GarmentRate{GarmentType: r.GarmentType, Rate: r.Rate})
		}
	}

	return &domain.Worker{
		ID:              w.WorkerID,
		Name:            w.Name,
		Email:           w.Email,
		Phone:           w.ContactNumber,
		Skill:           w.WorkType,
		Specialization:  w.Specialization,
		Experience:      w.Experience,
		JoinDate:        w.JoinDate,
		Status:          domain.ParseWorkerStatus(w.Status),
		AssignedOrders:  w.AssignedOrders,
		CompletedOrders: w.CompletedOrders,
		Rating:          w.Ratings,
		Performance:     w.Performance,
		GarmentRates:    rates,
		Avatar:          w.Avatar,
	}
}

// ToWorkersDomain converts a list of MySQL workers
func ToWorkersDomain(workers []*model.Worker) []domain.Worker {
	out := make([]domain.Worker, 0, len(workers))
	for _, w := range workers {
		if d := ToWorkerDomain(w); d != nil {
			out = append(out, *d)
		}
	}
	return out
}

// FromWorkerDomain converts domain Worker model to MySQL Worker
func FromWorkerDomain(w *domain.Worker) *model.Worker {
	if w == nil {
		return nil
	}

	rates := make(model.JSONGarmentRates, 0, len(w.GarmentRates))
	for _, r := range w.GarmentRates {
		rates = append(rates, model.GarmentRate{GarmentType: r.GarmentType, Rate: r.Rate})
	}

	status := w.Status
	if status == "" {
		status = domain.WorkerStatusActive
	}

	return &model.Worker{
		WorkerID:        w.ID,
		Name:            w.Name,
		Email:           w.Email,
		ContactNumber:   w.Phone,
		WorkType:        w.Skill,
		Specialization:  w.Specialization,
		Experience:      w.Experience,
		JoinDate:        w.JoinDate,
		Status:          string(status),
		AssignedOrders:  w.AssignedOrders,
		CompletedOrders: w.CompletedOrders,
		Ratings:         w.Rating,
		Performance:     w.Performance,
		GarmentRates:    rates,
		Avatar:          w.Avatar,
	}
}
