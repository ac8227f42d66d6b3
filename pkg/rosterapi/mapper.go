package rosterapi

import (
	"math"
	"strings"

	"tailorshop/internal/model"
)

const (
	maxRating      = 5.0
	maxPerformance = 100
)

// ToWorker maps a wire record into the internal worker shape.
// workerId wins over id, contactNumber over phone, workType over skill, ratings over rating.
func ToWorker(p WorkerPayload) model.Worker {
	w := model.Worker{
		ID:              firstNonEmpty(string(p.WorkerID), string(p.ID)),
		Name:            strings.TrimSpace(p.Name),
		Email:           p.Email,
		Phone:           firstNonEmpty(p.ContactNumber, p.Phone),
		Skill:           firstNonEmpty(p.WorkType, p.Skill),
		Specialization:  p.Specialization,
		Experience:      toInt(p.Experience),
		JoinDate:        p.JoinDate,
		Status:          model.ParseWorkerStatus(p.Status),
		AssignedOrders:  toInt(p.AssignedOrders),
		CompletedOrders: toInt(p.CompletedOrders),
		Performance:     clampInt(toInt(p.Performance), 0, maxPerformance),
		Avatar:          firstNonEmpty(p.Avatar, p.Photo),
	}

	switch {
	case p.Ratings != nil:
		w.Rating = clampFloat(float64(*p.Ratings), 0, maxRating)
	case p.Rating != nil:
		w.Rating = clampFloat(float64(*p.Rating), 0, maxRating)
	}

	entries := p.GarmentRates
	if len(entries) == 0 {
		entries = p.GarmentTypes
	}
	w.GarmentRates = toGarmentRates(entries)

	return w
}

// ToWorkers maps a list of wire records
func ToWorkers(payloads []WorkerPayload) []model.Worker {
	workers := make([]model.Worker, 0, len(payloads))
	for _, p := range payloads {
		workers = append(workers, ToWorker(p))
	}
	return workers
}

// ToCreatePayload maps a create request onto the wire shape without touching the input
func ToCreatePayload(req *model.CreateWorkerRequest) CreateWorkerPayload {
	rates := make([]GarmentRatePlain, 0, len(req.GarmentRates))
	for _, r := range req.GarmentRates {
		rates = append(rates, GarmentRatePlain{GarmentType: r.GarmentType, Rate: r.Rate})
	}
	status := req.Status
	if status == "" {
		status = model.WorkerStatusActive
	}
	return CreateWorkerPayload{
		Name:           strings.TrimSpace(req.Name),
		Email:          strings.TrimSpace(req.Email),
		ContactNumber:  strings.TrimSpace(req.Phone),
		WorkType:       req.Skill,
		Specialization: req.Specialization,
		Experience:     req.Experience,
		JoinDate:       req.JoinDate,
		Status:         string(status),
		GarmentRates:   rates,
		Avatar:         req.Avatar,
	}
}

// toGarmentRates keeps the first entry per garment type and drops entries without a
// type or with a non-positive rate, so the per-worker uniqueness invariant holds
func toGarmentRates(entries []GarmentRateEntry) []model.GarmentRate {
	if len(entries) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(entries))
	rates := make([]model.GarmentRate, 0, len(entries))
	for _, e := range entries {
		garment := strings.TrimSpace(firstNonEmpty(e.GarmentType, e.Type))
		rate := float64(e.Rate)
		if garment == "" || !(rate > 0) || math.IsInf(rate, 0) {
			continue
		}
		key := strings.ToLower(garment)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		rates = append(rates, model.GarmentRate{GarmentType: garment, Rate: rate})
	}
	return rates
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

func toInt(f flexNumber) int {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int(math.Round(v))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
