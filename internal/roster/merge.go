package roster

import "tailorshop/internal/model"

// MergeByID resolves partial search results against the canonical roster.
// Hits without a canonical record are dropped, so locally deleted workers stay hidden.
// Canonical fields win, keeping local edits; only fields the canonical record
// lacks are filled from the search hit. Result order follows partial.
func MergeByID(partial, canonical []model.Worker) []model.Worker {
	byID := make(map[string]model.Worker, len(canonical))
	for _, w := range canonical {
		if w.ID != "" {
			byID[w.ID] = w
		}
	}

	out := make([]model.Worker, 0, len(partial))
	seen := make(map[string]struct{}, len(partial))
	for _, p := range partial {
		full, ok := byID[p.ID]
		if !ok {
			continue
		}
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}

		merged := full.Clone()
		fillMissing(&merged, p)
		out = append(out, merged)
	}
	return out
}

func fillMissing(dst *model.Worker, src model.Worker) {
	if dst.Name == "" {
		dst.Name = src.Name
	}
	if dst.Email == "" {
		dst.Email = src.Email
	}
	if dst.Phone == "" {
		dst.Phone = src.Phone
	}
	if dst.Skill == "" {
		dst.Skill = src.Skill
	}
	if dst.Specialization == "" {
		dst.Specialization = src.Specialization
	}
	if dst.Experience == 0 {
		dst.Experience = src.Experience
	}
	if dst.JoinDate == "" {
		dst.JoinDate = src.JoinDate
	}
	if dst.Rating == 0 {
		dst.Rating = src.Rating
	}
	if dst.Performance == 0 {
		dst.Performance = src.Performance
	}
	if dst.AssignedOrders == 0 {
		dst.AssignedOrders = src.AssignedOrders
	}
	if dst.CompletedOrders == 0 {
		dst.CompletedOrders = src.CompletedOrders
	}
	if len(dst.GarmentRates) == 0 && len(src.GarmentRates) > 0 {
		dst.GarmentRates = append([]model.GarmentRate(nil), src.GarmentRates...)
	}
	if dst.Avatar == "" {
		dst.Avatar = src.Avatar
	}
}
