package dto

// SubmitRequest describes a reason-bearing workflow request: cancel,
// return, or dispute.
type SubmitRequest struct {
	Entity   string `json:"entity"`
	EntityID int64  `json:"entity_id"`
	Kind     string `json:"kind"`
	Reason   string `json:"reason"`
}

// RequestResponse carries the entity snapshot after the request was
// processed. Exactly one of the fields is set.
type RequestResponse struct {
	Order     *OrderResponse     `json:"order,omitempty"`
	Milestone *MilestoneResponse `json:"milestone,omitempty"`
}
