package domain

// AnalyticsEvent is a category/action pair reported to the analytics collaborator
type AnalyticsEvent struct {
	Category string `json:"category"`
	Action   string `json:"action"`
}

var (
	EventMessageSent     = AnalyticsEvent{Category: "Message", Action: "Sent Message"}
	EventEstimatePressed = AnalyticsEvent{Category: "Estimate", Action: "Contact Page Pressed"}
)
