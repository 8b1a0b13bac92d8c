package domain

// Scenario difficulty tiers, ordered roughly by challenge.
const (
	DifficultyBeginner = "beginner"
	DifficultyMedium   = "medium"
	DifficultyHard     = "hard"
	DifficultyAdvanced = "advanced"
)

// Scenario describes one built-in practice scenario offered to clients.
type Scenario struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Duration    int    `json:"duration"`
	Difficulty  string `json:"difficulty"`
	Color       string `json:"color"`
}

// BuiltinScenarios is the practice catalog served by GET /scenarios.
// Duration is the suggested session length in minutes; Color is a hex
// accent used by the client.
var BuiltinScenarios = []Scenario{
	{Title: "Annual Salary Raise", Description: "Negotiate a 20% raise with your manager.", Icon: "dollarsign.circle", Duration: 15, Difficulty: DifficultyMedium, Color: "14b8a6"},
	{Title: "Promotion Discussion", Description: "Transition from Senior Dev to Lead.", Icon: "briefcase", Duration: 20, Difficulty: DifficultyMedium, Color: "a855f7"},
	{Title: "Client Rate Increase", Description: "Convince a legacy client to accept new rates.", Icon: "person.2", Duration: 18, Difficulty: DifficultyHard, Color: "f59e0b"},
	{Title: "Entry-Level Offer", Description: "First job offer negotiation.", Icon: "doc.text", Duration: 12, Difficulty: DifficultyBeginner, Color: "06b6d4"},
	{Title: "Project Timeline", Description: "Push back on an impossible deadline.", Icon: "clock", Duration: 10, Difficulty: DifficultyAdvanced, Color: "ef4444"},
	{Title: "Vendor Contract", Description: "Negotiate software licensing costs.", Icon: "shippingbox", Duration: 14, Difficulty: DifficultyMedium, Color: "14b8a6"},
}
