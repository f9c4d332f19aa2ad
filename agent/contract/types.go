package contract

import "time"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether r is a role accepted from the UI.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ModeKey names a persona lens. Membership is decided by the persona registry.
type ModeKey string

const (
	ModeExecutive    ModeKey = "executive"
	ModeDiagnostics  ModeKey = "diagnostics"
	ModeHREnablement ModeKey = "hr_enablement"
	ModeFacilitation ModeKey = "facilitation"
	ModeTraining     ModeKey = "training"
	ModeSalesLight   ModeKey = "sales_light"
)

func (m ModeKey) String() string {
	return string(m)
}

// AgentType selects per-call model settings.
type AgentType string

const (
	AgentTypeReply  AgentType = "reply"
	AgentTypeRouter AgentType = "router"
)

type RouteDecision struct {
	Mode       ModeKey `json:"mode"`
	Confidence float64 `json:"confidence"`
	// Fallback is set when Mode is the registry default rather than a
	// classifier pick.
	Fallback bool `json:"-"`
}

type FormattedReply struct {
	Text         string  `json:"text"`
	CTARequested bool    `json:"cta_requested"`
	Mode         ModeKey `json:"mode,omitempty"`
	Fallback     bool    `json:"fallback,omitempty"`
}

type InquiryEvent struct {
	RequestID string
	Mode      ModeKey
	Keyword   string
	CreatedAt time.Time
}
