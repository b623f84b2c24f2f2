package design

// WarningCode classifies a non-fatal advisory.
type WarningCode string

const (
	WarnCodeConservatism  WarningCode = "CODE_CONSERVATISM"
	WarnMagnification     WarningCode = "MOMENT_MAGNIFICATION"
	WarnCoverRaised       WarningCode = "COVER_RAISED"
	WarnLowAxial          WarningCode = "LOW_AXIAL_LOAD"
	WarnMinimumSteel      WarningCode = "MINIMUM_STEEL"
	WarnDoublyReinforced  WarningCode = "DOUBLY_REINFORCED"
	WarnStirrups          WarningCode = "STIRRUPS"
	WarnPartialContact    WarningCode = "PARTIAL_CONTACT"
	WarnLayout            WarningCode = "LAYOUT"
	WarnTransitionSection WarningCode = "TRANSITION_SECTION"
)

// Warning is an advisory attached to a result.
type Warning struct {
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`
}

func (w Warning) String() string {
	return string(w.Code) + ": " + w.Message
}
