package features

import "fmt"

// Levels is the level-feature record shared by the full-band frame and each
// band.
type Levels struct {
	RMS        float64
	RMSSlowMax float64 // normalization ceiling
	RMSSlow    float64
	RMSMid     float64
	RMSFast    float64

	NormalizedRMS     float64
	NormalizedRMSMid  float64
	NormalizedRMSFast float64

	Peak     float64
	PeakSlow float64
	PeakMid  float64
	PeakFast float64

	NormalizedPeak     float64
	NormalizedPeakMid  float64
	NormalizedPeakFast float64
}

// Field selects one scalar of a Levels record.
type Field int

// Level fields.
const (
	FieldRMS Field = iota
	FieldRMSSlowMax
	FieldRMSSlow
	FieldRMSMid
	FieldRMSFast
	FieldNormalizedRMS
	FieldNormalizedRMSMid
	FieldNormalizedRMSFast
	FieldPeak
	FieldPeakSlow
	FieldPeakMid
	FieldPeakFast
	FieldNormalizedPeak
	FieldNormalizedPeakMid
	FieldNormalizedPeakFast
	numFields
)

var fieldNames = [numFields]string{
	"rms", "rmsSlowMax", "rmsSlow", "rmsMid", "rmsFast",
	"normalizedRms", "normalizedRmsMid", "normalizedRmsFast",
	"peak", "peakSlow", "peakMid", "peakFast",
	"normalizedPeak", "normalizedPeakMid", "normalizedPeakFast",
}

// String returns the field's wire name.
func (f Field) String() string {
	if f < 0 || f >= numFields {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return fieldNames[f]
}

// Ptr returns a pointer to the selected field of l. It panics on an unknown
// field.
func (l *Levels) Ptr(f Field) *float64 {
	switch f {
	case FieldRMS:
		return &l.RMS
	case FieldRMSSlowMax:
		return &l.RMSSlowMax
	case FieldRMSSlow:
		return &l.RMSSlow
	case FieldRMSMid:
		return &l.RMSMid
	case FieldRMSFast:
		return &l.RMSFast
	case FieldNormalizedRMS:
		return &l.NormalizedRMS
	case FieldNormalizedRMSMid:
		return &l.NormalizedRMSMid
	case FieldNormalizedRMSFast:
		return &l.NormalizedRMSFast
	case FieldPeak:
		return &l.Peak
	case FieldPeakSlow:
		return &l.PeakSlow
	case FieldPeakMid:
		return &l.PeakMid
	case FieldPeakFast:
		return &l.PeakFast
	case FieldNormalizedPeak:
		return &l.NormalizedPeak
	case FieldNormalizedPeakMid:
		return &l.NormalizedPeakMid
	case FieldNormalizedPeakFast:
		return &l.NormalizedPeakFast
	default:
		panic(fmt.Sprintf("features: unknown level field %v", f))
	}
}

// Get returns the selected field of l.
func (l *Levels) Get(f Field) float64 { return *l.Ptr(f) }

// Scope is one of the four signal views tracked independently.
type Scope int

// Scopes in frame order.
const (
	ScopeFull Scope = iota
	ScopeBass
	ScopeMid
	ScopeHigh
	numScopes
)

// Scopes lists every scope in frame order.
var Scopes = [numScopes]Scope{ScopeFull, ScopeBass, ScopeMid, ScopeHigh}

// String returns the scope name.
func (s Scope) String() string {
	switch s {
	case ScopeFull:
		return "full"
	case ScopeBass:
		return "bass"
	case ScopeMid:
		return "mid"
	case ScopeHigh:
		return "high"
	default:
		return fmt.Sprintf("Scope(%d)", int(s))
	}
}
