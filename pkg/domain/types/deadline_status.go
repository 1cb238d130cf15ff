package types

// DeadlineStatus classifies a completion time against the task deadline
type DeadlineStatus string

const (
	DeadlineEarly   DeadlineStatus = "Early"
	DeadlineOnTime  DeadlineStatus = "On Time"
	DeadlineOverdue DeadlineStatus = "Overdue"
)

// OnTime reports whether the completion met its deadline.
func (s DeadlineStatus) OnTime() bool {
	return s != DeadlineOverdue
}

// String returns the string representation of the deadline status
func (s DeadlineStatus) String() string {
	return string(s)
}

// QualityLabel is the human-readable band of an inferred quality score
type QualityLabel string

const (
	QualityStrong     QualityLabel = "Strong"
	QualityAcceptable QualityLabel = "Acceptable"
	QualityRisky      QualityLabel = "Risky"
	QualityUncertain  QualityLabel = "Uncertain"
)

// IsValid checks if the quality label is valid
func (l QualityLabel) IsValid() bool {
	switch l {
	case QualityStrong, QualityAcceptable, QualityRisky, QualityUncertain:
		return true
	default:
		return false
	}
}

// String returns the string representation of the quality label
func (l QualityLabel) String() string {
	return string(l)
}

// LabelForQuality maps a quality score in [0,1] to its band. Scores from
// the deterministic fallback path should use QualityUncertain instead.
func LabelForQuality(q float64) QualityLabel {
	switch {
	case q >= 0.85:
		return QualityStrong
	case q >= 0.6:
		return QualityAcceptable
	default:
		return QualityRisky
	}
}
