package types

// ReportStatus is a lifecycle tag on a status report. Manual reports carry
// ReportStatusNone; synthetic on-duty reports mirror their owning task.
type ReportStatus string

const (
	ReportStatusNone       ReportStatus = "none"
	ReportStatusInProgress ReportStatus = "in-progress"
	ReportStatusCompleted  ReportStatus = "completed"
)

// MirrorTaskStatus returns the report status mirroring a task status
func MirrorTaskStatus(s TaskStatus) ReportStatus {
	return ReportStatus(s.Normalize())
}

// Normalize returns the status, treating empty as ReportStatusNone
func (s ReportStatus) Normalize() ReportStatus {
	if s == "" {
		return ReportStatusNone
	}
	return s
}

// String returns the string representation of the report status
func (s ReportStatus) String() string {
	return string(s)
}
