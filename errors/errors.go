package errors

import "fmt"

// InvalidHeaderError indicates that a buffer does not start with the binary
// placement magic tag and therefore cannot be decoded.
type InvalidHeaderError struct {
	Magic []byte
}

func (i InvalidHeaderError) Error() string {
	return fmt.Sprintf("invalid header: expected magic \"bnry\", found %q", i.Magic)
}

// TruncatedRecordError indicates that a record array ends before its declared
// record count is satisfied. Records decoded before the truncation point are
// retained.
type TruncatedRecordError struct {
	Section string
	Index   int
	Count   int
}

func (t TruncatedRecordError) Error() string {
	return fmt.Sprintf("%s record %d of %d would read past the end of the buffer", t.Section, t.Index, t.Count)
}

// LodConflictError indicates that a high-detail model already holding a
// low-detail assignment was offered a different one. The original assignment
// is kept.
type LodConflictError struct {
	ModelID      int32
	AssignedID   int32
	AssignedFile string
	ProposedID   int32
	ProposedFile string
}

func (l LodConflictError) Error() string {
	return fmt.Sprintf("model %d already maps to %d (from %s); rejecting %d (from %s)",
		l.ModelID, l.AssignedID, l.AssignedFile, l.ProposedID, l.ProposedFile)
}

// BatchLockedError indicates that another process holds the batch output
// lock. The process holding the lock is present in the PID field.
type BatchLockedError struct {
	PID int
}

func (b BatchLockedError) Error() string {
	return fmt.Sprintf("cannot acquire batch lock, as it is being held by process %d", b.PID)
}
