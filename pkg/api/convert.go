package api

import (
	"time"

	"github.com/opencontainers/go-digest"

	"github.com/iudanet/savesync/internal/crdt"
	"github.com/iudanet/savesync/internal/engine"
	"github.com/iudanet/savesync/internal/errs"
	"github.com/iudanet/savesync/internal/models"
)

// FromRecord converts a domain record into its wire form
func FromRecord(r *models.SaveRecord) SaveRecord {
	return SaveRecord{
		DeviceID:    r.DeviceID,
		Key:         r.Key,
		Checksum:    r.Checksum.String(),
		VectorClock: r.Clock.Text(),
		Payload:     r.Payload,
		Timestamp:   r.Timestamp.Unix(),
		Deleted:     r.Deleted,
	}
}

// ToRecord converts a wire record into a domain record.
// The clock is validated (MALFORMED_CLOCK); the checksum is not verified here:
// verification happens when the record enters a replica store.
func ToRecord(r SaveRecord) (*models.SaveRecord, error) {
	clock, err := crdt.ParseClock(r.VectorClock)
	if err != nil {
		return nil, errs.As(err).With("key", r.Key).With("device_id", r.DeviceID)
	}

	return &models.SaveRecord{
		DeviceID:  r.DeviceID,
		Key:       r.Key,
		Checksum:  digest.Digest(r.Checksum),
		Clock:     clock,
		Payload:   r.Payload,
		Timestamp: time.Unix(r.Timestamp, 0).UTC(),
		Deleted:   r.Deleted,
	}, nil
}

// FromRecords converts a slice of domain records
func FromRecords(records []*models.SaveRecord) []SaveRecord {
	result := make([]SaveRecord, 0, len(records))
	for _, r := range records {
		result = append(result, FromRecord(r))
	}
	return result
}

// ToRecords converts wire records; the first malformed record fails the batch
func ToRecords(records []SaveRecord) ([]*models.SaveRecord, error) {
	result := make([]*models.SaveRecord, 0, len(records))
	for _, r := range records {
		record, err := ToRecord(r)
		if err != nil {
			return nil, err
		}
		result = append(result, record)
	}
	return result, nil
}

// FromEntry converts a replica entry into its wire form
func FromEntry(e *models.ReplicaEntry) ReplicaEntry {
	entry := ReplicaEntry{Key: e.Key, Seq: e.Seq}
	if e.Current != nil {
		current := FromRecord(e.Current)
		entry.Current = &current
	}
	if len(e.Conflict) > 0 {
		entry.Conflict = FromRecords(e.Conflict)
	}
	return entry
}

// ToEntry converts a wire replica entry into the domain form
func ToEntry(e ReplicaEntry) (*models.ReplicaEntry, error) {
	entry := &models.ReplicaEntry{Key: e.Key, Seq: e.Seq}
	if e.Current != nil {
		current, err := ToRecord(*e.Current)
		if err != nil {
			return nil, err
		}
		entry.Current = current
	}
	if len(e.Conflict) > 0 {
		conflict, err := ToRecords(e.Conflict)
		if err != nil {
			return nil, err
		}
		entry.Conflict = conflict
	}
	return entry, nil
}

// FromError converts any error into the wire error form
func FromError(err error) ErrorResponse {
	e := errs.As(err)
	return ErrorResponse{Code: string(e.Code), Message: e.Message, Details: e.Details}
}

// ToError converts a wire error back into a coded error
func ToError(r ErrorResponse) *errs.Error {
	return &errs.Error{Code: errs.Code(r.Code), Message: r.Message, Details: r.Details}
}

// FromPushReport converts a push report into its wire form
func FromPushReport(report *engine.PushReport) PushResponse {
	resp := PushResponse{
		Accepted:  report.Accepted,
		Kept:      report.Kept,
		Conflicts: report.Conflicts,
	}
	for _, e := range report.Rejected {
		resp.Rejected = append(resp.Rejected, FromError(e))
	}
	return resp
}

// ToPushReport converts a wire push response into the engine form
func ToPushReport(resp PushResponse) *engine.PushReport {
	report := &engine.PushReport{
		Accepted:  resp.Accepted,
		Kept:      resp.Kept,
		Conflicts: resp.Conflicts,
	}
	for _, e := range resp.Rejected {
		report.Rejected = append(report.Rejected, ToError(e))
	}
	return report
}
