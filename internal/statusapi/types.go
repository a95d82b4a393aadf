package statusapi

import (
	"transportkeys/internal/crypto"
	"transportkeys/internal/domain"
)

// KeySetStatus is the public view of one key set.
type KeySetStatus struct {
	ID                    domain.KeySetID    `json:"id"`
	ContactID             domain.ContactID   `json:"contact_id"`
	TransportID           domain.TransportID `json:"transport_id"`
	Variant               string             `json:"variant"`
	TimePeriod            int64              `json:"time_period"`
	Active                bool               `json:"active"`
	OutgoingStreamCounter uint64             `json:"outgoing_stream_counter"`
	OutgoingTag           string             `json:"outgoing_tag_fingerprint"`
	IncomingTag           string             `json:"incoming_tag_fingerprint"`
	UpdatedUTC            int64              `json:"updated_utc"`
}

// Summarise converts key sets to their public view.
func Summarise(sets []domain.KeySet) []KeySetStatus {
	out := make([]KeySetStatus, 0, len(sets))
	for _, ks := range sets {
		w := ks.Window()
		variant := "ephemeral"
		if ks.Static {
			variant = "static"
		}
		out = append(out, KeySetStatus{
			ID:                    ks.ID,
			ContactID:             ks.ContactID,
			TransportID:           ks.TransportID,
			Variant:               variant,
			TimePeriod:            w.TimePeriod(),
			Active:                w.CurrentOutgoing.Active,
			OutgoingStreamCounter: ks.OutgoingStreamCounter,
			OutgoingTag:           crypto.KeyFingerprint(w.CurrentOutgoing.TagKey),
			IncomingTag:           crypto.KeyFingerprint(w.CurrentIncoming.TagKey),
			UpdatedUTC:            ks.UpdatedUTC,
		})
	}
	return out
}
