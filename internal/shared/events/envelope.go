package events

// Envelope is the wire shape live broadcasts use when relayed between API
// instances. Origin is the publishing instance so a relay never replays its
// own message.
type Envelope struct {
	Origin           string `json:"origin"`
	PartitionID      int64  `json:"partition_id"`
	Event            string `json:"event"`
	Payload          any    `json:"payload"`
	ExcludeSessionID string `json:"exclude_session_id,omitempty"`
}
