package types

// Store event types and attributes
const (
	EventTypeWriterReassigned = "kvstore_writer_reassigned"

	AttributeKeyPreviousWriter = "previous_writer"
	AttributeKeyNewWriter      = "new_writer"
	AttributeKeyCaller         = "caller"
)
