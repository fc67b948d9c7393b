package domain

// NotificationKind classifies an event emitted by the cart store.
type NotificationKind string

// Notification kinds.
const (
	NotificationItemAdded        NotificationKind = "cart.item_added"
	NotificationItemRemoved      NotificationKind = "cart.item_removed"
	NotificationCartCleared      NotificationKind = "cart.cleared"
	NotificationSelectionMissing NotificationKind = "cart.selection_missing"
)

// Notification variants. Destructive marks a failed user action.
const (
	VariantDefault     = "default"
	VariantDestructive = "destructive"
)

// Notification is a user-facing event. The core only fills in the text;
// presentation belongs to whoever consumes the sink.
type Notification struct {
	Kind        NotificationKind `json:"kind"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Variant     string           `json:"variant"`
}
