package events

// Topics emitted by the storefront.
const (
	TopicOrderPlaced = "order.placed"
	TopicContactSent = "contact.sent"
	TopicCartCleared = "cart.cleared"
)
