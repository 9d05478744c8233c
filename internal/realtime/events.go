package realtime

import "fmt"

// Wire event names. These are a compatibility contract with deployed
// clients; payload shapes live with the channel that emits them.
const (
	// client → server
	EventChatSend                 = "chat:send"
	EventChatMarkDelivered        = "chat:mark_delivered"
	EventChatMarkConversationRead = "chat:mark_conversation_read"
	EventChatRead                 = "chat:read"
	EventBusSubscribe             = "bus:subscribe"
	EventBusUnsubscribe           = "bus:unsubscribe"
	EventTransportSubscribe       = "transport:subscribe"
	EventBusLocationUpdate        = "bus:location:update"

	// server → client
	EventChatReceive          = "chat:receive"
	EventChatSentConfirmation = "chat:sent_confirmation"
	EventChatStatusUpdate     = "chat:status_update"
	EventChatReadReceipt      = "chat:read_receipt"
	EventChatConversationRead = "chat:conversation_read"
	EventBusLocationReceive   = "bus:location:receive"

	eventAck = "ack"
)

// Room keys. A session always sits in its user and tenant rooms; vehicle
// and tenant-transport rooms are joined explicitly.
func UserRoom(userID string) string {
	return fmt.Sprintf("user:%s", userID)
}

func TenantRoom(tenantID string) string {
	return fmt.Sprintf("tenant:%s", tenantID)
}

func VehicleRoom(busID string) string {
	return fmt.Sprintf("vehicle:%s", busID)
}

func TenantTransportRoom(tenantID string) string {
	return fmt.Sprintf("tenant:%s:transport", tenantID)
}
