package models

const (
	// DefaultChatTTL время жизни состояния сессии чата
	DefaultChatTTL = 24 * 60 * 60 // 24 hours in seconds

	// DefaultAdminTokenTTL время жизни админского токена
	DefaultAdminTokenTTL = 12 * 60 * 60 // 12 hours in seconds

	// MailQueueSize размер очереди отправки писем
	MailQueueSize = 128
)

// DefaultTimeSlots is the fixed display-slot enumeration. Labels are opaque
// strings; only their position matters for ordering.
func DefaultTimeSlots() []string {
	return []string{
		"9:00 AM", "10:00 AM", "11:00 AM", "12:00 PM",
		"1:00 PM", "2:00 PM", "3:00 PM", "4:00 PM",
	}
}

// SlotOrder returns the position of label within slots. Unknown labels sort
// after all known ones.
func SlotOrder(slots []string, label string) int {
	for i, s := range slots {
		if s == label {
			return i
		}
	}
	return len(slots)
}
