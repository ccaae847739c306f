package models

import (
	"time"
)

// Message carries two independent per-side visibility flags. A row is
// physically deletable only once both flags are false.
type Message struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	SenderID          uint   `gorm:"not null;index" json:"sender_id"`
	ReceiverID        uint   `gorm:"not null;index" json:"receiver_id"`
	Content           string `gorm:"not null;type:varchar(2000)" json:"content"`
	VisibleToSender   bool   `gorm:"not null;default:true" json:"visible_to_sender"`
	VisibleToReceiver bool   `gorm:"not null;default:true" json:"visible_to_receiver"`
	ReadByReceiver    bool   `gorm:"not null;default:false" json:"read_by_receiver"`

	Sender   User `gorm:"foreignKey:SenderID" json:"sender"`
	Receiver User `gorm:"foreignKey:ReceiverID" json:"receiver"`
}
