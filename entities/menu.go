package entities

import (
	"github.com/google/uuid"
)

// Menu owns an ordered history of versions. Revision is bumped by every committed
// change and compared before writing.
type Menu struct {
	ID        string    `gorm:"type:varchar(36);primary_key" json:"id"`
	OwnerID   uuid.UUID `gorm:"type:uuid;index" json:"owner_id"`
	Name      string    `json:"name"`
	QRImageID string    `json:"qr_image_id"`
	Revision  int       `gorm:"not null;default:0" json:"revision"`

	Versions []MenuVersion `gorm:"foreignKey:MenuID;constraint:OnDelete:CASCADE"`
	Timestamp
}

type MenuVersion struct {
	ID        uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	MenuID    string  `gorm:"type:varchar(36);index" json:"menu_id"`
	Title     string  `json:"title"`
	Subtitle  *string `json:"subtitle,omitempty"`
	BgImageID *string `json:"bg_image_id,omitempty"`
	IsPublic  bool    `gorm:"not null;default:false" json:"is_public"`

	Sections []Section `gorm:"foreignKey:VersionID;constraint:OnDelete:CASCADE"`
	Timestamp
}

type Section struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	VersionID uint   `gorm:"index" json:"version_id"`
	Name      string `json:"name"`
	Position  int    `json:"position"`

	Products []Product `gorm:"foreignKey:SectionID;constraint:OnDelete:CASCADE"`
}

type Product struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	SectionID   uint    `gorm:"index" json:"section_id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Price       int     `json:"price"`
	ImageID     string  `json:"image_id"`
}
