package models

import "time"

// BlackList is a blocked person, kept per manager with the same ownership
// pattern as reports. Scoring or automatic banning does not live here.
type BlackList struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ManagerID uint   `gorm:"index;not null" json:"manager_id"`
	Name      string `gorm:"type:text;not null" json:"name"`
	Email     string `gorm:"type:text;not null" json:"email"`
	Phone     string `gorm:"type:text" json:"phone"`

	CreatedAt time.Time `json:"created_at"`
}

// BlackListInfo is the read projection exposed to managers.
type BlackListInfo struct {
	BlackListID uint   `json:"blacklist_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
}

// Info converts the stored row into its read projection.
func (b BlackList) Info() BlackListInfo {
	return BlackListInfo{
		BlackListID: b.ID,
		Name:        b.Name,
		Email:       b.Email,
		Phone:       b.Phone,
	}
}
