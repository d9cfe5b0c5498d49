package models

// User - учетная запись. Авторизационная роль живет в Profile,
// здесь только идентичность и креденшелы.
type User struct {
	BaseModel
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	IsVerified   bool   `gorm:"default:false"`

	// Relations
	Profile *Profile `gorm:"foreignKey:UserID"`
}

// Profile - прикладной профиль поверх учетной записи.
// Role - единственный сигнал авторизации для admin-операций.
type Profile struct {
	BaseModel
	UserID   string   `gorm:"not null;uniqueIndex"`
	Email    string   `gorm:"not null"`
	FullName string   `gorm:"not null"`
	Role     UserRole `gorm:"type:varchar(20);not null;default:'student'"`
}
