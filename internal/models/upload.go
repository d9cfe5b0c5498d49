package models

// Upload - запись о загруженном в object storage файле.
// Path - полный ключ в хранилище: {bucket}/{folder}/{fileName}.
type Upload struct {
	BaseModel
	UserID       string `gorm:"not null;index"`
	Bucket       string `gorm:"not null;index"` // course-videos, course-materials, course-thumbnails
	Folder       string
	FileName     string `gorm:"not null"` // сгенерированное имя
	OriginalName string `gorm:"not null"`
	Path         string `gorm:"not null;uniqueIndex"`
	MimeType     string
	Size         int64
}
