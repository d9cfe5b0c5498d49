package dto

// UploadResponse - метаданные сохраненного файла.
// PublicURL заполняется только для публичных бакетов.
type UploadResponse struct {
	Path         string `json:"path"`
	FullPath     string `json:"fullPath"`
	PublicURL    string `json:"publicUrl,omitempty"`
	Bucket       string `json:"bucket"`
	FileName     string `json:"fileName"`
	OriginalName string `json:"originalName"`
	Size         int64  `json:"size"`
	Type         string `json:"type"`
}

// UploadListRequest - параметры списка загрузок
type UploadListRequest struct {
	Bucket string `form:"bucket" validate:"omitempty,max=100"`
	Folder string `form:"folder" validate:"omitempty,max=200"`
	Limit  int    `form:"limit" validate:"omitempty,min=1,max=100"`
	Offset int    `form:"offset" validate:"omitempty,min=0"`
}
