package models

// FileRecord описывает один загруженный документ
type FileRecord struct {
	ID           string `json:"id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"originalname"`
	Path         string `json:"path"`
	Size         int64  `json:"size"`
	Type         string `json:"type"` // "pdf" или "word"
	UploadedAt   string `json:"uploadedAt"`
	DownloadURL  string `json:"downloadUrl"`
	Subject      string `json:"subject"`
	Module       string `json:"module"`
}

// FileTree: subject -> module -> файлы в порядке загрузки
type FileTree map[string]map[string][]FileRecord

type TeacherCredential struct {
	Password string `json:"password"`
	Subject  string `json:"subject"`
}

type ModuleCredential struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Document — весь персистентный документ целиком
type Document struct {
	Files    FileTree                     `json:"files"`
	Teachers map[string]TeacherCredential `json:"teachers"`
	Modules  map[string]ModuleCredential  `json:"modules"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
