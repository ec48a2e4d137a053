package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"college-api/services"
	"college-api/store"

	"github.com/gin-gonic/gin"
)

func setupRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st, err := store.New(filepath.Join(t.TempDir(), "data.json"))
	if err != nil {
		t.Fatal(err)
	}
	uploadsDir := t.TempDir()
	disk, err := services.NewDiskStorage(uploadsDir)
	if err != nil {
		t.Fatal(err)
	}
	cacheService := services.NewListingCache(time.Minute)
	uploadService := services.NewUploadService(st, disk, cacheService, 10*1024*1024, "uploads")

	statusHandler := NewStatusHandler()
	fileHandler := NewFileHandler(st, uploadService, cacheService, disk)
	authHandler := NewAuthHandler(st)
	uploadHandler := NewUploadHandler(uploadService, "http://localhost:3000")

	router := gin.New()
	router.GET("/", statusHandler.Index)
	router.Static("/uploads", uploadsDir)

	api := router.Group("/api")
	{
		api.GET("/status", statusHandler.Status)
		api.GET("/data", fileHandler.GetData)
		api.GET("/teachers", fileHandler.GetTeachers)
		api.GET("/modules", fileHandler.GetModules)
		api.GET("/files/:subject/:module", fileHandler.GetFiles)
		api.GET("/teacher-files/:subject", fileHandler.GetTeacherFiles)
		api.POST("/module-login", authHandler.ModuleLogin)
		api.POST("/teacher-login", authHandler.TeacherLogin)
		api.POST("/update-password", authHandler.UpdatePassword)
		api.POST("/upload", uploadHandler.Upload)
		api.POST("/update-filename", fileHandler.RenameFile)
		api.POST("/delete-file", fileHandler.DeleteFile)
	}

	return router, uploadsDir
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func doUpload(t *testing.T, router *gin.Engine, subject, module, fileName string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatal(err)
	}
	if subject != "" {
		w.WriteField("subject", subject)
	}
	if module != "" {
		w.WriteField("module", module)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("bad JSON response %q: %v", w.Body.String(), err)
	}
}

func TestStatusEndpoint(t *testing.T) {
	router, _ := setupRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/status", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var body map[string]interface{}
	decode(t, w, &body)
	for _, key := range []string{"status", "message", "timestamp", "version"} {
		if _, ok := body[key]; !ok {
			t.Fatalf("status response missing %q: %v", key, body)
		}
	}
}

func TestUploadAndListFiles(t *testing.T) {
	router, uploadsDir := setupRouter(t)

	w := doUpload(t, router, "math", "lecture", "Mühazirə.pdf", []byte("%PDF test"))
	if w.Code != http.StatusOK {
		t.Fatalf("upload status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success  bool   `json:"success"`
		Filename string `json:"filename"`
		File     struct {
			ID          string `json:"id"`
			Type        string `json:"type"`
			DownloadURL string `json:"downloadUrl"`
		} `json:"file"`
	}
	decode(t, w, &resp)
	if !resp.Success || resp.File.Type != "pdf" {
		t.Fatalf("upload response = %+v", resp)
	}
	if !strings.HasPrefix(resp.File.DownloadURL, "http://localhost:3000/uploads/") {
		t.Fatalf("downloadUrl = %q, want absolute", resp.File.DownloadURL)
	}

	// Статика отдаёт загруженный файл
	req := httptest.NewRequest(http.MethodGet, "/uploads/"+resp.Filename, nil)
	static := httptest.NewRecorder()
	router.ServeHTTP(static, req)
	if static.Code != http.StatusOK || static.Body.String() != "%PDF test" {
		t.Fatalf("static serve = %d %q", static.Code, static.Body.String())
	}

	list := doJSON(t, router, http.MethodGet, "/api/files/math/lecture", nil)
	var files []map[string]interface{}
	decode(t, list, &files)
	if len(files) != 1 || files[0]["id"] != resp.File.ID {
		t.Fatalf("files listing = %v", files)
	}

	subject := doJSON(t, router, http.MethodGet, "/api/teacher-files/math", nil)
	var bySubject map[string][]map[string]interface{}
	decode(t, subject, &bySubject)
	if len(bySubject) != 1 || len(bySubject["lecture"]) != 1 {
		t.Fatalf("teacher-files = %v", bySubject)
	}

	entries, err := os.ReadDir(uploadsDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("uploads dir has %d entries, want 1", len(entries))
	}
}

func TestUploadRejectsTxt(t *testing.T) {
	router, uploadsDir := setupRouter(t)

	w := doUpload(t, router, "math", "lecture", "notes.txt", []byte("plain"))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	entries, err := os.ReadDir(uploadsDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatal("rejected upload left a file on disk")
	}

	list := doJSON(t, router, http.MethodGet, "/api/files/math/lecture", nil)
	var files []map[string]interface{}
	decode(t, list, &files)
	if len(files) != 0 {
		t.Fatalf("files listing = %v, want empty", files)
	}
}

func TestUploadRequiresSubjectAndModule(t *testing.T) {
	router, _ := setupRouter(t)

	w := doUpload(t, router, "", "", "a.pdf", []byte("x"))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestTeacherLogin(t *testing.T) {
	router, _ := setupRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/teacher-login", map[string]string{
		"username": "Riyaziyyat",
		"password": "pass1234",
	})
	var ok struct {
		Success bool   `json:"success"`
		Subject string `json:"subject"`
	}
	decode(t, w, &ok)
	if !ok.Success || ok.Subject != "math" {
		t.Fatalf("login response = %+v", ok)
	}

	// Неверный пароль и неизвестное имя выглядят одинаково
	for _, creds := range []map[string]string{
		{"username": "Riyaziyyat", "password": "wrong"},
		{"username": "Nobody", "password": "pass1234"},
	} {
		w := doJSON(t, router, http.MethodPost, "/api/teacher-login", creds)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
		if w.Body.String() != `{"success":false}` {
			t.Fatalf("failed login body = %s", w.Body.String())
		}
	}
}

func TestModuleLogin(t *testing.T) {
	router, _ := setupRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/module-login", map[string]string{
		"subject":  "history",
		"username": "tarix",
		"password": "pass1234",
	})
	var resp struct {
		Success bool `json:"success"`
	}
	decode(t, w, &resp)
	if !resp.Success {
		t.Fatalf("module login failed: %s", w.Body.String())
	}

	w = doJSON(t, router, http.MethodPost, "/api/module-login", map[string]string{
		"subject":  "history",
		"username": "tarix",
		"password": "wrong",
	})
	decode(t, w, &resp)
	if resp.Success {
		t.Fatal("module login with wrong password succeeded")
	}
}

func TestUpdatePassword(t *testing.T) {
	router, _ := setupRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/update-password", map[string]string{
		"teacher":         "Tarix",
		"currentPassword": "wrong",
		"newPassword":     "yeni123",
	})
	var resp struct {
		Success bool `json:"success"`
	}
	decode(t, w, &resp)
	if resp.Success {
		t.Fatal("password updated with wrong current password")
	}

	w = doJSON(t, router, http.MethodPost, "/api/update-password", map[string]string{
		"teacher":         "Tarix",
		"currentPassword": "pass1234",
		"newPassword":     "yeni123",
	})
	decode(t, w, &resp)
	if !resp.Success {
		t.Fatalf("update failed: %s", w.Body.String())
	}

	login := doJSON(t, router, http.MethodPost, "/api/teacher-login", map[string]string{
		"username": "Tarix",
		"password": "yeni123",
	})
	var ok struct {
		Success bool   `json:"success"`
		Subject string `json:"subject"`
	}
	decode(t, login, &ok)
	if !ok.Success || ok.Subject != "history" {
		t.Fatalf("login with new password = %+v", ok)
	}
}

func TestRenameFile(t *testing.T) {
	router, _ := setupRouter(t)

	up := doUpload(t, router, "math", "lecture", "old.pdf", []byte("x"))
	var upResp struct {
		File struct {
			ID       string `json:"id"`
			Filename string `json:"filename"`
		} `json:"file"`
	}
	decode(t, up, &upResp)

	w := doJSON(t, router, http.MethodPost, "/api/update-filename", map[string]string{
		"fileId":  upResp.File.ID,
		"subject": "math",
		"module":  "lecture",
		"newName": "Yeni ad.pdf",
	})
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"success":true`) {
		t.Fatalf("rename = %d %s", w.Code, w.Body.String())
	}

	list := doJSON(t, router, http.MethodGet, "/api/files/math/lecture", nil)
	var files []map[string]interface{}
	decode(t, list, &files)
	if files[0]["originalname"] != "Yeni ad.pdf" {
		t.Fatalf("originalname = %v", files[0]["originalname"])
	}
	if files[0]["filename"] != upResp.File.Filename {
		t.Fatal("rename touched the stored filename")
	}

	// Несуществующий id
	w = doJSON(t, router, http.MethodPost, "/api/update-filename", map[string]string{
		"fileId":  "nosuch",
		"subject": "math",
		"module":  "lecture",
		"newName": "x.pdf",
	})
	if !strings.Contains(w.Body.String(), `"success":false`) {
		t.Fatalf("rename of missing file = %s", w.Body.String())
	}
}

func TestDeleteFile(t *testing.T) {
	router, uploadsDir := setupRouter(t)

	up := doUpload(t, router, "math", "lecture", "doc.pdf", []byte("x"))
	var upResp struct {
		File struct {
			ID string `json:"id"`
		} `json:"file"`
	}
	decode(t, up, &upResp)

	w := doJSON(t, router, http.MethodPost, "/api/delete-file", map[string]string{
		"fileId":  upResp.File.ID,
		"subject": "math",
		"module":  "lecture",
	})
	if !strings.Contains(w.Body.String(), `"success":true`) {
		t.Fatalf("delete = %s", w.Body.String())
	}

	list := doJSON(t, router, http.MethodGet, "/api/files/math/lecture", nil)
	var files []map[string]interface{}
	decode(t, list, &files)
	if len(files) != 0 {
		t.Fatalf("files after delete = %v", files)
	}

	entries, err := os.ReadDir(uploadsDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatal("physical file survived delete")
	}

	// Повторное удаление — идемпотентный no-op
	w = doJSON(t, router, http.MethodPost, "/api/delete-file", map[string]string{
		"fileId":  upResp.File.ID,
		"subject": "math",
		"module":  "lecture",
	})
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"success":false`) {
		t.Fatalf("second delete = %d %s", w.Code, w.Body.String())
	}
}

func TestGetDataAndCredentialTables(t *testing.T) {
	router, _ := setupRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/data", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("data status = %d", w.Code)
	}

	teachers := doJSON(t, router, http.MethodGet, "/api/teachers", nil)
	var teacherTable map[string]map[string]string
	decode(t, teachers, &teacherTable)
	if teacherTable["Riyaziyyat"]["subject"] != "math" {
		t.Fatalf("teachers table = %v", teacherTable)
	}

	modules := doJSON(t, router, http.MethodGet, "/api/modules", nil)
	var moduleTable map[string]map[string]string
	decode(t, modules, &moduleTable)
	if moduleTable["transport"]["username"] != "neqliyyat" {
		t.Fatalf("modules table = %v", moduleTable)
	}
}
