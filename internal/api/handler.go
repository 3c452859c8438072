package api

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/pixbed/pixbed/internal/config"
	"github.com/pixbed/pixbed/internal/logging"
	"github.com/pixbed/pixbed/internal/model"
	"github.com/pixbed/pixbed/internal/storage"
	"github.com/pixbed/pixbed/web"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// 每页固定 50 条
const perPage = 50

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

type Handler struct {
	config    *config.Config
	store     *storage.Store
	audit     *logging.Audit
	templates *template.Template
}

func NewHandler(config *config.Config, store *storage.Store, audit *logging.Audit, templates *template.Template) *Handler {
	return &Handler{config: config, store: store, audit: audit, templates: templates}
}

func SetupRouter(config *config.Config, store *storage.Store, audit *logging.Audit) (http.Handler, error) {
	templates, err := web.Templates()
	if err != nil {
		return nil, err
	}
	staticFS, err := web.StaticFS()
	if err != nil {
		return nil, err
	}
	h := NewHandler(config, store, audit, templates)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(RateLimitMiddleware(config.RateLimit.Requests, config.RateLimit.Duration))

	// 页面
	r.Get("/", h.Index)
	r.Get("/upload", h.UploadPage)
	r.Get("/images", h.ImagesPage)

	// 操作
	r.Post("/upload", h.Upload)
	r.Post("/delete-selected", h.DeleteSelected)
	r.Post("/delete/{filename}", h.DeleteImage)

	// 静态挂载（上传目录与打包资源）
	r.Handle("/images/*", http.StripPrefix("/images/", http.FileServer(store.HTTPFileSystem())))
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	return r, nil
}

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, "index.html", nil)
}

func (h *Handler) UploadPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, "upload.html", nil)
}

func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.ParseMultipartForm(h.config.MaxFileSize())
	file, header, err := r.FormFile("file")
	if err != nil {
		respondDetail(w, http.StatusBadRequest, "Invalid file")
		return
	}
	defer file.Close()

	// 声明的类型是可信的，不做内容嗅探
	contentType := header.Header.Get("Content-Type")
	if !allowedTypes[contentType] {
		h.audit.Failure("unsupported media type", "filename", header.Filename, "content_type", contentType)
		respondDetail(w, http.StatusBadRequest, "Unsupported file type")
		return
	}

	if header.Size > h.config.MaxFileSize() {
		h.audit.Failure("file exceeds size limit", "filename", header.Filename, "size", header.Size)
		respondDetail(w, http.StatusBadRequest, "File exceeds maximum size")
		return
	}

	// 随机 32 位十六进制标识 + 原始扩展名
	token := uuid.New()
	name := hex.EncodeToString(token[:]) + filepath.Ext(header.Filename)
	if err := h.store.Save(name, file); err != nil {
		h.audit.Failure("failed to store image", "filename", name, "error", err)
		respondDetail(w, http.StatusInternalServerError, "Failed to save file")
		return
	}

	h.audit.Success("image stored", "filename", name, "original", header.Filename)
	respondJSON(w, http.StatusOK, map[string]string{"url": "/images/" + name})
}

func (h *Handler) ImagesPage(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	names, err := h.store.List()
	if err != nil {
		slog.Error("Failed to list images", "error", err)
		// 页面接口返回纯文本错误而不是 JSON
		http.Error(w, "Failed to list images", http.StatusInternalServerError)
		return
	}

	pageNames, hasNext := paginate(names, page)
	images := make([]model.Image, 0, len(pageNames))
	for _, name := range pageNames {
		images = append(images, model.Image{Name: name, URL: "/images/" + name})
	}

	h.render(w, "images.html", model.Gallery{Images: images, Page: page, HasNext: hasNext})
}

// paginate 按 1 起始的页码切片；越界页返回空列表而不是错误。
// 先用除法判断越界，避免大页码乘法溢出
func paginate(names []string, page int) ([]string, bool) {
	if page < 1 || page > len(names)/perPage+1 {
		return nil, false
	}

	start := (page - 1) * perPage
	end := start + perPage
	hasNext := end < len(names)
	if end > len(names) {
		end = len(names)
	}
	return names[start:end], hasNext
}

func (h *Handler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	switch err := h.deleteOne(filename); {
	case err == nil:
		respondJSON(w, http.StatusOK, map[string]string{"detail": "deleted"})
	case errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrInvalidName):
		respondDetail(w, http.StatusNotFound, "File not found")
	default:
		respondDetail(w, http.StatusInternalServerError, "Failed to delete file")
	}
}

func (h *Handler) DeleteSelected(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondDetail(w, http.StatusBadRequest, "Invalid form")
		return
	}

	// 每个名字独立处理，不去重，不提前中止
	result := model.DeleteResult{Deleted: []string{}, NotFound: []string{}}
	for _, filename := range r.PostForm["filenames"] {
		if err := h.deleteOne(filename); err != nil {
			result.NotFound = append(result.NotFound, filename)
			continue
		}
		result.Deleted = append(result.Deleted, filename)
	}

	respondJSON(w, http.StatusOK, result)
}

// deleteOne 删除单个文件并记录处置结果；未通过校验的名字按未找到处理，绝不拼接进路径
func (h *Handler) deleteOne(filename string) error {
	err := h.store.Delete(filename)
	switch {
	case err == nil:
		h.audit.Success("image deleted", "filename", filename)
	case errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrInvalidName):
		h.audit.Failure("image not found on delete", "filename", filename)
	default:
		h.audit.Failure("failed to delete image", "filename", filename, "error", err)
	}
	return err
}

func (h *Handler) render(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		slog.Error("Failed to render template", "template", name, "error", err)
	}
}

func respondDetail(w http.ResponseWriter, status int, detail string) {
	respondJSON(w, status, map[string]string{"detail": detail})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
