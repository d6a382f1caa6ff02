package handler

import (
	"path/filepath"

	"github.com/gin-gonic/gin"

	"dashboard-api/internal/domain/repository"
	"dashboard-api/internal/infrastructure/storage"
	"dashboard-api/internal/interfaces/http/dto"
	"dashboard-api/pkg/errors"
	"dashboard-api/pkg/logger"
	"dashboard-api/pkg/metrics"
)

// DocumentHandler 文档处理器，元数据入库，文件本体走本地存储
type DocumentHandler struct {
	repo  repository.DocumentRepository
	store *storage.LocalStore
}

// NewDocumentHandler 创建文档处理器
func NewDocumentHandler(repo repository.DocumentRepository, store *storage.LocalStore) *DocumentHandler {
	return &DocumentHandler{repo: repo, store: store}
}

// List 文档列表，默认隐藏已软删记录
func (h *DocumentHandler) List(c *gin.Context) {
	filter := repository.DocumentFilter{
		IncludeDeleted: boolQuery(c, "include_deleted"),
	}

	docs, err := h.repo.List(c.Request.Context(), filter)
	if err != nil {
		logger.Error(c.Request.Context(), "failed to list documents", err)
		dto.InternalError(c, "failed to list documents")
		return
	}
	dto.Success(c, docs)
}

// Create 登记文档元数据（文件本体已在别处落盘）
func (h *DocumentHandler) Create(c *gin.Context) {
	var req dto.DocumentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, err.Error())
		return
	}

	doc := req.ToEntity()
	doc.StampCreate(currentUserID(c))

	if err := h.repo.Create(c.Request.Context(), doc); err != nil {
		logger.Error(c.Request.Context(), "failed to create document", err)
		dto.InternalError(c, "failed to create document")
		return
	}

	metrics.EntityMutationsTotal.WithLabelValues("document", "create").Inc()
	dto.Created(c, doc)
}

// Upload 接收 multipart 文件并登记元数据
//
// 同名文件通过 " (n)" 后缀避让，响应中的 filename 为落盘后的名字。
func (h *DocumentHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		dto.BadRequest(c, "missing file field")
		return
	}

	if max := h.store.MaxSize(); max > 0 && fileHeader.Size > max {
		dto.BadRequest(c, "file too large")
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		dto.BadRequest(c, "failed to read uploaded file")
		return
	}
	defer src.Close()

	name, size, err := h.store.Save(c.Request.Context(), fileHeader.Filename, src)
	if err != nil {
		logger.Error(c.Request.Context(), "failed to save uploaded file", err, "filename", fileHeader.Filename)
		dto.InternalError(c, "failed to save uploaded file")
		return
	}

	doc := &dto.DocumentCreateRequest{
		Filename: name,
		Filepath: filepath.Join(h.store.Dir(), name),
		Filesize: size,
		Tags:     "Uploaded",
	}
	docEntity := doc.ToEntity()
	docEntity.StampCreate(currentUserID(c))

	if err := h.repo.Create(c.Request.Context(), docEntity); err != nil {
		// 元数据入库失败时清理已落盘文件
		_ = h.store.Remove(name)
		logger.Error(c.Request.Context(), "failed to register uploaded document", err, "filename", name)
		dto.InternalError(c, "failed to register uploaded document")
		return
	}

	metrics.EntityMutationsTotal.WithLabelValues("document", "create").Inc()
	metrics.DocumentUploadsTotal.WithLabelValues("success").Inc()
	metrics.DocumentUploadBytes.Observe(float64(size))
	dto.Created(c, docEntity)
}

// Get 按 id 获取文档元数据
func (h *DocumentHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	doc, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		logger.Error(c.Request.Context(), "failed to get document", err, "id", id)
		dto.InternalError(c, "failed to get document")
		return
	}
	if doc == nil {
		dto.AppError(c, errors.ErrDocumentNotFound)
		return
	}
	dto.Success(c, doc)
}

// Update 部分更新文档元数据
func (h *DocumentHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.DocumentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, err.Error())
		return
	}

	doc, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		logger.Error(c.Request.Context(), "failed to get document", err, "id", id)
		dto.InternalError(c, "failed to update document")
		return
	}
	if doc == nil {
		dto.AppError(c, errors.ErrDocumentNotFound)
		return
	}

	req.ApplyTo(doc)
	doc.StampUpdate(currentUserID(c))

	if err := h.repo.Update(c.Request.Context(), doc); err != nil {
		logger.Error(c.Request.Context(), "failed to update document", err, "id", id)
		dto.InternalError(c, "failed to update document")
		return
	}

	metrics.EntityMutationsTotal.WithLabelValues("document", "update").Inc()
	dto.Success(c, doc)
}

// Download 下载文档本体
func (h *DocumentHandler) Download(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	doc, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		logger.Error(c.Request.Context(), "failed to get document", err, "id", id)
		dto.InternalError(c, "failed to download document")
		return
	}
	if doc == nil {
		dto.AppError(c, errors.ErrDocumentNotFound)
		return
	}

	// 只按上传目录内解析出的路径下载，登记的 filepath 不参与寻址
	f, err := h.store.Open(doc.Filename)
	if err != nil {
		dto.AppError(c, errors.ErrFileNotFound)
		return
	}
	path := f.Name()
	f.Close()

	c.FileAttachment(path, doc.Filename)
}

// Delete 删除文档，hard_delete=true 时连同磁盘文件一并删除
func (h *DocumentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	doc, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		logger.Error(c.Request.Context(), "failed to get document", err, "id", id)
		dto.InternalError(c, "failed to delete document")
		return
	}
	if doc == nil {
		dto.AppError(c, errors.ErrDocumentNotFound)
		return
	}

	if boolQuery(c, "hard_delete") {
		if err := h.repo.HardDelete(c.Request.Context(), id); err != nil {
			logger.Error(c.Request.Context(), "failed to hard delete document", err, "id", id)
			dto.InternalError(c, "failed to delete document")
			return
		}
		if err := h.store.Remove(doc.Filename); err != nil {
			logger.Warn(c.Request.Context(), "failed to remove document file", "id", id, "error", err)
		}
		metrics.EntityMutationsTotal.WithLabelValues("document", "hard_delete").Inc()
		dto.Success(c, doc)
		return
	}

	doc.StampDelete(currentUserID(c))
	if err := h.repo.Update(c.Request.Context(), doc); err != nil {
		logger.Error(c.Request.Context(), "failed to soft delete document", err, "id", id)
		dto.InternalError(c, "failed to delete document")
		return
	}

	metrics.EntityMutationsTotal.WithLabelValues("document", "soft_delete").Inc()
	dto.Success(c, doc)
}
