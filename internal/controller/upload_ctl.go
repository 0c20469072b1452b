package controller

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"lacelink_dev_v1_202608/internal/api/dto"
	"lacelink_dev_v1_202608/internal/service"
)

// ==================== UploadController 上传控制器 ====================

// UploadController 认证材料 / 商品图上传
type UploadController struct {
	storageService *service.StorageService
}

// NewUploadController 创建上传控制器
func NewUploadController(storageService *service.StorageService) *UploadController {
	return &UploadController{storageService: storageService}
}

// Upload 批量上传
// @Summary 上传文件（图片/PDF）
// @Tags Upload
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param files formData file true "文件，字段名 files，可多个"
// @Success 200 {object} dto.UploadResponse
// @Failure 400 {object} map[string]string
// @Router /api/uploads [post]
func (ctrl *UploadController) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "没有收到文件"})
		return
	}

	headers := form.File["files"]
	files := make([]service.UploadedFile, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "读取文件失败: " + fh.Filename})
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "读取文件失败: " + fh.Filename})
			return
		}
		files = append(files, service.UploadedFile{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	urls, err := ctrl.storageService.SaveFiles(c.Request.Context(), files)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoFiles),
			errors.Is(err, service.ErrTooManyFiles),
			errors.Is(err, service.ErrFileTooLarge),
			errors.Is(err, service.ErrBadFileType):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, &dto.UploadResponse{OK: true, Urls: urls})
}
