package service

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// 媒体文件分类目录
const (
	UploadKindPosters  = "posters"
	UploadKindTrailers = "trailers"
)

// UploadService 海报/预告片文件存储。文件落在本地磁盘，
// 数据库只保存 /uploads/... 形式的公开路径
type UploadService struct {
	baseDir string
}

// NewUploadService 创建上传服务并确保目录存在
func NewUploadService(baseDir string) (*UploadService, error) {
	for _, kind := range []string{UploadKindPosters, UploadKindTrailers} {
		if err := os.MkdirAll(filepath.Join(baseDir, kind), 0o755); err != nil {
			return nil, fmt.Errorf("无法创建上传目录: %w", err)
		}
	}
	return &UploadService{baseDir: baseDir}, nil
}

// Save 保存上传文件，文件名随机生成避免冲突，返回公开路径
func (s *UploadService) Save(file *multipart.FileHeader, kind string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := uuid.NewString() + strings.ToLower(filepath.Ext(file.Filename))
	dst, err := os.Create(filepath.Join(s.baseDir, kind, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return "/uploads/" + kind + "/" + name, nil
}

// Delete 按公开路径删除文件，路径为空或文件不存在时不视为错误
func (s *UploadService) Delete(publicPath string) {
	rel, ok := strings.CutPrefix(publicPath, "/uploads/")
	if !ok || rel == "" {
		return
	}
	// 防止路径穿越出上传目录
	rel = path.Clean(rel)
	if strings.HasPrefix(rel, "..") {
		return
	}
	_ = os.Remove(filepath.Join(s.baseDir, filepath.FromSlash(rel)))
}
