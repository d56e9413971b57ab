package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// UploadService guarda as fotos enviadas em base64 e devolve a URL
// pública que o resto do sistema usa como referência de anexo.
type UploadService interface {
	SalvarBase64(ctx context.Context, imagemBase64, mime string) (url string, tamanho int64, err error)
}

type uploadService struct {
	dir     string
	baseURL string
}

// NewUploadService injeta o diretório de destino e a URL base pública.
func NewUploadService(dir, baseURL string) UploadService {
	return &uploadService{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}
}

// extensões conhecidas; mime desconhecido cai em .bin
var extensaoPorMime = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/heic": ".heic",
	"image/webp": ".webp",
}

func (s *uploadService) SalvarBase64(ctx context.Context, imagemBase64, mime string) (string, int64, error) {
	dados, err := base64.StdEncoding.DecodeString(imagemBase64)
	if err != nil {
		return "", 0, fmt.Errorf("base64 inválido: %w", err)
	}

	ext, ok := extensaoPorMime[mime]
	if !ok {
		ext = ".bin"
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", 0, err
	}

	nome := uuid.NewString() + ext
	caminho := filepath.Join(s.dir, nome)
	if err := os.WriteFile(caminho, dados, 0o644); err != nil {
		return "", 0, err
	}

	return s.baseURL + "/uploads/" + nome, int64(len(dados)), nil
}
