package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"cafemenu-backend/internal/config"
)

// ErrUploadFailed: CDN görseli kabul etmedi.
var ErrUploadFailed = errors.New("görsel yüklenemedi")

// CloudinaryClient unsigned preset ile Cloudinary upload API'sine görsel
// gönderir. Silme işlemi bilerek yok: API secret gerektirir ve eski görselin
// CDN'de kalması menüyü bozmaz.
type CloudinaryClient struct {
	cloudName    string
	uploadPreset string
	folder       string
	httpClient   *http.Client
}

type UploadResult struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
}

func NewCloudinaryClient(cfg *config.Config) *CloudinaryClient {
	return &CloudinaryClient{
		cloudName:    cfg.CloudinaryCloudName,
		uploadPreset: cfg.CloudinaryUploadPreset,
		folder:       cfg.CloudinaryFolder,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Configured: cloud name ve preset tanımlı mı? Eksikse upload endpoint'i
// hiç denemeden hata döndürür.
func (cl *CloudinaryClient) Configured() bool {
	return cl.cloudName != "" && cl.uploadPreset != ""
}

// Upload görsel baytlarını Cloudinary'ye yükler ve kalıcı URL'i döndürür.
func (cl *CloudinaryClient) Upload(fileName string, file io.Reader) (*UploadResult, error) {
	if !cl.Configured() {
		return nil, fmt.Errorf("%w: Cloudinary yapılandırması eksik", ErrUploadFailed)
	}

	endpoint := fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/image/upload", cl.cloudName)

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		defer pw.Close()
		part, err := mw.CreateFormFile("file", fileName)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, file); err != nil {
			pw.CloseWithError(err)
			return
		}
		if err := mw.WriteField("upload_preset", cl.uploadPreset); err != nil {
			pw.CloseWithError(err)
			return
		}
		if err := mw.WriteField("folder", cl.folder); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	req, err := http.NewRequest(http.MethodPost, endpoint, pr)
	if err != nil {
		return nil, fmt.Errorf("%w: istek oluşturulamadı: %v", ErrUploadFailed, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	resp, err := cl.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%w: HTTP %d: %s", ErrUploadFailed, resp.StatusCode, body)
	}

	var result UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: yanıt çözümlenemedi: %v", ErrUploadFailed, err)
	}
	if result.SecureURL == "" {
		return nil, fmt.Errorf("%w: yanıtta secure_url yok", ErrUploadFailed)
	}

	return &result, nil
}
