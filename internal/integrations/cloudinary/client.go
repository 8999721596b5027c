package cloudinary

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Uploader интерфейс SDK, нужный клиенту
type Uploader interface {
	Upload(ctx context.Context, file interface{}, uploadParams uploader.UploadParams) (*uploader.UploadResult, error)
}

// Client клиент объектного хранилища Cloudinary
type Client struct {
	upload     Uploader
	rootFolder string
}

// NewClient создает клиента по учётным данным
func NewClient(cloudName, apiKey, apiSecret, rootFolder string) (*Client, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, ErrNotConfigured
	}

	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: failed to initialize: %w", err)
	}

	return newClient(&cld.Upload, rootFolder), nil
}

func newClient(upload Uploader, rootFolder string) *Client {
	return &Client{
		upload:     upload,
		rootFolder: strings.Trim(rootFolder, "/"),
	}
}

// Put загружает объект и возвращает его публичный https URL
// objectName вида "slips/1700000000-slip.png"; расширение отбрасывается, формат определяет Cloudinary
func (c *Client) Put(ctx context.Context, objectName string, data []byte) (string, error) {
	result, err := c.upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		PublicID:     c.publicID(objectName),
		ResourceType: "image",
		Overwrite:    api.Bool(false),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrUploadFailed, objectName, err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("%w: %s: %s", ErrUploadFailed, objectName, result.Error.Message)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("%w: %s: empty url in response", ErrUploadFailed, objectName)
	}

	return result.SecureURL, nil
}

func (c *Client) publicID(objectName string) string {
	name := strings.TrimSuffix(objectName, path.Ext(objectName))
	if c.rootFolder == "" {
		return name
	}
	return c.rootFolder + "/" + name
}

// Disabled хранилище-заглушка, когда Cloudinary не настроен; любая загрузка завершается ErrNotConfigured
type Disabled struct{}

func (Disabled) Put(_ context.Context, objectName string, _ []byte) (string, error) {
	return "", fmt.Errorf("%w: %s", ErrNotConfigured, objectName)
}
