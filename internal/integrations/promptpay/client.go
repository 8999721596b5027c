package promptpay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/skip2/go-qrcode"
)

const (
	// DefaultBaseURL публичный сервис генерации QR
	DefaultBaseURL = "https://promptpay.io"

	maxImageSize = 1 << 20
	qrSize       = 512
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для получения PNG QR-кода PromptPay
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента; пустой baseURL отключает удалённый сервис
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// FetchQR получает PNG с {baseURL}/{number}/{amount}.png
func (c *Client) FetchQR(ctx context.Context, number string, amount float64) ([]byte, error) {
	if _, _, err := normalizeTarget(number); err != nil {
		return nil, err
	}
	if amount < 0 {
		return nil, ErrInvalidAmount
	}

	endpoint := fmt.Sprintf("%s/%s/%s.png", c.baseURL, url.PathEscape(onlyDigits(number)), strconv.FormatFloat(amount, 'f', -1, 64))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Accept", "image/png")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read body: %v", ErrInvalidResponse, err)
	}
	if len(data) > maxImageSize {
		return nil, fmt.Errorf("%w: image larger than %d bytes", ErrInvalidResponse, maxImageSize)
	}
	if ct := http.DetectContentType(data); ct != "image/png" {
		return nil, fmt.Errorf("%w: unexpected content type %s", ErrInvalidResponse, ct)
	}

	return data, nil
}

// RenderQR рисует QR локально по payload EMVCo
func RenderQR(number string, amount float64) ([]byte, error) {
	payload, err := Payload(number, amount)
	if err != nil {
		return nil, err
	}
	png, err := qrcode.Encode(payload, qrcode.Medium, qrSize)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode qr: %v", ErrInternal, err)
	}
	return png, nil
}

// QRWithGracefulDegradation получает QR с удалённого сервиса, а при его недоступности рисует локально
// Ошибки некорректного номера или суммы возвращаются сразу
func (c *Client) QRWithGracefulDegradation(ctx context.Context, number string, amount float64) ([]byte, error) {
	if c.baseURL == "" {
		return RenderQR(number, amount)
	}

	data, err := c.FetchQR(ctx, number, amount)
	if err == nil {
		return data, nil
	}
	if isInputError(err) {
		return nil, err
	}

	c.log.Error("PromptPay service unavailable, rendering QR locally: %v", err)
	return RenderQR(number, amount)
}

func isInputError(err error) bool {
	return errors.Is(err, ErrInvalidAmount) || errors.Is(err, ErrInvalidTarget)
}
