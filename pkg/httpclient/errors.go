package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/mad-madhu-001/ecommerce/pkg/errors"
)

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 << 10

// upstreamError mirrors the httputil envelope so errors from another
// storefront instance keep their message.
type upstreamError struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// CheckStatus returns nil for 2xx responses. Otherwise it consumes and
// closes the body and maps the status to an application error: 404 becomes
// not found, 5xx becomes unavailable.
func CheckStatus(resp *http.Response, resource string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	detail := string(body)

	var up upstreamError
	if json.Unmarshal(body, &up) == nil && up.Error != nil {
		detail = up.Error.Message
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return apperrors.NotFound(resource, requestURL(resp))
	case resp.StatusCode >= 500:
		return apperrors.Unavailable(resource, fmt.Errorf("status %d: %s", resp.StatusCode, detail))
	default:
		return fmt.Errorf("fetch %s: status %d: %s", resource, resp.StatusCode, detail)
	}
}

func requestURL(resp *http.Response) string {
	if resp.Request == nil || resp.Request.URL == nil {
		return "unknown"
	}
	return resp.Request.URL.String()
}
