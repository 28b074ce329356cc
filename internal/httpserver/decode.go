package httpserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"customer-directory/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var errMalformedBody = &domain.Error{
	Code:    domain.CodeInvalidContentType,
	Message: "Request body must be a JSON object with string fields",
}

func requireJSON(c *gin.Context) error {
	ct := c.ContentType()
	if ct == binding.MIMEJSON || strings.HasSuffix(ct, "+json") {
		return nil
	}
	return domain.ErrInvalidContentType
}

// decodeJSON checks the content type and binds the body into dst. It returns the
// number of top-level keys so update handlers can reject "{}".
func decodeJSON(c *gin.Context, dst any) (int, error) {
	if err := requireJSON(c); err != nil {
		return 0, err
	}
	raw, err := c.GetRawData()
	if err != nil {
		return 0, fmt.Errorf("read body: %w", err)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, domain.ErrEmptyRequestBody
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		return 0, errMalformedBody
	}
	if err := binding.JSON.BindBody(raw, dst); err != nil {
		return 0, errMalformedBody
	}
	return len(keys), nil
}

// decodeUpdate is decodeJSON for PUT bodies, which must carry at least one key.
func decodeUpdate(c *gin.Context, dst any) error {
	n, err := decodeJSON(c, dst)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrEmptyRequestBody
	}
	return nil
}
