// Package formdata adapts fiber requests, multipart or JSON, to the inputs
// the services expect.
package formdata

import (
	"encoding/json"
	"strings"

	"invest-portal/internal/attachment"
	"invest-portal/internal/common/apperrors"

	"github.com/gofiber/fiber/v2"
)

func IsMultipart(c *fiber.Ctx) bool {
	return strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm)
}

// ParseBody decodes the body into dst using json or form tags.
func ParseBody(c *fiber.Ctx, dst interface{}) error {
	if len(c.Body()) == 0 && !IsMultipart(c) {
		return nil
	}
	if err := c.BodyParser(dst); err != nil {
		return apperrors.Wrap(apperrors.KindValidation, "Invalid request body", err)
	}
	return nil
}

// Files collects every uploaded file of a multipart request by field name.
func Files(c *fiber.Ctx) (attachment.Uploads, error) {
	uploads := attachment.Uploads{}
	if !IsMultipart(c) {
		return uploads, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindValidation, "Invalid multipart form", err)
	}
	for field, headers := range form.File {
		for _, fh := range headers {
			if fh.Size == 0 && fh.Filename == "" {
				continue
			}
			uploads.Add(field, attachment.FromFileHeader(fh))
		}
	}
	return uploads, nil
}

// Value returns a form value and whether the client sent the key at all.
func Value(c *fiber.Ctx, key string) (string, bool) {
	if IsMultipart(c) {
		form, err := c.MultipartForm()
		if err != nil {
			return "", false
		}
		if vals, ok := form.Value[key]; ok && len(vals) > 0 {
			return vals[0], true
		}
		return "", false
	}
	args := c.Request().PostArgs()
	if args.Has(key) {
		return string(args.Peek(key)), true
	}
	return "", false
}

// JSONField decodes a form field that carries a JSON document, as multipart
// clients send nested objects and arrays. It reports whether the key was present.
func JSONField(c *fiber.Ctx, key string, dst interface{}) (bool, error) {
	raw, ok := Value(c, key)
	if !ok || strings.TrimSpace(raw) == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return true, apperrors.ValidationFields(map[string]string{key: "Invalid JSON"})
	}
	return true, nil
}

// Strings reads a list sent as a JSON array, repeated keys or a comma separated value.
func Strings(c *fiber.Ctx, key string) ([]string, bool, error) {
	if IsMultipart(c) {
		if form, err := c.MultipartForm(); err == nil {
			if vals := form.Value[key]; len(vals) > 1 {
				return trimAll(vals), true, nil
			}
		}
	}

	raw, ok := Value(c, key)
	if !ok {
		return nil, false, nil
	}
	return SplitList(key, raw)
}

// SplitList parses raw as a JSON array or a comma separated list.
func SplitList(key, raw string) ([]string, bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}, true, nil
	}
	if strings.HasPrefix(raw, "[") {
		var out []string
		if err := json.Unmarshal([]byte(raw), &out); err != nil {
			return nil, true, apperrors.ValidationFields(map[string]string{key: "Invalid JSON array"})
		}
		return trimAll(out), true, nil
	}
	return trimAll(strings.Split(raw, ",")), true, nil
}

// Cleared reports whether the client explicitly emptied an attachment field by
// sending the key with an empty or "null" value.
func Cleared(c *fiber.Ctx, key string) bool {
	v, ok := Value(c, key)
	if !ok {
		return false
	}
	v = strings.TrimSpace(v)
	return v == "" || v == "null"
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
