package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitryhil/vineweb/internal/catalog"
	"github.com/dmitryhil/vineweb/internal/dto"
	"github.com/dmitryhil/vineweb/pkg/errs"
	"github.com/labstack/echo/v4"
)

const maxMemory = 32 << 20

// productForm reads product fields from a multipart/urlencoded form or a JSON
// object. JSON values are normalized to their text form.
type productForm struct {
	values map[string]string
	files  []*multipart.FileHeader
}

func readProductForm(c echo.Context) (productForm, error) {
	form := productForm{values: map[string]string{}}
	req := c.Request()

	if strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		var body map[string]interface{}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			return form, fmt.Errorf("%w: malformed JSON body", errs.ErrValidation)
		}

		for key, value := range body {
			switch v := value.(type) {
			case nil:
			case string:
				form.values[key] = v
			case []interface{}, map[string]interface{}:
				raw, _ := json.Marshal(v)
				form.values[key] = string(raw)
			default:
				form.values[key] = fmt.Sprint(v)
			}
		}

		return form, nil
	}

	if strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		if err := req.ParseMultipartForm(maxMemory); err != nil {
			if errors.Is(err, multipart.ErrMessageTooLarge) || isTooLarge(err) {
				return form, errs.ErrFileTooLarge
			}
			return form, fmt.Errorf("%w: malformed multipart body", errs.ErrValidation)
		}
		form.files = req.MultipartForm.File["images"]
	} else if err := req.ParseForm(); err != nil {
		return form, fmt.Errorf("%w: malformed form body", errs.ErrValidation)
	}

	for key, values := range req.Form {
		if len(values) > 0 {
			form.values[key] = values[0]
		}
	}

	return form, nil
}

func isTooLarge(err error) bool {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return true
	}

	var he *echo.HTTPError
	return errors.As(err, &he) && he.Code == http.StatusRequestEntityTooLarge
}

func (f productForm) text(key string) *string {
	v, ok := f.values[key]
	if !ok {
		return nil
	}
	return &v
}

// nonEmpty treats an empty value like an absent one.
func (f productForm) nonEmpty(key string) *string {
	v := f.text(key)
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil
	}
	return v
}

func (f productForm) number(key string) (*int64, error) {
	v := f.nonEmpty(key)
	if v == nil {
		return nil, nil
	}

	n, err := strconv.ParseFloat(strings.TrimSpace(*v), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return nil, fmt.Errorf("%w: %s must be a number", errs.ErrValidation, key)
	}

	rounded := int64(math.Round(n))
	return &rounded, nil
}

// flag accepts only the literal "true" as true.
func (f productForm) flag(key string) *bool {
	v := f.text(key)
	if v == nil {
		return nil
	}
	b := *v == "true"
	return &b
}

// list accepts a JSON array string or a comma separated list.
func (f productForm) list(key string) (*[]string, error) {
	v := f.text(key)
	if v == nil {
		return nil, nil
	}

	raw := strings.TrimSpace(*v)
	if strings.HasPrefix(raw, "[") {
		items := []string{}
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			return nil, fmt.Errorf("%w: %s must be a list", errs.ErrValidation, key)
		}
		return &items, nil
	}

	items := catalog.SplitList(raw)
	if items == nil {
		items = []string{}
	}
	return &items, nil
}

func (f productForm) request(id string) (req dto.ProductRequest, err error) {
	req = dto.ProductRequest{
		ID:          id,
		Name:        f.text("name"),
		Description: f.text("description"),
		Category:    f.nonEmpty("category"),
		Subcategory: f.nonEmpty("subcategory"),
		Gender:      f.text("gender"),
		IsNew:       f.flag("isNew"),
		InStock:     f.flag("inStock"),
		Images:      f.files,
	}

	if req.Price, err = f.number("price"); err != nil {
		return
	}
	if req.OriginalPrice, err = f.number("originalPrice"); err != nil {
		return
	}
	if req.Discount, err = f.number("discount"); err != nil {
		return
	}
	if req.StockQuantity, err = f.number("stockQuantity"); err != nil {
		return
	}
	if req.Sizes, err = f.list("sizes"); err != nil {
		return
	}
	if req.Tags, err = f.list("tags"); err != nil {
		return
	}

	return req, nil
}
