package http

import (
	"io"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rajdevullash/lms-task-backend/internal/domain"
	"github.com/rajdevullash/lms-task-backend/internal/infrastructure/auth"
)

// formFile read one multipart file into memory, nil when the field is absent
func formFile(c echo.Context, field string, maxSize int64) (*domain.UploadFile, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, nil
	}
	if maxSize > 0 && header.Size > maxSize {
		return nil, domain.NewBadRequestError("File exceeds the upload size limit")
	}
	src, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	return &domain.UploadFile{Name: header.Filename, Content: content}, nil
}

// formFiles read every file bound to a multipart field
func formFiles(c echo.Context, field string, maxSize int64) ([]*domain.UploadFile, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil
	}
	var files []*domain.UploadFile
	for _, header := range form.File[field] {
		if maxSize > 0 && header.Size > maxSize {
			return nil, domain.NewBadRequestError("File exceeds the upload size limit")
		}
		src, err := header.Open()
		if err != nil {
			return nil, err
		}
		content, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return nil, err
		}
		files = append(files, &domain.UploadFile{Name: header.Filename, Content: content})
	}
	return files, nil
}

// bindPagination pagination options from the query string
func bindPagination(c echo.Context) *domain.Pagination {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	p := &domain.Pagination{
		Page:      page,
		Limit:     limit,
		SortBy:    c.QueryParam("sort_by"),
		SortOrder: c.QueryParam("sort_order"),
	}
	return p.Normalize()
}

// currentUserID identity from the verified token, empty for guests
func currentUserID(c echo.Context, ju *auth.JWTUtil) string {
	if claims := ju.GetContextToken(c); claims != nil {
		return claims.UID
	}
	return ""
}
