package handler

import (
	"errors"
	"mime/multipart"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/hms_backend/pkg/filestore"
)

type formFile struct {
	name string
	size int64
	body multipart.File
}

// readFormFile opens the multipart file in field. The caller closes body.
func readFormFile(c fiber.Ctx, field string) (*formFile, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	return &formFile{name: fh.Filename, size: fh.Size, body: f}, nil
}

// sendObject streams a stored file. fasthttp closes obj.Body once written.
func sendObject(c fiber.Ctx, obj *filestore.Object) error {
	c.Set(fiber.HeaderContentType, obj.ContentType)
	if obj.Size > 0 {
		return c.SendStream(obj.Body, int(obj.Size))
	}
	return c.SendStream(obj.Body)
}

var uploadErrors = []error{
	filestore.ErrUnsupportedType,
	filestore.ErrTooLarge,
	filestore.ErrEmpty,
	filestore.ErrInvalidName,
}

// uploadError reports whether err is a rejected upload and returns the
// message to show the client.
func uploadError(err error) (string, bool) {
	for _, target := range uploadErrors {
		if errors.Is(err, target) {
			return target.Error(), true
		}
	}
	return "", false
}
