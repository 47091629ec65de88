package handler

import (
	"bufio"
	"context"
	"errors"
	"mime/multipart"
	"sync"
	"sync/atomic"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"dataroom/internal/http/middleware"
	"dataroom/internal/model"
	"dataroom/internal/service"
)

// Upload stream event shapes. One line per event:
//
//	data: {"type":"progress","fileName":"a.pdf","percentage":42,...}
//	data: {"type":"success","fileName":"a.pdf","document":{...}}
//	data: {"type":"error","fileName":"a.pdf","error":"..."}
//
// A final "done" event closes the batch.
type uploadProgressEvent struct {
	Type       string  `json:"type"`
	FileName   string  `json:"fileName"`
	Percentage float64 `json:"percentage"`
	Loaded     int64   `json:"loaded"`
	Total      int64   `json:"total"`
}

type uploadSuccessEvent struct {
	Type     string          `json:"type"`
	FileName string          `json:"fileName"`
	Document *model.Document `json:"document"`
}

type uploadErrorEvent struct {
	Type     string `json:"type"`
	FileName string `json:"fileName"`
	Error    string `json:"error"`
}

type uploadDoneEvent struct {
	Type      string `json:"type"`
	Succeeded int    `json:"succeeded"`
	Failed    int    `json:"failed"`
}

// UploadDocuments accepts a multipart batch and streams per-file progress as
// server-sent events. Files upload concurrently; one failed file does not
// abort the others. A dropped client connection cancels the in-flight
// transfers.
func UploadDocuments(svc service.DocumentService, maxFiles int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := middleware.UserID(c)

		form, err := c.MultipartForm()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILES_REQUIRED", "multipart form with files is required")
		}
		files := form.File["files"]
		if len(files) == 0 {
			files = form.File["file"]
		}
		if len(files) == 0 {
			return writeError(c, fiber.StatusBadRequest, "FILES_REQUIRED", "at least one file is required")
		}
		if len(files) > maxFiles {
			return writeError(c, fiber.StatusBadRequest, "TOO_MANY_FILES", "too many files in one batch")
		}

		folderID := optionalQuery(c, "folderId")
		if folderID == nil {
			if v := form.Value["folderId"]; len(v) > 0 && v[0] != "" {
				folderID = &v[0]
			}
		}

		c.Set(fiber.HeaderContentType, "text/event-stream")
		c.Set(fiber.HeaderCacheControl, "no-cache")
		c.Set(fiber.HeaderConnection, "keep-alive")

		c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
			out := newSSEWriter(w)

			// The fiber context is recycled once this handler returns, so the
			// stream runs on its own context. Cancelling it aborts every
			// in-flight transfer when the client disconnects.
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			var wg sync.WaitGroup
			var succeeded atomic.Int32

			for _, fh := range files {
				wg.Add(1)
				go func(fh *multipart.FileHeader) {
					defer wg.Done()
					if doc := uploadOne(ctx, svc, out, cancel, userID, folderID, fh); doc != nil {
						succeeded.Add(1)
					}
				}(fh)
			}
			wg.Wait()

			done := int(succeeded.Load())
			_ = out.send(uploadDoneEvent{
				Type:      "done",
				Succeeded: done,
				Failed:    len(files) - done,
			})
		}))

		return nil
	}
}

// uploadOne transfers a single file and emits its events. The returned
// document is nil on failure.
func uploadOne(ctx context.Context, svc service.DocumentService, out *sseWriter, cancel context.CancelFunc, userID string, folderID *string, fh *multipart.FileHeader) *model.Document {
	f, err := fh.Open()
	if err != nil {
		_ = out.send(uploadErrorEvent{Type: "error", FileName: fh.Filename, Error: "cannot open uploaded file"})
		return nil
	}
	defer f.Close()

	ct := fh.Header.Get("Content-Type")
	if ct == "" {
		ct = fiber.MIMEOctetStream
	}

	doc, err := svc.Upload(ctx, service.UploadInput{
		OwnerID:  userID,
		FolderID: folderID,
		Name:     fh.Filename,
		Size:     fh.Size,
		MimeType: ct,
		Reader:   f,
	}, func(p model.UploadProgress) {
		if out.send(uploadProgressEvent{
			Type:       "progress",
			FileName:   fh.Filename,
			Percentage: p.Percentage,
			Loaded:     p.Loaded,
			Total:      p.Total,
		}) != nil {
			// Client is gone; stop feeding bytes to storage.
			cancel()
		}
	})
	if err != nil {
		_ = out.send(uploadErrorEvent{Type: "error", FileName: fh.Filename, Error: uploadErrorMessage(err)})
		return nil
	}

	_ = out.send(uploadSuccessEvent{Type: "success", FileName: fh.Filename, Document: doc})
	return doc
}

// uploadErrorMessage keeps stream errors safe for clients: known conditions
// get a specific message, everything else a generic one.
func uploadErrorMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrFileTooLarge):
		return "file exceeds the maximum allowed size"
	case errors.Is(err, service.ErrDuplicateName):
		return "a file with this name already exists"
	case errors.Is(err, context.Canceled):
		return "upload cancelled"
	default:
		return "upload failed"
	}
}
